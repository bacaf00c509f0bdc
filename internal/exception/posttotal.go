package exception

import (
	"github.com/nkiryanov/modcheck/internal/models"
)

const exception1Addend = 27

// PostTotal adjusts the weighted sum or decides the check once the sum is known
func PostTotal(exc models.Exception, total int, detail string) (int, models.Outcome) {
	switch exc {
	case 1:
		return total + exception1Addend, models.OutcomeNone

	case 4:
		// The last two digits hold the check digit
		n := len(detail)
		checkDigit := int(detail[n-2]-'0')*10 + int(detail[n-1]-'0')
		if total%11 == checkDigit {
			return total, models.OutcomeValid
		}
		return total, models.OutcomeNone

	case 5:
		g := models.PosG.Value(detail)
		remainder := total % 11
		valid := (remainder == 0 && g == 0) || (remainder != 1 && 11-remainder == g)
		return total, models.Decide(valid)

	default:
		return total, models.OutcomeNone
	}
}
