package exception

import (
	"github.com/nkiryanov/modcheck/internal/models"
)

// Overwrite may decide the check before the weighted sum is computed.
// Exception 14 rewrites the account detail instead when it doesn't fail outright.
func Overwrite(entry models.WeightEntry, detail string) (string, models.Outcome) {
	switch entry.Exception {
	case 3:
		if a := models.PosA.Digit(detail); a == '1' || a == '9' {
			return detail, models.OutcomeValid
		}

	case 6:
		a := models.PosA.Value(detail)
		if a >= 4 && a <= 10 && models.PosG.Digit(detail) == models.PosH.Digit(detail) {
			return detail, models.OutcomeValid
		}

	case 14:
		switch models.PosH.Digit(detail) {
		case '0', '1', '9':
			// Drop the last digit and shift the account number right by one
			return detail[:6] + "0" + detail[6:len(detail)-1], models.OutcomeNone
		default:
			return detail, models.OutcomeInvalid
		}
	}

	return detail, models.OutcomeNone
}
