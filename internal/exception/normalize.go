// Package exception applies the numbered exceptions of the UK modulus checking rules.
//
// The rules run at four points of a single check:
//
//	NormalizeAccountDetail  before the sort code and account number are combined
//	AdjustWeights           after the weights are selected
//	Overwrite               before the weighted sum is computed
//	PostTotal               after the weighted sum is computed
//
// Every function is pure. Exception numbers without a rule at a stage leave
// the input untouched and decide nothing.
package exception

import (
	"github.com/nkiryanov/modcheck/internal/models"
)

const (
	exception8SortCode = "090126"
	exception9SortCode = "309634"
)

// SubstitutionTable maps a sort code to the sort code used for exception 5 checks
type SubstitutionTable interface {
	Lookup(sortCode string) (string, bool)
}

// AdjustLength brings the account number to 8 digits.
// A 9 digit number donates its first digit to the last digit of the sort code.
// Other lengths are returned unchanged.
func AdjustLength(sortCode string, accountNumber string) (string, string) {
	switch len(accountNumber) {
	case 6:
		return sortCode, "00" + accountNumber
	case 7:
		return sortCode, "0" + accountNumber
	case 9:
		return sortCode[:len(sortCode)-1] + accountNumber[:1], accountNumber[1:]
	case 10:
		return sortCode, accountNumber[:8]
	default:
		return sortCode, accountNumber
	}
}

// SubstituteSortCode returns the sort code the exception requires to be used instead
func SubstituteSortCode(sortCode string, exc models.Exception, subs SubstitutionTable) string {
	switch exc {
	case 5:
		if subs == nil {
			return sortCode
		}
		if substitute, ok := subs.Lookup(sortCode); ok {
			return substitute
		}
		return sortCode
	case 8:
		return exception8SortCode
	case 9:
		return exception9SortCode
	default:
		return sortCode
	}
}

// NormalizeAccountDetail combines sort code and account number into the account detail string
func NormalizeAccountDetail(sortCode string, accountNumber string, exc models.Exception, subs SubstitutionTable) string {
	sortCode, accountNumber = AdjustLength(sortCode, accountNumber)
	return SubstituteSortCode(sortCode, exc, subs) + accountNumber
}
