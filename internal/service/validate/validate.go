package validate

import (
	"github.com/nkiryanov/modcheck/internal/apperrors"
)

const (
	SortCodeLength         = 6
	MinAccountNumberLength = 6
	MaxAccountNumberLength = 10
)

func SortCode(sortCode string) error {
	if len(sortCode) != SortCodeLength || !digits(sortCode) {
		return apperrors.ErrSortCodeInvalid
	}
	return nil
}

func AccountNumber(number string) error {
	if len(number) < MinAccountNumberLength || len(number) > MaxAccountNumberLength || !digits(number) {
		return apperrors.ErrAccountNumberInvalid
	}
	return nil
}

// It's ok to work with string as bytes here: only ASCII digits are accepted
func digits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
