package models

import (
	"fmt"
	"strings"

	"github.com/nkiryanov/modcheck/internal/apperrors"
)

// Number of digits in the combined sort code and account number
const DetailLength = 14

type CheckType string

const (
	CheckMod10 CheckType = "MOD10"
	CheckMod11 CheckType = "MOD11"
	CheckDblAl CheckType = "DBLAL"
)

// ParseCheckType accepts check type names case-insensitively
func ParseCheckType(s string) (CheckType, error) {
	switch ct := CheckType(strings.ToUpper(strings.TrimSpace(s))); ct {
	case CheckMod10, CheckMod11, CheckDblAl:
		return ct, nil
	default:
		return "", fmt.Errorf("%w: %q", apperrors.ErrUnknownCheckType, s)
	}
}

// Divisor used for the final modulus comparison
func (ct CheckType) Modulus() int {
	if ct == CheckMod11 {
		return 11
	}
	return 10
}

// Exception number of a weight table entry.
// Zero means the entry has no exception.
type Exception int

const ExceptionNone Exception = 0

type Weights [DetailLength]int

// WeightEntry is one row of the weight table.
// The sort code range [Start, End] is inclusive.
type WeightEntry struct {
	Start     int
	End       int
	CheckType CheckType
	Exception Exception
	Weights   Weights
}

func (e WeightEntry) Contains(sortCode int) bool {
	return e.Start <= sortCode && sortCode <= e.End
}
