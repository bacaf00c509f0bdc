package apperrors

import (
	"errors"
)

var (
	ErrSortCodeInvalid      = errors.New("sort code must be exactly 6 digits")
	ErrAccountNumberInvalid = errors.New("account number must be 6 to 10 digits")

	ErrMalformedTable   = errors.New("malformed table data")
	ErrUnknownCheckType = errors.New("unknown check type")

	ErrDuplicateSubstitution = errors.New("sort code substitution already exists")
)
