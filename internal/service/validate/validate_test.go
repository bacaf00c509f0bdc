package validate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nkiryanov/modcheck/internal/apperrors"
)

func TestSortCode(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		for _, sc := range []string{"089999", "000000", "938611"} {
			require.NoError(t, SortCode(sc), "sort code %q", sc)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		tests := []struct {
			name  string
			value string
		}{
			{"empty", ""},
			{"too short", "08999"},
			{"too long", "1234567"},
			{"not digits", "12345a"},
			{"dashes", "08-99-99"},
			{"non ascii digits", "０８９９９９"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := SortCode(tt.value)

				require.ErrorIs(t, err, apperrors.ErrSortCodeInvalid)
			})
		}
	})
}

func TestAccountNumber(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		for _, n := range []string{"123456", "1234567", "12345678", "912345678", "1234567890"} {
			require.NoError(t, AccountNumber(n), "account number %q", n)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		for _, n := range []string{"", "12345", "12345678910", "1234567a", " 12345678"} {
			require.ErrorIs(t, AccountNumber(n), apperrors.ErrAccountNumberInvalid, "account number %q", n)
		}
	})
}
