package modulus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nkiryanov/modcheck/internal/apperrors"
	"github.com/nkiryanov/modcheck/internal/models"
	"github.com/nkiryanov/modcheck/internal/repository/memory"
)

type fakeRecorder struct {
	validations map[string]int
	decisions   map[string]int
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{validations: map[string]int{}, decisions: map[string]int{}}
}

func (r *fakeRecorder) ObserveValidation(result string) { r.validations[result]++ }
func (r *fakeRecorder) ObserveDecision(exc string)      { r.decisions[exc]++ }

type failingRepo struct{}

var errRepo = errors.New("repo is broken")

func (failingRepo) FindWeights(context.Context, int) ([]models.WeightEntry, error) {
	return nil, errRepo
}

func (failingRepo) ListSubstitutions(context.Context) (map[string]string, error) {
	return nil, errRepo
}

func newService(t *testing.T, opts ...Option) *Service {
	t.Helper()

	repo, err := memory.Load("../../weighttable/testdata/valacdos.txt", "../../substitution/testdata/scsubtab.txt")
	require.NoError(t, err, "fixtures must be loaded ok")

	s, err := NewService(t.Context(), repo, repo, opts...)
	require.NoError(t, err, "service must be created ok")

	return s
}

func TestService_Validate(t *testing.T) {
	s := newService(t)

	tests := []struct {
		name          string
		sortCode      string
		accountNumber string
		expected      bool
	}{
		{"standard mod10 passes", "089999", "66374958", true},
		{"standard mod10 fails", "089999", "66374959", false},
		{"standard mod11 passes", "107999", "88837491", true},
		{"standard mod11 fails", "107999", "88837493", false},
		{"mod11 and double alternate pass", "202959", "63748472", true},
		{"exception 10 and 11 first check passes", "871427", "46238510", true},
		{"exception 10 with ab=09 and g=9", "871427", "09123496", true},
		{"exception 10 with ab=99 and g=9", "871427", "99123496", true},
		{"exception 10 and 11 both fail", "871427", "09123497", false},
		{"exception 10 and 11 only second check passes", "872427", "46238510", true},
		{"exception 3 at range start", "820000", "73688637", true},
		{"exception 3 at range end", "827999", "73988638", true},
		{"exception 12 and 13 first check passes", "074456", "12345112", true},
		{"exception 12 and 13 only second check passes", "070116", "34012583", true},
		{"exception 12 and 13 second check passes", "074456", "11104102", true},
		{"exception 12 and 13 both fail", "074456", "11104103", false},
		{"exception 1 adds 27", "118765", "64371389", true},
		{"exception 1 fails", "118765", "64371388", false},
		{"exception 4 remainder equals check digit", "134020", "63849203", true},
		{"exception 5 without substitution", "938611", "07806039", true},
		{"exception 5 with substitution", "938600", "42368003", true},
		{"exception 5 remainder 0 and g=0", "938063", "55065200", true},
		{"exception 5 wrong check digit", "938063", "15764264", false},
		{"exception 5 remainder 1", "938063", "15763217", false},
		{"exception 6 foreign currency account", "200915", "41011166", true},
		{"exception 7 zeroes sort code weights", "772798", "99345694", true},
		{"exception 7 fails", "772798", "99345695", false},
		{"exception 8 substitutes sort code", "086090", "06774744", true},
		{"exception 8 fails", "086090", "06774745", false},
		{"exception 2 and 9 with a=0", "309070", "02355688", true},
		{"exception 2 and 9 with a!=0 and g!=9", "309070", "12345668", true},
		{"exception 2 and 9 second check", "309070", "12345677", true},
		{"exception 2 and 9 with g=9", "309070", "99345694", true},
		{"exception 14 standard check passes", "180002", "00000190", true},
		{"exception 14 passes after shift", "180002", "16350120", true},
		{"exception 14 h not in 0, 1, 9", "180002", "00000194", false},
		{"exception 14 fails after shift", "180002", "00000199", false},
		{"exception 3 with both checks", "827101", "28748352", true},
		{"seven digit account padded", "089999", "6637495", false},
		{"nine digit account shifts digit into sort code", "089999", "912345678", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := s.Validate(t.Context(), tt.sortCode, tt.accountNumber)

			require.NoError(t, err)
			require.True(t, result.Checked, "sort code %s must be covered by fixture", tt.sortCode)
			require.Equal(t, tt.expected, result.Valid)
		})
	}
}

func TestService_Validate_details(t *testing.T) {
	t.Run("not covered sort code is valid but unchecked", func(t *testing.T) {
		rec := newFakeRecorder()
		s := newService(t, WithRecorder(rec))

		result, err := s.Validate(t.Context(), "999999", "12345678")

		require.NoError(t, err)
		require.Equal(t, models.CheckResult{Valid: true, Checked: false}, result)
		require.Equal(t, 1, rec.validations["unchecked"])
	})

	t.Run("reports every check", func(t *testing.T) {
		s := newService(t)

		result, err := s.Validate(t.Context(), "871427", "09123496")

		require.NoError(t, err)
		require.Len(t, result.Checks, 2)
		require.Equal(t, models.Exception(10), result.Checks[0].Exception)
		require.True(t, result.Checks[0].Valid)
		require.Equal(t, models.Exception(11), result.Checks[1].Exception)
		require.False(t, result.Checks[1].Valid)
	})

	t.Run("exception 12 first check alone may fail", func(t *testing.T) {
		s := newService(t)

		result, err := s.Validate(t.Context(), "070116", "34012583")

		require.NoError(t, err)
		require.True(t, result.Valid)
		require.Len(t, result.Checks, 2)
		require.Equal(t, models.Exception(12), result.Checks[0].Exception)
		require.False(t, result.Checks[0].Valid)
		require.Equal(t, models.Exception(13), result.Checks[1].Exception)
		require.True(t, result.Checks[1].Valid)
	})

	t.Run("exception 8 report holds substituted detail", func(t *testing.T) {
		s := newService(t)

		result, err := s.Validate(t.Context(), "086090", "06774744")

		require.NoError(t, err)
		require.Equal(t, "09012606774744", result.Checks[0].AccountDetail)
	})

	t.Run("exception 14 report holds shifted detail", func(t *testing.T) {
		s := newService(t)

		result, err := s.Validate(t.Context(), "180002", "16350120")

		require.NoError(t, err)
		require.Equal(t, "18000201635012", result.Checks[0].AccountDetail)
		require.Equal(t, models.Exception(14), result.Checks[0].Exception)
	})

	t.Run("early decisions recorded", func(t *testing.T) {
		rec := newFakeRecorder()
		s := newService(t, WithRecorder(rec))

		result, err := s.Validate(t.Context(), "200915", "41011166")

		require.NoError(t, err)
		require.True(t, result.Checks[0].Decided)
		require.True(t, result.Checks[1].Decided)
		require.Equal(t, 2, rec.decisions["6"])
		require.Equal(t, 1, rec.validations["valid"])
	})

	t.Run("invalid results recorded", func(t *testing.T) {
		rec := newFakeRecorder()
		s := newService(t, WithRecorder(rec))

		_, err := s.Validate(t.Context(), "089999", "66374959")

		require.NoError(t, err)
		require.Equal(t, 1, rec.validations["invalid"])
	})
}

func TestService_Validate_errors(t *testing.T) {
	s := newService(t)

	t.Run("invalid sort code", func(t *testing.T) {
		for _, sc := range []string{"08999", "0899999", "08999a", ""} {
			_, err := s.Validate(t.Context(), sc, "66374958")

			require.ErrorIs(t, err, apperrors.ErrSortCodeInvalid, "sort code %q", sc)
		}
	})

	t.Run("invalid account number", func(t *testing.T) {
		for _, an := range []string{"12345", "12345678901", "1234567x"} {
			_, err := s.Validate(t.Context(), "089999", an)

			require.ErrorIs(t, err, apperrors.ErrAccountNumberInvalid, "account number %q", an)
		}
	})

	t.Run("repository error", func(t *testing.T) {
		repo, err := memory.Load("../../weighttable/testdata/valacdos.txt", "../../substitution/testdata/scsubtab.txt")
		require.NoError(t, err)
		s, err := NewService(t.Context(), failingRepo{}, repo)
		require.NoError(t, err)

		_, err = s.Validate(t.Context(), "089999", "66374958")

		require.ErrorIs(t, err, errRepo)
	})

	t.Run("substitution source error", func(t *testing.T) {
		_, err := NewService(t.Context(), failingRepo{}, failingRepo{})

		require.ErrorIs(t, err, errRepo)
	})
}

func TestService_FindWeights(t *testing.T) {
	s := newService(t)

	t.Run("covered", func(t *testing.T) {
		entries, err := s.FindWeights(t.Context(), "871427")

		require.NoError(t, err)
		require.Len(t, entries, 2)
	})

	t.Run("not covered", func(t *testing.T) {
		entries, err := s.FindWeights(t.Context(), "999999")

		require.NoError(t, err)
		require.Empty(t, entries)
	})

	t.Run("invalid sort code", func(t *testing.T) {
		_, err := s.FindWeights(t.Context(), "abc")

		require.ErrorIs(t, err, apperrors.ErrSortCodeInvalid)
	})
}
