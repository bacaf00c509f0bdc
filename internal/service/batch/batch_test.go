package batch

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nkiryanov/modcheck/internal/apperrors"
	"github.com/nkiryanov/modcheck/internal/logger"
	"github.com/nkiryanov/modcheck/internal/models"
)

// Valid when account number ends with an even digit
type parityValidator struct {
	calls atomic.Int32
}

func (v *parityValidator) Validate(_ context.Context, sortCode string, accountNumber string) (models.CheckResult, error) {
	v.calls.Add(1)
	if sortCode == "" {
		return models.CheckResult{}, apperrors.ErrSortCodeInvalid
	}
	last := accountNumber[len(accountNumber)-1] - '0'
	return models.CheckResult{Valid: last%2 == 0, Checked: true}, nil
}

func TestProcessor_Process(t *testing.T) {
	t.Run("results keep order", func(t *testing.T) {
		v := &parityValidator{}
		p := New(v, logger.NewNoOpLogger(), WithWorkers(3))

		items := make([]Item, 0, 50)
		for i := range 50 {
			items = append(items, Item{SortCode: "089999", AccountNumber: fmt.Sprintf("%08d", i)})
		}

		results, err := p.Process(t.Context(), items)

		require.NoError(t, err)
		require.Len(t, results, 50)
		require.EqualValues(t, 50, v.calls.Load(), "every item validated once")
		for i, r := range results {
			require.Equal(t, items[i], r.Item)
			require.Equal(t, i%2 == 0, r.Valid, "item %d", i)
			require.NoError(t, r.Err)
		}
	})

	t.Run("item errors kept", func(t *testing.T) {
		p := New(&parityValidator{}, logger.NewNoOpLogger())

		results, err := p.Process(t.Context(), []Item{
			{SortCode: "089999", AccountNumber: "66374958"},
			{SortCode: "", AccountNumber: "66374958"},
		})

		require.NoError(t, err)
		require.NoError(t, results[0].Err)
		require.ErrorIs(t, results[1].Err, apperrors.ErrSortCodeInvalid)
	})

	t.Run("empty batch", func(t *testing.T) {
		p := New(&parityValidator{}, logger.NewNoOpLogger())

		results, err := p.Process(t.Context(), nil)

		require.NoError(t, err)
		require.Empty(t, results)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()
		p := New(&parityValidator{}, logger.NewNoOpLogger())

		_, err := p.Process(ctx, []Item{{SortCode: "089999", AccountNumber: "66374958"}})

		require.ErrorIs(t, err, context.Canceled)
	})
}
