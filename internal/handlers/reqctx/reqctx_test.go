package reqctx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	t.Run("stored", func(t *testing.T) {
		ctx := New(context.Background(), "req-1")

		id, ok := FromContext(ctx)

		require.True(t, ok)
		require.Equal(t, "req-1", id)
	})

	t.Run("missing", func(t *testing.T) {
		_, ok := FromContext(context.Background())

		require.False(t, ok)
	})
}

func TestSummary(t *testing.T) {
	t.Run("recorded", func(t *testing.T) {
		ctx, s := WithSummary(context.Background())

		Record(ctx, "089999", 1)

		require.Equal(t, Summary{SortCode: "089999", Accounts: 1}, *s)
	})

	t.Run("no summary in context", func(t *testing.T) {
		require.NotPanics(t, func() { Record(context.Background(), "089999", 1) })
	})
}
