package substitution

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nkiryanov/modcheck/internal/apperrors"
)

func TestParse(t *testing.T) {
	t.Run("crlf lines", func(t *testing.T) {
		table, err := Parse(strings.NewReader("938173 938017\r\n938289 938068\r\n"))

		require.NoError(t, err)
		require.Equal(t, 2, table.Len())

		v, ok := table.Lookup("938173")
		require.True(t, ok)
		require.Equal(t, "938017", v)
	})

	t.Run("tabs and blank lines", func(t *testing.T) {
		table, err := Parse(strings.NewReader("938173\t938017\n\n   \n938289   938068"))

		require.NoError(t, err)
		require.Equal(t, 2, table.Len())
	})

	t.Run("missing key", func(t *testing.T) {
		table, err := Parse(strings.NewReader("938173 938017\n"))
		require.NoError(t, err)

		_, ok := table.Lookup("000000")

		require.False(t, ok)
	})

	t.Run("malformed lines", func(t *testing.T) {
		tests := []struct {
			name string
			data string
		}{
			{"single field", "938173\n"},
			{"three fields", "938173 938017 938018\n"},
			{"short sort code", "93817 938017\n"},
			{"not digits", "938173 93801x\n"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := Parse(strings.NewReader(tt.data))

				require.Error(t, err)
				require.ErrorIs(t, err, apperrors.ErrMalformedTable)
				require.Contains(t, err.Error(), "line 1")
			})
		}
	})
}

func TestLoad(t *testing.T) {
	t.Run("fixture ok", func(t *testing.T) {
		table, err := Load("testdata/scsubtab.txt")

		require.NoError(t, err)
		require.Equal(t, 5, table.Len())
		v, ok := table.Lookup("938600")
		require.True(t, ok)
		require.Equal(t, "938611", v)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load("testdata/not-exists.txt")

		require.Error(t, err)
	})
}

func TestTable(t *testing.T) {
	t.Run("nil table is empty", func(t *testing.T) {
		var table *Table

		_, ok := table.Lookup("938600")

		require.False(t, ok)
		require.Zero(t, table.Len())
		require.Empty(t, table.Pairs())
	})

	t.Run("new copies input", func(t *testing.T) {
		src := map[string]string{"938600": "938611"}
		table := New(src)

		src["938600"] = "000000"

		v, _ := table.Lookup("938600")
		require.Equal(t, "938611", v)
	})
}
