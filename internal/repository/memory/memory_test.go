package memory

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRepo(t *testing.T) {
	repo, err := Load("../../weighttable/testdata/valacdos.txt", "../../substitution/testdata/scsubtab.txt")
	require.NoError(t, err, "fixtures must be loaded ok")

	t.Run("FindWeights", func(t *testing.T) {
		entries, err := repo.FindWeights(t.Context(), 309070)

		require.NoError(t, err)
		require.Len(t, entries, 2)
	})

	t.Run("FindWeights not covered", func(t *testing.T) {
		entries, err := repo.FindWeights(t.Context(), 1)

		require.NoError(t, err)
		require.Empty(t, entries)
	})

	t.Run("ListSubstitutions", func(t *testing.T) {
		subs, err := repo.ListSubstitutions(t.Context())

		require.NoError(t, err)
		require.Len(t, subs, 5)
		require.Equal(t, "938611", subs["938600"])
	})

	t.Run("load missing file", func(t *testing.T) {
		_, err := Load("not-exists.txt", "../../substitution/testdata/scsubtab.txt")

		require.Error(t, err)
	})
}
