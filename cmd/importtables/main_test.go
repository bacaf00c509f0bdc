package main

import (
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/nkiryanov/modcheck/internal/logger"
	"github.com/nkiryanov/modcheck/internal/repository/postgres"
	"github.com/nkiryanov/modcheck/internal/testutil"
)

const (
	weightsFile       = "../../" + testutil.WeightsFixture
	substitutionsFile = "../../" + testutil.SubstitutionsFixture
)

func Test_parseOptions(t *testing.T) {
	t.Run("flags", func(t *testing.T) {
		o, err := parseOptions(func(string) string { return "" }, []string{
			"-d", "postgres://localhost/modcheck",
			"-w", "valacdos.txt",
			"-s", "scsubtab.txt",
		})

		require.NoError(t, err)
		require.Equal(t, options{
			DatabaseDSN:       "postgres://localhost/modcheck",
			WeightsFile:       "valacdos.txt",
			SubstitutionsFile: "scsubtab.txt",
			LogLevel:          "info",
		}, o)
	})

	t.Run("env", func(t *testing.T) {
		env := map[string]string{
			"DATABASE_URI": "postgres://localhost/modcheck",
			"WEIGHTS_FILE": "valacdos.txt",
		}

		o, err := parseOptions(func(key string) string { return env[key] }, nil)

		require.NoError(t, err)
		require.Equal(t, "postgres://localhost/modcheck", o.DatabaseDSN)
		require.Equal(t, "valacdos.txt", o.WeightsFile)
		require.Equal(t, "", o.SubstitutionsFile)
	})

	t.Run("database required", func(t *testing.T) {
		_, err := parseOptions(func(string) string { return "" }, []string{"-w", "valacdos.txt"})

		require.Error(t, err)
	})

	t.Run("weights required", func(t *testing.T) {
		_, err := parseOptions(func(string) string { return "" }, []string{"-d", "postgres://localhost/modcheck"})

		require.Error(t, err)
	})
}

func Test_importTables(t *testing.T) {
	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	t.Run("import both tables", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			s := postgres.NewStorage(tx)

			err := importTables(t.Context(), s, options{WeightsFile: weightsFile, SubstitutionsFile: substitutionsFile}, logger.NewNoOpLogger())
			require.NoError(t, err)

			entries, err := s.FindWeights(t.Context(), 871427)
			require.NoError(t, err)
			require.Len(t, entries, 2)

			subs, err := s.ListSubstitutions(t.Context())
			require.NoError(t, err)
			require.Len(t, subs, 5)
			require.Equal(t, "938611", subs["938600"])
		})
	})

	t.Run("broken file leaves tables untouched", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			s := postgres.NewStorage(tx)
			err := importTables(t.Context(), s, options{WeightsFile: weightsFile}, logger.NewNoOpLogger())
			require.NoError(t, err)

			err = importTables(t.Context(), s, options{WeightsFile: weightsFile, SubstitutionsFile: "not-exists.txt"}, logger.NewNoOpLogger())
			require.Error(t, err)

			entries, err := s.FindWeights(t.Context(), 89999)
			require.NoError(t, err)
			require.Len(t, entries, 1, "previous import should remain")
		})
	})
}
