package e2e

import (
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/nkiryanov/modcheck/internal/handlers"
	"github.com/nkiryanov/modcheck/internal/logger"
	"github.com/nkiryanov/modcheck/internal/metrics"
	"github.com/nkiryanov/modcheck/internal/repository/cached"
	"github.com/nkiryanov/modcheck/internal/repository/postgres"
	"github.com/nkiryanov/modcheck/internal/service/batch"
	"github.com/nkiryanov/modcheck/internal/service/modulus"
	"github.com/nkiryanov/modcheck/internal/substitution"
	"github.com/nkiryanov/modcheck/internal/testutil"
	"github.com/nkiryanov/modcheck/internal/weighttable"
)

type Services struct {
	ModulusService *modulus.Service
	Registry       *prometheus.Registry
}

// Create db transaction, import fixture tables and run server with that connection (one connection cause one transaction)
// The created transaction passed to inner function: so, you can safely use testutil.WithTx with it
func ServeWithTx(dbpool *pgxpool.Pool, t *testing.T, fn func(tx pgx.Tx, srvURL string, services Services)) {
	testutil.WithTx(dbpool, t, func(tx pgx.Tx) {
		storage := postgres.NewStorage(tx)

		weights, err := weighttable.Load(testutil.FixturePath(t, testutil.WeightsFixture))
		require.NoError(t, err, "weights fixture should be loaded")
		subs, err := substitution.Load(testutil.FixturePath(t, testutil.SubstitutionsFixture))
		require.NoError(t, err, "substitutions fixture should be loaded")

		require.NoError(t, storage.ReplaceWeights(t.Context(), weights.Entries()))
		require.NoError(t, storage.ReplaceSubstitutions(t.Context(), subs.Pairs()))

		// Initialize services
		reg := prometheus.NewRegistry()
		recorder, err := metrics.NewRecorder(reg)
		require.NoError(t, err)

		ms, err := modulus.NewService(t.Context(), cached.NewWeightRepo(storage, cached.DefaultTTL), storage, modulus.WithRecorder(recorder))
		require.NoError(t, err, "modulus service starting error")

		// Run http server with the router in transaction
		l := logger.NewNoOpLogger()
		srv := httptest.NewServer(handlers.NewRouter(ms, batch.New(ms, l), l))
		defer srv.Close()

		fn(tx, srv.URL, Services{
			ModulusService: ms,
			Registry:       reg,
		})
	})
}
