package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/nkiryanov/modcheck/internal/db"
	"github.com/nkiryanov/modcheck/internal/handlers"
	"github.com/nkiryanov/modcheck/internal/logger"
	"github.com/nkiryanov/modcheck/internal/metrics"
	"github.com/nkiryanov/modcheck/internal/repository"
	"github.com/nkiryanov/modcheck/internal/repository/cached"
	"github.com/nkiryanov/modcheck/internal/repository/memory"
	"github.com/nkiryanov/modcheck/internal/repository/postgres"
	"github.com/nkiryanov/modcheck/internal/service/batch"
	"github.com/nkiryanov/modcheck/internal/service/modulus"
	"github.com/nkiryanov/modcheck/internal/substitution"
	"github.com/nkiryanov/modcheck/internal/weighttable"
)

const shutdownTimeout = 5 * time.Second

type ServerApp struct {
	ListenAddr string
	Handler    http.Handler

	// Nil when metrics are disabled
	Metrics *metrics.Server

	logger logger.Logger
	close  func()
}

func NewServerApp(ctx context.Context, c *Config) (*ServerApp, error) {
	// Initialize logger
	logger, err := logger.New(c.Environment, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("error while initializing logger: %w", err)
	}

	weights, subs, closeFn, err := openTables(ctx, c, logger)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder, err := metrics.NewRecorder(reg)
	if err != nil {
		closeFn()
		return nil, fmt.Errorf("error while registering metrics: %w", err)
	}

	modulusService, err := modulus.NewService(ctx, weights, subs,
		modulus.WithRecorder(recorder),
		modulus.WithLogger(logger),
	)
	if err != nil {
		closeFn()
		return nil, fmt.Errorf("error while creating modulus service. Err: %w", err)
	}

	app := &ServerApp{
		ListenAddr: c.ListenAddr,
		Handler:    handlers.NewRouter(modulusService, batch.New(modulusService, logger, batch.WithWorkers(c.BatchWorkers)), logger),
		logger:     logger,
		close:      closeFn,
	}
	if c.MetricsAddr != "" {
		app.Metrics = metrics.NewServer(c.MetricsAddr, reg, logger)
	}

	return app, nil
}

// Tables come from database when it is configured, from files otherwise
func openTables(ctx context.Context, c *Config, l logger.Logger) (repository.WeightRepo, repository.SubstitutionRepo, func(), error) {
	if c.DatabaseDSN != "" {
		// Connect to the database and run migrations
		pool, err := db.ConnectAndMigrate(ctx, c.DatabaseDSN)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("error while connecting to db. Err: %w", err)
		}
		if c.WeightsFile != "" {
			l.Warn("Database is configured, weights file ignored", "file", c.WeightsFile)
		}

		storage := postgres.NewStorage(pool)
		return cached.NewWeightRepo(storage, c.CacheTTL), storage, pool.Close, nil
	}

	if c.WeightsFile == "" {
		return nil, nil, nil, errors.New("either database or weights file has to be configured")
	}

	weights, err := weighttable.Load(c.WeightsFile)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("error while loading weights: %w", err)
	}

	// No substitution file is the same as an empty table
	var subs *substitution.Table
	if c.SubstitutionsFile != "" {
		subs, err = substitution.Load(c.SubstitutionsFile)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("error while loading substitutions: %w", err)
		}
	}

	l.Info("Tables loaded from files", "weights", weights.Len(), "substitutions", subs.Len())
	repo := memory.New(weights, subs)
	return repo, repo, func() {}, nil
}

// Run starts http servers and closes them gracefully on context cancellation
func (s *ServerApp) Run(ctx context.Context) error {
	defer s.close()

	g, ctx := errgroup.WithContext(ctx)

	httpServer := &http.Server{
		Addr:              s.ListenAddr,
		Handler:           s.Handler,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	g.Go(func() error {
		go func() {
			<-ctx.Done()

			timeoutCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
			defer cancel()

			if err := httpServer.Shutdown(timeoutCtx); errors.Is(err, context.DeadlineExceeded) {
				s.logger.Error("HTTP server shutdown timeout exceeded, forcing shutdown...")
			}
		}()

		// Listen and serve until context is cancelled; then close gracefully connections
		s.logger.Info("Starting server", "address", s.ListenAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server error: %w", err)
		}

		s.logger.Info("HTTP server stopped")
		return nil
	})

	if s.Metrics != nil {
		g.Go(func() error {
			return s.Metrics.Run(ctx)
		})
	}

	return g.Wait()
}
