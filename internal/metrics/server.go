package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nkiryanov/modcheck/internal/logger"
)

const readHeaderTimeout = 5 * time.Second

// Server exposes collected metrics on /metrics
type Server struct {
	listenAddr string
	gatherer   prometheus.Gatherer
	logger     logger.Logger
}

func NewServer(listenAddr string, gatherer prometheus.Gatherer, l logger.Logger) *Server {
	return &Server{listenAddr: listenAddr, gatherer: gatherer, logger: l}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	return mux
}

// Run serves until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.listenAddr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		<-ctx.Done()

		if err := httpServer.Shutdown(context.WithoutCancel(ctx)); err != nil {
			s.logger.Error("Metrics server shutdown failed", "error", err)
		}
	}()

	s.logger.Info("Starting metrics server", "address", s.listenAddr)

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics server error: %w", err)
	}

	s.logger.Info("Metrics server stopped")
	return nil
}
