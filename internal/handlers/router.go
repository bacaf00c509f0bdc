package handlers

import (
	"context"
	"net/http"

	"github.com/nkiryanov/modcheck/internal/handlers/middleware"
	"github.com/nkiryanov/modcheck/internal/logger"
	"github.com/nkiryanov/modcheck/internal/models"
	"github.com/nkiryanov/modcheck/internal/service/batch"
)

// chain applies middlewares in the given order: m1(m2(...(h)))
func chain(h http.Handler, mds ...func(next http.Handler) http.Handler) http.Handler {
	for i := len(mds) - 1; i >= 0; i-- {
		h = mds[i](h)
	}
	return h
}

func NewRouter(modulusService modulusService, batchProcessor batchProcessor, logger logger.Logger) http.Handler {
	api := http.NewServeMux()

	api.Handle("POST /validate", handleValidate(modulusService, logger))
	api.Handle("POST /validate/batch", handleValidateBatch(batchProcessor, logger))
	api.Handle("GET /weights/{sortCode}", handleWeights(modulusService, logger))

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))
	root.Handle("GET /ping", handlePing())

	handler := chain(root,
		middleware.RequestIDMiddleware,
		middleware.LoggerMiddleware(logger),
	)

	return handler
}

type modulusService interface {
	// Validate account number against the weight entries of the sort code
	// Has to return apperrors.ErrSortCodeInvalid or apperrors.ErrAccountNumberInvalid on malformed input
	Validate(ctx context.Context, sortCode string, accountNumber string) (models.CheckResult, error)

	// Weight entries of the sort code, empty if the sort code is not covered
	FindWeights(ctx context.Context, sortCode string) ([]models.WeightEntry, error)
}

type batchProcessor interface {
	// Validate every item, results in the same order as items
	// Item level errors are returned inside results
	Process(ctx context.Context, items []batch.Item) ([]batch.Result, error)
}

func handlePing() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}
