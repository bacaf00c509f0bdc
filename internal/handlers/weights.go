package handlers

import (
	"errors"
	"net/http"

	"github.com/nkiryanov/modcheck/internal/apperrors"
	"github.com/nkiryanov/modcheck/internal/handlers/render"
	"github.com/nkiryanov/modcheck/internal/handlers/reqctx"
	"github.com/nkiryanov/modcheck/internal/logger"
)

func handleWeights(modulusService modulusService, l logger.Logger) http.Handler {
	type weightEntry struct {
		Start     int    `json:"start"`
		End       int    `json:"end"`
		CheckType string `json:"check_type"`
		Exception int    `json:"exception"`
		Weights   []int  `json:"weights"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sortCode := r.PathValue("sortCode")
		reqctx.Record(r.Context(), sortCode, 0)
		entries, err := modulusService.FindWeights(r.Context(), sortCode)

		switch {
		case err == nil && len(entries) == 0:
			render.ServiceError(w, "Sort code is not covered by weight table", http.StatusNotFound)
		case err == nil:
			res := make([]weightEntry, 0, len(entries))
			for _, e := range entries {
				res = append(res, weightEntry{
					Start:     e.Start,
					End:       e.End,
					CheckType: string(e.CheckType),
					Exception: int(e.Exception),
					Weights:   e.Weights[:],
				})
			}
			render.JSON(w, res)
		case errors.Is(err, apperrors.ErrSortCodeInvalid):
			render.ServiceError(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			l.Error("Failed to find weights", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}
