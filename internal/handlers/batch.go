package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/nkiryanov/modcheck/internal/apperrors"
	"github.com/nkiryanov/modcheck/internal/handlers/render"
	"github.com/nkiryanov/modcheck/internal/handlers/reqctx"
	"github.com/nkiryanov/modcheck/internal/logger"
	"github.com/nkiryanov/modcheck/internal/service/batch"
)

const MaxBatchSize = 1000

func handleValidateBatch(batchProcessor batchProcessor, l logger.Logger) http.Handler {
	// Items are not validated here, malformed details come back as item errors
	type account struct {
		SortCode      string `json:"sort_code"`
		AccountNumber string `json:"account_number"`
	}

	type request struct {
		Accounts []account `json:"accounts" validate:"required,min=1"`
	}

	type result struct {
		SortCode      string `json:"sort_code"`
		AccountNumber string `json:"account_number"`
		Valid         bool   `json:"valid"`
		Checked       bool   `json:"checked"`
		Error         string `json:"error,omitempty"`
	}

	type response struct {
		Results []result `json:"results"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, 128*MaxBatchSize)

		req, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}
		if len(req.Accounts) > MaxBatchSize {
			render.JSONWithStatus(w, render.ErrorResponse{
				Error:   render.ValidationErrorType,
				Message: "Request validation failed",
				Fields:  map[string]string{"accounts": fmt.Sprintf("Value is too long (maximum %d)", MaxBatchSize)},
			}, http.StatusBadRequest)
			return
		}

		reqctx.Record(r.Context(), "", len(req.Accounts))
		items := make([]batch.Item, 0, len(req.Accounts))
		for _, a := range req.Accounts {
			items = append(items, batch.Item{SortCode: a.SortCode, AccountNumber: a.AccountNumber})
		}

		results, err := batchProcessor.Process(r.Context(), items)
		if err != nil {
			l.Error("Failed to validate batch", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		res := response{Results: make([]result, 0, len(results))}
		for _, br := range results {
			item := result{
				SortCode:      br.SortCode,
				AccountNumber: br.AccountNumber,
				Valid:         br.Valid,
				Checked:       br.Checked,
			}

			switch {
			case br.Err == nil:
			case errors.Is(br.Err, apperrors.ErrSortCodeInvalid), errors.Is(br.Err, apperrors.ErrAccountNumberInvalid):
				item.Error = br.Err.Error()
			default:
				l.Error("Failed to validate account", "error", br.Err)
				render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
				return
			}

			res.Results = append(res.Results, item)
		}

		render.JSON(w, res)
	})
}
