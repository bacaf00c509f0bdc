package handlers

import (
	"errors"
	"net/http"

	"github.com/nkiryanov/modcheck/internal/apperrors"
	"github.com/nkiryanov/modcheck/internal/handlers/render"
	"github.com/nkiryanov/modcheck/internal/handlers/reqctx"
	"github.com/nkiryanov/modcheck/internal/logger"
	"github.com/nkiryanov/modcheck/internal/models"
)

type checkResponse struct {
	CheckType     string `json:"check_type"`
	Exception     int    `json:"exception"`
	AccountDetail string `json:"account_detail"`
	Valid         bool   `json:"valid"`
	Decided       bool   `json:"decided"`
}

func handleValidate(modulusService modulusService, l logger.Logger) http.Handler {
	type request struct {
		SortCode      string `json:"sort_code" validate:"required,sortcode"`
		AccountNumber string `json:"account_number" validate:"required,accountnumber"`
	}

	type response struct {
		Valid   bool            `json:"valid"`
		Checked bool            `json:"checked"`
		Checks  []checkResponse `json:"checks"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, 1024)

		req, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		reqctx.Record(r.Context(), req.SortCode, 1)
		result, err := modulusService.Validate(r.Context(), req.SortCode, req.AccountNumber)

		switch {
		case err == nil:
			render.JSON(w, response{
				Valid:   result.Valid,
				Checked: result.Checked,
				Checks:  toCheckResponses(result.Checks),
			})
		case errors.Is(err, apperrors.ErrSortCodeInvalid), errors.Is(err, apperrors.ErrAccountNumberInvalid):
			render.ServiceError(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			l.Error("Failed to validate account", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}

func toCheckResponses(reports []models.CheckReport) []checkResponse {
	checks := make([]checkResponse, 0, len(reports))
	for _, c := range reports {
		checks = append(checks, checkResponse{
			CheckType:     string(c.CheckType),
			Exception:     int(c.Exception),
			AccountDetail: c.AccountDetail,
			Valid:         c.Valid,
			Decided:       c.Decided,
		})
	}
	return checks
}
