package controllers

import (
	"net/http"

	"github.com/kdhingra/meattrack-backend/api/responses"
	"github.com/kdhingra/meattrack-backend/api/validators"
	"github.com/kdhingra/meattrack-backend/internal/reports"
	pkgerrors "github.com/kdhingra/meattrack-backend/pkg/errors"
	"github.com/kdhingra/meattrack-backend/pkg/logger"
)

// ReportDaily returns the business summary for one calendar day.
func ReportDaily(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reports service unavailable"))
			return
		}

		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		day, err := validators.ParseDateParam(r, "date")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithReportDate(ctx, day.Format(validators.DateLayout))
		}

		summary, err := svc.BuildDaily(ctx, userID, day)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, summary)
	}
}

// ReportRange returns one summary per day for an inclusive date range.
func ReportRange(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reports service unavailable"))
			return
		}

		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		start, err := validators.ParseDateParam(r, "start")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		end, err := validators.ParseDateParam(r, "end")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		summaries, err := svc.BuildRange(r.Context(), userID, start, end)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, summaries)
	}
}
