package controllers

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kdhingra/meattrack-backend/api/responses"
	"github.com/kdhingra/meattrack-backend/api/validators"
	"github.com/kdhingra/meattrack-backend/internal/sales"
	pkgerrors "github.com/kdhingra/meattrack-backend/pkg/errors"
	"github.com/kdhingra/meattrack-backend/pkg/logger"
)

type createRetailSaleRequest struct {
	CustomerName *string         `json:"customer_name,omitempty"`
	MeatType     string          `json:"meat_type" validate:"required,min=1"`
	ProductCut   string          `json:"product_cut" validate:"required,min=1"`
	QuantityKg   decimal.Decimal `json:"quantity_kg"`
	RatePerKg    decimal.Decimal `json:"rate_per_kg"`
	TradeDate    string          `json:"trade_date" validate:"required"`
}

func RetailSaleCreate(svc sales.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sales service unavailable"))
			return
		}

		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req createRetailSaleRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tradeDate, err := time.ParseInLocation(validators.DateLayout, req.TradeDate, time.UTC)
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "trade_date must be YYYY-MM-DD"))
			return
		}

		sale, err := svc.CreateRetail(r.Context(), sales.CreateRetailSaleInput{
			UserID:       userID,
			CustomerName: req.CustomerName,
			MeatType:     req.MeatType,
			ProductCut:   req.ProductCut,
			QuantityKg:   req.QuantityKg,
			RatePerKg:    req.RatePerKg,
			TradeDate:    tradeDate,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, sale)
	}
}

func RetailSaleList(svc sales.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sales service unavailable"))
			return
		}

		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		day, err := validators.ParseOptionalDateParam(r, "date")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		listed, err := svc.ListRetail(r.Context(), userID, day)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, listed)
	}
}

func RetailSaleGet(svc sales.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sales service unavailable"))
			return
		}

		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		saleID, err := pathUUID(r, "saleId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sale, err := svc.GetRetail(r.Context(), userID, saleID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, sale)
	}
}

func RetailSaleDelete(svc sales.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sales service unavailable"))
			return
		}

		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		saleID, err := pathUUID(r, "saleId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteRetail(r.Context(), userID, saleID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
