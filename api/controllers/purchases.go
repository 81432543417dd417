package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kdhingra/meattrack-backend/api/responses"
	"github.com/kdhingra/meattrack-backend/api/validators"
	"github.com/kdhingra/meattrack-backend/internal/purchases"
	pkgerrors "github.com/kdhingra/meattrack-backend/pkg/errors"
	"github.com/kdhingra/meattrack-backend/pkg/logger"
)

type createPurchaseRequest struct {
	VendorID   uuid.UUID       `json:"vendor_id" validate:"required"`
	MeatType   string          `json:"meat_type" validate:"required,min=1"`
	ProductCut string          `json:"product_cut" validate:"required,min=1"`
	QuantityKg decimal.Decimal `json:"quantity_kg"`
	RatePerKg  decimal.Decimal `json:"rate_per_kg"`
	TradeDate  string          `json:"trade_date" validate:"required"`
}

// PurchaseCreate records a stock intake and bumps the vendor balance.
func PurchaseCreate(svc purchases.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "purchases service unavailable"))
			return
		}

		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req createPurchaseRequest
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

		purchase, err := svc.Create(r.Context(), purchases.CreatePurchaseInput{
			UserID:     userID,
			VendorID:   req.VendorID,
			MeatType:   req.MeatType,
			ProductCut: req.ProductCut,
			QuantityKg: req.QuantityKg,
			RatePerKg:  req.RatePerKg,
			TradeDate:  tradeDate,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, purchase)
	}
}

// PurchaseList returns the user's purchases, optionally for one day.
func PurchaseList(svc purchases.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "purchases service unavailable"))
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

		listed, err := svc.List(r.Context(), userID, day)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, listed)
	}
}

func PurchaseGet(svc purchases.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "purchases service unavailable"))
			return
		}

		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		purchaseID, err := pathUUID(r, "purchaseId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		purchase, err := svc.Get(r.Context(), userID, purchaseID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, purchase)
	}
}

// PurchaseDelete removes a purchase and reverses its vendor balance delta.
func PurchaseDelete(svc purchases.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "purchases service unavailable"))
			return
		}

		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		purchaseID, err := pathUUID(r, "purchaseId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), userID, purchaseID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
