package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kdhingra/meattrack-backend/api/responses"
	"github.com/kdhingra/meattrack-backend/api/validators"
	"github.com/kdhingra/meattrack-backend/internal/payments"
	pkgerrors "github.com/kdhingra/meattrack-backend/pkg/errors"
	"github.com/kdhingra/meattrack-backend/pkg/logger"
)

type createPaymentRequest struct {
	VendorID uuid.UUID       `json:"vendor_id" validate:"required"`
	Amount   decimal.Decimal `json:"amount"`
	Notes    *string         `json:"notes,omitempty"`
	PayDate  string          `json:"pay_date" validate:"required"`
}

// PaymentCreate settles part of a vendor balance.
func PaymentCreate(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payments service unavailable"))
			return
		}

		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req createPaymentRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payDate, err := time.ParseInLocation(validators.DateLayout, req.PayDate, time.UTC)
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "pay_date must be YYYY-MM-DD"))
			return
		}

		payment, err := svc.Create(r.Context(), payments.CreatePaymentInput{
			UserID:   userID,
			VendorID: req.VendorID,
			Amount:   req.Amount,
			Notes:    req.Notes,
			PayDate:  payDate,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, payment)
	}
}

func PaymentList(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payments service unavailable"))
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

// PaymentListByVendor returns the settlement history for one vendor.
func PaymentListByVendor(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payments service unavailable"))
			return
		}

		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vendorID, err := pathUUID(r, "vendorId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		listed, err := svc.ListByVendor(r.Context(), userID, vendorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, listed)
	}
}

func PaymentGet(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payments service unavailable"))
			return
		}

		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		paymentID, err := pathUUID(r, "paymentId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payment, err := svc.Get(r.Context(), userID, paymentID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, payment)
	}
}

// PaymentDelete removes a payment and restores the vendor balance.
func PaymentDelete(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payments service unavailable"))
			return
		}

		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		paymentID, err := pathUUID(r, "paymentId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), userID, paymentID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
