package controllers

import (
	"net/http"

	"github.com/kdhingra/meattrack-backend/api/responses"
	"github.com/kdhingra/meattrack-backend/api/validators"
	"github.com/kdhingra/meattrack-backend/internal/vendors"
	pkgerrors "github.com/kdhingra/meattrack-backend/pkg/errors"
	"github.com/kdhingra/meattrack-backend/pkg/logger"
)

type createVendorRequest struct {
	Name            string   `json:"name" validate:"required,min=1"`
	Phone           string   `json:"phone"`
	Notes           *string  `json:"notes,omitempty"`
	Specializations []string `json:"specializations,omitempty"`
}

type updateVendorRequest struct {
	Name            *string  `json:"name,omitempty" validate:"omitempty,min=1"`
	Phone           *string  `json:"phone,omitempty"`
	Notes           *string  `json:"notes,omitempty"`
	Specializations []string `json:"specializations,omitempty"`
}

func VendorCreate(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendors service unavailable"))
			return
		}

		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req createVendorRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vendor, err := svc.Create(r.Context(), vendors.CreateVendorInput{
			UserID:          userID,
			Name:            req.Name,
			Phone:           req.Phone,
			Notes:           req.Notes,
			Specializations: req.Specializations,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, vendor)
	}
}

func VendorList(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendors service unavailable"))
			return
		}

		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		listed, err := svc.List(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, listed)
	}
}

func VendorGet(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendors service unavailable"))
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

		vendor, err := svc.Get(r.Context(), userID, vendorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, vendor)
	}
}

func VendorUpdate(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendors service unavailable"))
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

		var req updateVendorRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vendor, err := svc.Update(r.Context(), userID, vendorID, vendors.UpdateVendorInput{
			Name:            req.Name,
			Phone:           req.Phone,
			Notes:           req.Notes,
			Specializations: req.Specializations,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, vendor)
	}
}

func VendorDelete(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendors service unavailable"))
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

		if err := svc.Delete(r.Context(), userID, vendorID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
