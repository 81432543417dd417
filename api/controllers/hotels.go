package controllers

import (
	"net/http"

	"github.com/kdhingra/meattrack-backend/api/responses"
	"github.com/kdhingra/meattrack-backend/api/validators"
	"github.com/kdhingra/meattrack-backend/internal/hotels"
	pkgerrors "github.com/kdhingra/meattrack-backend/pkg/errors"
	"github.com/kdhingra/meattrack-backend/pkg/logger"
)

type createHotelRequest struct {
	Name    string  `json:"name" validate:"required,min=1"`
	Phone   string  `json:"phone"`
	Address *string `json:"address,omitempty"`
}

type updateHotelRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
}

func HotelCreate(svc hotels.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "hotels service unavailable"))
			return
		}

		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req createHotelRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		hotel, err := svc.Create(r.Context(), hotels.CreateHotelInput{
			UserID:  userID,
			Name:    req.Name,
			Phone:   req.Phone,
			Address: req.Address,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, hotel)
	}
}

func HotelList(svc hotels.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "hotels service unavailable"))
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

func HotelGet(svc hotels.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "hotels service unavailable"))
			return
		}

		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		hotelID, err := pathUUID(r, "hotelId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		hotel, err := svc.Get(r.Context(), userID, hotelID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, hotel)
	}
}

func HotelUpdate(svc hotels.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "hotels service unavailable"))
			return
		}

		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		hotelID, err := pathUUID(r, "hotelId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateHotelRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		hotel, err := svc.Update(r.Context(), userID, hotelID, hotels.UpdateHotelInput{
			Name:    req.Name,
			Phone:   req.Phone,
			Address: req.Address,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, hotel)
	}
}

func HotelDelete(svc hotels.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "hotels service unavailable"))
			return
		}

		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		hotelID, err := pathUUID(r, "hotelId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), userID, hotelID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
