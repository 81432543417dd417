package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kdhingra/meattrack-backend/api/responses"
	"github.com/kdhingra/meattrack-backend/api/validators"
	"github.com/kdhingra/meattrack-backend/internal/sales"
	pkgerrors "github.com/kdhingra/meattrack-backend/pkg/errors"
	"github.com/kdhingra/meattrack-backend/pkg/logger"
)

type hotelSaleItemRequest struct {
	MeatType   string          `json:"meat_type" validate:"required,min=1"`
	ProductCut string          `json:"product_cut" validate:"required,min=1"`
	QuantityKg decimal.Decimal `json:"quantity_kg"`
	RatePerKg  decimal.Decimal `json:"rate_per_kg"`
}

type createHotelSaleRequest struct {
	HotelID    uuid.UUID              `json:"hotel_id" validate:"required"`
	BillNumber string                 `json:"bill_number" validate:"required,min=1"`
	Paid       bool                   `json:"paid"`
	TradeDate  string                 `json:"trade_date" validate:"required"`
	Items      []hotelSaleItemRequest `json:"items" validate:"dive"`
}

type setPaidRequest struct {
	Paid bool `json:"paid"`
}

// HotelSaleCreate records a hotel bill with its line items.
func HotelSaleCreate(svc sales.Service, logg *logger.Logger) http.HandlerFunc {
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

		var req createHotelSaleRequest
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

		items := make([]sales.HotelSaleItemInput, 0, len(req.Items))
		for _, item := range req.Items {
			items = append(items, sales.HotelSaleItemInput{
				MeatType:   item.MeatType,
				ProductCut: item.ProductCut,
				QuantityKg: item.QuantityKg,
				RatePerKg:  item.RatePerKg,
			})
		}

		sale, err := svc.CreateHotelSale(r.Context(), sales.CreateHotelSaleInput{
			UserID:     userID,
			HotelID:    req.HotelID,
			BillNumber: req.BillNumber,
			Paid:       req.Paid,
			TradeDate:  tradeDate,
			Items:      items,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, sale)
	}
}

func HotelSaleList(svc sales.Service, logg *logger.Logger) http.HandlerFunc {
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

		listed, err := svc.ListHotelSales(r.Context(), userID, day)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, listed)
	}
}

// HotelSaleListByHotel lists every bill raised against one hotel.
func HotelSaleListByHotel(svc sales.Service, logg *logger.Logger) http.HandlerFunc {
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

		hotelID, err := pathUUID(r, "hotelId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		listed, err := svc.ListByHotel(r.Context(), userID, hotelID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, listed)
	}
}

func HotelSaleGet(svc sales.Service, logg *logger.Logger) http.HandlerFunc {
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

		sale, err := svc.GetHotelSale(r.Context(), userID, saleID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, sale)
	}
}

// HotelSaleSetPaid toggles the bill's settled flag.
func HotelSaleSetPaid(svc sales.Service, logg *logger.Logger) http.HandlerFunc {
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

		var req setPaidRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sale, err := svc.SetHotelSalePaid(r.Context(), userID, saleID, req.Paid)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, sale)
	}
}

func HotelSaleDelete(svc sales.Service, logg *logger.Logger) http.HandlerFunc {
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

		if err := svc.DeleteHotelSale(r.Context(), userID, saleID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
