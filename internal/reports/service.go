package reports

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/kdhingra/meattrack-backend/pkg/db/models"
	"github.com/kdhingra/meattrack-backend/pkg/enums"
	pkgerrors "github.com/kdhingra/meattrack-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

// Service derives daily and date-range summaries from raw trading records.
type Service interface {
	// BuildDaily computes the summary for one user and one UTC calendar day.
	BuildDaily(ctx context.Context, userID uuid.UUID, day time.Time) (*DailySummary, error)
	// BuildRange computes one independent daily summary per calendar day in
	// [start, end] inclusive. A start after end yields an empty slice.
	BuildRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]DailySummary, error)
}

type service struct {
	store RecordStore
}

// NewService wires a reports service with the provided record store.
func NewService(store RecordStore) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("record store required")
	}
	return &service{store: store}, nil
}

func (s *service) BuildDaily(ctx context.Context, userID uuid.UUID, day time.Time) (*DailySummary, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	day = DateOnly(day)

	purchases, err := s.store.ListPurchases(ctx, userID, day)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing purchases")
	}
	retailSales, err := s.store.ListRetailSales(ctx, userID, day)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing retail sales")
	}
	hotelSales, err := s.store.ListHotelSales(ctx, userID, day)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing hotel sales")
	}
	payments, err := s.store.ListVendorPayments(ctx, userID, day)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing vendor payments")
	}

	table := aggregatePurchases(purchases)
	retail := attributeRetail(retailSales, table)
	hotel := attributeHotel(hotelSales, table)

	summary := &DailySummary{
		Date:               day.Format(DateLayout),
		RetailSalesKg:      retail.Kg,
		RetailSalesRevenue: retail.Revenue,
		RetailProfit:       retail.Profit,
		HotelSalesKg:       hotel.Kg,
		HotelSalesRevenue:  hotel.Revenue,
		HotelProfit:        hotel.Profit,
	}

	for _, p := range purchases {
		summary.TotalPurchasedKg = summary.TotalPurchasedKg.Add(p.QuantityKg)
		summary.TotalPurchaseCost = summary.TotalPurchaseCost.Add(p.Total)
	}
	for _, payment := range payments {
		summary.VendorPaymentsTotal = summary.VendorPaymentsTotal.Add(payment.Amount)
	}

	summary.TotalSoldKg = retail.Kg.Add(hotel.Kg)
	summary.RemainingKg = summary.TotalPurchasedKg.Sub(summary.TotalSoldKg)
	if summary.RemainingKg.IsNegative() {
		summary.RemainingKg = decimal.Zero
	}
	// Vendor payments are a cash-flow figure, not a cost of goods sold, so
	// they do not reduce profit.
	summary.NetProfit = retail.Profit.Add(hotel.Profit)

	summary.Inventory = table.snapshot()
	summary.Transactions = buildTimeline(purchases, retailSales, hotelSales, payments)

	return summary, nil
}

func (s *service) BuildRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]DailySummary, error) {
	start, end = DateOnly(start), DateOnly(end)

	summaries := []DailySummary{}
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		daily, err := s.BuildDaily(ctx, userID, day)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, *daily)
	}
	return summaries, nil
}

// buildTimeline flattens the day's records into one ascending timeline.
// The sort is stable, so records sharing a timestamp keep their merge order
// (purchases, retail, hotel items, payments); ordering across equal
// timestamps is otherwise unspecified.
func buildTimeline(
	purchases []models.Purchase,
	retailSales []models.RetailSale,
	hotelSales []models.HotelSale,
	payments []models.VendorPayment,
) []Transaction {
	size := len(purchases) + len(retailSales) + len(payments)
	for _, sale := range hotelSales {
		size += len(sale.Items)
	}
	timeline := make([]Transaction, 0, size)

	for _, p := range purchases {
		timeline = append(timeline, Transaction{
			ID:         p.ID,
			Type:       enums.TransactionTypePurchase,
			Details:    fmt.Sprintf("%s %s @ %s/kg", p.MeatType, p.ProductCut, p.RatePerKg.StringFixed(2)),
			MeatType:   p.MeatType,
			ProductCut: p.ProductCut,
			QuantityKg: p.QuantityKg,
			RatePerKg:  p.RatePerKg,
			Total:      p.Total,
			Timestamp:  p.CreatedAt,
		})
	}
	for _, sale := range retailSales {
		details := "retail sale"
		if sale.CustomerName != nil && *sale.CustomerName != "" {
			details = "retail sale to " + *sale.CustomerName
		}
		timeline = append(timeline, Transaction{
			ID:         sale.ID,
			Type:       enums.TransactionTypeRetail,
			Details:    details,
			MeatType:   sale.MeatType,
			ProductCut: sale.ProductCut,
			QuantityKg: sale.QuantityKg,
			RatePerKg:  sale.RatePerKg,
			Total:      sale.Total,
			Timestamp:  sale.CreatedAt,
		})
	}
	for _, sale := range hotelSales {
		for _, item := range sale.Items {
			timeline = append(timeline, Transaction{
				ID:         item.ID,
				Type:       enums.TransactionTypeHotel,
				Details:    "hotel bill " + sale.BillNumber,
				MeatType:   item.MeatType,
				ProductCut: item.ProductCut,
				QuantityKg: item.QuantityKg,
				RatePerKg:  item.RatePerKg,
				Total:      item.Total,
				Timestamp:  sale.CreatedAt,
			})
		}
	}
	for _, payment := range payments {
		details := "vendor payment"
		if payment.Notes != nil && *payment.Notes != "" {
			details = "vendor payment: " + *payment.Notes
		}
		timeline = append(timeline, Transaction{
			ID:        payment.ID,
			Type:      enums.TransactionTypePayment,
			Details:   details,
			Total:     payment.Amount,
			Timestamp: payment.CreatedAt,
		})
	}

	sort.SliceStable(timeline, func(i, j int) bool {
		return timeline[i].Timestamp.Before(timeline[j].Timestamp)
	})
	return timeline
}
