package reports

import (
	"time"

	"github.com/google/uuid"
	"github.com/kdhingra/meattrack-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format for report dates. All report dates are UTC
// calendar days.
const DateLayout = "2006-01-02"

// ProductInventory is the per-category breakdown for one day. RemainingKg is
// clamped at zero; an oversold category reports zero, not a negative stock.
type ProductInventory struct {
	MeatType     string          `json:"meat_type"`
	ProductCut   string          `json:"product_cut"`
	PurchasedKg  decimal.Decimal `json:"purchased_kg"`
	SoldKg       decimal.Decimal `json:"sold_kg"`
	RemainingKg  decimal.Decimal `json:"remaining_kg"`
	AvgCostPerKg decimal.Decimal `json:"avg_cost_per_kg"`
}

// Transaction is one normalized entry in the daily timeline. Hotel bills are
// flattened to one entry per line item.
type Transaction struct {
	ID         uuid.UUID             `json:"id"`
	Type       enums.TransactionType `json:"type"`
	Details    string                `json:"details"`
	MeatType   string                `json:"meat_type,omitempty"`
	ProductCut string                `json:"product_cut,omitempty"`
	QuantityKg decimal.Decimal       `json:"quantity_kg"`
	RatePerKg  decimal.Decimal       `json:"rate_per_kg"`
	Total      decimal.Decimal       `json:"total"`
	Timestamp  time.Time             `json:"timestamp"`
}

// DailySummary aggregates one user's trading for one calendar day.
//
// RemainingKg is a single scalar across all categories; it is not required to
// reconcile with the per-category breakdown when different categories are
// oversold. NetProfit excludes vendor payments, which are reported separately
// as a cash-flow figure.
type DailySummary struct {
	Date string `json:"date"`

	TotalPurchasedKg  decimal.Decimal `json:"total_purchased_kg"`
	TotalPurchaseCost decimal.Decimal `json:"total_purchase_cost"`

	RetailSalesKg      decimal.Decimal `json:"retail_sales_kg"`
	RetailSalesRevenue decimal.Decimal `json:"retail_sales_revenue"`
	RetailProfit       decimal.Decimal `json:"retail_profit"`

	HotelSalesKg      decimal.Decimal `json:"hotel_sales_kg"`
	HotelSalesRevenue decimal.Decimal `json:"hotel_sales_revenue"`
	HotelProfit       decimal.Decimal `json:"hotel_profit"`

	TotalSoldKg decimal.Decimal `json:"total_sold_kg"`
	RemainingKg decimal.Decimal `json:"remaining_kg"`
	NetProfit   decimal.Decimal `json:"net_profit"`

	VendorPaymentsTotal decimal.Decimal `json:"vendor_payments_total"`

	Inventory    []ProductInventory `json:"inventory"`
	Transactions []Transaction      `json:"transactions"`
}

// DateOnly truncates a timestamp to its UTC calendar day.
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
