package reports

import (
	"github.com/kdhingra/meattrack-backend/pkg/db/models"
	"github.com/shopspring/decimal"
)

// channelTotals carries one sales channel's aggregate for the day.
type channelTotals struct {
	Kg      decimal.Decimal
	Revenue decimal.Decimal
	Profit  decimal.Decimal
}

// Cost attribution uses the whole-day weighted average cost, not a per-lot
// FIFO/LIFO cost. Aggregation over purchases completes before attribution
// runs, so profit is identical regardless of the order sales arrive in.

// attributeRetail folds retail sales into the inventory table and returns the
// retail channel totals.
func attributeRetail(sales []models.RetailSale, table inventoryTable) channelTotals {
	var totals channelTotals
	for _, sale := range sales {
		entry := table.entry(sale.MeatType, sale.ProductCut)
		entry.SoldKg = entry.SoldKg.Add(sale.QuantityKg)
		entry.Revenue = entry.Revenue.Add(sale.Total)

		totals.Kg = totals.Kg.Add(sale.QuantityKg)
		totals.Revenue = totals.Revenue.Add(sale.Total)
		totals.Profit = totals.Profit.Add(saleProfit(sale.Total, sale.QuantityKg, entry))
	}
	return totals
}

// attributeHotel folds every line item of every hotel bill for the day.
// Revenue is driven by the summed line items; a bill's stored total is a
// denormalized copy and is not consulted here. A bill without items
// contributes nothing.
func attributeHotel(sales []models.HotelSale, table inventoryTable) channelTotals {
	var totals channelTotals
	for _, sale := range sales {
		for _, item := range sale.Items {
			entry := table.entry(item.MeatType, item.ProductCut)
			entry.SoldKg = entry.SoldKg.Add(item.QuantityKg)
			entry.Revenue = entry.Revenue.Add(item.Total)

			totals.Kg = totals.Kg.Add(item.QuantityKg)
			totals.Revenue = totals.Revenue.Add(item.Total)
			totals.Profit = totals.Profit.Add(saleProfit(item.Total, item.QuantityKg, entry))
		}
	}
	return totals
}

func saleProfit(total, quantityKg decimal.Decimal, entry *categoryTotals) decimal.Decimal {
	return total.Sub(quantityKg.Mul(entry.AvgCostPerKg()))
}
