package reports

import (
	"sort"

	"github.com/kdhingra/meattrack-backend/pkg/db/models"
	"github.com/shopspring/decimal"
)

// categoryTotals accumulates one (meatType, productCut) category across a day.
type categoryTotals struct {
	MeatType   string
	ProductCut string

	PurchasedKg decimal.Decimal
	TotalCost   decimal.Decimal
	SoldKg      decimal.Decimal
	Revenue     decimal.Decimal
}

// AvgCostPerKg is the weighted average cost: cumulative cost over cumulative
// purchased quantity. Zero when nothing was purchased; cost cannot be
// attributed to a category sold without same-day purchases.
func (c *categoryTotals) AvgCostPerKg() decimal.Decimal {
	if !c.PurchasedKg.IsPositive() {
		return decimal.Zero
	}
	return c.TotalCost.Div(c.PurchasedKg)
}

type inventoryTable map[string]*categoryTotals

func categoryKey(meatType, productCut string) string {
	return meatType + "-" + productCut
}

// aggregatePurchases folds a day's purchases into per-category running totals.
// Pure fold; no side effects beyond the returned table.
func aggregatePurchases(purchases []models.Purchase) inventoryTable {
	table := make(inventoryTable, len(purchases))
	for _, p := range purchases {
		entry := table.entry(p.MeatType, p.ProductCut)
		entry.PurchasedKg = entry.PurchasedKg.Add(p.QuantityKg)
		entry.TotalCost = entry.TotalCost.Add(p.Total)
	}
	return table
}

// entry returns the accumulator for a category, creating a zero-purchase one
// if the category was never bought that day. Sales against such categories
// are still recorded rather than silently dropped.
func (t inventoryTable) entry(meatType, productCut string) *categoryTotals {
	key := categoryKey(meatType, productCut)
	if existing, ok := t[key]; ok {
		return existing
	}
	created := &categoryTotals{MeatType: meatType, ProductCut: productCut}
	t[key] = created
	return created
}

// snapshot renders the table as a deterministic, sorted inventory breakdown.
func (t inventoryTable) snapshot() []ProductInventory {
	keys := make([]string, 0, len(t))
	for key := range t {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make([]ProductInventory, 0, len(keys))
	for _, key := range keys {
		entry := t[key]
		remaining := entry.PurchasedKg.Sub(entry.SoldKg)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}
		out = append(out, ProductInventory{
			MeatType:     entry.MeatType,
			ProductCut:   entry.ProductCut,
			PurchasedKg:  entry.PurchasedKg,
			SoldKg:       entry.SoldKg,
			RemainingKg:  remaining,
			AvgCostPerKg: entry.AvgCostPerKg(),
		})
	}
	return out
}
