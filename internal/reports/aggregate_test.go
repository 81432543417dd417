package reports

import (
	"testing"

	"github.com/kdhingra/meattrack-backend/pkg/db/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func purchase(meatType, cut, qty, rate string) models.Purchase {
	q, r := dec(qty), dec(rate)
	return models.Purchase{
		MeatType:   meatType,
		ProductCut: cut,
		QuantityKg: q,
		RatePerKg:  r,
		Total:      q.Mul(r),
	}
}

func TestAggregatePurchasesWeightedAverage(t *testing.T) {
	table := aggregatePurchases([]models.Purchase{
		purchase("chicken", "whole", "100", "150"),
		purchase("chicken", "whole", "50", "180"),
	})

	entry := table[categoryKey("chicken", "whole")]
	require.NotNil(t, entry)
	require.Equal(t, "150", entry.PurchasedKg.String())
	require.Equal(t, "24000", entry.TotalCost.String())

	// (100*150 + 50*180) / 150 = 160, not the arithmetic mean of 150 and 180.
	require.Equal(t, "160.00", entry.AvgCostPerKg().StringFixed(2))
}

func TestAggregatePurchasesSeparatesCategories(t *testing.T) {
	table := aggregatePurchases([]models.Purchase{
		purchase("chicken", "whole", "10", "100"),
		purchase("chicken", "leg", "5", "120"),
		purchase("goat", "leg", "8", "400"),
	})

	require.Len(t, table, 3)
	require.Equal(t, "100.00", table[categoryKey("chicken", "whole")].AvgCostPerKg().StringFixed(2))
	require.Equal(t, "120.00", table[categoryKey("chicken", "leg")].AvgCostPerKg().StringFixed(2))
	require.Equal(t, "400.00", table[categoryKey("goat", "leg")].AvgCostPerKg().StringFixed(2))
}

func TestAvgCostZeroWhenNothingPurchased(t *testing.T) {
	table := aggregatePurchases(nil)
	entry := table.entry("goat", "shoulder")

	require.True(t, entry.AvgCostPerKg().IsZero())
	require.True(t, entry.PurchasedKg.IsZero())
}

func TestSnapshotClampsOversoldCategories(t *testing.T) {
	table := aggregatePurchases([]models.Purchase{
		purchase("chicken", "whole", "10", "100"),
	})
	entry := table.entry("chicken", "whole")
	entry.SoldKg = dec("15")

	snapshot := table.snapshot()
	require.Len(t, snapshot, 1)
	require.True(t, snapshot[0].RemainingKg.IsZero(), "oversold stock must clamp to zero")
	require.Equal(t, "15", snapshot[0].SoldKg.String())
}

func TestSnapshotIsSortedByCategory(t *testing.T) {
	table := aggregatePurchases([]models.Purchase{
		purchase("goat", "leg", "1", "1"),
		purchase("chicken", "whole", "1", "1"),
		purchase("chicken", "leg", "1", "1"),
	})

	snapshot := table.snapshot()
	require.Len(t, snapshot, 3)
	require.Equal(t, "chicken", snapshot[0].MeatType)
	require.Equal(t, "leg", snapshot[0].ProductCut)
	require.Equal(t, "chicken", snapshot[1].MeatType)
	require.Equal(t, "whole", snapshot[1].ProductCut)
	require.Equal(t, "goat", snapshot[2].MeatType)
}
