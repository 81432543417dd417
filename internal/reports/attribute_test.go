package reports

import (
	"testing"

	"github.com/google/uuid"
	"github.com/kdhingra/meattrack-backend/pkg/db/models"
	"github.com/stretchr/testify/require"
)

func retailSale(meatType, cut, qty, rate string) models.RetailSale {
	q, r := dec(qty), dec(rate)
	return models.RetailSale{
		MeatType:   meatType,
		ProductCut: cut,
		QuantityKg: q,
		RatePerKg:  r,
		Total:      q.Mul(r),
	}
}

func hotelItem(meatType, cut, qty, rate string) models.HotelSaleItem {
	q, r := dec(qty), dec(rate)
	return models.HotelSaleItem{
		MeatType:   meatType,
		ProductCut: cut,
		QuantityKg: q,
		RatePerKg:  r,
		Total:      q.Mul(r),
	}
}

func TestAttributeRetailProfit(t *testing.T) {
	// Buy 100kg chicken-whole @150, sell 40kg retail @180.
	table := aggregatePurchases([]models.Purchase{
		purchase("chicken", "whole", "100", "150"),
	})
	totals := attributeRetail([]models.RetailSale{
		retailSale("chicken", "whole", "40", "180"),
	}, table)

	require.Equal(t, "40", totals.Kg.String())
	require.Equal(t, "7200", totals.Revenue.String())
	require.Equal(t, "1200.00", totals.Profit.StringFixed(2))

	snapshot := table.snapshot()
	require.Equal(t, "60", snapshot[0].RemainingKg.String())
	require.Equal(t, "150.00", snapshot[0].AvgCostPerKg.StringFixed(2))
}

func TestAttributeHotelProfitAcrossItems(t *testing.T) {
	// 30kg purchased @90 (cost 2700); bill with 20kg@100 and 10kg@120.
	table := aggregatePurchases([]models.Purchase{
		purchase("goat", "leg", "30", "90"),
	})
	totals := attributeHotel([]models.HotelSale{
		{
			ID:         uuid.New(),
			BillNumber: "B-7",
			Items: []models.HotelSaleItem{
				hotelItem("goat", "leg", "20", "100"),
				hotelItem("goat", "leg", "10", "120"),
			},
		},
	}, table)

	require.Equal(t, "30", totals.Kg.String())
	require.Equal(t, "3200", totals.Revenue.String())
	require.Equal(t, "500.00", totals.Profit.StringFixed(2))
}

func TestAttributeProfitIsOrderInsensitive(t *testing.T) {
	buildProfit := func(sales []models.RetailSale) string {
		table := aggregatePurchases([]models.Purchase{
			purchase("chicken", "whole", "50", "100"),
			purchase("chicken", "whole", "50", "200"),
		})
		return attributeRetail(sales, table).Profit.StringFixed(2)
	}

	first := buildProfit([]models.RetailSale{
		retailSale("chicken", "whole", "30", "250"),
		retailSale("chicken", "whole", "20", "180"),
	})
	second := buildProfit([]models.RetailSale{
		retailSale("chicken", "whole", "20", "180"),
		retailSale("chicken", "whole", "30", "250"),
	})

	// Whole-day average cost (150/kg) applies to every sale, so shuffling
	// the sales cannot move profit.
	require.Equal(t, first, second)
	require.Equal(t, "3600.00", first)
}

func TestAttributeSaleWithoutPurchaseRecordsSoldKg(t *testing.T) {
	table := aggregatePurchases(nil)
	totals := attributeRetail([]models.RetailSale{
		retailSale("buffalo", "mince", "5", "300"),
	}, table)

	// No purchase that day means no cost basis: profit equals revenue and
	// the category still shows up with sold quantity recorded.
	require.Equal(t, "1500.00", totals.Profit.StringFixed(2))
	snapshot := table.snapshot()
	require.Len(t, snapshot, 1)
	require.Equal(t, "5", snapshot[0].SoldKg.String())
	require.True(t, snapshot[0].PurchasedKg.IsZero())
	require.True(t, snapshot[0].AvgCostPerKg.IsZero())
}

func TestAttributeHotelEmptyBillContributesNothing(t *testing.T) {
	table := aggregatePurchases(nil)
	totals := attributeHotel([]models.HotelSale{
		{ID: uuid.New(), BillNumber: "B-9", TotalAmount: dec("999")},
	}, table)

	require.True(t, totals.Kg.IsZero())
	require.True(t, totals.Revenue.IsZero())
	require.True(t, totals.Profit.IsZero())
}
