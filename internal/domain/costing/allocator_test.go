package costing

import (
	"testing"
	"time"

	"github.com/refresquitos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return parsed
}

func testProduction(t *testing.T, date string, product Product, quantity int64, costPerUnit float64) *ProductionRecord {
	t.Helper()
	unitCost := decimal.NewFromFloat(costPerUnit)
	return &ProductionRecord{
		BaseEntity:  shared.NewBaseEntity(),
		Date:        mustDate(t, date),
		Product:     product,
		Quantity:    quantity,
		TotalCost:   unitCost.Mul(decimal.NewFromInt(quantity)),
		CostPerUnit: unitCost,
	}
}

func testSale(t *testing.T, date string, product Product, quantity int64, employee string) *SaleRecord {
	t.Helper()
	sale, err := NewSaleRecord(mustDate(t, date), product, quantity, ChannelEmployee, employee, DefaultPriceList())
	require.NoError(t, err)
	return sale
}

func TestBuildBatches(t *testing.T) {
	t.Run("orders batches oldest first", func(t *testing.T) {
		productions := []*ProductionRecord{
			testProduction(t, "2024-01-20", ProductSoda, 50, 1200),
			testProduction(t, "2024-01-10", ProductSoda, 100, 1100),
			testProduction(t, "2024-01-15", ProductSoda, 80, 1150),
		}

		batches := BuildBatches(productions)
		require.Len(t, batches, 3)
		assert.Equal(t, mustDate(t, "2024-01-10"), batches[0].ProductionDate)
		assert.Equal(t, mustDate(t, "2024-01-15"), batches[1].ProductionDate)
		assert.Equal(t, mustDate(t, "2024-01-20"), batches[2].ProductionDate)
	})

	t.Run("same-day batches keep input order", func(t *testing.T) {
		first := testProduction(t, "2024-01-10", ProductSoda, 10, 1000)
		second := testProduction(t, "2024-01-10", ProductSoda, 20, 1500)

		batches := BuildBatches([]*ProductionRecord{first, second})
		require.Len(t, batches, 2)
		assert.Equal(t, first.ID, batches[0].ID)
		assert.Equal(t, second.ID, batches[1].ID)
	})

	t.Run("remaining quantity starts at full quantity", func(t *testing.T) {
		batches := BuildBatches([]*ProductionRecord{testProduction(t, "2024-01-10", ProductSoda, 42, 1000)})
		require.Len(t, batches, 1)
		assert.Equal(t, int64(42), batches[0].RemainingQuantity)
		assert.True(t, batches[0].HasStock())
	})
}

func TestAllocateSale(t *testing.T) {
	t.Run("costs a small sale entirely from the oldest batch", func(t *testing.T) {
		// Worked example: batch A 100 @ 1100 (01-15), batch B 50 @ 1760 (01-16),
		// sale of 30 on 01-17 at unit price 1000.
		batches := BuildBatches([]*ProductionRecord{
			testProduction(t, "2024-01-15", ProductSoda, 100, 1100),
			testProduction(t, "2024-01-16", ProductSoda, 50, 1760),
		})
		sale := testSale(t, "2024-01-17", ProductSoda, 30, "")

		allocation := AllocateSale(sale, batches, DefaultPriceList())

		assert.True(t, allocation.TotalCost.Equal(decimal.NewFromInt(33000)), "totalCost = %s", allocation.TotalCost)
		assert.True(t, allocation.TotalRevenue.Equal(decimal.NewFromInt(30000)))
		assert.True(t, allocation.GrossProfit.Equal(decimal.NewFromInt(-3000)))
		require.Len(t, allocation.Batches, 1)
		assert.Equal(t, batches[0].ID, allocation.Batches[0].BatchID)
		assert.Equal(t, int64(30), allocation.Batches[0].QuantityFromBatch)
	})

	t.Run("spans batches when the oldest runs out", func(t *testing.T) {
		batches := BuildBatches([]*ProductionRecord{
			testProduction(t, "2024-01-15", ProductSoda, 20, 1000),
			testProduction(t, "2024-01-16", ProductSoda, 50, 2000),
		})
		sale := testSale(t, "2024-01-17", ProductSoda, 30, "")

		allocation := AllocateSale(sale, batches, DefaultPriceList())

		require.Len(t, allocation.Batches, 2)
		assert.Equal(t, int64(20), allocation.Batches[0].QuantityFromBatch)
		assert.Equal(t, int64(10), allocation.Batches[1].QuantityFromBatch)
		// 20*1000 + 10*2000
		assert.True(t, allocation.TotalCost.Equal(decimal.NewFromInt(40000)))
	})

	t.Run("returns a partial allocation on oversell without error", func(t *testing.T) {
		batches := BuildBatches([]*ProductionRecord{
			testProduction(t, "2024-01-15", ProductSoda, 10, 1000),
		})
		sale := testSale(t, "2024-01-17", ProductSoda, 25, "")

		allocation := AllocateSale(sale, batches, DefaultPriceList())

		require.Len(t, allocation.Batches, 1)
		assert.Equal(t, int64(10), allocation.Batches[0].QuantityFromBatch)
		assert.True(t, allocation.TotalCost.Equal(decimal.NewFromInt(10000)))
		// Revenue still reflects the full requested quantity
		assert.True(t, allocation.TotalRevenue.Equal(decimal.NewFromInt(25000)))
	})

	t.Run("does not mutate the caller's batches", func(t *testing.T) {
		batches := BuildBatches([]*ProductionRecord{
			testProduction(t, "2024-01-15", ProductSoda, 100, 1100),
		})
		sale := testSale(t, "2024-01-17", ProductSoda, 30, "")

		AllocateSale(sale, batches, DefaultPriceList())
		assert.Equal(t, int64(100), batches[0].RemainingQuantity)
	})

	t.Run("margin is zero when there are no batches and no revenue", func(t *testing.T) {
		sale := &SaleRecord{
			BaseEntity: shared.NewBaseEntity(),
			Date:       mustDate(t, "2024-01-17"),
			Product:    ProductSoda,
			Quantity:   0,
		}
		allocation := AllocateSale(sale, nil, DefaultPriceList())
		assert.True(t, allocation.GrossProfitMargin.IsZero())
		assert.True(t, allocation.TotalCost.IsZero())
	})

	t.Run("unknown product falls back to primary price", func(t *testing.T) {
		sale := &SaleRecord{
			BaseEntity: shared.NewBaseEntity(),
			Date:       mustDate(t, "2024-01-17"),
			Product:    Product("UNKNOWN"),
			Quantity:   5,
		}
		allocation := AllocateSale(sale, nil, DefaultPriceList())
		assert.True(t, allocation.TotalRevenue.Equal(decimal.NewFromInt(5000)))
	})
}
