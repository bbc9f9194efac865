package costing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessSales(t *testing.T) {
	t.Run("replays sales chronologically regardless of input order", func(t *testing.T) {
		productions := []*ProductionRecord{
			testProduction(t, "2024-01-10", ProductSoda, 50, 1000),
			testProduction(t, "2024-01-12", ProductSoda, 50, 2000),
		}
		// Later sale listed first; the replay must still deplete the cheap
		// batch with the earlier sale.
		sales := []*SaleRecord{
			testSale(t, "2024-01-14", ProductSoda, 20, ""),
			testSale(t, "2024-01-13", ProductSoda, 50, ""),
		}

		result := ProcessSales(productions, sales, DefaultPriceList())
		require.Len(t, result.Allocations, 2)

		// First allocation is the Jan 13 sale, fully from the 1000-cost batch.
		first := result.Allocations[0]
		assert.Equal(t, mustDate(t, "2024-01-13"), first.Date)
		assert.True(t, first.TotalCost.Equal(decimal.NewFromInt(50000)))

		// Second sale only sees the 2000-cost batch.
		second := result.Allocations[1]
		assert.True(t, second.TotalCost.Equal(decimal.NewFromInt(40000)))
	})

	t.Run("totals equal the sum of per-sale figures", func(t *testing.T) {
		productions := []*ProductionRecord{
			testProduction(t, "2024-01-10", ProductSoda, 100, 1100),
			testProduction(t, "2024-01-11", ProductIceCream, 40, 1500),
		}
		sales := []*SaleRecord{
			testSale(t, "2024-01-12", ProductSoda, 30, ""),
			testSale(t, "2024-01-13", ProductIceCream, 10, ""),
			testSale(t, "2024-01-14", ProductSoda, 5, ""),
		}

		result := ProcessSales(productions, sales, DefaultPriceList())

		costSum := decimal.Zero
		profitSum := decimal.Zero
		for _, allocation := range result.Allocations {
			costSum = costSum.Add(allocation.TotalCost)
			profitSum = profitSum.Add(allocation.GrossProfit)
		}
		assert.True(t, result.TotalCOGS.Equal(costSum))
		assert.True(t, result.TotalGrossProfit.Equal(profitSum))
	})

	t.Run("final batches reflect cumulative depletion", func(t *testing.T) {
		productions := []*ProductionRecord{
			testProduction(t, "2024-01-10", ProductSoda, 100, 1000),
		}
		sales := []*SaleRecord{
			testSale(t, "2024-01-11", ProductSoda, 30, ""),
			testSale(t, "2024-01-12", ProductSoda, 25, ""),
		}

		result := ProcessSales(productions, sales, DefaultPriceList())
		require.Len(t, result.FinalBatches, 1)
		assert.Equal(t, int64(45), result.FinalBatches[0].RemainingQuantity)
	})

	t.Run("is idempotent over unmutated inputs", func(t *testing.T) {
		productions := []*ProductionRecord{
			testProduction(t, "2024-01-10", ProductSoda, 100, 1100),
			testProduction(t, "2024-01-11", ProductSoda, 50, 1760),
		}
		sales := []*SaleRecord{
			testSale(t, "2024-01-12", ProductSoda, 70, ""),
			testSale(t, "2024-01-13", ProductSoda, 40, ""),
		}

		first := ProcessSales(productions, sales, DefaultPriceList())
		second := ProcessSales(productions, sales, DefaultPriceList())

		assert.True(t, first.TotalCOGS.Equal(second.TotalCOGS))
		assert.True(t, first.TotalGrossProfit.Equal(second.TotalGrossProfit))
		require.Equal(t, len(first.Allocations), len(second.Allocations))
		for i := range first.Allocations {
			assert.True(t, first.Allocations[i].TotalCost.Equal(second.Allocations[i].TotalCost))
		}
		for i := range first.FinalBatches {
			assert.Equal(t, first.FinalBatches[i].RemainingQuantity, second.FinalBatches[i].RemainingQuantity)
		}
	})
}

func TestCurrentInventoryStatus(t *testing.T) {
	t.Run("current inventory equals produced minus sold", func(t *testing.T) {
		productions := []*ProductionRecord{
			testProduction(t, "2024-01-10", ProductSoda, 100, 1000),
			testProduction(t, "2024-01-11", ProductSoda, 60, 1200),
		}
		sales := []*SaleRecord{
			testSale(t, "2024-01-12", ProductSoda, 70, ""),
		}

		status := CurrentInventoryStatus(productions, sales, DefaultPriceList())
		assert.Equal(t, int64(160), status.TotalProduced)
		assert.Equal(t, int64(70), status.TotalSold)
		assert.Equal(t, int64(90), status.CurrentInventory)
		assert.Equal(t, status.TotalProduced-status.TotalSold, status.CurrentInventory)
	})

	t.Run("values remaining stock at batch cost", func(t *testing.T) {
		productions := []*ProductionRecord{
			testProduction(t, "2024-01-10", ProductSoda, 100, 1000),
		}
		sales := []*SaleRecord{
			testSale(t, "2024-01-12", ProductSoda, 40, ""),
		}

		status := CurrentInventoryStatus(productions, sales, DefaultPriceList())
		assert.True(t, status.TotalInventoryValue.Equal(decimal.NewFromInt(60000)))
		assert.True(t, status.AverageCostInInventory.Equal(decimal.NewFromInt(1000)))
	})

	t.Run("average cost is zero for empty inventory", func(t *testing.T) {
		status := CurrentInventoryStatus(nil, nil, DefaultPriceList())
		assert.Equal(t, int64(0), status.CurrentInventory)
		assert.True(t, status.AverageCostInInventory.IsZero())
	})

	t.Run("only open batches are reported", func(t *testing.T) {
		productions := []*ProductionRecord{
			testProduction(t, "2024-01-10", ProductSoda, 30, 1000),
			testProduction(t, "2024-01-11", ProductSoda, 30, 1200),
		}
		sales := []*SaleRecord{
			testSale(t, "2024-01-12", ProductSoda, 30, ""),
		}

		status := CurrentInventoryStatus(productions, sales, DefaultPriceList())
		require.Len(t, status.Batches, 1)
		assert.Equal(t, int64(30), status.Batches[0].RemainingQuantity)
	})
}

func TestSeparateInventory(t *testing.T) {
	productions := []*ProductionRecord{
		testProduction(t, "2024-01-10", ProductSoda, 100, 1000),
		testProduction(t, "2024-01-11", ProductIceCream, 50, 1500),
	}
	sales := []*SaleRecord{
		testSale(t, "2024-01-12", ProductSoda, 60, ""),
		testSale(t, "2024-01-13", ProductIceCream, 20, ""),
	}

	separate := SeparateInventory(productions, sales, DefaultPriceList())

	t.Run("partitions per product line", func(t *testing.T) {
		soda := separate.PerProduct[ProductSoda]
		assert.Equal(t, int64(40), soda.CurrentInventory)
		iceCream := separate.PerProduct[ProductIceCream]
		assert.Equal(t, int64(30), iceCream.CurrentInventory)
	})

	t.Run("combined view sums the per-product results", func(t *testing.T) {
		assert.Equal(t, int64(70), separate.Combined.CurrentInventory)
		assert.Equal(t, int64(150), separate.Combined.TotalProduced)
		// 40*1000 + 30*1500
		assert.True(t, separate.Combined.TotalInventoryValue.Equal(decimal.NewFromInt(85000)))
	})

	t.Run("one product's sale never consumes another product's batch", func(t *testing.T) {
		oversold := []*SaleRecord{
			testSale(t, "2024-01-12", ProductIceCream, 50, ""),
		}
		status := ProductInventoryStatus(ProductIceCream, productions, oversold, DefaultPriceList())
		assert.Equal(t, int64(0), status.CurrentInventory)

		sodaStatus := ProductInventoryStatus(ProductSoda, productions, oversold, DefaultPriceList())
		assert.Equal(t, int64(100), sodaStatus.CurrentInventory)
	})
}
