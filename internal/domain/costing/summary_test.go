package costing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testExpense(t *testing.T, date string, category ExpenseCategory, amount int64) *ExpenseRecord {
	t.Helper()
	expense, err := NewExpenseRecord("test expense", category, decimal.NewFromInt(amount), mustDate(t, date))
	require.NoError(t, err)
	return expense
}

func TestSummarize(t *testing.T) {
	rules := DefaultRules()

	t.Run("distributes positive net profit", func(t *testing.T) {
		productions := []*ProductionRecord{
			testProduction(t, "2024-01-10", ProductSoda, 100, 500),
		}
		sales := []*SaleRecord{
			testSale(t, "2024-01-12", ProductSoda, 100, ""),
		}

		summary := Summarize(productions, sales, nil, rules)

		// revenue 100000, COGS 50000, net 50000
		assert.True(t, summary.TotalRevenue.Equal(decimal.NewFromInt(100000)))
		assert.True(t, summary.TotalCostOfGoodsSold.Equal(decimal.NewFromInt(50000)))
		assert.True(t, summary.NetProfit.Equal(decimal.NewFromInt(50000)))
		assert.True(t, summary.Tithe.Equal(decimal.NewFromInt(5000)))
		assert.True(t, summary.Savings.Equal(decimal.NewFromInt(10000)))
		assert.True(t, summary.Available.Equal(decimal.NewFromInt(35000)))
	})

	t.Run("clamps distribution to zero on a loss", func(t *testing.T) {
		productions := []*ProductionRecord{
			testProduction(t, "2024-01-10", ProductSoda, 50, 2000),
		}
		sales := []*SaleRecord{
			testSale(t, "2024-01-12", ProductSoda, 50, ""),
		}

		summary := Summarize(productions, sales, nil, rules)

		// revenue 50000, COGS 100000 -> net -50000
		assert.True(t, summary.NetProfit.Equal(decimal.NewFromInt(-50000)))
		assert.True(t, summary.Tithe.IsZero())
		assert.True(t, summary.Savings.IsZero())
		assert.True(t, summary.Available.Equal(summary.NetProfit))
	})

	t.Run("excludes production cost categories from operating expenses", func(t *testing.T) {
		expenses := []*ExpenseRecord{
			testExpense(t, "2024-01-10", CategoryRawMaterial, 10000),
			testExpense(t, "2024-01-10", CategoryDirectLabor, 5000),
			testExpense(t, "2024-01-10", CategoryIndirectManufacturing, 2000),
			testExpense(t, "2024-01-10", CategoryAdministrative, 3000),
			testExpense(t, "2024-01-10", CategorySales, 1000),
		}

		summary := Summarize(nil, nil, expenses, rules)
		assert.True(t, summary.OperatingExpenses.Equal(decimal.NewFromInt(4000)))
	})

	t.Run("margins are zero when revenue is zero", func(t *testing.T) {
		summary := Summarize(nil, nil, nil, rules)
		assert.True(t, summary.GrossProfitMargin.IsZero())
		assert.True(t, summary.NetProfitMargin.IsZero())
	})

	t.Run("weighted average production cost differs from inventory average", func(t *testing.T) {
		productions := []*ProductionRecord{
			testProduction(t, "2024-01-10", ProductSoda, 100, 1000),
			testProduction(t, "2024-01-11", ProductSoda, 100, 2000),
		}
		// Sell the whole cheap batch; inventory average becomes 2000 while the
		// production average stays at 1500.
		sales := []*SaleRecord{
			testSale(t, "2024-01-12", ProductSoda, 100, ""),
		}

		summary := Summarize(productions, sales, nil, rules)
		assert.True(t, summary.AverageCostPerUnit.Equal(decimal.NewFromInt(1500)))
		assert.True(t, summary.CurrentInventoryValue.Equal(decimal.NewFromInt(200000)))
	})
}
