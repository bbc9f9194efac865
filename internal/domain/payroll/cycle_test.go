package payroll

import (
	"testing"
	"time"

	"github.com/refresquitos/backend/internal/domain/costing"
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

func saleOn(t *testing.T, date string, employee string, quantity int64) *costing.SaleRecord {
	t.Helper()
	sale, err := costing.NewSaleRecord(
		mustDate(t, date), costing.ProductSoda, quantity,
		costing.ChannelEmployee, employee, costing.DefaultPriceList(),
	)
	require.NoError(t, err)
	return sale
}

func absenceOn(t *testing.T, date string, employee string) *AbsenceRecord {
	t.Helper()
	absence, err := NewAbsenceRecord(employee, mustDate(t, date), "")
	require.NoError(t, err)
	return absence
}

// dailySales generates one sale per day for count consecutive days
// starting at the given date.
func dailySales(t *testing.T, employee, startDate string, count int, unitsPerDay int64) []*costing.SaleRecord {
	t.Helper()
	start := mustDate(t, startDate)
	sales := make([]*costing.SaleRecord, 0, count)
	for i := 0; i < count; i++ {
		day := start.AddDate(0, 0, i)
		sale, err := costing.NewSaleRecord(day, costing.ProductSoda, unitsPerDay,
			costing.ChannelEmployee, employee, costing.DefaultPriceList())
		require.NoError(t, err)
		sales = append(sales, sale)
	}
	return sales
}

func TestCalculateCycleDetail(t *testing.T) {
	policy := DefaultCyclePolicy()
	now := mustDate(t, "2024-03-01")
	start := mustDate(t, "2024-01-12")

	t.Run("25 worked days with 5 absences is incomplete and ineligible", func(t *testing.T) {
		sales := dailySales(t, "Cesar", "2024-01-12", 25, 10)
		absences := []*AbsenceRecord{
			absenceOn(t, "2024-01-20", "Cesar"),
			absenceOn(t, "2024-01-21", "Cesar"),
			absenceOn(t, "2024-01-25", "Cesar"),
			absenceOn(t, "2024-01-28", "Cesar"),
			absenceOn(t, "2024-02-02", "Cesar"),
		}

		detail := CalculateCycleDetail("Cesar", start, nil, sales, absences, now, policy)

		assert.Equal(t, 25, detail.DaysWorked)
		assert.False(t, detail.IsComplete)
		assert.Nil(t, detail.CycleEndDate)
		assert.Equal(t, 5, detail.Absences)
		assert.False(t, detail.BonusEligible)
		assert.True(t, detail.BonusAmount.IsZero())
	})

	t.Run("cycle closes exactly at the 30th distinct worked day", func(t *testing.T) {
		sales := dailySales(t, "Cesar", "2024-01-12", 30, 12)
		absences := []*AbsenceRecord{
			absenceOn(t, "2024-01-20", "Cesar"),
			absenceOn(t, "2024-01-25", "Cesar"),
			absenceOn(t, "2024-02-01", "Cesar"),
		}

		detail := CalculateCycleDetail("Cesar", start, nil, sales, absences, now, policy)

		assert.True(t, detail.IsComplete)
		require.NotNil(t, detail.CycleEndDate)
		assert.Equal(t, mustDate(t, "2024-02-10"), *detail.CycleEndDate)
		assert.Equal(t, 30, detail.DaysWorked)
		assert.Equal(t, 3, detail.Absences)
		assert.True(t, detail.BonusEligible)
		// 12 units/day average * 1000
		assert.True(t, detail.BonusAmount.Equal(decimal.NewFromInt(12000)), "bonus = %s", detail.BonusAmount)
	})

	t.Run("multiple sales on one date count as a single worked day", func(t *testing.T) {
		sales := []*costing.SaleRecord{
			saleOn(t, "2024-01-12", "Cesar", 5),
			saleOn(t, "2024-01-12", "Cesar", 7),
			saleOn(t, "2024-01-13", "Cesar", 3),
		}

		detail := CalculateCycleDetail("Cesar", start, nil, sales, nil, now, policy)

		assert.Equal(t, 2, detail.DaysWorked)
		assert.Equal(t, int64(15), detail.TotalUnits)
		require.Len(t, detail.SalesByDate, 2)
		assert.Equal(t, int64(12), detail.SalesByDate[0].Units)
	})

	t.Run("sales outside the window and other employees are ignored", func(t *testing.T) {
		sales := []*costing.SaleRecord{
			saleOn(t, "2024-01-10", "Cesar", 5),  // before start
			saleOn(t, "2024-01-15", "Yesid", 5),  // other employee
			saleOn(t, "2024-01-15", "Cesar", 20), // counted
		}

		detail := CalculateCycleDetail("Cesar", start, nil, sales, nil, now, policy)
		assert.Equal(t, 1, detail.DaysWorked)
		assert.Equal(t, int64(20), detail.TotalUnits)
	})

	t.Run("explicit end date bounds the window", func(t *testing.T) {
		sales := dailySales(t, "Cesar", "2024-01-12", 10, 5)
		end := mustDate(t, "2024-01-16")

		detail := CalculateCycleDetail("Cesar", start, &end, sales, nil, now, policy)
		assert.Equal(t, 5, detail.DaysWorked)
	})

	t.Run("exactly four absences keeps eligibility, five loses it", func(t *testing.T) {
		sales := dailySales(t, "Cesar", "2024-01-12", 10, 5)
		absences := []*AbsenceRecord{
			absenceOn(t, "2024-01-13", "Cesar"),
			absenceOn(t, "2024-01-14", "Cesar"),
			absenceOn(t, "2024-01-15", "Cesar"),
			absenceOn(t, "2024-01-16", "Cesar"),
		}

		detail := CalculateCycleDetail("Cesar", start, nil, sales, absences, now, policy)
		assert.True(t, detail.BonusEligible)

		absences = append(absences, absenceOn(t, "2024-01-17", "Cesar"))
		detail = CalculateCycleDetail("Cesar", start, nil, sales, absences, now, policy)
		assert.False(t, detail.BonusEligible)
	})

	t.Run("average units per day guards against zero days", func(t *testing.T) {
		detail := CalculateCycleDetail("Cesar", start, nil, nil, nil, now, policy)
		assert.Equal(t, 0, detail.DaysWorked)
		assert.True(t, detail.AverageUnitsPerDay.IsZero())
		assert.True(t, detail.BonusAmount.IsZero())
	})

	t.Run("days beyond the quota still contribute units but not days", func(t *testing.T) {
		sales := dailySales(t, "Cesar", "2024-01-12", 35, 10)

		detail := CalculateCycleDetail("Cesar", start, nil, sales, nil, now, policy)
		assert.Equal(t, 30, detail.DaysWorked)
		assert.Equal(t, int64(350), detail.TotalUnits)
		// Average divides by the capped 30 days.
		expected := decimal.NewFromInt(350).Div(decimal.NewFromInt(30))
		assert.True(t, detail.AverageUnitsPerDay.Equal(expected))
	})
}

func TestNextCycleStart(t *testing.T) {
	end := mustDate(t, "2024-02-10")
	assert.Equal(t, mustDate(t, "2024-02-11"), NextCycleStart(end))
}
