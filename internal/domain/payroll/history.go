package payroll

import (
	"sort"
	"time"

	"github.com/refresquitos/backend/internal/domain/costing"
	"github.com/shopspring/decimal"
)

// SalesPeriod summarizes one fixed-length slice of an employee's sales
// history
type SalesPeriod struct {
	StartDate          time.Time
	EndDate            time.Time
	TotalUnits         int64
	TotalRevenue       decimal.Decimal
	DaysWorked         int
	AverageUnitsPerDay decimal.Decimal
}

// SalesHistory slices an employee's sales into consecutive periods of
// periodDays calendar days, starting at the first recorded sale. Periods
// without sales are skipped. Most recent period first.
func SalesHistory(employee string, sales []*costing.SaleRecord, periodDays int, now time.Time) []SalesPeriod {
	employeeSales := make([]*costing.SaleRecord, 0)
	for _, sale := range sales {
		if sale.Employee == employee {
			employeeSales = append(employeeSales, sale)
		}
	}
	if len(employeeSales) == 0 || periodDays <= 0 {
		return nil
	}

	sort.SliceStable(employeeSales, func(i, j int) bool {
		return employeeSales[i].Date.Before(employeeSales[j].Date)
	})

	periods := make([]SalesPeriod, 0)
	periodStart := startOfDay(employeeSales[0].Date)

	for !periodStart.After(now) {
		periodEnd := periodStart.AddDate(0, 0, periodDays-1)

		var totalUnits int64
		totalRevenue := decimal.Zero
		days := make(map[string]struct{})

		for _, sale := range employeeSales {
			if !inWindow(sale.Date, periodStart, endOfDay(periodEnd)) {
				continue
			}
			totalUnits += sale.Quantity
			totalRevenue = totalRevenue.Add(sale.Amount)
			days[dayKey(sale.Date)] = struct{}{}
		}

		if len(days) > 0 {
			average := decimal.NewFromInt(totalUnits).Div(decimal.NewFromInt(int64(len(days))))
			periods = append(periods, SalesPeriod{
				StartDate:          periodStart,
				EndDate:            periodEnd,
				TotalUnits:         totalUnits,
				TotalRevenue:       totalRevenue,
				DaysWorked:         len(days),
				AverageUnitsPerDay: average,
			})
		}

		periodStart = periodStart.AddDate(0, 0, periodDays)
	}

	// Most recent first
	for i, j := 0, len(periods)-1; i < j; i, j = i+1, j-1 {
		periods[i], periods[j] = periods[j], periods[i]
	}
	return periods
}

func endOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
