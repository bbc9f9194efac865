package payroll

import (
	"sort"
	"strings"
	"time"

	"github.com/refresquitos/backend/internal/domain/costing"
	"github.com/refresquitos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AbsenceRecord captures one day an employee did not work
type AbsenceRecord struct {
	shared.BaseEntity
	Employee string
	Date     time.Time
	Reason   string
}

// NewAbsenceRecord creates an absence record
func NewAbsenceRecord(employee string, date time.Time, reason string) (*AbsenceRecord, error) {
	if employee == "" {
		return nil, shared.NewDomainError("INVALID_EMPLOYEE", "Employee is required")
	}
	return &AbsenceRecord{
		BaseEntity: shared.NewBaseEntity(),
		Employee:   employee,
		Date:       date,
		Reason:     reason,
	}, nil
}

// EmployeeCycle anchors an employee's open work cycle. There is exactly
// one open cycle per employee; closing it and starting the next one is an
// explicit external action, never automatic.
type EmployeeCycle struct {
	shared.BaseEntity
	Employee  string
	StartDate time.Time
}

// NewEmployeeCycle opens a cycle for an employee
func NewEmployeeCycle(employee string, startDate time.Time) (*EmployeeCycle, error) {
	if employee == "" {
		return nil, shared.NewDomainError("INVALID_EMPLOYEE", "Employee is required")
	}
	return &EmployeeCycle{
		BaseEntity: shared.NewBaseEntity(),
		Employee:   employee,
		StartDate:  startDate,
	}, nil
}

// CyclePolicy holds the injectable work-cycle constants
type CyclePolicy struct {
	DayQuota      int             // distinct worked days that complete a cycle
	AbsenceLimit  int             // max absences before bonus eligibility is lost
	BonusUnitRate decimal.Decimal // bonus currency units per average unit/day
}

// DefaultCyclePolicy returns the standard policy: 30 worked days, up to 4
// absences, 1000 per average unit/day.
func DefaultCyclePolicy() CyclePolicy {
	return CyclePolicy{
		DayQuota:      30,
		AbsenceLimit:  4,
		BonusUnitRate: decimal.NewFromInt(1000),
	}
}

// DailySales aggregates one worked day of an employee's sales
type DailySales struct {
	Date     time.Time
	Units    int64
	Revenue  decimal.Decimal
	Products string // comma-joined product lines sold that day
}

// CycleDetail is the derived state of one work cycle
type CycleDetail struct {
	Employee           string
	CycleStartDate     time.Time
	CycleEndDate       *time.Time
	DaysWorked         int
	TotalUnits         int64
	TotalRevenue       decimal.Decimal
	Absences           int
	SalesByDate        []DailySales
	AverageUnitsPerDay decimal.Decimal
	BonusEligible      bool
	BonusAmount        decimal.Decimal
	IsComplete         bool
}

// CalculateCycleDetail evaluates an employee's cycle over
// [start, end ?? now]. A worked day is a calendar date with at least one
// qualifying sale. The cycle closes exactly at the quota-th distinct
// worked day, not after that many calendar days.
//
// Bonus eligibility is gated on absences alone and is reported even for
// incomplete cycles; completeness only gates the payout amount.
func CalculateCycleDetail(
	employee string,
	start time.Time,
	end *time.Time,
	sales []*costing.SaleRecord,
	absences []*AbsenceRecord,
	now time.Time,
	policy CyclePolicy,
) CycleDetail {
	windowEnd := now
	if end != nil {
		windowEnd = *end
	}

	byDay := make(map[string]*DailySales)
	var totalUnits int64
	totalRevenue := decimal.Zero

	for _, sale := range sales {
		if sale.Employee != employee || !inWindow(sale.Date, start, windowEnd) {
			continue
		}
		key := dayKey(sale.Date)
		day, ok := byDay[key]
		if !ok {
			day = &DailySales{Date: startOfDay(sale.Date), Revenue: decimal.Zero}
			byDay[key] = day
		}
		day.Units += sale.Quantity
		day.Revenue = day.Revenue.Add(sale.Amount)
		day.Products = joinProduct(day.Products, sale.Product.String())

		totalUnits += sale.Quantity
		totalRevenue = totalRevenue.Add(sale.Amount)
	}

	salesByDate := make([]DailySales, 0, len(byDay))
	for _, day := range byDay {
		salesByDate = append(salesByDate, *day)
	}
	sort.Slice(salesByDate, func(i, j int) bool {
		return salesByDate[i].Date.Before(salesByDate[j].Date)
	})

	absenceCount := 0
	for _, absence := range absences {
		if absence.Employee == employee && inWindow(absence.Date, start, windowEnd) {
			absenceCount++
		}
	}

	rawDays := len(salesByDate)
	isComplete := rawDays >= policy.DayQuota

	daysWorked := rawDays
	if daysWorked > policy.DayQuota {
		daysWorked = policy.DayQuota
	}

	var cycleEnd *time.Time
	if isComplete {
		endDate := salesByDate[policy.DayQuota-1].Date
		cycleEnd = &endDate
	}

	average := decimal.Zero
	if daysWorked > 0 {
		average = decimal.NewFromInt(totalUnits).Div(decimal.NewFromInt(int64(daysWorked)))
	}

	bonusEligible := absenceCount <= policy.AbsenceLimit

	bonusAmount := decimal.Zero
	if isComplete && bonusEligible {
		bonusAmount = average.Mul(policy.BonusUnitRate).Round(0)
	}

	return CycleDetail{
		Employee:           employee,
		CycleStartDate:     start,
		CycleEndDate:       cycleEnd,
		DaysWorked:         daysWorked,
		TotalUnits:         totalUnits,
		TotalRevenue:       totalRevenue,
		Absences:           absenceCount,
		SalesByDate:        salesByDate,
		AverageUnitsPerDay: average,
		BonusEligible:      bonusEligible,
		BonusAmount:        bonusAmount,
		IsComplete:         isComplete,
	}
}

// NextCycleStart returns the conventional start of the following cycle:
// the day after the completed cycle's end.
func NextCycleStart(cycleEnd time.Time) time.Time {
	return startOfDay(cycleEnd).AddDate(0, 0, 1)
}

func inWindow(date, start, end time.Time) bool {
	return !date.Before(start) && !date.After(end)
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func joinProduct(existing, product string) string {
	if existing == "" {
		return product
	}
	if strings.Contains(existing, product) {
		return existing
	}
	return existing + ", " + product
}
