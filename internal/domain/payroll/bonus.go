package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/refresquitos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// bonusNamespace is the UUIDv5 namespace for deterministic bonus IDs
var bonusNamespace = uuid.MustParse("5f7a3c6e-9b21-4d8a-a1f0-3d2e64c09b17")

// EmployeeBonus is the persisted payroll incentive for one completed,
// absence-compliant cycle. Mutated only to flip IsPaid.
type EmployeeBonus struct {
	shared.BaseEntity
	Employee           string
	CycleStartDate     time.Time
	CycleEndDate       time.Time
	TotalUnits         int64
	TotalRevenue       decimal.Decimal
	WorkingDays        int
	Absences           int
	AverageUnitsPerDay decimal.Decimal
	BonusAmount        decimal.Decimal
	IsPaid             bool
	PaidDate           *time.Time
	Notes              string
}

// BonusID derives the deterministic bonus ID for a cycle. Generating a
// bonus twice for the same (employee, cycle start) yields the same ID,
// which makes persistence idempotent against duplicate invocation.
func BonusID(employee string, cycleStart time.Time) uuid.UUID {
	return uuid.NewSHA1(bonusNamespace, []byte(employee+"|"+cycleStart.Format("2006-01-02")))
}

// GenerateBonus turns a completed, eligible cycle into a bonus record.
// Returns nil for incomplete or ineligible cycles; the absence of a bonus
// is the normal outcome, not an error.
func GenerateBonus(detail CycleDetail) *EmployeeBonus {
	if !detail.IsComplete || !detail.BonusEligible || detail.CycleEndDate == nil {
		return nil
	}

	return &EmployeeBonus{
		BaseEntity:         shared.NewBaseEntityWithID(BonusID(detail.Employee, detail.CycleStartDate)),
		Employee:           detail.Employee,
		CycleStartDate:     detail.CycleStartDate,
		CycleEndDate:       *detail.CycleEndDate,
		TotalUnits:         detail.TotalUnits,
		TotalRevenue:       detail.TotalRevenue,
		WorkingDays:        detail.DaysWorked,
		Absences:           detail.Absences,
		AverageUnitsPerDay: detail.AverageUnitsPerDay,
		BonusAmount:        detail.BonusAmount,
		IsPaid:             false,
	}
}

// MarkPaid flips the bonus to paid at the given date
func (b *EmployeeBonus) MarkPaid(paidDate time.Time) error {
	if b.IsPaid {
		return shared.NewDomainError("ALREADY_PAID", "Bonus has already been paid")
	}
	b.IsPaid = true
	b.PaidDate = &paidDate
	b.UpdatedAt = time.Now()
	return nil
}
