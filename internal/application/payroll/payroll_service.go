package payroll

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/refresquitos/backend/internal/domain/costing"
	"github.com/refresquitos/backend/internal/domain/payroll"
	"github.com/refresquitos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PayrollService drives the employee work-cycle lifecycle: evaluating the
// open cycle, generating bonuses for completed cycles and rolling the
// anchor forward to the next cycle.
type PayrollService struct {
	cycleRepo   payroll.EmployeeCycleRepository
	bonusRepo   payroll.EmployeeBonusRepository
	saleRepo    costing.SaleRecordRepository
	absenceRepo payroll.AbsenceRecordRepository
	policy      payroll.CyclePolicy
	now         func() time.Time
}

// NewPayrollService creates a new PayrollService
func NewPayrollService(
	cycleRepo payroll.EmployeeCycleRepository,
	bonusRepo payroll.EmployeeBonusRepository,
	saleRepo costing.SaleRecordRepository,
	absenceRepo payroll.AbsenceRecordRepository,
	policy payroll.CyclePolicy,
) *PayrollService {
	return &PayrollService{
		cycleRepo:   cycleRepo,
		bonusRepo:   bonusRepo,
		saleRepo:    saleRepo,
		absenceRepo: absenceRepo,
		policy:      policy,
		now:         time.Now,
	}
}

// ===================== Cycle Operations =====================

// StartCycleRequest represents a request to open an employee's cycle
type StartCycleRequest struct {
	Employee  string    `json:"employee" binding:"required"`
	StartDate time.Time `json:"start_date" binding:"required"`
}

// DailySalesResponse aggregates one worked day in API responses
type DailySalesResponse struct {
	Date     time.Time       `json:"date"`
	Units    int64           `json:"units"`
	Revenue  decimal.Decimal `json:"revenue"`
	Products string          `json:"products"`
}

// CycleDetailResponse represents the derived state of one work cycle
type CycleDetailResponse struct {
	Employee           string               `json:"employee"`
	CycleStartDate     time.Time            `json:"cycle_start_date"`
	CycleEndDate       *time.Time           `json:"cycle_end_date,omitempty"`
	DaysWorked         int                  `json:"days_worked"`
	TotalUnits         int64                `json:"total_units"`
	TotalRevenue       decimal.Decimal      `json:"total_revenue"`
	Absences           int                  `json:"absences"`
	SalesByDate        []DailySalesResponse `json:"sales_by_date"`
	AverageUnitsPerDay decimal.Decimal      `json:"average_units_per_day"`
	BonusEligible      bool                 `json:"bonus_eligible"`
	BonusAmount        decimal.Decimal      `json:"bonus_amount"`
	IsComplete         bool                 `json:"is_complete"`
}

func toCycleDetailResponse(detail payroll.CycleDetail) *CycleDetailResponse {
	salesByDate := make([]DailySalesResponse, len(detail.SalesByDate))
	for i, day := range detail.SalesByDate {
		salesByDate[i] = DailySalesResponse{
			Date:     day.Date,
			Units:    day.Units,
			Revenue:  day.Revenue,
			Products: day.Products,
		}
	}
	return &CycleDetailResponse{
		Employee:           detail.Employee,
		CycleStartDate:     detail.CycleStartDate,
		CycleEndDate:       detail.CycleEndDate,
		DaysWorked:         detail.DaysWorked,
		TotalUnits:         detail.TotalUnits,
		TotalRevenue:       detail.TotalRevenue,
		Absences:           detail.Absences,
		SalesByDate:        salesByDate,
		AverageUnitsPerDay: detail.AverageUnitsPerDay,
		BonusEligible:      detail.BonusEligible,
		BonusAmount:        detail.BonusAmount,
		IsComplete:         detail.IsComplete,
	}
}

// StartCycle opens (or re-anchors) an employee's work cycle
func (s *PayrollService) StartCycle(ctx context.Context, req StartCycleRequest) (*CycleDetailResponse, error) {
	cycle, err := payroll.NewEmployeeCycle(req.Employee, req.StartDate)
	if err != nil {
		return nil, err
	}
	if err := s.cycleRepo.Save(ctx, cycle); err != nil {
		return nil, err
	}
	return s.GetCycleDetail(ctx, req.Employee)
}

// GetCycleDetail evaluates an employee's open cycle against the sales and
// absence history.
func (s *PayrollService) GetCycleDetail(ctx context.Context, employee string) (*CycleDetailResponse, error) {
	detail, err := s.evaluateCycle(ctx, employee)
	if err != nil {
		return nil, err
	}
	return toCycleDetailResponse(*detail), nil
}

// ListCycleDetails evaluates every employee's open cycle
func (s *PayrollService) ListCycleDetails(ctx context.Context) ([]*CycleDetailResponse, error) {
	cycles, err := s.cycleRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]*CycleDetailResponse, 0, len(cycles))
	for _, cycle := range cycles {
		detail, err := s.evaluateCycle(ctx, cycle.Employee)
		if err != nil {
			return nil, err
		}
		responses = append(responses, toCycleDetailResponse(*detail))
	}
	return responses, nil
}

func (s *PayrollService) evaluateCycle(ctx context.Context, employee string) (*payroll.CycleDetail, error) {
	cycle, err := s.cycleRepo.FindByEmployee(ctx, employee)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NO_OPEN_CYCLE", "Employee has no open work cycle")
		}
		return nil, err
	}

	sales, err := s.saleRepo.FindByEmployee(ctx, employee)
	if err != nil {
		return nil, err
	}
	absences, err := s.absenceRepo.FindByEmployee(ctx, employee)
	if err != nil {
		return nil, err
	}

	detail := payroll.CalculateCycleDetail(employee, cycle.StartDate, nil, sales, absences, s.now(), s.policy)
	return &detail, nil
}

// ===================== Bonus Operations =====================

// BonusResponse represents an employee bonus in API responses
type BonusResponse struct {
	ID                 uuid.UUID       `json:"id"`
	Employee           string          `json:"employee"`
	CycleStartDate     time.Time       `json:"cycle_start_date"`
	CycleEndDate       time.Time       `json:"cycle_end_date"`
	TotalUnits         int64           `json:"total_units"`
	TotalRevenue       decimal.Decimal `json:"total_revenue"`
	WorkingDays        int             `json:"working_days"`
	Absences           int             `json:"absences"`
	AverageUnitsPerDay decimal.Decimal `json:"average_units_per_day"`
	BonusAmount        decimal.Decimal `json:"bonus_amount"`
	IsPaid             bool            `json:"is_paid"`
	PaidDate           *time.Time      `json:"paid_date,omitempty"`
	Notes              string          `json:"notes,omitempty"`
}

func toBonusResponse(b *payroll.EmployeeBonus) *BonusResponse {
	return &BonusResponse{
		ID:                 b.ID,
		Employee:           b.Employee,
		CycleStartDate:     b.CycleStartDate,
		CycleEndDate:       b.CycleEndDate,
		TotalUnits:         b.TotalUnits,
		TotalRevenue:       b.TotalRevenue,
		WorkingDays:        b.WorkingDays,
		Absences:           b.Absences,
		AverageUnitsPerDay: b.AverageUnitsPerDay,
		BonusAmount:        b.BonusAmount,
		IsPaid:             b.IsPaid,
		PaidDate:           b.PaidDate,
		Notes:              b.Notes,
	}
}

// GenerateBonusResult reports the outcome of bonus generation
type GenerateBonusResult struct {
	Bonus          *BonusResponse `json:"bonus"`
	Created        bool           `json:"created"`
	NextCycleStart time.Time      `json:"next_cycle_start"`
}

// GenerateBonus closes a completed eligible cycle: it persists the bonus
// (idempotently, keyed on the deterministic cycle ID) and advances the
// employee's cycle anchor to the day after the cycle end. Calling it twice
// for the same cycle returns the stored bonus without duplicating it.
func (s *PayrollService) GenerateBonus(ctx context.Context, employee string) (*GenerateBonusResult, error) {
	detail, err := s.evaluateCycle(ctx, employee)
	if err != nil {
		return nil, err
	}

	if !detail.IsComplete {
		return nil, shared.NewDomainError("CYCLE_INCOMPLETE", "Work cycle has not reached the required worked days")
	}
	if !detail.BonusEligible {
		return nil, shared.NewDomainError("BONUS_INELIGIBLE", "Absence limit exceeded for this cycle")
	}

	bonus := payroll.GenerateBonus(*detail)
	if bonus == nil {
		return nil, shared.NewDomainError("CYCLE_INCOMPLETE", "Work cycle has not reached the required worked days")
	}

	created, err := s.bonusRepo.Create(ctx, bonus)
	if err != nil {
		return nil, err
	}
	if !created {
		stored, err := s.bonusRepo.FindByID(ctx, bonus.ID)
		if err != nil {
			return nil, err
		}
		bonus = stored
	}

	nextStart := payroll.NextCycleStart(bonus.CycleEndDate)
	nextCycle, err := payroll.NewEmployeeCycle(employee, nextStart)
	if err != nil {
		return nil, err
	}
	if err := s.cycleRepo.Save(ctx, nextCycle); err != nil {
		return nil, err
	}

	return &GenerateBonusResult{
		Bonus:          toBonusResponse(bonus),
		Created:        created,
		NextCycleStart: nextStart,
	}, nil
}

// ListBonuses returns all bonuses, optionally scoped to one employee
func (s *PayrollService) ListBonuses(ctx context.Context, employee string) ([]*BonusResponse, error) {
	var (
		bonuses []*payroll.EmployeeBonus
		err     error
	)
	if employee != "" {
		bonuses, err = s.bonusRepo.FindByEmployee(ctx, employee)
	} else {
		bonuses, err = s.bonusRepo.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}
	responses := make([]*BonusResponse, len(bonuses))
	for i, bonus := range bonuses {
		responses[i] = toBonusResponse(bonus)
	}
	return responses, nil
}

// MarkBonusPaid flips a bonus to paid
func (s *PayrollService) MarkBonusPaid(ctx context.Context, id uuid.UUID) (*BonusResponse, error) {
	bonus, err := s.bonusRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := bonus.MarkPaid(s.now()); err != nil {
		return nil, err
	}
	if err := s.bonusRepo.Update(ctx, bonus); err != nil {
		return nil, err
	}
	return toBonusResponse(bonus), nil
}

// ===================== Sales History =====================

// SalesPeriodResponse represents one fixed-length period of an employee's
// sales history
type SalesPeriodResponse struct {
	StartDate          time.Time       `json:"start_date"`
	EndDate            time.Time       `json:"end_date"`
	TotalUnits         int64           `json:"total_units"`
	TotalRevenue       decimal.Decimal `json:"total_revenue"`
	DaysWorked         int             `json:"days_worked"`
	AverageUnitsPerDay decimal.Decimal `json:"average_units_per_day"`
}

// GetSalesHistory slices an employee's sales into fixed-length periods,
// most recent first.
func (s *PayrollService) GetSalesHistory(ctx context.Context, employee string) ([]*SalesPeriodResponse, error) {
	if employee == "" {
		return nil, shared.NewDomainError("INVALID_EMPLOYEE", "Employee is required")
	}

	sales, err := s.saleRepo.FindByEmployee(ctx, employee)
	if err != nil {
		return nil, err
	}

	periods := payroll.SalesHistory(employee, sales, s.policy.DayQuota, s.now())
	responses := make([]*SalesPeriodResponse, len(periods))
	for i, period := range periods {
		responses[i] = &SalesPeriodResponse{
			StartDate:          period.StartDate,
			EndDate:            period.EndDate,
			TotalUnits:         period.TotalUnits,
			TotalRevenue:       period.TotalRevenue,
			DaysWorked:         period.DaysWorked,
			AverageUnitsPerDay: period.AverageUnitsPerDay,
		}
	}
	return responses, nil
}
