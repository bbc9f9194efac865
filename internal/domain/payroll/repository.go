package payroll

import (
	"context"

	"github.com/google/uuid"
)

// AbsenceRecordRepository defines persistence operations for absence records
type AbsenceRecordRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AbsenceRecord, error)
	FindAll(ctx context.Context) ([]*AbsenceRecord, error)
	FindByEmployee(ctx context.Context, employee string) ([]*AbsenceRecord, error)
	Save(ctx context.Context, absence *AbsenceRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// EmployeeCycleRepository defines persistence operations for the per-employee
// open cycle anchor. Save upserts so an employee never has two open cycles.
type EmployeeCycleRepository interface {
	FindByEmployee(ctx context.Context, employee string) (*EmployeeCycle, error)
	FindAll(ctx context.Context) ([]*EmployeeCycle, error)
	Save(ctx context.Context, cycle *EmployeeCycle) error
	Delete(ctx context.Context, employee string) error
}

// EmployeeBonusRepository defines persistence operations for bonuses.
// Create reports whether a row was inserted; existing rows are left
// untouched because bonus IDs are deterministic per cycle.
type EmployeeBonusRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*EmployeeBonus, error)
	FindAll(ctx context.Context) ([]*EmployeeBonus, error)
	FindByEmployee(ctx context.Context, employee string) ([]*EmployeeBonus, error)
	Create(ctx context.Context, bonus *EmployeeBonus) (bool, error)
	Update(ctx context.Context, bonus *EmployeeBonus) error
	Delete(ctx context.Context, id uuid.UUID) error
}
