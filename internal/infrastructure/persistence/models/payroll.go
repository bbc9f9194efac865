package models

import (
	"time"

	"github.com/refresquitos/backend/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// AbsenceRecordModel is the GORM model for absence records
type AbsenceRecordModel struct {
	BaseModel
	Employee string    `gorm:"type:varchar(100);not null;index"`
	Date     time.Time `gorm:"not null;index"`
	Reason   string    `gorm:"type:varchar(500)"`
}

// TableName specifies the table name
func (AbsenceRecordModel) TableName() string {
	return "absence_records"
}

// ToDomain converts the model to a domain absence record
func (m *AbsenceRecordModel) ToDomain() *payroll.AbsenceRecord {
	return &payroll.AbsenceRecord{
		BaseEntity: m.BaseModel.ToDomain(),
		Employee:   m.Employee,
		Date:       m.Date,
		Reason:     m.Reason,
	}
}

// AbsenceRecordModelFromDomain converts a domain absence record to a model
func AbsenceRecordModelFromDomain(a *payroll.AbsenceRecord) *AbsenceRecordModel {
	m := &AbsenceRecordModel{
		Employee: a.Employee,
		Date:     a.Date,
		Reason:   a.Reason,
	}
	m.FromDomainBaseEntity(a.BaseEntity)
	return m
}

// EmployeeCycleModel is the GORM model for open employee work cycles.
// One row per employee holds the current cycle anchor.
type EmployeeCycleModel struct {
	BaseModel
	Employee  string    `gorm:"type:varchar(100);not null;uniqueIndex"`
	StartDate time.Time `gorm:"not null"`
}

// TableName specifies the table name
func (EmployeeCycleModel) TableName() string {
	return "employee_cycles"
}

// ToDomain converts the model to a domain employee cycle
func (m *EmployeeCycleModel) ToDomain() *payroll.EmployeeCycle {
	return &payroll.EmployeeCycle{
		BaseEntity: m.BaseModel.ToDomain(),
		Employee:   m.Employee,
		StartDate:  m.StartDate,
	}
}

// EmployeeCycleModelFromDomain converts a domain employee cycle to a model
func EmployeeCycleModelFromDomain(c *payroll.EmployeeCycle) *EmployeeCycleModel {
	m := &EmployeeCycleModel{
		Employee:  c.Employee,
		StartDate: c.StartDate,
	}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}

// EmployeeBonusModel is the GORM model for employee bonuses
type EmployeeBonusModel struct {
	BaseModel
	Employee           string          `gorm:"type:varchar(100);not null;index"`
	CycleStartDate     time.Time       `gorm:"not null"`
	CycleEndDate       time.Time       `gorm:"not null"`
	TotalUnits         int64           `gorm:"not null"`
	TotalRevenue       decimal.Decimal `gorm:"type:decimal(15,4);not null"`
	WorkingDays        int             `gorm:"not null"`
	Absences           int             `gorm:"not null"`
	AverageUnitsPerDay decimal.Decimal `gorm:"type:decimal(15,4);not null"`
	BonusAmount        decimal.Decimal `gorm:"type:decimal(15,4);not null"`
	IsPaid             bool            `gorm:"not null;default:false"`
	PaidDate           *time.Time
	Notes              string `gorm:"type:varchar(500)"`
}

// TableName specifies the table name
func (EmployeeBonusModel) TableName() string {
	return "employee_bonuses"
}

// ToDomain converts the model to a domain employee bonus
func (m *EmployeeBonusModel) ToDomain() *payroll.EmployeeBonus {
	return &payroll.EmployeeBonus{
		BaseEntity:         m.BaseModel.ToDomain(),
		Employee:           m.Employee,
		CycleStartDate:     m.CycleStartDate,
		CycleEndDate:       m.CycleEndDate,
		TotalUnits:         m.TotalUnits,
		TotalRevenue:       m.TotalRevenue,
		WorkingDays:        m.WorkingDays,
		Absences:           m.Absences,
		AverageUnitsPerDay: m.AverageUnitsPerDay,
		BonusAmount:        m.BonusAmount,
		IsPaid:             m.IsPaid,
		PaidDate:           m.PaidDate,
		Notes:              m.Notes,
	}
}

// EmployeeBonusModelFromDomain converts a domain employee bonus to a model
func EmployeeBonusModelFromDomain(b *payroll.EmployeeBonus) *EmployeeBonusModel {
	m := &EmployeeBonusModel{
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
	m.FromDomainBaseEntity(b.BaseEntity)
	return m
}
