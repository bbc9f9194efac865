package persistence

import (
	"context"
	"errors"

	"github.com/refresquitos/backend/internal/domain/payroll"
	"github.com/refresquitos/backend/internal/domain/shared"
	"github.com/refresquitos/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormEmployeeCycleRepository implements EmployeeCycleRepository using GORM
type GormEmployeeCycleRepository struct {
	db *gorm.DB
}

// NewGormEmployeeCycleRepository creates a new GormEmployeeCycleRepository
func NewGormEmployeeCycleRepository(db *gorm.DB) *GormEmployeeCycleRepository {
	return &GormEmployeeCycleRepository{db: db}
}

// FindByEmployee finds the open cycle anchor for an employee
func (r *GormEmployeeCycleRepository) FindByEmployee(ctx context.Context, employee string) (*payroll.EmployeeCycle, error) {
	var model models.EmployeeCycleModel
	if err := r.db.WithContext(ctx).
		Where("employee = ?", employee).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns the open cycle anchor of every employee
func (r *GormEmployeeCycleRepository) FindAll(ctx context.Context) ([]*payroll.EmployeeCycle, error) {
	var cycleModels []models.EmployeeCycleModel
	if err := r.db.WithContext(ctx).
		Order("employee ASC").
		Find(&cycleModels).Error; err != nil {
		return nil, err
	}
	cycles := make([]*payroll.EmployeeCycle, len(cycleModels))
	for i := range cycleModels {
		cycles[i] = cycleModels[i].ToDomain()
	}
	return cycles, nil
}

// Save upserts the cycle anchor for an employee. The unique index on
// employee guarantees at most one open cycle per employee; starting the
// next cycle replaces the anchor's start date in place.
func (r *GormEmployeeCycleRepository) Save(ctx context.Context, cycle *payroll.EmployeeCycle) error {
	model := models.EmployeeCycleModelFromDomain(cycle)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee"}},
			DoUpdates: clause.AssignmentColumns([]string{"start_date", "updated_at"}),
		}).
		Create(model).Error
}

// Delete removes the cycle anchor for an employee
func (r *GormEmployeeCycleRepository) Delete(ctx context.Context, employee string) error {
	result := r.db.WithContext(ctx).Delete(&models.EmployeeCycleModel{}, "employee = ?", employee)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
