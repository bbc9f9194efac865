package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/refresquitos/backend/internal/domain/payroll"
	"github.com/refresquitos/backend/internal/domain/shared"
	"github.com/refresquitos/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormEmployeeBonusRepository implements EmployeeBonusRepository using GORM
type GormEmployeeBonusRepository struct {
	db *gorm.DB
}

// NewGormEmployeeBonusRepository creates a new GormEmployeeBonusRepository
func NewGormEmployeeBonusRepository(db *gorm.DB) *GormEmployeeBonusRepository {
	return &GormEmployeeBonusRepository{db: db}
}

// FindByID finds a bonus by its ID
func (r *GormEmployeeBonusRepository) FindByID(ctx context.Context, id uuid.UUID) (*payroll.EmployeeBonus, error) {
	var model models.EmployeeBonusModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns all bonuses ordered by cycle start descending
func (r *GormEmployeeBonusRepository) FindAll(ctx context.Context) ([]*payroll.EmployeeBonus, error) {
	var bonusModels []models.EmployeeBonusModel
	if err := r.db.WithContext(ctx).
		Order("cycle_start_date DESC").
		Find(&bonusModels).Error; err != nil {
		return nil, err
	}
	bonuses := make([]*payroll.EmployeeBonus, len(bonusModels))
	for i := range bonusModels {
		bonuses[i] = bonusModels[i].ToDomain()
	}
	return bonuses, nil
}

// FindByEmployee returns bonuses for one employee ordered by cycle start descending
func (r *GormEmployeeBonusRepository) FindByEmployee(ctx context.Context, employee string) ([]*payroll.EmployeeBonus, error) {
	var bonusModels []models.EmployeeBonusModel
	if err := r.db.WithContext(ctx).
		Where("employee = ?", employee).
		Order("cycle_start_date DESC").
		Find(&bonusModels).Error; err != nil {
		return nil, err
	}
	bonuses := make([]*payroll.EmployeeBonus, len(bonusModels))
	for i := range bonusModels {
		bonuses[i] = bonusModels[i].ToDomain()
	}
	return bonuses, nil
}

// Create inserts a bonus, doing nothing when a row with the same ID
// already exists. Bonus IDs are deterministic per cycle, so repeated
// generation of the same bonus is a no-op rather than a duplicate.
func (r *GormEmployeeBonusRepository) Create(ctx context.Context, bonus *payroll.EmployeeBonus) (bool, error) {
	model := models.EmployeeBonusModelFromDomain(bonus)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).
		Create(model)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Update saves changes to an existing bonus
func (r *GormEmployeeBonusRepository) Update(ctx context.Context, bonus *payroll.EmployeeBonus) error {
	model := models.EmployeeBonusModelFromDomain(bonus)
	result := r.db.WithContext(ctx).
		Model(&models.EmployeeBonusModel{}).
		Where("id = ?", bonus.ID).
		Updates(map[string]interface{}{
			"is_paid":    model.IsPaid,
			"paid_date":  model.PaidDate,
			"notes":      model.Notes,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a bonus
func (r *GormEmployeeBonusRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.EmployeeBonusModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
