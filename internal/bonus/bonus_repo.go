package bonus

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=bonus_repo.go -destination=mock/bonus_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, b *EmployeeBonus) error
	FindByID(ctx context.Context, id string) (*EmployeeBonus, error)
	FindByIDForUpdate(ctx context.Context, id string) (*EmployeeBonus, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]EmployeeBonus, error)
	FindByStatus(ctx context.Context, status string) ([]EmployeeBonus, error)
	Update(ctx context.Context, b *EmployeeBonus) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, b *EmployeeBonus) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*EmployeeBonus, error) {
	var b EmployeeBonus
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&b).Error
	return &b, err
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id string) (*EmployeeBonus, error) {
	var b EmployeeBonus
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&b).Error
	return &b, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]EmployeeBonus, error) {
	var bonuses []EmployeeBonus
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&bonuses).Error
	return bonuses, err
}

func (r *repository) FindByStatus(ctx context.Context, status string) ([]EmployeeBonus, error) {
	var bonuses []EmployeeBonus
	err := r.db.WithContext(ctx).
		Where("payment_status = ?", status).
		Order("created_at DESC").
		Find(&bonuses).Error
	return bonuses, err
}

func (r *repository) Update(ctx context.Context, b *EmployeeBonus) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&EmployeeBonus{}).Error
}
