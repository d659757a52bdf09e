package document

import (
	"context"

	"go-hr-portal/internal/tenant"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, d *Document) error
	FindByEmployee(ctx context.Context, companyID, employeeID string) ([]Document, error)
	EmployeeExists(ctx context.Context, companyID, employeeID string) (bool, error)
	Delete(ctx context.Context, companyID, id string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, d *Document) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *repository) FindByEmployee(ctx context.Context, companyID, employeeID string) ([]Document, error) {
	var docs []Document
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&docs).Error
	return docs, err
}

func (r *repository) EmployeeExists(ctx context.Context, companyID, employeeID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", employeeID).
		Count(&n).Error
	return n > 0, err
}

func (r *repository) Delete(ctx context.Context, companyID, id string) (int64, error) {
	res := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Document{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
