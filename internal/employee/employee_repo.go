package employee

import (
	"context"
	"errors"

	"go-hr-portal/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, empl *Employee) error
	FindAllByCompany(ctx context.Context, companyID string, filter EmployeeFilter) ([]Employee, error)
	FindOptionsByCompany(ctx context.Context, companyID string) ([]Employee, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Employee, error)
	FindIDByUserID(ctx context.Context, userID string) (string, error)
	CountReviewAssignments(ctx context.Context, reviewerID string) (int64, error)
	Update(ctx context.Context, empl *Employee) error
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

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Create(empl).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string, filter EmployeeFilter) ([]Employee, error) {
	var employees []Employee
	q := r.db.WithContext(ctx).Scopes(tenant.Scope(companyID))
	if filter.Department != "" {
		q = q.Where("department = ?", filter.Department)
	}
	if filter.Status != "" {
		q = q.Where("employment_status = ?", filter.Status)
	}
	err := q.Order("full_name ASC").Find(&employees).Error
	return employees, err
}

func (r *repository) FindOptionsByCompany(ctx context.Context, companyID string) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Select("id", "employee_number", "full_name").
		Scopes(tenant.Scope(companyID)).
		Where("employment_status = ?", StatusActive).
		Order("full_name ASC").
		Find(&employees).Error
	return employees, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&empl, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

// FindIDByUserID returns "" when the user owns no employee profile.
func (r *repository) FindIDByUserID(ctx context.Context, userID string) (string, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		Select("id").
		Where("user_id = ?", userID).
		Take(&empl).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return empl.ID.String(), nil
}

// CountReviewAssignments counts reviews of other employees that name
// reviewerID as reviewer. Self reviews are owned rows, not dependencies.
func (r *repository) CountReviewAssignments(ctx context.Context, reviewerID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Table("reviews").
		Where("reviewer_id = ? AND employee_id <> ?", reviewerID, reviewerID).
		Count(&n).Error
	return n, err
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Save(empl).Error
}
