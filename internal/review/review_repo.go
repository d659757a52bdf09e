package review

import (
	"context"

	"go-hr-portal/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=review_repo.go -destination=mock/review_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, r *Review) error
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Review, error)
	FindAll(ctx context.Context, companyID string, filter ReviewFilter) ([]Review, error)
	CountEmployees(ctx context.Context, companyID string, ids ...string) (int64, error)
	Update(ctx context.Context, r *Review) error
	CreateGoal(ctx context.Context, g *Goal) error
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

func (r *repository) Create(ctx context.Context, rv *Review) error {
	return r.db.WithContext(ctx).Omit("Goals").Create(rv).Error
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Review, error) {
	var rv Review
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("Goals", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		First(&rv, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *repository) FindAll(ctx context.Context, companyID string, filter ReviewFilter) ([]Review, error) {
	var reviews []Review
	q := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("Goals", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") })

	if filter.EmployeeID != "" {
		q = q.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.ReviewerID != "" {
		q = q.Where("reviewer_id = ?", filter.ReviewerID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Participant != "" {
		q = q.Where("(employee_id = ? OR reviewer_id = ?)", filter.Participant, filter.Participant)
	}

	err := q.Order("created_at DESC").Find(&reviews).Error
	return reviews, err
}

// CountEmployees counts how many of ids are employees of the company.
func (r *repository) CountEmployees(ctx context.Context, companyID string, ids ...string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Scopes(tenant.Scope(companyID)).
		Where("id IN ?", ids).
		Count(&n).Error
	return n, err
}

func (r *repository) Update(ctx context.Context, rv *Review) error {
	return r.db.WithContext(ctx).Omit("Goals").Save(rv).Error
}

func (r *repository) CreateGoal(ctx context.Context, g *Goal) error {
	return r.db.WithContext(ctx).Create(g).Error
}
