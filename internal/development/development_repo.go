package development

import (
	"context"

	"go-hr-portal/internal/tenant"

	"gorm.io/gorm"
)

type Repository interface {
	EmployeeExists(ctx context.Context, companyID, employeeID string) (bool, error)
	CreateEnrollment(ctx context.Context, e *Enrollment) error
	CompleteEnrollment(ctx context.Context, e *Enrollment) (int64, error)
	FindEnrollment(ctx context.Context, companyID, id string) (*Enrollment, error)
	FindEnrollments(ctx context.Context, companyID, employeeID string) ([]Enrollment, error)
	CreateBadge(ctx context.Context, b *UserBadge) error
	FindBadges(ctx context.Context, companyID, employeeID string) ([]UserBadge, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
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

func (r *repository) CreateEnrollment(ctx context.Context, e *Enrollment) error {
	return r.db.WithContext(ctx).Create(e).Error
}

// CompleteEnrollment only moves rows that are still ENROLLED.
func (r *repository) CompleteEnrollment(ctx context.Context, e *Enrollment) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Enrollment{}).
		Where("id = ? AND company_id = ? AND status = ?", e.ID, e.CompanyID, EnrollmentEnrolled).
		Updates(map[string]any{
			"status":       e.Status,
			"completed_at": e.CompletedAt,
		})
	return res.RowsAffected, res.Error
}

func (r *repository) FindEnrollment(ctx context.Context, companyID, id string) (*Enrollment, error) {
	var e Enrollment
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) FindEnrollments(ctx context.Context, companyID, employeeID string) ([]Enrollment, error) {
	var out []Enrollment
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Order("enrolled_at DESC").
		Find(&out).Error
	return out, err
}

func (r *repository) CreateBadge(ctx context.Context, b *UserBadge) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *repository) FindBadges(ctx context.Context, companyID, employeeID string) ([]UserBadge, error) {
	var out []UserBadge
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Order("awarded_at DESC").
		Find(&out).Error
	return out, err
}
