package development

import (
	"time"

	"github.com/google/uuid"
)

const (
	EnrollmentEnrolled  = "ENROLLED"
	EnrollmentCompleted = "COMPLETED"
	EnrollmentDropped   = "DROPPED"
)

type Enrollment struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID   uuid.UUID  `gorm:"column:company_id;type:uuid;not null;index"`
	EmployeeID  uuid.UUID  `gorm:"column:employee_id;type:uuid;not null;index"`
	CourseName  string     `gorm:"column:course_name;type:varchar(200);not null"`
	Status      string     `gorm:"column:status;type:varchar(20);not null"`
	EnrolledAt  time.Time  `gorm:"column:enrolled_at;not null"`
	CompletedAt *time.Time `gorm:"column:completed_at"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

type UserBadge struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID  uuid.UUID `gorm:"column:company_id;type:uuid;not null;index"`
	EmployeeID uuid.UUID `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_user_badges_employee_badge"`
	BadgeCode  string    `gorm:"column:badge_code;type:varchar(50);not null;uniqueIndex:uq_user_badges_employee_badge"`
	AwardedBy  uuid.UUID `gorm:"column:awarded_by;type:uuid;not null"`
	AwardedAt  time.Time `gorm:"column:awarded_at;not null"`
}

func (UserBadge) TableName() string {
	return "user_badges"
}
