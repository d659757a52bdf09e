package leave

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// ActiveStatuses are the statuses that block an overlapping request.
var ActiveStatuses = []string{StatusPending, StatusApproved}

var LeaveTypes = []string{"ANNUAL", "SICK", "PERSONAL", "MATERNITY", "PATERNITY", "UNPAID"}

type Leave struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID  uuid.UUID `gorm:"column:company_id;type:uuid;not null;index:idx_leaves_company_status"`
	EmployeeID uuid.UUID `gorm:"column:employee_id;type:uuid;not null;index"`

	LeaveType string    `gorm:"column:leave_type;type:varchar(20);not null"`
	StartDate time.Time `gorm:"column:start_date;type:date;not null"`
	EndDate   time.Time `gorm:"column:end_date;type:date;not null"`
	TotalDays int       `gorm:"column:total_days;not null"`
	Reason    string    `gorm:"column:reason;type:text;not null"`

	Status        string     `gorm:"column:status;type:varchar(20);not null;default:PENDING;index:idx_leaves_company_status"`
	CreatedBy     uuid.UUID  `gorm:"column:created_by;type:uuid;not null"`
	ApprovedBy    *uuid.UUID `gorm:"column:approved_by;type:uuid"`
	ApprovedAt    *time.Time `gorm:"column:approved_at"`
	ApproverNotes *string    `gorm:"column:approver_notes;type:text"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Leave) TableName() string {
	return "leaves"
}

// EmployeeRef is the slice of an employee row leave needs for notifications.
type EmployeeRef struct {
	ID        uuid.UUID `gorm:"column:id"`
	CompanyID uuid.UUID `gorm:"column:company_id"`
	FullName  string    `gorm:"column:full_name"`
	Email     string    `gorm:"column:email"`
}
