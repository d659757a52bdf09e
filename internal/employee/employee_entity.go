package employee

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusActive     = "ACTIVE"
	StatusInactive   = "INACTIVE"
	StatusTerminated = "TERMINATED"
)

type Employee struct {
	ID               uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID        uuid.UUID `gorm:"column:company_id;type:uuid;not null;index"`
	UserID           uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uq_employees_user"`
	EmployeeNumber   string    `gorm:"column:employee_number;type:varchar(30);not null"`
	FullName         string    `gorm:"column:full_name;type:varchar(150);not null"`
	Email            string    `gorm:"column:email;type:varchar(255);not null"`
	Phone            string    `gorm:"column:phone;type:varchar(30)"`
	Department       string    `gorm:"column:department;type:varchar(100)"`
	Designation      string    `gorm:"column:designation;type:varchar(100)"`
	HireDate         time.Time `gorm:"column:hire_date;type:date;not null"`
	EmploymentStatus string    `gorm:"column:employment_status;type:varchar(20);not null;default:ACTIVE"`
	CreatedAt        time.Time `gorm:"column:created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
}

func (Employee) TableName() string {
	return "employees"
}
