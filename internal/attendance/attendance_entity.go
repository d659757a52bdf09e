package attendance

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPresent = "PRESENT"
	StatusAbsent  = "ABSENT"
	StatusLate    = "LATE"
	StatusHalfDay = "HALF_DAY"

	SourceManual = "MANUAL"
	SourceClock  = "CLOCK"
)

var Statuses = []string{StatusPresent, StatusAbsent, StatusLate, StatusHalfDay}

type Attendance struct {
	ID             uuid.UUID    `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID      uuid.UUID    `gorm:"column:company_id;type:uuid;not null;index"`
	EmployeeID     uuid.UUID    `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_attendance_employee_date,priority:1"`
	AttendanceDate time.Time    `gorm:"column:attendance_date;type:date;not null;uniqueIndex:uq_attendance_employee_date,priority:2"`
	ClockIn        *time.Time   `gorm:"column:clock_in"`
	ClockOut       *time.Time   `gorm:"column:clock_out"`
	WorkingHours   float64      `gorm:"column:working_hours;not null;default:0"`
	OvertimeHours  float64      `gorm:"column:overtime_hours;not null;default:0"`
	Latitude       *float64     `gorm:"column:latitude"`
	Longitude      *float64     `gorm:"column:longitude"`
	Status         string       `gorm:"column:status;type:varchar(20);not null;default:PRESENT"`
	Source         string       `gorm:"column:source;type:varchar(20);not null;default:MANUAL"`
	Notes          *string      `gorm:"column:notes;type:text"`
	CreatedAt      time.Time    `gorm:"column:created_at"`
	UpdatedAt      time.Time    `gorm:"column:updated_at"`
	Employee       *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (Attendance) TableName() string {
	return "attendances"
}

type EmployeeRef struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID  uuid.UUID `gorm:"column:company_id;type:uuid"`
	FullName   string    `gorm:"column:full_name"`
	Department string    `gorm:"column:department"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
