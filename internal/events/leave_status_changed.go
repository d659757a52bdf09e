package events

import "time"

const (
	LeaveStatusChangedTopic = "hr.leave.status.v1"
	LeaveStatusChangedType  = "leave_status_changed"
)

type LeaveStatusChangedEvent struct {
	EventType     string    `json:"event_type"`
	LeaveID       string    `json:"leave_id"`
	CompanyID     string    `json:"company_id"`
	EmployeeID    string    `json:"employee_id"`
	EmployeeName  string    `json:"employee_name"`
	EmployeeEmail string    `json:"employee_email"`
	Status        string    `json:"status"`
	StartDate     string    `json:"start_date"`
	EndDate       string    `json:"end_date"`
	ApproverNotes string    `json:"approver_notes,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}
