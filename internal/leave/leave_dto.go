package leave

type CreateLeaveRequest struct {
	EmployeeID string `json:"employee_id"`
	LeaveType  string `json:"leave_type" binding:"required"`
	StartDate  string `json:"start_date" binding:"required"`
	EndDate    string `json:"end_date" binding:"required"`
	Reason     string `json:"reason" binding:"required,max=1000"`
}

type UpdateLeaveStatusRequest struct {
	Status        string  `json:"status" binding:"required"`
	ApproverNotes *string `json:"approver_notes" binding:"omitempty,max=1000"`
}

type LeaveFilter struct {
	Status     string
	EmployeeID string
}

type LeaveResponse struct {
	ID            string  `json:"id"`
	CompanyID     string  `json:"company_id"`
	EmployeeID    string  `json:"employee_id"`
	LeaveType     string  `json:"leave_type"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	TotalDays     int     `json:"total_days"`
	WorkingDays   int     `json:"working_days"`
	Reason        string  `json:"reason"`
	Status        string  `json:"status"`
	CreatedBy     string  `json:"created_by"`
	ApprovedBy    *string `json:"approved_by,omitempty"`
	ApprovedAt    *string `json:"approved_at,omitempty"`
	ApproverNotes *string `json:"approver_notes,omitempty"`
}
