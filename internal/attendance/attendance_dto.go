package attendance

// ClockEventRequest records a full day at once. Times are HH:MM on the given
// date or RFC3339 timestamps.
type ClockEventRequest struct {
	EmployeeID string  `json:"employee_id" binding:"required"`
	Date       string  `json:"date" binding:"required"`
	CheckIn    *string `json:"check_in"`
	CheckOut   *string `json:"check_out"`
	Status     string  `json:"status"`
	Notes      *string `json:"notes" binding:"omitempty,max=1000"`
}

type ClockInRequest struct {
	Latitude  *float64 `json:"latitude" binding:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" binding:"omitempty,longitude"`
	Notes     *string  `json:"notes" binding:"omitempty,max=1000"`
}

type ClockOutRequest struct {
	Latitude  *float64 `json:"latitude" binding:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" binding:"omitempty,longitude"`
	Notes     *string  `json:"notes" binding:"omitempty,max=1000"`
}

// UpdateTimesRequest corrects a record. The attendance date never changes.
type UpdateTimesRequest struct {
	CheckIn  *string `json:"check_in"`
	CheckOut *string `json:"check_out"`
	Status   string  `json:"status"`
	Notes    *string `json:"notes" binding:"omitempty,max=1000"`
}

type AttendanceFilter struct {
	Date       string
	EmployeeID string
	Department string
}

type AttendanceResponse struct {
	ID             string   `json:"id"`
	CompanyID      string   `json:"company_id"`
	EmployeeID     string   `json:"employee_id"`
	EmployeeName   string   `json:"employee_name,omitempty"`
	Department     string   `json:"department,omitempty"`
	AttendanceDate string   `json:"attendance_date"`
	ClockIn        *string  `json:"clock_in,omitempty"`
	ClockOut       *string  `json:"clock_out,omitempty"`
	WorkingHours   float64  `json:"working_hours"`
	OvertimeHours  float64  `json:"overtime_hours"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
	Status         string   `json:"status"`
	Source         string   `json:"source"`
	Notes          *string  `json:"notes,omitempty"`
}

// QueryResult carries Degraded when the store could not be read and Items is
// empty for that reason rather than because nothing matched.
type QueryResult struct {
	Items    []AttendanceResponse
	Degraded bool
}
