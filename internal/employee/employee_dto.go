package employee

type CreateEmployeeRequest struct {
	FullName       string `json:"full_name" binding:"required,max=150"`
	Email          string `json:"email" binding:"required,email"`
	EmployeeNumber string `json:"employee_number" binding:"omitempty,max=30"`
	Phone          string `json:"phone" binding:"omitempty,max=30"`
	Department     string `json:"department" binding:"omitempty,max=100"`
	Designation    string `json:"designation" binding:"omitempty,max=100"`
	HireDate       string `json:"hire_date" binding:"required"`
}

type UpdateEmployeeRequest struct {
	FullName         string `json:"full_name" binding:"required,max=150"`
	Phone            string `json:"phone" binding:"omitempty,max=30"`
	Department       string `json:"department" binding:"omitempty,max=100"`
	Designation      string `json:"designation" binding:"omitempty,max=100"`
	EmploymentStatus string `json:"employment_status" binding:"omitempty,oneof=ACTIVE INACTIVE TERMINATED"`
}

type EmployeeFilter struct {
	Department string
	Status     string
}

type EmployeeResponse struct {
	ID               string `json:"id"`
	CompanyID        string `json:"company_id"`
	UserID           string `json:"user_id"`
	EmployeeNumber   string `json:"employee_number"`
	FullName         string `json:"full_name"`
	Email            string `json:"email"`
	Phone            string `json:"phone,omitempty"`
	Department       string `json:"department,omitempty"`
	Designation      string `json:"designation,omitempty"`
	HireDate         string `json:"hire_date"`
	EmploymentStatus string `json:"employment_status"`
}

// CreateEmployeeResponse carries the one-time password of the new login.
type CreateEmployeeResponse struct {
	EmployeeResponse
	TemporaryPassword string `json:"temporary_password"`
}

type EmployeeOptionResponse struct {
	ID             string `json:"id"`
	EmployeeNumber string `json:"employee_number"`
	FullName       string `json:"full_name"`
}

type DeletedRows struct {
	Table   string `json:"table"`
	Deleted int64  `json:"deleted"`
}

type HardDeleteResponse struct {
	EmployeeID string        `json:"employee_id"`
	Deleted    []DeletedRows `json:"deleted"`
}
