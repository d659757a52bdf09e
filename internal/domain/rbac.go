package domain

const (
	UserTypeEmployer = "EMPLOYER"
	UserTypeEmployee = "EMPLOYEE"
)

type EnforceRequest struct {
	UserType string `json:"user_type"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}

type PermissionResponse struct {
	Resource string `json:"resource"`
	Action   string `json:"action"`
}
