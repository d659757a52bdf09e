package auth

type RegisterEmployerRequest struct {
	CompanyName string `json:"company_name" binding:"required,min=2,max=150"`
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type AuthResponse struct {
	ID         string `json:"id"`
	CompanyID  string `json:"company_id"`
	EmployeeID string `json:"employee_id,omitempty"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	UserType   string `json:"user_type"`
}

// TokenPair is what Login and RefreshToken hand back alongside the profile.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
