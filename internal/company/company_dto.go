package company

import "time"

type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type UpdateCompanyRequest struct {
	Name string `json:"name" binding:"required,min=2,max=150"`
}
