package document

import "time"

type CreateDocumentRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	Title      string `json:"title" binding:"required,max=200"`
	Category   string `json:"category" binding:"required"`
	FileURL    string `json:"file_url" binding:"required,url"`
}

type DocumentResponse struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employee_id"`
	Title      string    `json:"title"`
	Category   string    `json:"category"`
	FileURL    string    `json:"file_url"`
	UploadedBy string    `json:"uploaded_by"`
	CreatedAt  time.Time `json:"created_at"`
}
