package document

import (
	"time"

	"github.com/google/uuid"
)

var Categories = []string{"CONTRACT", "IDENTITY", "CERTIFICATE", "PAYSLIP", "POLICY", "OTHER"}

type Document struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID  uuid.UUID `gorm:"column:company_id;type:uuid;not null;index"`
	EmployeeID uuid.UUID `gorm:"column:employee_id;type:uuid;not null;index"`
	Title      string    `gorm:"column:title;type:varchar(200);not null"`
	Category   string    `gorm:"column:category;type:varchar(30);not null"`
	FileURL    string    `gorm:"column:file_url;type:text;not null"`
	UploadedBy uuid.UUID `gorm:"column:uploaded_by;type:uuid;not null"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (Document) TableName() string {
	return "documents"
}
