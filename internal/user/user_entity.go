package user

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeEmployer = "EMPLOYER"
	TypeEmployee = "EMPLOYEE"
)

// User is the login credential. Employees own exactly one; employers have no
// employee profile.
type User struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID uuid.UUID `gorm:"column:company_id;type:uuid;not null;index"`
	Name      string    `gorm:"column:name;type:varchar(150);not null"`
	Email     string    `gorm:"column:email;type:varchar(255);not null;uniqueIndex:uq_users_email"`
	Password  string    `gorm:"column:password;type:varchar(255);not null"`
	UserType  string    `gorm:"column:user_type;type:varchar(20);not null"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (User) TableName() string {
	return "users"
}
