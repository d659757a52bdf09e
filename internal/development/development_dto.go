package development

import "time"

type EnrollRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	CourseName string `json:"course_name" binding:"required,max=200"`
}

type AwardBadgeRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	BadgeCode  string `json:"badge_code" binding:"required"`
}

type EnrollmentResponse struct {
	ID          string     `json:"id"`
	EmployeeID  string     `json:"employee_id"`
	CourseName  string     `json:"course_name"`
	Status      string     `json:"status"`
	EnrolledAt  time.Time  `json:"enrolled_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

type BadgeResponse struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employee_id"`
	BadgeCode  string    `json:"badge_code"`
	AwardedBy  string    `json:"awarded_by"`
	AwardedAt  time.Time `json:"awarded_at"`
}

type ProgressResponse struct {
	EmployeeID  string               `json:"employee_id"`
	Enrollments []EnrollmentResponse `json:"enrollments"`
	Badges      []BadgeResponse      `json:"badges"`
}
