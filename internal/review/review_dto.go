package review

import "time"

type CreateReviewRequest struct {
	EmployeeID    string  `json:"employee_id" binding:"required"`
	ReviewerID    string  `json:"reviewer_id" binding:"required"`
	ReviewCycleID string  `json:"review_cycle_id" binding:"required,max=50"`
	Summary       *string `json:"summary"`
}

type UpdateReviewStatusRequest struct {
	Status  string  `json:"status" binding:"required"`
	Summary *string `json:"summary"`
}

type AddManagerNoteRequest struct {
	Note string `json:"note" binding:"required,max=2000"`
}

type AddGoalRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description"`
	Progress    int    `json:"progress" binding:"gte=0,lte=100"`
	Status      string `json:"status"`
}

// ReviewFilter narrows a listing. Participant matches either side of the
// review and is how employees see their own.
type ReviewFilter struct {
	EmployeeID  string
	ReviewerID  string
	Status      string
	Participant string
}

type GoalResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Progress    int    `json:"progress"`
	Status      string `json:"status"`
}

type ManagerNoteResponse struct {
	AuthorID  string    `json:"author_id"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

type ReviewResponse struct {
	ID            string                `json:"id"`
	CompanyID     string                `json:"company_id"`
	EmployeeID    string                `json:"employee_id"`
	ReviewerID    string                `json:"reviewer_id"`
	ReviewCycleID string                `json:"review_cycle_id"`
	Status        string                `json:"status"`
	Summary       *string               `json:"summary,omitempty"`
	ManagerReview []ManagerNoteResponse `json:"manager_review"`
	Goals         []GoalResponse        `json:"goals"`
}
