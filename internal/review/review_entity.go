package review

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	StatusNotStarted = "NOT_STARTED"
	StatusInProgress = "IN_PROGRESS"
	StatusSubmitted  = "SUBMITTED"
	StatusCompleted  = "COMPLETED"

	GoalOpen     = "OPEN"
	GoalAchieved = "ACHIEVED"
	GoalMissed   = "MISSED"
)

// nextStatus is the only forward step allowed from each status.
var nextStatus = map[string]string{
	StatusNotStarted: StatusInProgress,
	StatusInProgress: StatusSubmitted,
	StatusSubmitted:  StatusCompleted,
}

var GoalStatuses = []string{GoalOpen, GoalAchieved, GoalMissed}

type ManagerNote struct {
	AuthorID  string    `json:"author_id"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

type Review struct {
	ID            uuid.UUID                        `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID     uuid.UUID                        `gorm:"column:company_id;type:uuid;not null;index"`
	EmployeeID    uuid.UUID                        `gorm:"column:employee_id;type:uuid;not null;index"`
	ReviewerID    uuid.UUID                        `gorm:"column:reviewer_id;type:uuid;not null;index"`
	ReviewCycleID string                           `gorm:"column:review_cycle_id;type:varchar(50);not null"`
	Status        string                           `gorm:"column:status;type:varchar(20);not null;default:NOT_STARTED"`
	Summary       *string                          `gorm:"column:summary;type:text"`
	ManagerReview datatypes.JSONSlice[ManagerNote] `gorm:"column:manager_review"`
	Goals         []Goal                           `gorm:"foreignKey:ReviewID;references:ID"`
	CreatedAt     time.Time                        `gorm:"column:created_at"`
	UpdatedAt     time.Time                        `gorm:"column:updated_at"`
}

func (Review) TableName() string {
	return "reviews"
}

type Goal struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	ReviewID    uuid.UUID `gorm:"column:review_id;type:uuid;not null;index"`
	Title       string    `gorm:"column:title;type:varchar(200);not null"`
	Description string    `gorm:"column:description;type:text"`
	Progress    int       `gorm:"column:progress;not null;default:0"`
	Status      string    `gorm:"column:status;type:varchar(20);not null;default:OPEN"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (Goal) TableName() string {
	return "goals"
}
