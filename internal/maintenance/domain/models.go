package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Status string

const (
	StatusScheduled  Status = "SCHEDULED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// Pending reports whether the task still needs work. Dashboard counts
// pending tasks.
func (s Status) Pending() bool {
	return s == StatusScheduled || s == StatusInProgress
}

type Task struct {
	ID           snowflake.ID `json:"id" gorm:"primaryKey"`
	AssetID      snowflake.ID `json:"asset_id" gorm:"not null;index"`
	Description  string       `json:"description" gorm:"not null"`
	ScheduledFor time.Time    `json:"scheduled_for" gorm:"not null"`
	Status       Status       `json:"status" gorm:"type:text;not null;index"`
	CompletedAt  *time.Time   `json:"completed_at,omitempty"`
	CreatedAt    time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Task) TableName() string { return "maintenance_tasks" }
