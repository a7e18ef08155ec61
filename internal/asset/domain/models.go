package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Status string

const (
	StatusOperational Status = "OPERATIONAL"
	StatusDegraded    Status = "DEGRADED"
	StatusRetired     Status = "RETIRED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusOperational, StatusDegraded, StatusRetired:
		return true
	default:
		return false
	}
}

// Asset is a maintained piece of utility equipment: a pump, a chlorinator,
// a flow meter. Network entities track topology; assets track upkeep.
type Asset struct {
	ID             snowflake.ID `json:"id" gorm:"primaryKey"`
	Name           string       `json:"name" gorm:"not null"`
	Type           string       `json:"type" gorm:"not null"`
	Location       string       `json:"location"`
	Status         Status       `json:"status" gorm:"type:text;not null"`
	CommissionedAt time.Time    `json:"commissioned_at"`
	CreatedAt      time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt      time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Asset) TableName() string { return "assets" }
