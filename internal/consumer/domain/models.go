package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	tariffdomain "github.com/civicgrid/waterworks/internal/tariff/domain"
	"gorm.io/datatypes"
)

type Status string

const (
	StatusActive       Status = "ACTIVE"
	StatusDisconnected Status = "DISCONNECTED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusDisconnected:
		return true
	default:
		return false
	}
}

type Consumer struct {
	ID        snowflake.ID          `json:"id" gorm:"primaryKey"`
	Name      string                `json:"name" gorm:"not null"`
	Address   string                `json:"address" gorm:"not null"`
	Phone     string                `json:"phone"`
	Category  tariffdomain.Category `json:"category" gorm:"type:text;not null;index"`
	Status    Status                `json:"status" gorm:"type:text;not null;index"`
	Metadata  datatypes.JSONMap     `json:"metadata,omitempty" gorm:"type:jsonb"`
	CreatedAt time.Time             `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time             `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Consumer) TableName() string { return "consumers" }
