package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Type distinguishes metered service points from flat-rate ones.
type Type string

const (
	TypeMetered   Type = "METERED"
	TypeUnmetered Type = "UNMETERED"
)

func (t Type) Valid() bool {
	switch t {
	case TypeMetered, TypeUnmetered:
		return true
	default:
		return false
	}
}

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

// Connection is a consumer's metered or unmetered service point, distinct
// from the consumer record itself.
type Connection struct {
	ID          snowflake.ID      `json:"id" gorm:"primaryKey"`
	ConsumerID  snowflake.ID      `json:"consumer_id" gorm:"not null;index"`
	MeterSerial string            `json:"meter_serial"`
	Type        Type              `json:"type" gorm:"type:text;not null"`
	Status      Status            `json:"status" gorm:"type:text;not null;index"`
	InstalledAt time.Time         `json:"installed_at" gorm:"not null"`
	Metadata    datatypes.JSONMap `json:"metadata,omitempty" gorm:"type:jsonb"`
	CreatedAt   time.Time         `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time         `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Connection) TableName() string { return "connections" }
