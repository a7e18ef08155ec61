package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Connection, error)
	List(ctx context.Context, consumerID string) ([]Connection, error)
	Get(ctx context.Context, id string) (*Connection, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Connection, error)
}

type CreateRequest struct {
	ConsumerID  string         `json:"consumer_id"`
	MeterSerial string         `json:"meter_serial"`
	Type        string         `json:"type"`
	InstalledAt time.Time      `json:"installed_at"`
	Metadata    map[string]any `json:"metadata"`
}

type UpdateRequest struct {
	MeterSerial *string `json:"meter_serial"`
	Status      *string `json:"status"`
}

var (
	ErrInvalidConsumer    = errors.New("invalid_consumer")
	ErrInvalidType        = errors.New("invalid_type")
	ErrInvalidMeterSerial = errors.New("invalid_meter_serial")
	ErrInvalidStatus      = errors.New("invalid_status")
	ErrInvalidID          = errors.New("invalid_id")
	ErrNotFound           = errors.New("not_found")
)
