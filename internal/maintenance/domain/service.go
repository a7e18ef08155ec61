package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Task, error)
	List(ctx context.Context, status string) ([]*Task, error)
	ListByAsset(ctx context.Context, assetID string) ([]*Task, error)
	Get(ctx context.Context, id string) (*Task, error)

	// UpdateStatus moves a task through its lifecycle. COMPLETED and
	// CANCELLED are terminal; completing stamps CompletedAt.
	UpdateStatus(ctx context.Context, id string, status string) (*Task, error)
	Delete(ctx context.Context, id string) error
}

type CreateRequest struct {
	AssetID      string    `json:"asset_id"`
	Description  string    `json:"description"`
	ScheduledFor time.Time `json:"scheduled_for"`
}

var (
	ErrInvalidID          = errors.New("invalid_id")
	ErrInvalidAsset       = errors.New("invalid_asset")
	ErrInvalidDescription = errors.New("invalid_description")
	ErrInvalidSchedule    = errors.New("invalid_schedule")
	ErrInvalidStatus      = errors.New("invalid_status")
	ErrNotFound           = errors.New("not_found")

	// ErrTerminalStatus rejects transitions out of COMPLETED or CANCELLED.
	ErrTerminalStatus = errors.New("terminal_status")
)
