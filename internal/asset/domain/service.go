package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	Create(ctx context.Context, req Request) (*Asset, error)
	List(ctx context.Context) ([]*Asset, error)
	Get(ctx context.Context, id string) (*Asset, error)
	Update(ctx context.Context, id string, req Request) (*Asset, error)
	Delete(ctx context.Context, id string) error
}

type Request struct {
	Name           string    `json:"name"`
	Type           string    `json:"type"`
	Location       string    `json:"location"`
	Status         string    `json:"status"`
	CommissionedAt time.Time `json:"commissioned_at"`
}

var (
	ErrInvalidID     = errors.New("invalid_id")
	ErrInvalidName   = errors.New("invalid_name")
	ErrInvalidType   = errors.New("invalid_type")
	ErrInvalidStatus = errors.New("invalid_status")
	ErrNotFound      = errors.New("not_found")
)
