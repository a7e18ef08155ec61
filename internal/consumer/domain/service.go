package domain

import (
	"context"
	"errors"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Consumer, error)
	List(ctx context.Context, filter ListFilter) ([]Consumer, error)
	Get(ctx context.Context, id string) (*Consumer, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Consumer, error)
}

type CreateRequest struct {
	Name     string         `json:"name"`
	Address  string         `json:"address"`
	Phone    string         `json:"phone"`
	Category string         `json:"category"`
	Metadata map[string]any `json:"metadata"`
}

type UpdateRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	Status  *string `json:"status"`
}

type ListFilter struct {
	Category string
	Status   string
}

var (
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidAddress  = errors.New("invalid_address")
	ErrInvalidCategory = errors.New("invalid_category")
	ErrInvalidStatus   = errors.New("invalid_status")
	ErrInvalidID       = errors.New("invalid_id")
	ErrNotFound        = errors.New("not_found")
)
