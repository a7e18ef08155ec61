package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	List(ctx context.Context, category string) ([]Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	Deactivate(ctx context.Context, id string) (*Response, error)

	// Resolve returns the most-recently-effective active tariff for the
	// category as of the given date, slabs included and validated.
	Resolve(ctx context.Context, category Category, asOf time.Time) (*Tariff, error)
}

type SlabRequest struct {
	StartLiters    int64  `json:"start_liters"`
	EndLiters      *int64 `json:"end_liters"`
	RatePerKLPaise int64  `json:"rate_per_kl_paise"`
}

type CreateRequest struct {
	Category      string         `json:"category"`
	Name          string         `json:"name"`
	EffectiveFrom time.Time      `json:"effective_from"`
	Slabs         []SlabRequest  `json:"slabs"`
	Metadata      map[string]any `json:"metadata"`
}

type SlabResponse struct {
	ID             string `json:"id"`
	StartLiters    int64  `json:"start_liters"`
	EndLiters      *int64 `json:"end_liters,omitempty"`
	RatePerKLPaise int64  `json:"rate_per_kl_paise"`
}

type Response struct {
	ID            string         `json:"id"`
	Category      Category       `json:"category"`
	Name          string         `json:"name"`
	EffectiveFrom time.Time      `json:"effective_from"`
	Active        bool           `json:"active"`
	Slabs         []SlabResponse `json:"slabs"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

var (
	ErrInvalidCategory      = errors.New("invalid_category")
	ErrInvalidName          = errors.New("invalid_name")
	ErrInvalidEffectiveFrom = errors.New("invalid_effective_from")
	ErrInvalidSlabs         = errors.New("invalid_slabs")
	ErrInvalidSlabRange     = errors.New("invalid_slab_range")
	ErrInvalidSlabRate      = errors.New("invalid_slab_rate")
	ErrInvalidID            = errors.New("invalid_id")
	ErrNotFound             = errors.New("not_found")

	// ErrNoTariff means no active schedule covers the billing date. Callers
	// must surface it rather than bill at a zero rate.
	ErrNoTariff = errors.New("no_tariff")

	// ErrCorruptSlabs flags persisted slab rows that fail validation at
	// resolve time. This is bad configuration data, not caller input.
	ErrCorruptSlabs = errors.New("corrupt_slabs")
)
