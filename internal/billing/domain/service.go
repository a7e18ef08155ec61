package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Bill, error)
	Get(ctx context.Context, id string) (*Bill, error)
	ListByConsumer(ctx context.Context, consumerID string) ([]Bill, error)
	ListByConnection(ctx context.Context, connectionID string) ([]Bill, error)

	// Preview prices a consumption volume without persisting anything,
	// using the tariff effective for the category as of the given date.
	Preview(ctx context.Context, req PreviewRequest) (*PreviewResponse, error)

	// SweepOverdue flips unpaid and underpaid bills past their due date to
	// OVERDUE. Returns the number of bills updated; idempotent.
	SweepOverdue(ctx context.Context, now time.Time) (int64, error)
}

type CreateRequest struct {
	ConsumerID      string    `json:"consumer_id"`
	ConnectionID    string    `json:"connection_id"`
	BillMonth       string    `json:"bill_month"`
	BillDate        time.Time `json:"bill_date"`
	DueDate         time.Time `json:"due_date"`
	PreviousReading int64     `json:"previous_reading"`
	CurrentReading  int64     `json:"current_reading"`
}

type PreviewRequest struct {
	Category          string    `json:"category"`
	ConsumptionLiters int64     `json:"consumption_liters"`
	AsOf              time.Time `json:"as_of"`
}

type PreviewResponse struct {
	TariffID          string `json:"tariff_id"`
	ConsumptionLiters int64  `json:"consumption_liters"`
	AmountPaise       int64  `json:"amount_paise"`
}

var (
	ErrInvalidConsumer   = errors.New("invalid_consumer")
	ErrInvalidConnection = errors.New("invalid_connection")
	ErrInvalidBillMonth  = errors.New("invalid_bill_month")
	ErrInvalidBillDate   = errors.New("invalid_bill_date")
	ErrInvalidDueDate    = errors.New("invalid_due_date")
	ErrInvalidReading    = errors.New("invalid_reading")
	ErrInvalidID         = errors.New("invalid_id")
	ErrNotFound          = errors.New("not_found")

	// ErrDuplicateBill means a bill already exists for the connection and
	// bill month; billing cycles run once per connection per month.
	ErrDuplicateBill = errors.New("duplicate_bill")
)
