package domain

import (
	"context"
	"errors"
)

type Service interface {
	// Apply records a payment against a bill and advances the bill's paid
	// amount and status atomically. Partial payments are allowed; paying
	// past the outstanding balance is not.
	Apply(ctx context.Context, req ApplyRequest) (*ApplyResponse, error)

	Get(ctx context.Context, id string) (*Payment, error)
	ListByBill(ctx context.Context, billID string) ([]Payment, error)
	ListByConsumer(ctx context.Context, consumerID string) ([]Payment, error)
}

type ApplyRequest struct {
	BillID      string `json:"bill_id"`
	AmountPaise int64  `json:"amount_paise"`
	Mode        string `json:"mode"`
	Remarks     string `json:"remarks"`
}

type ApplyResponse struct {
	Payment        *Payment `json:"payment"`
	BillStatus     string   `json:"bill_status"`
	PaidPaise      int64    `json:"paid_paise"`
	RemainingPaise int64    `json:"remaining_paise"`
}

var (
	ErrInvalidID     = errors.New("invalid_id")
	ErrBillNotFound  = errors.New("bill_not_found")
	ErrInvalidAmount = errors.New("invalid_amount")
	ErrInvalidMode   = errors.New("invalid_mode")
	ErrNotFound      = errors.New("not_found")

	// ErrBillSettled rejects payments against a bill already paid in full.
	ErrBillSettled = errors.New("bill_settled")

	// ErrOverpayment rejects amounts exceeding the outstanding balance;
	// credit balances are not modeled.
	ErrOverpayment = errors.New("overpayment")

	// ErrConcurrentUpdate means another payment advanced the bill between
	// read and write. The caller retries with fresh state.
	ErrConcurrentUpdate = errors.New("concurrent_update")
)
