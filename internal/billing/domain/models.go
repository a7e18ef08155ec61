package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Status string

const (
	StatusPending       Status = "PENDING"
	StatusPartiallyPaid Status = "PARTIALLY_PAID"
	StatusPaid          Status = "PAID"
	StatusOverdue       Status = "OVERDUE"
)

// Bill is one billing-cycle charge for a connection. Amount is computed from
// the resolved tariff at creation time and never recomputed, even if the
// tariff is later superseded. Only PaidPaise and Status mutate afterwards.
type Bill struct {
	ID                snowflake.ID `json:"id" gorm:"primaryKey"`
	ConsumerID        snowflake.ID `json:"consumer_id" gorm:"not null;index"`
	ConnectionID      snowflake.ID `json:"connection_id" gorm:"not null;index;uniqueIndex:uq_bills_connection_month"`
	TariffID          snowflake.ID `json:"tariff_id" gorm:"not null"`
	BillMonth         string       `json:"bill_month" gorm:"type:text;not null;uniqueIndex:uq_bills_connection_month"`
	BillDate          time.Time    `json:"bill_date" gorm:"not null"`
	DueDate           time.Time    `json:"due_date" gorm:"not null;index"`
	PreviousReading   int64        `json:"previous_reading" gorm:"not null"`
	CurrentReading    int64        `json:"current_reading" gorm:"not null"`
	ConsumptionLiters int64        `json:"consumption_liters" gorm:"not null"`
	AmountPaise       int64        `json:"amount_paise" gorm:"not null"`
	PaidPaise         int64        `json:"paid_paise" gorm:"not null;default:0"`
	Status            Status       `json:"status" gorm:"type:text;not null;index"`
	CreatedAt         time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt         time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Bill) TableName() string { return "bills" }

// StatusFor derives a bill's status from its paid and billed amounts. It is
// a pure function and is re-derived in full on every mutation rather than
// patched incrementally, so repeated application never drifts.
func StatusFor(paidPaise, amountPaise int64, dueDate, now time.Time) Status {
	if amountPaise > 0 && paidPaise >= amountPaise {
		return StatusPaid
	}
	if now.After(dueDate) && paidPaise < amountPaise {
		return StatusOverdue
	}
	if paidPaise > 0 {
		return StatusPartiallyPaid
	}
	return StatusPending
}
