package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Mode is the settlement channel a payment arrived through.
type Mode string

const (
	ModeCash       Mode = "CASH"
	ModeUPI        Mode = "UPI"
	ModeCard       Mode = "CARD"
	ModeNetBanking Mode = "NETBANKING"
	ModeCheque     Mode = "CHEQUE"
)

func (m Mode) Valid() bool {
	switch m {
	case ModeCash, ModeUPI, ModeCard, ModeNetBanking, ModeCheque:
		return true
	default:
		return false
	}
}

type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusFailed  Status = "FAILED"
	StatusPending Status = "PENDING"
)

// Payment is an immutable ledger row. A payment is only written after the
// bill's paid amount has been advanced in the same transaction, so the sum
// of SUCCESS payments for a bill always equals the bill's paid_paise.
type Payment struct {
	ID          snowflake.ID `json:"id" gorm:"primaryKey"`
	BillID      snowflake.ID `json:"bill_id" gorm:"not null;index"`
	ConsumerID  snowflake.ID `json:"consumer_id" gorm:"not null;index"`
	AmountPaise int64        `json:"amount_paise" gorm:"not null"`
	Mode        Mode         `json:"mode" gorm:"type:text;not null"`
	Status      Status       `json:"status" gorm:"type:text;not null"`
	PaidAt      time.Time    `json:"paid_at" gorm:"not null"`
	Remarks     string       `json:"remarks"`
	CreatedAt   time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Payment) TableName() string { return "payments" }
