package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	paymentdomain "github.com/civicgrid/waterworks/internal/payment/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() paymentdomain.Repository {
	return &repo{}
}

const paymentColumns = `id, bill_id, consumer_id, amount_paise, mode, status, paid_at, remarks, created_at`

func (r *repo) Insert(ctx context.Context, db *gorm.DB, payment *paymentdomain.Payment) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO payments (
			id, bill_id, consumer_id, amount_paise, mode, status, paid_at, remarks, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		payment.ID,
		payment.BillID,
		payment.ConsumerID,
		payment.AmountPaise,
		payment.Mode,
		payment.Status,
		payment.PaidAt,
		payment.Remarks,
		payment.CreatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*paymentdomain.Payment, error) {
	var payment paymentdomain.Payment
	err := db.WithContext(ctx).Raw(
		`SELECT `+paymentColumns+` FROM payments WHERE id = ?`,
		id,
	).Scan(&payment).Error
	if err != nil {
		return nil, err
	}
	if payment.ID == 0 {
		return nil, nil
	}
	return &payment, nil
}

func (r *repo) ListByBill(ctx context.Context, db *gorm.DB, billID snowflake.ID) ([]paymentdomain.Payment, error) {
	var payments []paymentdomain.Payment
	err := db.WithContext(ctx).Raw(
		`SELECT `+paymentColumns+` FROM payments WHERE bill_id = ? ORDER BY paid_at ASC, id ASC`,
		billID,
	).Scan(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *repo) ListByConsumer(ctx context.Context, db *gorm.DB, consumerID snowflake.ID) ([]paymentdomain.Payment, error) {
	var payments []paymentdomain.Payment
	err := db.WithContext(ctx).Raw(
		`SELECT `+paymentColumns+` FROM payments WHERE consumer_id = ? ORDER BY paid_at DESC, id DESC`,
		consumerID,
	).Scan(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}
