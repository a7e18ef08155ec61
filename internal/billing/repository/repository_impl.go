package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	billingdomain "github.com/civicgrid/waterworks/internal/billing/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() billingdomain.Repository {
	return &repo{}
}

const billColumns = `id, consumer_id, connection_id, tariff_id, bill_month, bill_date, due_date,
	 previous_reading, current_reading, consumption_liters, amount_paise, paid_paise, status,
	 created_at, updated_at`

func (r *repo) Insert(ctx context.Context, db *gorm.DB, bill *billingdomain.Bill) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO bills (
			id, consumer_id, connection_id, tariff_id, bill_month, bill_date, due_date,
			previous_reading, current_reading, consumption_liters, amount_paise, paid_paise, status,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		bill.ID,
		bill.ConsumerID,
		bill.ConnectionID,
		bill.TariffID,
		bill.BillMonth,
		bill.BillDate,
		bill.DueDate,
		bill.PreviousReading,
		bill.CurrentReading,
		bill.ConsumptionLiters,
		bill.AmountPaise,
		bill.PaidPaise,
		bill.Status,
		bill.CreatedAt,
		bill.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*billingdomain.Bill, error) {
	var bill billingdomain.Bill
	err := db.WithContext(ctx).Raw(
		`SELECT `+billColumns+` FROM bills WHERE id = ?`,
		id,
	).Scan(&bill).Error
	if err != nil {
		return nil, err
	}
	if bill.ID == 0 {
		return nil, nil
	}
	return &bill, nil
}

func (r *repo) FindByConnectionMonth(ctx context.Context, db *gorm.DB, connectionID snowflake.ID, billMonth string) (*billingdomain.Bill, error) {
	var bill billingdomain.Bill
	err := db.WithContext(ctx).Raw(
		`SELECT `+billColumns+` FROM bills WHERE connection_id = ? AND bill_month = ? LIMIT 1`,
		connectionID,
		billMonth,
	).Scan(&bill).Error
	if err != nil {
		return nil, err
	}
	if bill.ID == 0 {
		return nil, nil
	}
	return &bill, nil
}

func (r *repo) ListByConsumer(ctx context.Context, db *gorm.DB, consumerID snowflake.ID) ([]billingdomain.Bill, error) {
	var bills []billingdomain.Bill
	err := db.WithContext(ctx).Raw(
		`SELECT `+billColumns+` FROM bills WHERE consumer_id = ? ORDER BY bill_date DESC, id DESC`,
		consumerID,
	).Scan(&bills).Error
	if err != nil {
		return nil, err
	}
	return bills, nil
}

func (r *repo) ListByConnection(ctx context.Context, db *gorm.DB, connectionID snowflake.ID) ([]billingdomain.Bill, error) {
	var bills []billingdomain.Bill
	err := db.WithContext(ctx).Raw(
		`SELECT `+billColumns+` FROM bills WHERE connection_id = ? ORDER BY bill_date DESC, id DESC`,
		connectionID,
	).Scan(&bills).Error
	if err != nil {
		return nil, err
	}
	return bills, nil
}

func (r *repo) UpdatePaid(ctx context.Context, db *gorm.DB, id snowflake.ID, expectedPaidPaise, newPaidPaise int64, status billingdomain.Status, now time.Time) (bool, error) {
	res := db.WithContext(ctx).Exec(
		`UPDATE bills SET paid_paise = ?, status = ?, updated_at = ?
		 WHERE id = ? AND paid_paise = ?`,
		newPaidPaise,
		status,
		now,
		id,
		expectedPaidPaise,
	)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repo) MarkOverdue(ctx context.Context, db *gorm.DB, now time.Time) (int64, error) {
	res := db.WithContext(ctx).Exec(
		`UPDATE bills SET status = ?, updated_at = ?
		 WHERE due_date < ? AND paid_paise < amount_paise AND status IN (?, ?)`,
		billingdomain.StatusOverdue,
		now,
		now,
		billingdomain.StatusPending,
		billingdomain.StatusPartiallyPaid,
	)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
