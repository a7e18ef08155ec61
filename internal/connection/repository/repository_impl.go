package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	connectiondomain "github.com/civicgrid/waterworks/internal/connection/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() connectiondomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, connection *connectiondomain.Connection) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO connections (id, consumer_id, meter_serial, type, status, installed_at, metadata, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		connection.ID,
		connection.ConsumerID,
		connection.MeterSerial,
		connection.Type,
		connection.Status,
		connection.InstalledAt,
		connection.Metadata,
		connection.CreatedAt,
		connection.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*connectiondomain.Connection, error) {
	var connection connectiondomain.Connection
	err := db.WithContext(ctx).Raw(
		`SELECT id, consumer_id, meter_serial, type, status, installed_at, metadata, created_at, updated_at
		 FROM connections WHERE id = ?`,
		id,
	).Scan(&connection).Error
	if err != nil {
		return nil, err
	}
	if connection.ID == 0 {
		return nil, nil
	}
	return &connection, nil
}

func (r *repo) ListByConsumer(ctx context.Context, db *gorm.DB, consumerID snowflake.ID) ([]connectiondomain.Connection, error) {
	var items []connectiondomain.Connection
	err := db.WithContext(ctx).Raw(
		`SELECT id, consumer_id, meter_serial, type, status, installed_at, metadata, created_at, updated_at
		 FROM connections WHERE consumer_id = ? ORDER BY created_at ASC`,
		consumerID,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, connection *connectiondomain.Connection) error {
	return db.WithContext(ctx).Exec(
		`UPDATE connections SET meter_serial = ?, status = ?, updated_at = ? WHERE id = ?`,
		connection.MeterSerial,
		connection.Status,
		connection.UpdatedAt,
		connection.ID,
	).Error
}
