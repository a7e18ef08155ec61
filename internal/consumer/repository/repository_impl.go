package repository

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	consumerdomain "github.com/civicgrid/waterworks/internal/consumer/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() consumerdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, consumer *consumerdomain.Consumer) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO consumers (id, name, address, phone, category, status, metadata, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		consumer.ID,
		consumer.Name,
		consumer.Address,
		consumer.Phone,
		consumer.Category,
		consumer.Status,
		consumer.Metadata,
		consumer.CreatedAt,
		consumer.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*consumerdomain.Consumer, error) {
	var consumer consumerdomain.Consumer
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, address, phone, category, status, metadata, created_at, updated_at
		 FROM consumers WHERE id = ?`,
		id,
	).Scan(&consumer).Error
	if err != nil {
		return nil, err
	}
	if consumer.ID == 0 {
		return nil, nil
	}
	return &consumer, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter consumerdomain.ListFilter) ([]consumerdomain.Consumer, error) {
	query := `SELECT id, name, address, phone, category, status, metadata, created_at, updated_at FROM consumers`
	clauses := []string{}
	args := []any{}
	if filter.Category != "" {
		clauses = append(clauses, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.Status != "" {
		clauses = append(clauses, "status = ?")
		args = append(args, filter.Status)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY name ASC"

	var items []consumerdomain.Consumer
	if err := db.WithContext(ctx).Raw(query, args...).Scan(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, consumer *consumerdomain.Consumer) error {
	return db.WithContext(ctx).Exec(
		`UPDATE consumers SET name = ?, address = ?, phone = ?, status = ?, updated_at = ? WHERE id = ?`,
		consumer.Name,
		consumer.Address,
		consumer.Phone,
		consumer.Status,
		consumer.UpdatedAt,
		consumer.ID,
	).Error
}
