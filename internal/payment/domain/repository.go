package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, payment *Payment) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Payment, error)
	ListByBill(ctx context.Context, db *gorm.DB, billID snowflake.ID) ([]Payment, error)
	ListByConsumer(ctx context.Context, db *gorm.DB, consumerID snowflake.ID) ([]Payment, error)
}
