package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, bill *Bill) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Bill, error)
	FindByConnectionMonth(ctx context.Context, db *gorm.DB, connectionID snowflake.ID, billMonth string) (*Bill, error)
	ListByConsumer(ctx context.Context, db *gorm.DB, consumerID snowflake.ID) ([]Bill, error)
	ListByConnection(ctx context.Context, db *gorm.DB, connectionID snowflake.ID) ([]Bill, error)

	// UpdatePaid applies a compare-and-swap on paid_paise: the row is only
	// written when the persisted value still matches expectedPaidPaise.
	// Reports whether the swap won.
	UpdatePaid(ctx context.Context, db *gorm.DB, id snowflake.ID, expectedPaidPaise, newPaidPaise int64, status Status, now time.Time) (bool, error)

	// MarkOverdue bulk-updates bills past due with outstanding balance.
	MarkOverdue(ctx context.Context, db *gorm.DB, now time.Time) (int64, error)
}
