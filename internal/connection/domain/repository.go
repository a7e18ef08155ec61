package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, connection *Connection) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Connection, error)
	ListByConsumer(ctx context.Context, db *gorm.DB, consumerID snowflake.ID) ([]Connection, error)
	Update(ctx context.Context, db *gorm.DB, connection *Connection) error
}
