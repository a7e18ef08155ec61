package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, consumer *Consumer) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Consumer, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]Consumer, error)
	Update(ctx context.Context, db *gorm.DB, consumer *Consumer) error
}
