package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, tariff *Tariff, slabs []TariffSlab) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Tariff, error)
	List(ctx context.Context, db *gorm.DB, category Category) ([]Tariff, error)
	ListSlabs(ctx context.Context, db *gorm.DB, tariffID snowflake.ID) ([]TariffSlab, error)
	FindEffective(ctx context.Context, db *gorm.DB, category Category, asOf time.Time) (*Tariff, error)
	SetActive(ctx context.Context, db *gorm.DB, id snowflake.ID, active bool, now time.Time) error
}
