package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	tariffdomain "github.com/civicgrid/waterworks/internal/tariff/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() tariffdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, tariff *tariffdomain.Tariff, slabs []tariffdomain.TariffSlab) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			`INSERT INTO tariffs (id, category, name, effective_from, active, metadata, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			tariff.ID,
			tariff.Category,
			tariff.Name,
			tariff.EffectiveFrom,
			tariff.Active,
			tariff.Metadata,
			tariff.CreatedAt,
			tariff.UpdatedAt,
		).Error; err != nil {
			return err
		}
		for _, slab := range slabs {
			if err := tx.Exec(
				`INSERT INTO tariff_slabs (id, tariff_id, start_liters, end_liters, rate_per_kl_paise, created_at)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				slab.ID,
				slab.TariffID,
				slab.StartLiters,
				slab.EndLiters,
				slab.RatePerKLPaise,
				slab.CreatedAt,
			).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*tariffdomain.Tariff, error) {
	var tariff tariffdomain.Tariff
	err := db.WithContext(ctx).Raw(
		`SELECT id, category, name, effective_from, active, metadata, created_at, updated_at
		 FROM tariffs WHERE id = ?`,
		id,
	).Scan(&tariff).Error
	if err != nil {
		return nil, err
	}
	if tariff.ID == 0 {
		return nil, nil
	}
	return &tariff, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, category tariffdomain.Category) ([]tariffdomain.Tariff, error) {
	var items []tariffdomain.Tariff
	query := db.WithContext(ctx)
	var err error
	if category != "" {
		err = query.Raw(
			`SELECT id, category, name, effective_from, active, metadata, created_at, updated_at
			 FROM tariffs WHERE category = ? ORDER BY effective_from DESC, id DESC`,
			category,
		).Scan(&items).Error
	} else {
		err = query.Raw(
			`SELECT id, category, name, effective_from, active, metadata, created_at, updated_at
			 FROM tariffs ORDER BY category ASC, effective_from DESC, id DESC`,
		).Scan(&items).Error
	}
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ListSlabs(ctx context.Context, db *gorm.DB, tariffID snowflake.ID) ([]tariffdomain.TariffSlab, error) {
	var slabs []tariffdomain.TariffSlab
	err := db.WithContext(ctx).Raw(
		`SELECT id, tariff_id, start_liters, end_liters, rate_per_kl_paise, created_at
		 FROM tariff_slabs WHERE tariff_id = ? ORDER BY start_liters ASC`,
		tariffID,
	).Scan(&slabs).Error
	if err != nil {
		return nil, err
	}
	return slabs, nil
}

func (r *repo) FindEffective(ctx context.Context, db *gorm.DB, category tariffdomain.Category, asOf time.Time) (*tariffdomain.Tariff, error) {
	var tariff tariffdomain.Tariff
	err := db.WithContext(ctx).Raw(
		`SELECT id, category, name, effective_from, active, metadata, created_at, updated_at
		 FROM tariffs
		 WHERE category = ? AND active = ? AND effective_from <= ?
		 ORDER BY effective_from DESC, id DESC
		 LIMIT 1`,
		category,
		true,
		asOf,
	).Scan(&tariff).Error
	if err != nil {
		return nil, err
	}
	if tariff.ID == 0 {
		return nil, nil
	}
	return &tariff, nil
}

func (r *repo) SetActive(ctx context.Context, db *gorm.DB, id snowflake.ID, active bool, now time.Time) error {
	return db.WithContext(ctx).Exec(
		`UPDATE tariffs SET active = ?, updated_at = ? WHERE id = ?`,
		active,
		now,
		id,
	).Error
}
