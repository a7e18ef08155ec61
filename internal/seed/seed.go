package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	tariffdomain "github.com/civicgrid/waterworks/internal/tariff/domain"
	"gorm.io/gorm"
)

// defaultEffectiveFrom predates any plausible bill so the seeded schedules
// resolve for historical months too.
var defaultEffectiveFrom = time.Date(2020, time.April, 1, 0, 0, 0, 0, time.UTC)

type slabSpec struct {
	start int64
	end   *int64
	rate  int64
}

func liters(v int64) *int64 { return &v }

// defaultSchedules holds the statutory progressive schedules, priced in
// paise per kiloliter.
var defaultSchedules = map[tariffdomain.Category][]slabSpec{
	tariffdomain.CategoryDomestic: {
		{0, liters(15000), 500},
		{15001, liters(30000), 1000},
		{30001, nil, 2000},
	},
	tariffdomain.CategoryCommercial: {
		{0, liters(10000), 1500},
		{10001, liters(50000), 2500},
		{50001, nil, 4000},
	},
	tariffdomain.CategoryIndustrial: {
		{0, liters(25000), 3000},
		{25001, nil, 5000},
	},
	tariffdomain.CategoryInstitutional: {
		{0, liters(20000), 800},
		{20001, nil, 1600},
	},
}

// EnsureDefaultTariffs seeds one active tariff per consumer category for
// startup bootstrap. It is a no-op when any tariff already exists.
func EnsureDefaultTariffs(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.WithContext(ctx).Model(&tariffdomain.Tariff{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		now := time.Now().UTC()
		for _, category := range []tariffdomain.Category{
			tariffdomain.CategoryDomestic,
			tariffdomain.CategoryCommercial,
			tariffdomain.CategoryIndustrial,
			tariffdomain.CategoryInstitutional,
		} {
			if err := seedTariffTx(ctx, tx, node, category, defaultSchedules[category], now); err != nil {
				return err
			}
		}
		return nil
	})
}

func seedTariffTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, category tariffdomain.Category, specs []slabSpec, now time.Time) error {
	tariff := tariffdomain.Tariff{
		ID:            node.Generate(),
		Category:      category,
		Name:          "Default " + string(category) + " Tariff",
		EffectiveFrom: defaultEffectiveFrom,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := tx.WithContext(ctx).Create(&tariff).Error; err != nil {
		return err
	}

	for _, spec := range specs {
		slab := tariffdomain.TariffSlab{
			ID:             node.Generate(),
			TariffID:       tariff.ID,
			StartLiters:    spec.start,
			EndLiters:      spec.end,
			RatePerKLPaise: spec.rate,
			CreatedAt:      now,
		}
		if err := tx.WithContext(ctx).Create(&slab).Error; err != nil {
			return err
		}
	}
	return nil
}
