package migration

import (
	assetdomain "github.com/civicgrid/waterworks/internal/asset/domain"
	billingdomain "github.com/civicgrid/waterworks/internal/billing/domain"
	"github.com/civicgrid/waterworks/internal/config"
	connectiondomain "github.com/civicgrid/waterworks/internal/connection/domain"
	consumerdomain "github.com/civicgrid/waterworks/internal/consumer/domain"
	maintenancedomain "github.com/civicgrid/waterworks/internal/maintenance/domain"
	networkdomain "github.com/civicgrid/waterworks/internal/network/domain"
	paymentdomain "github.com/civicgrid/waterworks/internal/payment/domain"
	"github.com/civicgrid/waterworks/internal/seed"
	tariffdomain "github.com/civicgrid/waterworks/internal/tariff/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// Versioned SQL only targets postgres; local sqlite and mysql
			// installs sync the schema from the models instead.
			if err := conn.AutoMigrate(
				&tariffdomain.Tariff{},
				&tariffdomain.TariffSlab{},
				&consumerdomain.Consumer{},
				&connectiondomain.Connection{},
				&billingdomain.Bill{},
				&paymentdomain.Payment{},
				&networkdomain.Source{},
				&networkdomain.TreatmentPlant{},
				&networkdomain.Reservoir{},
				&networkdomain.Pipeline{},
				&networkdomain.Valve{},
				&assetdomain.Asset{},
				&maintenancedomain.Task{},
			); err != nil {
				return err
			}
		}

		if cfg.SeedTariffs {
			return seed.EnsureDefaultTariffs(conn)
		}
		return nil
	}),
)
