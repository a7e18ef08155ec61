package service

import (
	"context"

	billingdomain "github.com/civicgrid/waterworks/internal/billing/domain"
	consumerdomain "github.com/civicgrid/waterworks/internal/consumer/domain"
	dashboarddomain "github.com/civicgrid/waterworks/internal/dashboard/domain"
	maintenancedomain "github.com/civicgrid/waterworks/internal/maintenance/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
}

type Service struct {
	db  *gorm.DB
	log *zap.Logger
}

func New(p Params) dashboarddomain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("dashboard.service"),
	}
}

func (s *Service) Summary(ctx context.Context) (*dashboarddomain.Summary, error) {
	summary := &dashboarddomain.Summary{}

	if err := s.db.WithContext(ctx).Raw(
		`SELECT COUNT(*) FROM consumers`,
	).Scan(&summary.ConsumersTotal).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Raw(
		`SELECT COUNT(*) FROM consumers WHERE status = ?`,
		consumerdomain.StatusActive,
	).Scan(&summary.ConsumersActive).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Raw(
		`SELECT COALESCE(SUM(amount_paise), 0) FROM bills`,
	).Scan(&summary.BilledPaise).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Raw(
		`SELECT COALESCE(SUM(paid_paise), 0) FROM bills WHERE status = ?`,
		billingdomain.StatusPaid,
	).Scan(&summary.CollectedPaise).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Raw(
		`SELECT COALESCE(SUM(amount_paise - paid_paise), 0) FROM bills WHERE status IN (?, ?, ?)`,
		billingdomain.StatusPending,
		billingdomain.StatusPartiallyPaid,
		billingdomain.StatusOverdue,
	).Scan(&summary.OutstandingPaise).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Raw(
		`SELECT COUNT(*) FROM maintenance_tasks WHERE status IN (?, ?)`,
		maintenancedomain.StatusScheduled,
		maintenancedomain.StatusInProgress,
	).Scan(&summary.PendingMaintenance).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Raw(
		`SELECT COALESCE(SUM(capacity_mld), 0) FROM sources`,
	).Scan(&summary.SourceCapacityMLD).Error; err != nil {
		return nil, err
	}

	return summary, nil
}
