package scheduler

import (
	"context"
	"errors"
	"time"

	billingdomain "github.com/civicgrid/waterworks/internal/billing/domain"
	"github.com/civicgrid/waterworks/internal/clock"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var ErrInvalidConfig = errors.New("scheduler: invalid configuration")

type Params struct {
	fx.In

	Log        *zap.Logger
	Clock      clock.Clock
	BillingSvc billingdomain.Service
	Config     Config `optional:"true"`
}

// Scheduler drives the overdue sweep on a fixed interval. Each run is
// bounded by its own timeout; a failed run is logged and retried on the
// next tick.
type Scheduler struct {
	log        *zap.Logger
	cfg        Config
	clock      clock.Clock
	billingSvc billingdomain.Service
}

func New(p Params) (*Scheduler, error) {
	if p.Log == nil || p.Clock == nil || p.BillingSvc == nil {
		return nil, ErrInvalidConfig
	}
	return &Scheduler{
		log:        p.Log.Named("scheduler").With(zap.String("component", "scheduler")),
		cfg:        p.Config.withDefaults(),
		clock:      p.Clock,
		billingSvc: p.BillingSvc,
	}, nil
}

func (s *Scheduler) RunOnce(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.RunTimeout)
	defer cancel()

	start := s.clock.Now()
	updated, err := s.billingSvc.SweepOverdue(ctx, start)
	if err != nil {
		return err
	}

	s.log.Debug("overdue sweep run finished",
		zap.Int64("bills_updated", updated),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

func (s *Scheduler) RunForever(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.RunInterval)
	defer ticker.Stop()

	for {
		if err := s.RunOnce(ctx); err != nil {
			s.log.Warn("overdue sweep run failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
