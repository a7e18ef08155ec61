package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	billingdomain "github.com/civicgrid/waterworks/internal/billing/domain"
	"github.com/civicgrid/waterworks/internal/clock"
	connectiondomain "github.com/civicgrid/waterworks/internal/connection/domain"
	consumerdomain "github.com/civicgrid/waterworks/internal/consumer/domain"
	obsmetrics "github.com/civicgrid/waterworks/internal/observability/metrics"
	tariffdomain "github.com/civicgrid/waterworks/internal/tariff/domain"
	"github.com/civicgrid/waterworks/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB             *gorm.DB
	Log            *zap.Logger
	GenID          *snowflake.Node
	Clock          clock.Clock
	Repo           billingdomain.Repository
	TariffSvc      tariffdomain.Service
	ConsumerRepo   consumerdomain.Repository
	ConnectionRepo connectiondomain.Repository
	ObsMetrics     *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	db             *gorm.DB
	log            *zap.Logger
	genID          *snowflake.Node
	clock          clock.Clock
	repo           billingdomain.Repository
	tariffSvc      tariffdomain.Service
	consumerRepo   consumerdomain.Repository
	connectionRepo connectiondomain.Repository
	obsMetrics     *obsmetrics.Metrics
}

func New(p Params) billingdomain.Service {
	return &Service{
		db:             p.DB,
		log:            p.Log.Named("billing.service"),
		genID:          p.GenID,
		clock:          p.Clock,
		repo:           p.Repo,
		tariffSvc:      p.TariffSvc,
		consumerRepo:   p.ConsumerRepo,
		connectionRepo: p.ConnectionRepo,
		obsMetrics:     p.ObsMetrics,
	}
}

func (s *Service) Create(ctx context.Context, req billingdomain.CreateRequest) (*billingdomain.Bill, error) {
	consumerID, err := parseID(req.ConsumerID)
	if err != nil {
		return nil, billingdomain.ErrInvalidConsumer
	}
	connectionID, err := parseID(req.ConnectionID)
	if err != nil {
		return nil, billingdomain.ErrInvalidConnection
	}

	billMonth := strings.TrimSpace(req.BillMonth)
	if _, err := time.Parse("2006-01", billMonth); err != nil {
		return nil, billingdomain.ErrInvalidBillMonth
	}
	if req.BillDate.IsZero() {
		return nil, billingdomain.ErrInvalidBillDate
	}
	if req.DueDate.IsZero() || req.DueDate.Before(req.BillDate) {
		return nil, billingdomain.ErrInvalidDueDate
	}
	if req.PreviousReading < 0 || req.CurrentReading < req.PreviousReading {
		return nil, billingdomain.ErrInvalidReading
	}

	consumer, err := s.consumerRepo.FindByID(ctx, s.db, consumerID)
	if err != nil {
		return nil, err
	}
	if consumer == nil {
		return nil, billingdomain.ErrInvalidConsumer
	}

	connection, err := s.connectionRepo.FindByID(ctx, s.db, connectionID)
	if err != nil {
		return nil, err
	}
	if connection == nil || connection.ConsumerID != consumerID {
		return nil, billingdomain.ErrInvalidConnection
	}

	existing, err := s.repo.FindByConnectionMonth(ctx, s.db, connectionID, billMonth)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, billingdomain.ErrDuplicateBill
	}

	tariff, err := s.tariffSvc.Resolve(ctx, consumer.Category, req.BillDate)
	if err != nil {
		return nil, err
	}

	consumption := req.CurrentReading - req.PreviousReading
	amount := billingdomain.ComputeAmountPaise(consumption, tariff.Slabs)

	now := s.clock.Now()
	bill := &billingdomain.Bill{
		ID:                s.genID.Generate(),
		ConsumerID:        consumerID,
		ConnectionID:      connectionID,
		TariffID:          tariff.ID,
		BillMonth:         billMonth,
		BillDate:          req.BillDate.UTC(),
		DueDate:           req.DueDate.UTC(),
		PreviousReading:   req.PreviousReading,
		CurrentReading:    req.CurrentReading,
		ConsumptionLiters: consumption,
		AmountPaise:       amount,
		PaidPaise:         0,
		Status:            billingdomain.StatusPending,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.repo.Insert(ctx, s.db, bill); err != nil {
		// Unique index on (connection_id, bill_month) backstops the
		// pre-check against racing creates.
		if db.IsDuplicateKeyErr(err) {
			return nil, billingdomain.ErrDuplicateBill
		}
		return nil, err
	}

	s.log.Info("bill created",
		zap.String("bill_id", bill.ID.String()),
		zap.String("consumer_id", consumerID.String()),
		zap.String("connection_id", connectionID.String()),
		zap.String("bill_month", billMonth),
		zap.Int64("consumption_liters", consumption),
		zap.Int64("amount_paise", amount),
	)
	if s.obsMetrics != nil {
		s.obsMetrics.RecordBillIssued(ctx, string(consumer.Category))
	}

	return bill, nil
}

func (s *Service) Get(ctx context.Context, id string) (*billingdomain.Bill, error) {
	billID, err := parseID(id)
	if err != nil {
		return nil, billingdomain.ErrInvalidID
	}

	bill, err := s.repo.FindByID(ctx, s.db, billID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, billingdomain.ErrNotFound
	}
	return bill, nil
}

func (s *Service) ListByConsumer(ctx context.Context, consumerID string) ([]billingdomain.Bill, error) {
	id, err := parseID(consumerID)
	if err != nil {
		return nil, billingdomain.ErrInvalidConsumer
	}
	return s.repo.ListByConsumer(ctx, s.db, id)
}

func (s *Service) ListByConnection(ctx context.Context, connectionID string) ([]billingdomain.Bill, error) {
	id, err := parseID(connectionID)
	if err != nil {
		return nil, billingdomain.ErrInvalidConnection
	}
	return s.repo.ListByConnection(ctx, s.db, id)
}

func (s *Service) Preview(ctx context.Context, req billingdomain.PreviewRequest) (*billingdomain.PreviewResponse, error) {
	category := tariffdomain.Category(strings.ToUpper(strings.TrimSpace(req.Category)))
	if req.ConsumptionLiters < 0 {
		return nil, billingdomain.ErrInvalidReading
	}

	asOf := req.AsOf
	if asOf.IsZero() {
		asOf = s.clock.Now()
	}

	tariff, err := s.tariffSvc.Resolve(ctx, category, asOf)
	if err != nil {
		return nil, err
	}

	return &billingdomain.PreviewResponse{
		TariffID:          tariff.ID.String(),
		ConsumptionLiters: req.ConsumptionLiters,
		AmountPaise:       billingdomain.ComputeAmountPaise(req.ConsumptionLiters, tariff.Slabs),
	}, nil
}

func (s *Service) SweepOverdue(ctx context.Context, now time.Time) (int64, error) {
	updated, err := s.repo.MarkOverdue(ctx, s.db, now.UTC())
	if err != nil {
		return 0, err
	}
	if updated > 0 {
		s.log.Info("overdue sweep completed", zap.Int64("bills_updated", updated))
		if s.obsMetrics != nil {
			s.obsMetrics.RecordOverdueSwept(ctx, updated)
		}
	}
	return updated, nil
}

func parseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(value))
}
