package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	billingdomain "github.com/civicgrid/waterworks/internal/billing/domain"
	"github.com/civicgrid/waterworks/internal/clock"
	obsmetrics "github.com/civicgrid/waterworks/internal/observability/metrics"
	paymentdomain "github.com/civicgrid/waterworks/internal/payment/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Clock       clock.Clock
	Repo        paymentdomain.Repository
	BillingRepo billingdomain.Repository
	ObsMetrics  *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	clock       clock.Clock
	repo        paymentdomain.Repository
	billingRepo billingdomain.Repository
	obsMetrics  *obsmetrics.Metrics
}

func New(p Params) paymentdomain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("payment.service"),
		genID:       p.GenID,
		clock:       p.Clock,
		repo:        p.Repo,
		billingRepo: p.BillingRepo,
		obsMetrics:  p.ObsMetrics,
	}
}

func (s *Service) Apply(ctx context.Context, req paymentdomain.ApplyRequest) (*paymentdomain.ApplyResponse, error) {
	billID, err := parseID(req.BillID)
	if err != nil {
		return nil, paymentdomain.ErrInvalidID
	}
	if req.AmountPaise <= 0 {
		return nil, paymentdomain.ErrInvalidAmount
	}
	mode := paymentdomain.Mode(strings.ToUpper(strings.TrimSpace(req.Mode)))
	if !mode.Valid() {
		return nil, paymentdomain.ErrInvalidMode
	}

	now := s.clock.Now()
	var resp *paymentdomain.ApplyResponse

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		bill, err := s.billingRepo.FindByID(ctx, tx, billID)
		if err != nil {
			return err
		}
		if bill == nil {
			return paymentdomain.ErrBillNotFound
		}
		if bill.PaidPaise >= bill.AmountPaise {
			return paymentdomain.ErrBillSettled
		}
		if bill.PaidPaise+req.AmountPaise > bill.AmountPaise {
			return paymentdomain.ErrOverpayment
		}

		newPaid := bill.PaidPaise + req.AmountPaise
		status := billingdomain.StatusFor(newPaid, bill.AmountPaise, bill.DueDate, now)

		// The swap only lands if paid_paise is still what we read above;
		// a concurrent payment forces the caller to retry on fresh state.
		won, err := s.billingRepo.UpdatePaid(ctx, tx, bill.ID, bill.PaidPaise, newPaid, status, now)
		if err != nil {
			return err
		}
		if !won {
			return paymentdomain.ErrConcurrentUpdate
		}

		payment := &paymentdomain.Payment{
			ID:          s.genID.Generate(),
			BillID:      bill.ID,
			ConsumerID:  bill.ConsumerID,
			AmountPaise: req.AmountPaise,
			Mode:        mode,
			Status:      paymentdomain.StatusSuccess,
			PaidAt:      now,
			Remarks:     strings.TrimSpace(req.Remarks),
			CreatedAt:   now,
		}
		if err := s.repo.Insert(ctx, tx, payment); err != nil {
			return err
		}

		resp = &paymentdomain.ApplyResponse{
			Payment:        payment,
			BillStatus:     string(status),
			PaidPaise:      newPaid,
			RemainingPaise: bill.AmountPaise - newPaid,
		}
		return nil
	})
	if err != nil {
		if err == paymentdomain.ErrConcurrentUpdate && s.obsMetrics != nil {
			s.obsMetrics.RecordPaymentConflict(ctx)
		}
		return nil, err
	}

	s.log.Info("payment applied",
		zap.String("payment_id", resp.Payment.ID.String()),
		zap.String("bill_id", billID.String()),
		zap.Int64("amount_paise", req.AmountPaise),
		zap.String("mode", string(mode)),
		zap.String("bill_status", resp.BillStatus),
	)
	if s.obsMetrics != nil {
		s.obsMetrics.RecordPaymentApplied(ctx, string(mode))
	}

	return resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*paymentdomain.Payment, error) {
	paymentID, err := parseID(id)
	if err != nil {
		return nil, paymentdomain.ErrInvalidID
	}

	payment, err := s.repo.FindByID(ctx, s.db, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, paymentdomain.ErrNotFound
	}
	return payment, nil
}

func (s *Service) ListByBill(ctx context.Context, billID string) ([]paymentdomain.Payment, error) {
	id, err := parseID(billID)
	if err != nil {
		return nil, paymentdomain.ErrInvalidID
	}
	return s.repo.ListByBill(ctx, s.db, id)
}

func (s *Service) ListByConsumer(ctx context.Context, consumerID string) ([]paymentdomain.Payment, error) {
	id, err := parseID(consumerID)
	if err != nil {
		return nil, paymentdomain.ErrInvalidID
	}
	return s.repo.ListByConsumer(ctx, s.db, id)
}

func parseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(value))
}
