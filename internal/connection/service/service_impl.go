package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	connectiondomain "github.com/civicgrid/waterworks/internal/connection/domain"
	consumerdomain "github.com/civicgrid/waterworks/internal/consumer/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	GenID        *snowflake.Node
	Repo         connectiondomain.Repository
	ConsumerRepo consumerdomain.Repository
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	genID        *snowflake.Node
	repo         connectiondomain.Repository
	consumerRepo consumerdomain.Repository
}

func New(p Params) connectiondomain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("connection.service"),
		genID:        p.GenID,
		repo:         p.Repo,
		consumerRepo: p.ConsumerRepo,
	}
}

func (s *Service) Create(ctx context.Context, req connectiondomain.CreateRequest) (*connectiondomain.Connection, error) {
	consumerID, err := parseID(req.ConsumerID)
	if err != nil {
		return nil, connectiondomain.ErrInvalidConsumer
	}

	connType := connectiondomain.Type(strings.ToUpper(strings.TrimSpace(req.Type)))
	if !connType.Valid() {
		return nil, connectiondomain.ErrInvalidType
	}

	meterSerial := strings.TrimSpace(req.MeterSerial)
	if connType == connectiondomain.TypeMetered && meterSerial == "" {
		return nil, connectiondomain.ErrInvalidMeterSerial
	}

	owner, err := s.consumerRepo.FindByID(ctx, s.db, consumerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, connectiondomain.ErrInvalidConsumer
	}

	now := time.Now().UTC()
	installedAt := req.InstalledAt.UTC()
	if req.InstalledAt.IsZero() {
		installedAt = now
	}

	entity := &connectiondomain.Connection{
		ID:          s.genID.Generate(),
		ConsumerID:  consumerID,
		MeterSerial: meterSerial,
		Type:        connType,
		Status:      connectiondomain.StatusActive,
		InstalledAt: installedAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.Metadata != nil {
		entity.Metadata = datatypes.JSONMap(req.Metadata)
	}

	if err := s.repo.Insert(ctx, s.db, entity); err != nil {
		return nil, err
	}

	s.log.Info("connection created",
		zap.String("connection_id", entity.ID.String()),
		zap.String("consumer_id", consumerID.String()),
		zap.String("type", string(connType)),
	)
	return entity, nil
}

func (s *Service) List(ctx context.Context, consumerID string) ([]connectiondomain.Connection, error) {
	id, err := parseID(consumerID)
	if err != nil {
		return nil, connectiondomain.ErrInvalidConsumer
	}
	return s.repo.ListByConsumer(ctx, s.db, id)
}

func (s *Service) Get(ctx context.Context, id string) (*connectiondomain.Connection, error) {
	connectionID, err := parseID(id)
	if err != nil {
		return nil, connectiondomain.ErrInvalidID
	}

	entity, err := s.repo.FindByID(ctx, s.db, connectionID)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, connectiondomain.ErrNotFound
	}
	return entity, nil
}

func (s *Service) Update(ctx context.Context, id string, req connectiondomain.UpdateRequest) (*connectiondomain.Connection, error) {
	connectionID, err := parseID(id)
	if err != nil {
		return nil, connectiondomain.ErrInvalidID
	}

	entity, err := s.repo.FindByID(ctx, s.db, connectionID)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, connectiondomain.ErrNotFound
	}

	if req.MeterSerial != nil {
		meterSerial := strings.TrimSpace(*req.MeterSerial)
		if entity.Type == connectiondomain.TypeMetered && meterSerial == "" {
			return nil, connectiondomain.ErrInvalidMeterSerial
		}
		entity.MeterSerial = meterSerial
	}
	if req.Status != nil {
		status := connectiondomain.Status(strings.ToUpper(strings.TrimSpace(*req.Status)))
		if !status.Valid() {
			return nil, connectiondomain.ErrInvalidStatus
		}
		entity.Status = status
	}

	entity.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

func parseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(value))
}
