package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	consumerdomain "github.com/civicgrid/waterworks/internal/consumer/domain"
	tariffdomain "github.com/civicgrid/waterworks/internal/tariff/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  consumerdomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  consumerdomain.Repository
}

func New(p Params) consumerdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("consumer.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req consumerdomain.CreateRequest) (*consumerdomain.Consumer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, consumerdomain.ErrInvalidName
	}
	address := strings.TrimSpace(req.Address)
	if address == "" {
		return nil, consumerdomain.ErrInvalidAddress
	}
	category := tariffdomain.Category(strings.ToUpper(strings.TrimSpace(req.Category)))
	if !category.Valid() {
		return nil, consumerdomain.ErrInvalidCategory
	}

	now := time.Now().UTC()
	entity := &consumerdomain.Consumer{
		ID:        s.genID.Generate(),
		Name:      name,
		Address:   address,
		Phone:     strings.TrimSpace(req.Phone),
		Category:  category,
		Status:    consumerdomain.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Metadata != nil {
		entity.Metadata = datatypes.JSONMap(req.Metadata)
	}

	if err := s.repo.Insert(ctx, s.db, entity); err != nil {
		return nil, err
	}

	s.log.Info("consumer created",
		zap.String("consumer_id", entity.ID.String()),
		zap.String("category", string(category)),
	)
	return entity, nil
}

func (s *Service) List(ctx context.Context, filter consumerdomain.ListFilter) ([]consumerdomain.Consumer, error) {
	if filter.Category != "" {
		category := tariffdomain.Category(strings.ToUpper(strings.TrimSpace(filter.Category)))
		if !category.Valid() {
			return nil, consumerdomain.ErrInvalidCategory
		}
		filter.Category = string(category)
	}
	if filter.Status != "" {
		status := consumerdomain.Status(strings.ToUpper(strings.TrimSpace(filter.Status)))
		if !status.Valid() {
			return nil, consumerdomain.ErrInvalidStatus
		}
		filter.Status = string(status)
	}
	return s.repo.List(ctx, s.db, filter)
}

func (s *Service) Get(ctx context.Context, id string) (*consumerdomain.Consumer, error) {
	consumerID, err := parseID(id)
	if err != nil {
		return nil, consumerdomain.ErrInvalidID
	}

	entity, err := s.repo.FindByID(ctx, s.db, consumerID)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, consumerdomain.ErrNotFound
	}
	return entity, nil
}

func (s *Service) Update(ctx context.Context, id string, req consumerdomain.UpdateRequest) (*consumerdomain.Consumer, error) {
	consumerID, err := parseID(id)
	if err != nil {
		return nil, consumerdomain.ErrInvalidID
	}

	entity, err := s.repo.FindByID(ctx, s.db, consumerID)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, consumerdomain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, consumerdomain.ErrInvalidName
		}
		entity.Name = name
	}
	if req.Address != nil {
		address := strings.TrimSpace(*req.Address)
		if address == "" {
			return nil, consumerdomain.ErrInvalidAddress
		}
		entity.Address = address
	}
	if req.Phone != nil {
		entity.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Status != nil {
		status := consumerdomain.Status(strings.ToUpper(strings.TrimSpace(*req.Status)))
		if !status.Valid() {
			return nil, consumerdomain.ErrInvalidStatus
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
