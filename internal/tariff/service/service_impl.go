package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
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
	Repo  tariffdomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  tariffdomain.Repository
}

func New(p Params) tariffdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("tariff.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req tariffdomain.CreateRequest) (*tariffdomain.Response, error) {
	category := tariffdomain.Category(strings.ToUpper(strings.TrimSpace(req.Category)))
	if !category.Valid() {
		return nil, tariffdomain.ErrInvalidCategory
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, tariffdomain.ErrInvalidName
	}

	if req.EffectiveFrom.IsZero() {
		return nil, tariffdomain.ErrInvalidEffectiveFrom
	}

	now := time.Now().UTC()
	entity := &tariffdomain.Tariff{
		ID:            s.genID.Generate(),
		Category:      category,
		Name:          name,
		EffectiveFrom: req.EffectiveFrom.UTC(),
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if req.Metadata != nil {
		entity.Metadata = datatypes.JSONMap(req.Metadata)
	}

	slabs := make([]tariffdomain.TariffSlab, 0, len(req.Slabs))
	for _, slab := range req.Slabs {
		slabs = append(slabs, tariffdomain.TariffSlab{
			ID:             s.genID.Generate(),
			TariffID:       entity.ID,
			StartLiters:    slab.StartLiters,
			EndLiters:      slab.EndLiters,
			RatePerKLPaise: slab.RatePerKLPaise,
			CreatedAt:      now,
		})
	}
	if err := tariffdomain.ValidateSlabs(slabs); err != nil {
		return nil, err
	}

	if err := s.repo.Insert(ctx, s.db, entity, slabs); err != nil {
		return nil, err
	}

	s.log.Info("tariff created",
		zap.String("tariff_id", entity.ID.String()),
		zap.String("category", string(category)),
		zap.Time("effective_from", entity.EffectiveFrom),
		zap.Int("slabs", len(slabs)),
	)

	entity.Slabs = slabs
	return toResponse(entity), nil
}

func (s *Service) List(ctx context.Context, category string) ([]tariffdomain.Response, error) {
	filter := tariffdomain.Category(strings.ToUpper(strings.TrimSpace(category)))
	if filter != "" && !filter.Valid() {
		return nil, tariffdomain.ErrInvalidCategory
	}

	items, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]tariffdomain.Response, 0, len(items))
	for i := range items {
		slabs, err := s.repo.ListSlabs(ctx, s.db, items[i].ID)
		if err != nil {
			return nil, err
		}
		items[i].Slabs = slabs
		resp = append(resp, *toResponse(&items[i]))
	}

	return resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*tariffdomain.Response, error) {
	tariffID, err := parseID(id)
	if err != nil {
		return nil, tariffdomain.ErrInvalidID
	}

	entity, err := s.loadWithSlabs(ctx, tariffID)
	if err != nil {
		return nil, err
	}

	return toResponse(entity), nil
}

func (s *Service) Deactivate(ctx context.Context, id string) (*tariffdomain.Response, error) {
	tariffID, err := parseID(id)
	if err != nil {
		return nil, tariffdomain.ErrInvalidID
	}

	entity, err := s.loadWithSlabs(ctx, tariffID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.repo.SetActive(ctx, s.db, tariffID, false, now); err != nil {
		return nil, err
	}
	entity.Active = false
	entity.UpdatedAt = now

	s.log.Info("tariff deactivated", zap.String("tariff_id", tariffID.String()))
	return toResponse(entity), nil
}

func (s *Service) Resolve(ctx context.Context, category tariffdomain.Category, asOf time.Time) (*tariffdomain.Tariff, error) {
	if !category.Valid() {
		return nil, tariffdomain.ErrInvalidCategory
	}

	entity, err := s.repo.FindEffective(ctx, s.db, category, asOf.UTC())
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, tariffdomain.ErrNoTariff
	}

	slabs, err := s.repo.ListSlabs(ctx, s.db, entity.ID)
	if err != nil {
		return nil, err
	}
	if err := tariffdomain.ValidateSlabs(slabs); err != nil {
		s.log.Error("tariff has corrupt slab configuration",
			zap.String("tariff_id", entity.ID.String()),
			zap.String("category", string(category)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: tariff %s", tariffdomain.ErrCorruptSlabs, entity.ID)
	}

	entity.Slabs = slabs
	return entity, nil
}

func (s *Service) loadWithSlabs(ctx context.Context, id snowflake.ID) (*tariffdomain.Tariff, error) {
	entity, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, tariffdomain.ErrNotFound
	}

	slabs, err := s.repo.ListSlabs(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	entity.Slabs = slabs
	return entity, nil
}

func toResponse(t *tariffdomain.Tariff) *tariffdomain.Response {
	slabs := make([]tariffdomain.SlabResponse, 0, len(t.Slabs))
	for _, slab := range t.Slabs {
		slabs = append(slabs, tariffdomain.SlabResponse{
			ID:             slab.ID.String(),
			StartLiters:    slab.StartLiters,
			EndLiters:      slab.EndLiters,
			RatePerKLPaise: slab.RatePerKLPaise,
		})
	}
	return &tariffdomain.Response{
		ID:            t.ID.String(),
		Category:      t.Category,
		Name:          t.Name,
		EffectiveFrom: t.EffectiveFrom,
		Active:        t.Active,
		Slabs:         slabs,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

func parseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(value))
}
