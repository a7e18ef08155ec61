package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	assetdomain "github.com/civicgrid/waterworks/internal/asset/domain"
	"github.com/civicgrid/waterworks/pkg/db/option"
	"github.com/civicgrid/waterworks/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

type Service struct {
	db     *gorm.DB
	log    *zap.Logger
	genID  *snowflake.Node
	assets repository.Repository[assetdomain.Asset]
}

func New(p Params) assetdomain.Service {
	return &Service{
		db:     p.DB,
		log:    p.Log.Named("asset.service"),
		genID:  p.GenID,
		assets: repository.ProvideStore[assetdomain.Asset](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, req assetdomain.Request) (*assetdomain.Asset, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, assetdomain.ErrInvalidName
	}
	assetType := strings.TrimSpace(req.Type)
	if assetType == "" {
		return nil, assetdomain.ErrInvalidType
	}
	status := assetdomain.Status(strings.ToUpper(strings.TrimSpace(req.Status)))
	if status == "" {
		status = assetdomain.StatusOperational
	}
	if !status.Valid() {
		return nil, assetdomain.ErrInvalidStatus
	}

	asset := &assetdomain.Asset{
		ID:             s.genID.Generate(),
		Name:           name,
		Type:           assetType,
		Location:       strings.TrimSpace(req.Location),
		Status:         status,
		CommissionedAt: req.CommissionedAt,
	}
	if err := s.assets.Create(ctx, asset); err != nil {
		return nil, err
	}

	s.log.Info("asset created", zap.String("asset_id", asset.ID.String()), zap.String("type", assetType))
	return asset, nil
}

func (s *Service) List(ctx context.Context) ([]*assetdomain.Asset, error) {
	return s.assets.Find(ctx, &assetdomain.Asset{}, option.WithOrderBy("name ASC"))
}

func (s *Service) Get(ctx context.Context, id string) (*assetdomain.Asset, error) {
	assetID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, assetdomain.ErrInvalidID
	}
	asset, err := s.assets.FindOne(ctx, &assetdomain.Asset{ID: assetID})
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, assetdomain.ErrNotFound
	}
	return asset, nil
}

func (s *Service) Update(ctx context.Context, id string, req assetdomain.Request) (*assetdomain.Asset, error) {
	asset, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		asset.Name = name
	}
	if assetType := strings.TrimSpace(req.Type); assetType != "" {
		asset.Type = assetType
	}
	if location := strings.TrimSpace(req.Location); location != "" {
		asset.Location = location
	}
	if req.Status != "" {
		status := assetdomain.Status(strings.ToUpper(strings.TrimSpace(req.Status)))
		if !status.Valid() {
			return nil, assetdomain.ErrInvalidStatus
		}
		asset.Status = status
	}
	if !req.CommissionedAt.IsZero() {
		asset.CommissionedAt = req.CommissionedAt
	}

	if err := s.assets.Update(ctx, asset.ID.String(), asset); err != nil {
		return nil, err
	}
	return asset, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	asset, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.assets.Delete(ctx, asset.ID.String())
}
