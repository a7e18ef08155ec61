package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	assetdomain "github.com/civicgrid/waterworks/internal/asset/domain"
	"github.com/civicgrid/waterworks/internal/clock"
	maintenancedomain "github.com/civicgrid/waterworks/internal/maintenance/domain"
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
	Clock clock.Clock
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock

	tasks  repository.Repository[maintenancedomain.Task]
	assets repository.Repository[assetdomain.Asset]
}

func New(p Params) maintenancedomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("maintenance.service"),
		genID: p.GenID,
		clock: p.Clock,

		tasks:  repository.ProvideStore[maintenancedomain.Task](p.DB),
		assets: repository.ProvideStore[assetdomain.Asset](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, req maintenancedomain.CreateRequest) (*maintenancedomain.Task, error) {
	assetID, err := snowflake.ParseString(strings.TrimSpace(req.AssetID))
	if err != nil {
		return nil, maintenancedomain.ErrInvalidAsset
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, maintenancedomain.ErrInvalidDescription
	}
	if req.ScheduledFor.IsZero() {
		return nil, maintenancedomain.ErrInvalidSchedule
	}

	asset, err := s.assets.FindOne(ctx, &assetdomain.Asset{ID: assetID})
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, maintenancedomain.ErrInvalidAsset
	}

	task := &maintenancedomain.Task{
		ID:           s.genID.Generate(),
		AssetID:      assetID,
		Description:  description,
		ScheduledFor: req.ScheduledFor.UTC(),
		Status:       maintenancedomain.StatusScheduled,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	s.log.Info("maintenance task created",
		zap.String("task_id", task.ID.String()),
		zap.String("asset_id", assetID.String()),
	)
	return task, nil
}

func (s *Service) List(ctx context.Context, status string) ([]*maintenancedomain.Task, error) {
	filter := &maintenancedomain.Task{}
	if status != "" {
		st := maintenancedomain.Status(strings.ToUpper(strings.TrimSpace(status)))
		if !st.Valid() {
			return nil, maintenancedomain.ErrInvalidStatus
		}
		filter.Status = st
	}
	return s.tasks.Find(ctx, filter, option.WithOrderBy("scheduled_for ASC"))
}

func (s *Service) ListByAsset(ctx context.Context, assetID string) ([]*maintenancedomain.Task, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(assetID))
	if err != nil {
		return nil, maintenancedomain.ErrInvalidAsset
	}
	return s.tasks.Find(ctx, &maintenancedomain.Task{AssetID: id}, option.WithOrderBy("scheduled_for ASC"))
}

func (s *Service) Get(ctx context.Context, id string) (*maintenancedomain.Task, error) {
	taskID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, maintenancedomain.ErrInvalidID
	}
	task, err := s.tasks.FindOne(ctx, &maintenancedomain.Task{ID: taskID})
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, maintenancedomain.ErrNotFound
	}
	return task, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id string, status string) (*maintenancedomain.Task, error) {
	next := maintenancedomain.Status(strings.ToUpper(strings.TrimSpace(status)))
	if !next.Valid() {
		return nil, maintenancedomain.ErrInvalidStatus
	}

	task, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !task.Status.Pending() {
		return nil, maintenancedomain.ErrTerminalStatus
	}

	task.Status = next
	if next == maintenancedomain.StatusCompleted {
		completedAt := s.clock.Now()
		task.CompletedAt = &completedAt
	}

	if err := s.tasks.Update(ctx, task.ID.String(), task); err != nil {
		return nil, err
	}

	s.log.Info("maintenance task updated",
		zap.String("task_id", task.ID.String()),
		zap.String("status", string(next)),
	)
	return task, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	task, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.tasks.Delete(ctx, task.ID.String())
}
