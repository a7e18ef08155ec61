package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	networkdomain "github.com/civicgrid/waterworks/internal/network/domain"
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
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node

	sources    repository.Repository[networkdomain.Source]
	plants     repository.Repository[networkdomain.TreatmentPlant]
	reservoirs repository.Repository[networkdomain.Reservoir]
	pipelines  repository.Repository[networkdomain.Pipeline]
	valves     repository.Repository[networkdomain.Valve]
}

func New(p Params) networkdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("network.service"),
		genID: p.GenID,

		sources:    repository.ProvideStore[networkdomain.Source](p.DB),
		plants:     repository.ProvideStore[networkdomain.TreatmentPlant](p.DB),
		reservoirs: repository.ProvideStore[networkdomain.Reservoir](p.DB),
		pipelines:  repository.ProvideStore[networkdomain.Pipeline](p.DB),
		valves:     repository.ProvideStore[networkdomain.Valve](p.DB),
	}
}

func (s *Service) CreateSource(ctx context.Context, req networkdomain.SourceRequest) (*networkdomain.Source, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, networkdomain.ErrInvalidName
	}
	sourceType := networkdomain.SourceType(strings.ToUpper(strings.TrimSpace(req.Type)))
	if !sourceType.Valid() {
		return nil, networkdomain.ErrInvalidType
	}
	if req.CapacityMLD <= 0 {
		return nil, networkdomain.ErrInvalidCapacity
	}

	source := &networkdomain.Source{
		ID:          s.genID.Generate(),
		Name:        name,
		Type:        sourceType,
		CapacityMLD: req.CapacityMLD,
		Location:    strings.TrimSpace(req.Location),
	}
	if err := s.sources.Create(ctx, source); err != nil {
		return nil, err
	}

	s.log.Info("source created", zap.String("source_id", source.ID.String()), zap.String("type", string(sourceType)))
	return source, nil
}

func (s *Service) ListSources(ctx context.Context) ([]*networkdomain.Source, error) {
	return s.sources.Find(ctx, &networkdomain.Source{}, option.WithOrderBy("name ASC"))
}

func (s *Service) GetSource(ctx context.Context, id string) (*networkdomain.Source, error) {
	sourceID, err := parseID(id)
	if err != nil {
		return nil, networkdomain.ErrInvalidID
	}
	source, err := s.sources.FindOne(ctx, &networkdomain.Source{ID: sourceID})
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, networkdomain.ErrNotFound
	}
	return source, nil
}

func (s *Service) UpdateSource(ctx context.Context, id string, req networkdomain.SourceRequest) (*networkdomain.Source, error) {
	source, err := s.GetSource(ctx, id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		source.Name = name
	}
	if req.Type != "" {
		sourceType := networkdomain.SourceType(strings.ToUpper(strings.TrimSpace(req.Type)))
		if !sourceType.Valid() {
			return nil, networkdomain.ErrInvalidType
		}
		source.Type = sourceType
	}
	if req.CapacityMLD != 0 {
		if req.CapacityMLD < 0 {
			return nil, networkdomain.ErrInvalidCapacity
		}
		source.CapacityMLD = req.CapacityMLD
	}
	if location := strings.TrimSpace(req.Location); location != "" {
		source.Location = location
	}

	if err := s.sources.Update(ctx, source.ID.String(), source); err != nil {
		return nil, err
	}
	return source, nil
}

func (s *Service) DeleteSource(ctx context.Context, id string) error {
	source, err := s.GetSource(ctx, id)
	if err != nil {
		return err
	}
	return s.sources.Delete(ctx, source.ID.String())
}

func (s *Service) CreatePlant(ctx context.Context, req networkdomain.PlantRequest) (*networkdomain.TreatmentPlant, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, networkdomain.ErrInvalidName
	}
	if req.CapacityMLD <= 0 {
		return nil, networkdomain.ErrInvalidCapacity
	}
	sourceID, err := parseID(req.SourceID)
	if err != nil {
		return nil, networkdomain.ErrInvalidSource
	}
	source, err := s.sources.FindOne(ctx, &networkdomain.Source{ID: sourceID})
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, networkdomain.ErrInvalidSource
	}

	plant := &networkdomain.TreatmentPlant{
		ID:          s.genID.Generate(),
		Name:        name,
		SourceID:    sourceID,
		CapacityMLD: req.CapacityMLD,
		Location:    strings.TrimSpace(req.Location),
	}
	if err := s.plants.Create(ctx, plant); err != nil {
		return nil, err
	}

	s.log.Info("treatment plant created", zap.String("plant_id", plant.ID.String()), zap.String("source_id", sourceID.String()))
	return plant, nil
}

func (s *Service) ListPlants(ctx context.Context) ([]*networkdomain.TreatmentPlant, error) {
	return s.plants.Find(ctx, &networkdomain.TreatmentPlant{}, option.WithOrderBy("name ASC"))
}

func (s *Service) GetPlant(ctx context.Context, id string) (*networkdomain.TreatmentPlant, error) {
	plantID, err := parseID(id)
	if err != nil {
		return nil, networkdomain.ErrInvalidID
	}
	plant, err := s.plants.FindOne(ctx, &networkdomain.TreatmentPlant{ID: plantID})
	if err != nil {
		return nil, err
	}
	if plant == nil {
		return nil, networkdomain.ErrNotFound
	}
	return plant, nil
}

func (s *Service) UpdatePlant(ctx context.Context, id string, req networkdomain.PlantRequest) (*networkdomain.TreatmentPlant, error) {
	plant, err := s.GetPlant(ctx, id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		plant.Name = name
	}
	if req.SourceID != "" {
		sourceID, err := parseID(req.SourceID)
		if err != nil {
			return nil, networkdomain.ErrInvalidSource
		}
		source, err := s.sources.FindOne(ctx, &networkdomain.Source{ID: sourceID})
		if err != nil {
			return nil, err
		}
		if source == nil {
			return nil, networkdomain.ErrInvalidSource
		}
		plant.SourceID = sourceID
	}
	if req.CapacityMLD != 0 {
		if req.CapacityMLD < 0 {
			return nil, networkdomain.ErrInvalidCapacity
		}
		plant.CapacityMLD = req.CapacityMLD
	}
	if location := strings.TrimSpace(req.Location); location != "" {
		plant.Location = location
	}

	if err := s.plants.Update(ctx, plant.ID.String(), plant); err != nil {
		return nil, err
	}
	return plant, nil
}

func (s *Service) DeletePlant(ctx context.Context, id string) error {
	plant, err := s.GetPlant(ctx, id)
	if err != nil {
		return err
	}
	return s.plants.Delete(ctx, plant.ID.String())
}

func (s *Service) CreateReservoir(ctx context.Context, req networkdomain.ReservoirRequest) (*networkdomain.Reservoir, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, networkdomain.ErrInvalidName
	}
	reservoirType := networkdomain.ReservoirType(strings.ToUpper(strings.TrimSpace(req.Type)))
	if !reservoirType.Valid() {
		return nil, networkdomain.ErrInvalidType
	}
	if req.CapacityLiters <= 0 {
		return nil, networkdomain.ErrInvalidCapacity
	}

	reservoir := &networkdomain.Reservoir{
		ID:             s.genID.Generate(),
		Name:           name,
		Type:           reservoirType,
		CapacityLiters: req.CapacityLiters,
		Location:       strings.TrimSpace(req.Location),
	}
	if err := s.reservoirs.Create(ctx, reservoir); err != nil {
		return nil, err
	}
	return reservoir, nil
}

func (s *Service) ListReservoirs(ctx context.Context) ([]*networkdomain.Reservoir, error) {
	return s.reservoirs.Find(ctx, &networkdomain.Reservoir{}, option.WithOrderBy("name ASC"))
}

func (s *Service) GetReservoir(ctx context.Context, id string) (*networkdomain.Reservoir, error) {
	reservoirID, err := parseID(id)
	if err != nil {
		return nil, networkdomain.ErrInvalidID
	}
	reservoir, err := s.reservoirs.FindOne(ctx, &networkdomain.Reservoir{ID: reservoirID})
	if err != nil {
		return nil, err
	}
	if reservoir == nil {
		return nil, networkdomain.ErrNotFound
	}
	return reservoir, nil
}

func (s *Service) UpdateReservoir(ctx context.Context, id string, req networkdomain.ReservoirRequest) (*networkdomain.Reservoir, error) {
	reservoir, err := s.GetReservoir(ctx, id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		reservoir.Name = name
	}
	if req.Type != "" {
		reservoirType := networkdomain.ReservoirType(strings.ToUpper(strings.TrimSpace(req.Type)))
		if !reservoirType.Valid() {
			return nil, networkdomain.ErrInvalidType
		}
		reservoir.Type = reservoirType
	}
	if req.CapacityLiters != 0 {
		if req.CapacityLiters < 0 {
			return nil, networkdomain.ErrInvalidCapacity
		}
		reservoir.CapacityLiters = req.CapacityLiters
	}
	if location := strings.TrimSpace(req.Location); location != "" {
		reservoir.Location = location
	}

	if err := s.reservoirs.Update(ctx, reservoir.ID.String(), reservoir); err != nil {
		return nil, err
	}
	return reservoir, nil
}

func (s *Service) DeleteReservoir(ctx context.Context, id string) error {
	reservoir, err := s.GetReservoir(ctx, id)
	if err != nil {
		return err
	}
	return s.reservoirs.Delete(ctx, reservoir.ID.String())
}

func (s *Service) CreatePipeline(ctx context.Context, req networkdomain.PipelineRequest) (*networkdomain.Pipeline, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, networkdomain.ErrInvalidName
	}
	if req.DiameterMM <= 0 || req.LengthMeters <= 0 {
		return nil, networkdomain.ErrInvalidCapacity
	}

	pipeline := &networkdomain.Pipeline{
		ID:           s.genID.Generate(),
		Name:         name,
		DiameterMM:   req.DiameterMM,
		LengthMeters: req.LengthMeters,
		Material:     strings.TrimSpace(req.Material),
	}
	if err := s.pipelines.Create(ctx, pipeline); err != nil {
		return nil, err
	}
	return pipeline, nil
}

func (s *Service) ListPipelines(ctx context.Context) ([]*networkdomain.Pipeline, error) {
	return s.pipelines.Find(ctx, &networkdomain.Pipeline{}, option.WithOrderBy("name ASC"))
}

func (s *Service) GetPipeline(ctx context.Context, id string) (*networkdomain.Pipeline, error) {
	pipelineID, err := parseID(id)
	if err != nil {
		return nil, networkdomain.ErrInvalidID
	}
	pipeline, err := s.pipelines.FindOne(ctx, &networkdomain.Pipeline{ID: pipelineID})
	if err != nil {
		return nil, err
	}
	if pipeline == nil {
		return nil, networkdomain.ErrNotFound
	}
	return pipeline, nil
}

func (s *Service) UpdatePipeline(ctx context.Context, id string, req networkdomain.PipelineRequest) (*networkdomain.Pipeline, error) {
	pipeline, err := s.GetPipeline(ctx, id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		pipeline.Name = name
	}
	if req.DiameterMM != 0 {
		if req.DiameterMM < 0 {
			return nil, networkdomain.ErrInvalidCapacity
		}
		pipeline.DiameterMM = req.DiameterMM
	}
	if req.LengthMeters != 0 {
		if req.LengthMeters < 0 {
			return nil, networkdomain.ErrInvalidCapacity
		}
		pipeline.LengthMeters = req.LengthMeters
	}
	if material := strings.TrimSpace(req.Material); material != "" {
		pipeline.Material = material
	}

	if err := s.pipelines.Update(ctx, pipeline.ID.String(), pipeline); err != nil {
		return nil, err
	}
	return pipeline, nil
}

func (s *Service) DeletePipeline(ctx context.Context, id string) error {
	pipeline, err := s.GetPipeline(ctx, id)
	if err != nil {
		return err
	}
	return s.pipelines.Delete(ctx, pipeline.ID.String())
}

func (s *Service) CreateValve(ctx context.Context, req networkdomain.ValveRequest) (*networkdomain.Valve, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, networkdomain.ErrInvalidName
	}
	status := networkdomain.ValveStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	if status == "" {
		status = networkdomain.ValveClosed
	}
	if !status.Valid() {
		return nil, networkdomain.ErrInvalidStatus
	}

	valve := &networkdomain.Valve{
		ID:       s.genID.Generate(),
		Name:     name,
		Type:     strings.TrimSpace(req.Type),
		Status:   status,
		Location: strings.TrimSpace(req.Location),
	}
	if err := s.valves.Create(ctx, valve); err != nil {
		return nil, err
	}
	return valve, nil
}

func (s *Service) ListValves(ctx context.Context) ([]*networkdomain.Valve, error) {
	return s.valves.Find(ctx, &networkdomain.Valve{}, option.WithOrderBy("name ASC"))
}

func (s *Service) GetValve(ctx context.Context, id string) (*networkdomain.Valve, error) {
	valveID, err := parseID(id)
	if err != nil {
		return nil, networkdomain.ErrInvalidID
	}
	valve, err := s.valves.FindOne(ctx, &networkdomain.Valve{ID: valveID})
	if err != nil {
		return nil, err
	}
	if valve == nil {
		return nil, networkdomain.ErrNotFound
	}
	return valve, nil
}

func (s *Service) UpdateValve(ctx context.Context, id string, req networkdomain.ValveRequest) (*networkdomain.Valve, error) {
	valve, err := s.GetValve(ctx, id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		valve.Name = name
	}
	if valveType := strings.TrimSpace(req.Type); valveType != "" {
		valve.Type = valveType
	}
	if req.Status != "" {
		status := networkdomain.ValveStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
		if !status.Valid() {
			return nil, networkdomain.ErrInvalidStatus
		}
		valve.Status = status
	}
	if location := strings.TrimSpace(req.Location); location != "" {
		valve.Location = location
	}

	if err := s.valves.Update(ctx, valve.ID.String(), valve); err != nil {
		return nil, err
	}
	return valve, nil
}

func (s *Service) DeleteValve(ctx context.Context, id string) error {
	valve, err := s.GetValve(ctx, id)
	if err != nil {
		return err
	}
	return s.valves.Delete(ctx, valve.ID.String())
}

func parseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(value))
}
