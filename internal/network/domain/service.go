package domain

import (
	"context"
	"errors"
)

type Service interface {
	CreateSource(ctx context.Context, req SourceRequest) (*Source, error)
	ListSources(ctx context.Context) ([]*Source, error)
	GetSource(ctx context.Context, id string) (*Source, error)
	UpdateSource(ctx context.Context, id string, req SourceRequest) (*Source, error)
	DeleteSource(ctx context.Context, id string) error

	CreatePlant(ctx context.Context, req PlantRequest) (*TreatmentPlant, error)
	ListPlants(ctx context.Context) ([]*TreatmentPlant, error)
	GetPlant(ctx context.Context, id string) (*TreatmentPlant, error)
	UpdatePlant(ctx context.Context, id string, req PlantRequest) (*TreatmentPlant, error)
	DeletePlant(ctx context.Context, id string) error

	CreateReservoir(ctx context.Context, req ReservoirRequest) (*Reservoir, error)
	ListReservoirs(ctx context.Context) ([]*Reservoir, error)
	GetReservoir(ctx context.Context, id string) (*Reservoir, error)
	UpdateReservoir(ctx context.Context, id string, req ReservoirRequest) (*Reservoir, error)
	DeleteReservoir(ctx context.Context, id string) error

	CreatePipeline(ctx context.Context, req PipelineRequest) (*Pipeline, error)
	ListPipelines(ctx context.Context) ([]*Pipeline, error)
	GetPipeline(ctx context.Context, id string) (*Pipeline, error)
	UpdatePipeline(ctx context.Context, id string, req PipelineRequest) (*Pipeline, error)
	DeletePipeline(ctx context.Context, id string) error

	CreateValve(ctx context.Context, req ValveRequest) (*Valve, error)
	ListValves(ctx context.Context) ([]*Valve, error)
	GetValve(ctx context.Context, id string) (*Valve, error)
	UpdateValve(ctx context.Context, id string, req ValveRequest) (*Valve, error)
	DeleteValve(ctx context.Context, id string) error
}

type SourceRequest struct {
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	CapacityMLD float64 `json:"capacity_mld"`
	Location    string  `json:"location"`
}

type PlantRequest struct {
	Name        string  `json:"name"`
	SourceID    string  `json:"source_id"`
	CapacityMLD float64 `json:"capacity_mld"`
	Location    string  `json:"location"`
}

type ReservoirRequest struct {
	Name           string `json:"name"`
	Type           string `json:"type"`
	CapacityLiters int64  `json:"capacity_liters"`
	Location       string `json:"location"`
}

type PipelineRequest struct {
	Name         string  `json:"name"`
	DiameterMM   int64   `json:"diameter_mm"`
	LengthMeters float64 `json:"length_meters"`
	Material     string  `json:"material"`
}

type ValveRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Status   string `json:"status"`
	Location string `json:"location"`
}

var (
	ErrInvalidID       = errors.New("invalid_id")
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidType     = errors.New("invalid_type")
	ErrInvalidCapacity = errors.New("invalid_capacity")
	ErrInvalidSource   = errors.New("invalid_source")
	ErrInvalidStatus   = errors.New("invalid_status")
	ErrNotFound        = errors.New("not_found")
)
