package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	networkdomain "github.com/civicgrid/waterworks/internal/network/domain"
	"github.com/civicgrid/waterworks/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupNetworkTest(t *testing.T) (networkdomain.Service, *snowflake.Node) {
	t.Helper()

	gdb, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(
		&networkdomain.Source{},
		&networkdomain.TreatmentPlant{},
		&networkdomain.Reservoir{},
		&networkdomain.Pipeline{},
		&networkdomain.Valve{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:    gdb,
		Log:   zap.NewNop(),
		GenID: node,
	})
	return svc, node
}

func TestSourceCRUD(t *testing.T) {
	svc, node := setupNetworkTest(t)
	ctx := context.Background()

	created, err := svc.CreateSource(ctx, networkdomain.SourceRequest{
		Name:        "Kaveri Intake",
		Type:        "river",
		CapacityMLD: 120,
		Location:    "North Bank",
	})
	require.NoError(t, err)
	assert.Equal(t, networkdomain.SourceRiver, created.Type)

	updated, err := svc.UpdateSource(ctx, created.ID.String(), networkdomain.SourceRequest{
		CapacityMLD: 150,
	})
	require.NoError(t, err)
	assert.Equal(t, float64(150), updated.CapacityMLD)
	assert.Equal(t, "Kaveri Intake", updated.Name)

	listed, err := svc.ListSources(ctx)
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	require.NoError(t, svc.DeleteSource(ctx, created.ID.String()))
	_, err = svc.GetSource(ctx, created.ID.String())
	assert.ErrorIs(t, err, networkdomain.ErrNotFound)

	_, err = svc.GetSource(ctx, node.Generate().String())
	assert.ErrorIs(t, err, networkdomain.ErrNotFound)
}

func TestSourceValidation(t *testing.T) {
	svc, _ := setupNetworkTest(t)
	ctx := context.Background()

	_, err := svc.CreateSource(ctx, networkdomain.SourceRequest{
		Type: "RIVER", CapacityMLD: 10,
	})
	assert.ErrorIs(t, err, networkdomain.ErrInvalidName)

	_, err = svc.CreateSource(ctx, networkdomain.SourceRequest{
		Name: "X", Type: "OCEAN", CapacityMLD: 10,
	})
	assert.ErrorIs(t, err, networkdomain.ErrInvalidType)

	_, err = svc.CreateSource(ctx, networkdomain.SourceRequest{
		Name: "X", Type: "RIVER", CapacityMLD: -1,
	})
	assert.ErrorIs(t, err, networkdomain.ErrInvalidCapacity)
}

func TestPlantRequiresExistingSource(t *testing.T) {
	svc, node := setupNetworkTest(t)
	ctx := context.Background()

	_, err := svc.CreatePlant(ctx, networkdomain.PlantRequest{
		Name:        "WTP North",
		SourceID:    node.Generate().String(),
		CapacityMLD: 80,
	})
	assert.ErrorIs(t, err, networkdomain.ErrInvalidSource)

	source, err := svc.CreateSource(ctx, networkdomain.SourceRequest{
		Name: "Kaveri Intake", Type: "RIVER", CapacityMLD: 120,
	})
	require.NoError(t, err)

	plant, err := svc.CreatePlant(ctx, networkdomain.PlantRequest{
		Name:        "WTP North",
		SourceID:    source.ID.String(),
		CapacityMLD: 80,
	})
	require.NoError(t, err)
	assert.Equal(t, source.ID, plant.SourceID)
}

func TestValveStatusTransitions(t *testing.T) {
	svc, _ := setupNetworkTest(t)
	ctx := context.Background()

	valve, err := svc.CreateValve(ctx, networkdomain.ValveRequest{
		Name:   "Main Line Isolation",
		Type:   "SLUICE",
		Status: "open",
	})
	require.NoError(t, err)
	assert.Equal(t, networkdomain.ValveOpen, valve.Status)

	updated, err := svc.UpdateValve(ctx, valve.ID.String(), networkdomain.ValveRequest{
		Status: "CLOSED",
	})
	require.NoError(t, err)
	assert.Equal(t, networkdomain.ValveClosed, updated.Status)

	_, err = svc.UpdateValve(ctx, valve.ID.String(), networkdomain.ValveRequest{
		Status: "AJAR",
	})
	assert.ErrorIs(t, err, networkdomain.ErrInvalidStatus)
}

func TestReservoirAndPipelineCreate(t *testing.T) {
	svc, _ := setupNetworkTest(t)
	ctx := context.Background()

	reservoir, err := svc.CreateReservoir(ctx, networkdomain.ReservoirRequest{
		Name:           "Hilltop OHT",
		Type:           "OHT",
		CapacityLiters: 500000,
	})
	require.NoError(t, err)
	assert.Equal(t, networkdomain.ReservoirOHT, reservoir.Type)

	_, err = svc.CreateReservoir(ctx, networkdomain.ReservoirRequest{
		Name: "Bad", Type: "TANK", CapacityLiters: 1000,
	})
	assert.ErrorIs(t, err, networkdomain.ErrInvalidType)

	pipeline, err := svc.CreatePipeline(ctx, networkdomain.PipelineRequest{
		Name:         "Trunk Main 1",
		DiameterMM:   600,
		LengthMeters: 1250.5,
		Material:     "DI",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(600), pipeline.DiameterMM)

	_, err = svc.CreatePipeline(ctx, networkdomain.PipelineRequest{
		Name: "Bad", DiameterMM: 0, LengthMeters: 100,
	})
	assert.ErrorIs(t, err, networkdomain.ErrInvalidCapacity)
}
