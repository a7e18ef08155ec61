package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	assetdomain "github.com/civicgrid/waterworks/internal/asset/domain"
	"github.com/civicgrid/waterworks/internal/clock"
	maintenancedomain "github.com/civicgrid/waterworks/internal/maintenance/domain"
	"github.com/civicgrid/waterworks/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupMaintenanceTest(t *testing.T) (*gorm.DB, maintenancedomain.Service, *snowflake.Node, *clock.FakeClock) {
	t.Helper()

	gdb, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(
		&assetdomain.Asset{},
		&maintenancedomain.Task{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	fake := clock.NewFakeClock(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))

	svc := New(Params{
		DB:    gdb,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: fake,
	})

	return gdb, svc, node, fake
}

func seedAsset(t *testing.T, gdb *gorm.DB, node *snowflake.Node) snowflake.ID {
	t.Helper()

	assetID := node.Generate()
	require.NoError(t, gdb.Create(&assetdomain.Asset{
		ID:     assetID,
		Name:   "Pump Station 4",
		Type:   "PUMP",
		Status: assetdomain.StatusOperational,
	}).Error)
	return assetID
}

func TestMaintenanceCreate(t *testing.T) {
	gdb, svc, node, _ := setupMaintenanceTest(t)
	ctx := context.Background()
	assetID := seedAsset(t, gdb, node)

	task, err := svc.Create(ctx, maintenancedomain.CreateRequest{
		AssetID:      assetID.String(),
		Description:  "Replace impeller bearings",
		ScheduledFor: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, maintenancedomain.StatusScheduled, task.Status)
	assert.Nil(t, task.CompletedAt)

	byAsset, err := svc.ListByAsset(ctx, assetID.String())
	require.NoError(t, err)
	require.Len(t, byAsset, 1)
	assert.Equal(t, task.ID, byAsset[0].ID)
}

func TestMaintenanceCreate_Validation(t *testing.T) {
	gdb, svc, node, _ := setupMaintenanceTest(t)
	ctx := context.Background()
	assetID := seedAsset(t, gdb, node)
	scheduled := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	_, err := svc.Create(ctx, maintenancedomain.CreateRequest{
		AssetID: "not-a-snowflake", Description: "x", ScheduledFor: scheduled,
	})
	assert.ErrorIs(t, err, maintenancedomain.ErrInvalidAsset)

	_, err = svc.Create(ctx, maintenancedomain.CreateRequest{
		AssetID: node.Generate().String(), Description: "x", ScheduledFor: scheduled,
	})
	assert.ErrorIs(t, err, maintenancedomain.ErrInvalidAsset)

	_, err = svc.Create(ctx, maintenancedomain.CreateRequest{
		AssetID: assetID.String(), Description: "   ", ScheduledFor: scheduled,
	})
	assert.ErrorIs(t, err, maintenancedomain.ErrInvalidDescription)

	_, err = svc.Create(ctx, maintenancedomain.CreateRequest{
		AssetID: assetID.String(), Description: "x",
	})
	assert.ErrorIs(t, err, maintenancedomain.ErrInvalidSchedule)
}

func TestMaintenanceUpdateStatus_Lifecycle(t *testing.T) {
	gdb, svc, node, fake := setupMaintenanceTest(t)
	ctx := context.Background()
	assetID := seedAsset(t, gdb, node)

	task, err := svc.Create(ctx, maintenancedomain.CreateRequest{
		AssetID:      assetID.String(),
		Description:  "Flush sediment from clearwell",
		ScheduledFor: time.Date(2026, 3, 5, 6, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ctx, task.ID.String(), "in_progress")
	require.NoError(t, err)
	assert.Equal(t, maintenancedomain.StatusInProgress, updated.Status)

	completed, err := svc.UpdateStatus(ctx, task.ID.String(), "COMPLETED")
	require.NoError(t, err)
	assert.Equal(t, maintenancedomain.StatusCompleted, completed.Status)
	require.NotNil(t, completed.CompletedAt)
	assert.Equal(t, fake.Now(), *completed.CompletedAt)
}

func TestMaintenanceUpdateStatus_TerminalIsFinal(t *testing.T) {
	gdb, svc, node, _ := setupMaintenanceTest(t)
	ctx := context.Background()
	assetID := seedAsset(t, gdb, node)

	task, err := svc.Create(ctx, maintenancedomain.CreateRequest{
		AssetID:      assetID.String(),
		Description:  "Inspect valve actuator",
		ScheduledFor: time.Date(2026, 3, 5, 6, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, task.ID.String(), "CANCELLED")
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, task.ID.String(), "SCHEDULED")
	assert.ErrorIs(t, err, maintenancedomain.ErrTerminalStatus)

	_, err = svc.UpdateStatus(ctx, task.ID.String(), "COMPLETED")
	assert.ErrorIs(t, err, maintenancedomain.ErrTerminalStatus)

	got, err := svc.Get(ctx, task.ID.String())
	require.NoError(t, err)
	assert.Equal(t, maintenancedomain.StatusCancelled, got.Status)
	assert.Nil(t, got.CompletedAt)
}

func TestMaintenanceUpdateStatus_Invalid(t *testing.T) {
	gdb, svc, node, _ := setupMaintenanceTest(t)
	ctx := context.Background()
	assetID := seedAsset(t, gdb, node)

	task, err := svc.Create(ctx, maintenancedomain.CreateRequest{
		AssetID:      assetID.String(),
		Description:  "Calibrate chlorine dosing",
		ScheduledFor: time.Date(2026, 3, 5, 6, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, task.ID.String(), "DONE")
	assert.ErrorIs(t, err, maintenancedomain.ErrInvalidStatus)

	_, err = svc.UpdateStatus(ctx, node.Generate().String(), "COMPLETED")
	assert.ErrorIs(t, err, maintenancedomain.ErrNotFound)
}
