package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	connectiondomain "github.com/civicgrid/waterworks/internal/connection/domain"
	connectionrepo "github.com/civicgrid/waterworks/internal/connection/repository"
	consumerdomain "github.com/civicgrid/waterworks/internal/consumer/domain"
	consumerrepo "github.com/civicgrid/waterworks/internal/consumer/repository"
	tariffdomain "github.com/civicgrid/waterworks/internal/tariff/domain"
	"github.com/civicgrid/waterworks/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupConnectionTest(t *testing.T) (*gorm.DB, connectiondomain.Service, *snowflake.Node) {
	t.Helper()

	gdb, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(
		&consumerdomain.Consumer{},
		&connectiondomain.Connection{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:           gdb,
		Log:          zap.NewNop(),
		GenID:        node,
		Repo:         connectionrepo.Provide(),
		ConsumerRepo: consumerrepo.Provide(),
	})
	return gdb, svc, node
}

func seedConsumer(t *testing.T, gdb *gorm.DB, node *snowflake.Node) snowflake.ID {
	t.Helper()

	consumerID := node.Generate()
	require.NoError(t, gdb.Create(&consumerdomain.Consumer{
		ID:       consumerID,
		Name:     "Asha Raman",
		Address:  "14 Tank Bund Road",
		Category: tariffdomain.CategoryDomestic,
		Status:   consumerdomain.StatusActive,
	}).Error)
	return consumerID
}

func TestConnectionCreate(t *testing.T) {
	gdb, svc, node := setupConnectionTest(t)
	ctx := context.Background()
	consumerID := seedConsumer(t, gdb, node)

	created, err := svc.Create(ctx, connectiondomain.CreateRequest{
		ConsumerID:  consumerID.String(),
		MeterSerial: "MTR-00421",
		Type:        "metered",
		InstalledAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, connectiondomain.TypeMetered, created.Type)
	assert.Equal(t, connectiondomain.StatusActive, created.Status)

	listed, err := svc.List(ctx, consumerID.String())
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)
}

func TestConnectionCreate_UnmeteredNeedsNoSerial(t *testing.T) {
	gdb, svc, node := setupConnectionTest(t)
	ctx := context.Background()
	consumerID := seedConsumer(t, gdb, node)

	created, err := svc.Create(ctx, connectiondomain.CreateRequest{
		ConsumerID: consumerID.String(),
		Type:       "UNMETERED",
	})
	require.NoError(t, err)
	assert.Empty(t, created.MeterSerial)
	assert.False(t, created.InstalledAt.IsZero())
}

func TestConnectionCreate_Validation(t *testing.T) {
	gdb, svc, node := setupConnectionTest(t)
	ctx := context.Background()
	consumerID := seedConsumer(t, gdb, node)

	_, err := svc.Create(ctx, connectiondomain.CreateRequest{
		ConsumerID: "nope", Type: "METERED", MeterSerial: "MTR-1",
	})
	assert.ErrorIs(t, err, connectiondomain.ErrInvalidConsumer)

	_, err = svc.Create(ctx, connectiondomain.CreateRequest{
		ConsumerID: node.Generate().String(), Type: "METERED", MeterSerial: "MTR-1",
	})
	assert.ErrorIs(t, err, connectiondomain.ErrInvalidConsumer)

	_, err = svc.Create(ctx, connectiondomain.CreateRequest{
		ConsumerID: consumerID.String(), Type: "BULK",
	})
	assert.ErrorIs(t, err, connectiondomain.ErrInvalidType)

	_, err = svc.Create(ctx, connectiondomain.CreateRequest{
		ConsumerID: consumerID.String(), Type: "METERED",
	})
	assert.ErrorIs(t, err, connectiondomain.ErrInvalidMeterSerial)
}

func TestConnectionUpdate(t *testing.T) {
	gdb, svc, node := setupConnectionTest(t)
	ctx := context.Background()
	consumerID := seedConsumer(t, gdb, node)

	created, err := svc.Create(ctx, connectiondomain.CreateRequest{
		ConsumerID:  consumerID.String(),
		MeterSerial: "MTR-00421",
		Type:        "METERED",
	})
	require.NoError(t, err)

	serial := "MTR-00422"
	status := "disconnected"
	updated, err := svc.Update(ctx, created.ID.String(), connectiondomain.UpdateRequest{
		MeterSerial: &serial,
		Status:      &status,
	})
	require.NoError(t, err)
	assert.Equal(t, serial, updated.MeterSerial)
	assert.Equal(t, connectiondomain.StatusDisconnected, updated.Status)

	got, err := svc.Get(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, connectiondomain.StatusDisconnected, got.Status)

	_, err = svc.Get(ctx, node.Generate().String())
	assert.ErrorIs(t, err, connectiondomain.ErrNotFound)
}
