package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	assetdomain "github.com/civicgrid/waterworks/internal/asset/domain"
	"github.com/civicgrid/waterworks/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupAssetTest(t *testing.T) (assetdomain.Service, *snowflake.Node) {
	t.Helper()

	gdb, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&assetdomain.Asset{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:    gdb,
		Log:   zap.NewNop(),
		GenID: node,
	})
	return svc, node
}

func TestAssetCreate_DefaultsToOperational(t *testing.T) {
	svc, _ := setupAssetTest(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, assetdomain.Request{
		Name:           "Booster Pump 2",
		Type:           "PUMP",
		Location:       "Zone 3",
		CommissionedAt: time.Date(2022, 8, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, assetdomain.StatusOperational, created.Status)

	got, err := svc.Get(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Booster Pump 2", got.Name)
}

func TestAssetCreate_Validation(t *testing.T) {
	svc, _ := setupAssetTest(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, assetdomain.Request{Type: "PUMP"})
	assert.ErrorIs(t, err, assetdomain.ErrInvalidName)

	_, err = svc.Create(ctx, assetdomain.Request{Name: "X"})
	assert.ErrorIs(t, err, assetdomain.ErrInvalidType)

	_, err = svc.Create(ctx, assetdomain.Request{Name: "X", Type: "PUMP", Status: "BROKEN"})
	assert.ErrorIs(t, err, assetdomain.ErrInvalidStatus)
}

func TestAssetUpdateAndDelete(t *testing.T) {
	svc, node := setupAssetTest(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, assetdomain.Request{
		Name: "Booster Pump 2", Type: "PUMP",
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID.String(), assetdomain.Request{
		Status: "degraded",
	})
	require.NoError(t, err)
	assert.Equal(t, assetdomain.StatusDegraded, updated.Status)
	assert.Equal(t, "Booster Pump 2", updated.Name)

	require.NoError(t, svc.Delete(ctx, created.ID.String()))
	_, err = svc.Get(ctx, created.ID.String())
	assert.ErrorIs(t, err, assetdomain.ErrNotFound)

	_, err = svc.Get(ctx, node.Generate().String())
	assert.ErrorIs(t, err, assetdomain.ErrNotFound)
}
