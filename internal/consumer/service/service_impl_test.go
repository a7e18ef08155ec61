package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	consumerdomain "github.com/civicgrid/waterworks/internal/consumer/domain"
	consumerrepo "github.com/civicgrid/waterworks/internal/consumer/repository"
	"github.com/civicgrid/waterworks/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupConsumerTest(t *testing.T) (consumerdomain.Service, *snowflake.Node) {
	t.Helper()

	gdb, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&consumerdomain.Consumer{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:    gdb,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  consumerrepo.Provide(),
	})
	return svc, node
}

func TestConsumerCreate(t *testing.T) {
	svc, _ := setupConsumerTest(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, consumerdomain.CreateRequest{
		Name:     "Asha Raman",
		Address:  "14 Tank Bund Road",
		Phone:    "9876543210",
		Category: "domestic",
	})
	require.NoError(t, err)
	assert.Equal(t, consumerdomain.StatusActive, created.Status)
	assert.Equal(t, "DOMESTIC", string(created.Category))

	got, err := svc.Get(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Asha Raman", got.Name)
}

func TestConsumerCreate_Validation(t *testing.T) {
	svc, _ := setupConsumerTest(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, consumerdomain.CreateRequest{
		Name: " ", Address: "somewhere", Category: "DOMESTIC",
	})
	assert.ErrorIs(t, err, consumerdomain.ErrInvalidName)

	_, err = svc.Create(ctx, consumerdomain.CreateRequest{
		Name: "A", Address: "", Category: "DOMESTIC",
	})
	assert.ErrorIs(t, err, consumerdomain.ErrInvalidAddress)

	_, err = svc.Create(ctx, consumerdomain.CreateRequest{
		Name: "A", Address: "somewhere", Category: "RESIDENTIAL",
	})
	assert.ErrorIs(t, err, consumerdomain.ErrInvalidCategory)
}

func TestConsumerUpdate(t *testing.T) {
	svc, node := setupConsumerTest(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, consumerdomain.CreateRequest{
		Name: "Asha Raman", Address: "14 Tank Bund Road", Category: "DOMESTIC",
	})
	require.NoError(t, err)

	disconnected := "disconnected"
	newAddress := "22 Canal Street"
	updated, err := svc.Update(ctx, created.ID.String(), consumerdomain.UpdateRequest{
		Address: &newAddress,
		Status:  &disconnected,
	})
	require.NoError(t, err)
	assert.Equal(t, consumerdomain.StatusDisconnected, updated.Status)
	assert.Equal(t, newAddress, updated.Address)
	assert.Equal(t, "Asha Raman", updated.Name)

	bogus := "SUSPENDED"
	_, err = svc.Update(ctx, created.ID.String(), consumerdomain.UpdateRequest{Status: &bogus})
	assert.ErrorIs(t, err, consumerdomain.ErrInvalidStatus)

	_, err = svc.Update(ctx, node.Generate().String(), consumerdomain.UpdateRequest{Address: &newAddress})
	assert.ErrorIs(t, err, consumerdomain.ErrNotFound)
}

func TestConsumerList_Filters(t *testing.T) {
	svc, _ := setupConsumerTest(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, consumerdomain.CreateRequest{
		Name: "Asha Raman", Address: "14 Tank Bund Road", Category: "DOMESTIC",
	})
	require.NoError(t, err)

	shop, err := svc.Create(ctx, consumerdomain.CreateRequest{
		Name: "Lakshmi Stores", Address: "3 Market Lane", Category: "COMMERCIAL",
	})
	require.NoError(t, err)

	status := "disconnected"
	_, err = svc.Update(ctx, shop.ID.String(), consumerdomain.UpdateRequest{Status: &status})
	require.NoError(t, err)

	all, err := svc.List(ctx, consumerdomain.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	commercial, err := svc.List(ctx, consumerdomain.ListFilter{Category: "commercial"})
	require.NoError(t, err)
	require.Len(t, commercial, 1)
	assert.Equal(t, shop.ID, commercial[0].ID)

	active, err := svc.List(ctx, consumerdomain.ListFilter{Status: "ACTIVE"})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Asha Raman", active[0].Name)

	_, err = svc.List(ctx, consumerdomain.ListFilter{Status: "bogus"})
	assert.ErrorIs(t, err, consumerdomain.ErrInvalidStatus)
}
