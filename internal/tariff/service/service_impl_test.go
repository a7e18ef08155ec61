package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	tariffdomain "github.com/civicgrid/waterworks/internal/tariff/domain"
	tariffrepo "github.com/civicgrid/waterworks/internal/tariff/repository"
	"github.com/civicgrid/waterworks/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupTariffTest(t *testing.T) (*gorm.DB, tariffdomain.Service, *snowflake.Node) {
	t.Helper()

	gdb, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(
		&tariffdomain.Tariff{},
		&tariffdomain.TariffSlab{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:    gdb,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  tariffrepo.Provide(),
	})

	return gdb, svc, node
}

func liters(v int64) *int64 { return &v }

func domesticRequest(effectiveFrom time.Time) tariffdomain.CreateRequest {
	return tariffdomain.CreateRequest{
		Category:      "domestic",
		Name:          "Domestic Standard",
		EffectiveFrom: effectiveFrom,
		Slabs: []tariffdomain.SlabRequest{
			{StartLiters: 0, EndLiters: liters(15000), RatePerKLPaise: 500},
			{StartLiters: 15001, EndLiters: liters(30000), RatePerKLPaise: 1000},
			{StartLiters: 30001, RatePerKLPaise: 2000},
		},
	}
}

func TestTariffCreate(t *testing.T) {
	_, svc, _ := setupTariffTest(t)
	ctx := context.Background()

	resp, err := svc.Create(ctx, domesticRequest(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	assert.Equal(t, tariffdomain.CategoryDomestic, resp.Category)
	assert.True(t, resp.Active)
	require.Len(t, resp.Slabs, 3)
	assert.Nil(t, resp.Slabs[2].EndLiters)

	got, err := svc.Get(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.ID, got.ID)
	assert.Len(t, got.Slabs, 3)
}

func TestTariffCreate_SlabValidation(t *testing.T) {
	_, svc, _ := setupTariffTest(t)
	ctx := context.Background()
	effective := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		slabs []tariffdomain.SlabRequest
		want  error
	}{
		{
			name:  "empty",
			slabs: nil,
			want:  tariffdomain.ErrInvalidSlabs,
		},
		{
			name: "does not start at zero",
			slabs: []tariffdomain.SlabRequest{
				{StartLiters: 100, RatePerKLPaise: 500},
			},
			want: tariffdomain.ErrInvalidSlabs,
		},
		{
			name: "gap between slabs",
			slabs: []tariffdomain.SlabRequest{
				{StartLiters: 0, EndLiters: liters(10000), RatePerKLPaise: 500},
				{StartLiters: 12000, RatePerKLPaise: 1000},
			},
			want: tariffdomain.ErrInvalidSlabs,
		},
		{
			name: "overlapping slabs",
			slabs: []tariffdomain.SlabRequest{
				{StartLiters: 0, EndLiters: liters(10000), RatePerKLPaise: 500},
				{StartLiters: 9000, RatePerKLPaise: 1000},
			},
			want: tariffdomain.ErrInvalidSlabs,
		},
		{
			name: "bounded terminal slab",
			slabs: []tariffdomain.SlabRequest{
				{StartLiters: 0, EndLiters: liters(10000), RatePerKLPaise: 500},
			},
			want: tariffdomain.ErrInvalidSlabs,
		},
		{
			name: "negative rate",
			slabs: []tariffdomain.SlabRequest{
				{StartLiters: 0, EndLiters: liters(10000), RatePerKLPaise: -1},
				{StartLiters: 10001, RatePerKLPaise: 1000},
			},
			want: tariffdomain.ErrInvalidSlabRate,
		},
		{
			name: "end before start",
			slabs: []tariffdomain.SlabRequest{
				{StartLiters: 0, EndLiters: liters(-5), RatePerKLPaise: 500},
				{StartLiters: -4, RatePerKLPaise: 1000},
			},
			want: tariffdomain.ErrInvalidSlabRange,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tariffdomain.CreateRequest{
				Category:      "DOMESTIC",
				Name:          "Broken",
				EffectiveFrom: effective,
				Slabs:         tc.slabs,
			})
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestTariffCreate_Validation(t *testing.T) {
	_, svc, _ := setupTariffTest(t)
	ctx := context.Background()

	req := domesticRequest(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	req.Category = "RESIDENTIAL"
	_, err := svc.Create(ctx, req)
	assert.ErrorIs(t, err, tariffdomain.ErrInvalidCategory)

	req = domesticRequest(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	req.Name = "   "
	_, err = svc.Create(ctx, req)
	assert.ErrorIs(t, err, tariffdomain.ErrInvalidName)

	req = domesticRequest(time.Time{})
	_, err = svc.Create(ctx, req)
	assert.ErrorIs(t, err, tariffdomain.ErrInvalidEffectiveFrom)
}

func TestTariffResolve_PicksLatestEffective(t *testing.T) {
	_, svc, _ := setupTariffTest(t)
	ctx := context.Background()

	older, err := svc.Create(ctx, domesticRequest(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	newerReq := domesticRequest(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	newerReq.Slabs[0].RatePerKLPaise = 600
	newer, err := svc.Create(ctx, newerReq)
	require.NoError(t, err)

	resolved, err := svc.Resolve(ctx, tariffdomain.CategoryDomestic, time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, newer.ID, resolved.ID.String())
	assert.Equal(t, int64(600), resolved.Slabs[0].RatePerKLPaise)

	// A date before the newer schedule took effect resolves the older one.
	resolved, err = svc.Resolve(ctx, tariffdomain.CategoryDomestic, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, older.ID, resolved.ID.String())
}

func TestTariffResolve_NoCoverage(t *testing.T) {
	_, svc, _ := setupTariffTest(t)
	ctx := context.Background()

	_, err := svc.Resolve(ctx, tariffdomain.CategoryDomestic, time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, tariffdomain.ErrNoTariff)

	_, err = svc.Create(ctx, domesticRequest(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	// Still uncovered before the schedule's effective date.
	_, err = svc.Resolve(ctx, tariffdomain.CategoryDomestic, time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, tariffdomain.ErrNoTariff)

	_, err = svc.Resolve(ctx, tariffdomain.CategoryCommercial, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, tariffdomain.ErrNoTariff)
}

func TestTariffDeactivate_ExcludedFromResolve(t *testing.T) {
	_, svc, _ := setupTariffTest(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domesticRequest(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	resp, err := svc.Deactivate(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, resp.Active)

	// The record survives for historical bills but no longer resolves.
	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)

	_, err = svc.Resolve(ctx, tariffdomain.CategoryDomestic, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, tariffdomain.ErrNoTariff)
}

func TestTariffResolve_CorruptPersistedSlabs(t *testing.T) {
	gdb, svc, node := setupTariffTest(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domesticRequest(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	// Orphan slab row punches a hole in the schedule.
	tariffID, err := snowflake.ParseString(created.ID)
	require.NoError(t, err)
	require.NoError(t, gdb.Create(&tariffdomain.TariffSlab{
		ID:             node.Generate(),
		TariffID:       tariffID,
		StartLiters:    90000,
		EndLiters:      liters(95000),
		RatePerKLPaise: 100,
	}).Error)

	_, err = svc.Resolve(ctx, tariffdomain.CategoryDomestic, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, tariffdomain.ErrCorruptSlabs)
}

func TestTariffList_FiltersByCategory(t *testing.T) {
	_, svc, _ := setupTariffTest(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domesticRequest(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	commercial := domesticRequest(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	commercial.Category = "COMMERCIAL"
	commercial.Name = "Commercial Standard"
	_, err = svc.Create(ctx, commercial)
	require.NoError(t, err)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	domestic, err := svc.List(ctx, "domestic")
	require.NoError(t, err)
	require.Len(t, domestic, 1)
	assert.Equal(t, tariffdomain.CategoryDomestic, domestic[0].Category)
	assert.Len(t, domestic[0].Slabs, 3)

	_, err = svc.List(ctx, "bogus")
	assert.ErrorIs(t, err, tariffdomain.ErrInvalidCategory)
}
