package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	billingdomain "github.com/civicgrid/waterworks/internal/billing/domain"
	consumerdomain "github.com/civicgrid/waterworks/internal/consumer/domain"
	maintenancedomain "github.com/civicgrid/waterworks/internal/maintenance/domain"
	networkdomain "github.com/civicgrid/waterworks/internal/network/domain"
	tariffdomain "github.com/civicgrid/waterworks/internal/tariff/domain"
	"github.com/civicgrid/waterworks/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupDashboardTest(t *testing.T) (*gorm.DB, *snowflake.Node) {
	t.Helper()

	gdb, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(
		&consumerdomain.Consumer{},
		&billingdomain.Bill{},
		&maintenancedomain.Task{},
		&networkdomain.Source{},
	))

	node, err := snowflake.NewNode(3)
	require.NoError(t, err)
	return gdb, node
}

func TestDashboard_Summary_EmptyDatabase(t *testing.T) {
	gdb, _ := setupDashboardTest(t)
	svc := New(Params{DB: gdb, Log: zap.NewNop()})

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(0), summary.ConsumersTotal)
	assert.Equal(t, int64(0), summary.ConsumersActive)
	assert.Equal(t, int64(0), summary.BilledPaise)
	assert.Equal(t, int64(0), summary.CollectedPaise)
	assert.Equal(t, int64(0), summary.OutstandingPaise)
	assert.Equal(t, int64(0), summary.PendingMaintenance)
	assert.Equal(t, float64(0), summary.SourceCapacityMLD)
}

func TestDashboard_Summary(t *testing.T) {
	gdb, node := setupDashboardTest(t)
	svc := New(Params{DB: gdb, Log: zap.NewNop()})

	require.NoError(t, gdb.Create(&consumerdomain.Consumer{
		ID: node.Generate(), Name: "A", Address: "1", Category: tariffdomain.CategoryDomestic,
		Status: consumerdomain.StatusActive,
	}).Error)
	require.NoError(t, gdb.Create(&consumerdomain.Consumer{
		ID: node.Generate(), Name: "B", Address: "2", Category: tariffdomain.CategoryCommercial,
		Status: consumerdomain.StatusDisconnected,
	}).Error)

	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	due := now.AddDate(0, 0, 14)
	newBill := func(amount, paid int64, status billingdomain.Status) {
		require.NoError(t, gdb.Create(&billingdomain.Bill{
			ID: node.Generate(), ConsumerID: node.Generate(), ConnectionID: node.Generate(),
			TariffID: node.Generate(), BillMonth: "2026-02", BillDate: now, DueDate: due,
			AmountPaise: amount, PaidPaise: paid, Status: status,
			CreatedAt: now, UpdatedAt: now,
		}).Error)
	}
	newBill(12500, 12500, billingdomain.StatusPaid)
	newBill(10000, 4000, billingdomain.StatusPartiallyPaid)
	newBill(8000, 0, billingdomain.StatusPending)
	newBill(5000, 0, billingdomain.StatusOverdue)

	require.NoError(t, gdb.Create(&maintenancedomain.Task{
		ID: node.Generate(), AssetID: node.Generate(), Description: "pump overhaul",
		ScheduledFor: now, Status: maintenancedomain.StatusScheduled, CreatedAt: now, UpdatedAt: now,
	}).Error)
	require.NoError(t, gdb.Create(&maintenancedomain.Task{
		ID: node.Generate(), AssetID: node.Generate(), Description: "valve greasing",
		ScheduledFor: now, Status: maintenancedomain.StatusCompleted, CreatedAt: now, UpdatedAt: now,
	}).Error)

	require.NoError(t, gdb.Create(&networkdomain.Source{
		ID: node.Generate(), Name: "River Intake", Type: networkdomain.SourceRiver, CapacityMLD: 120.5,
	}).Error)
	require.NoError(t, gdb.Create(&networkdomain.Source{
		ID: node.Generate(), Name: "Borewell Field", Type: networkdomain.SourceBorewell, CapacityMLD: 14.5,
	}).Error)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), summary.ConsumersTotal)
	assert.Equal(t, int64(1), summary.ConsumersActive)
	assert.Equal(t, int64(35500), summary.BilledPaise)
	assert.Equal(t, int64(12500), summary.CollectedPaise)
	// Outstanding covers every bill not yet settled: 6000 + 8000 + 5000.
	assert.Equal(t, int64(19000), summary.OutstandingPaise)
	assert.Equal(t, int64(1), summary.PendingMaintenance)
	assert.InDelta(t, 135.0, summary.SourceCapacityMLD, 0.001)
}
