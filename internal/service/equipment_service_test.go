package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/ben/workshop-manager/internal/domain"
	"github.com/ben/workshop-manager/internal/service"
	"github.com/ben/workshop-manager/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newEquipmentService(t *testing.T) (*service.EquipmentService, *testutil.TestDB) {
	t.Helper()

	testDB := testutil.NewTestDB(t)
	repos := testDB.Repositories()
	svc := service.NewEquipmentService(repos.EquipmentType, repos.EquipmentInstance, repos.User, repos.ShopSpace, nil, zap.NewNop())
	return svc, testDB
}

func datePtr(t time.Time) *time.Time { return &t }

func TestEquipmentService_AddEquipmentType(t *testing.T) {
	svc, _ := newEquipmentService(t)
	ctx := context.Background()

	created, err := svc.AddEquipmentType(ctx, service.AddEquipmentTypeInput{
		Name:                    "Table Saw",
		Description:             "10 inch cabinet saw",
		Width:                   33,
		Height:                  34,
		Depth:                   85.25,
		MaintenanceIntervalDays: 30,
		Manufacturer:            "SawStop",
		Model:                   "PCS31230-TGP252",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "#aaa", created.Color, "color defaults when omitted")

	// Duplicate names are an integrity conflict
	_, err = svc.AddEquipmentType(ctx, service.AddEquipmentTypeInput{Name: "Table Saw"})
	require.Error(t, err)
	assert.True(t, domain.IsValidationError(err))
}

func TestEquipmentService_GetCatalogWithoutCache(t *testing.T) {
	svc, testDB := newEquipmentService(t)
	ctx := context.Background()

	testutil.NewEquipmentTypeBuilder().WithName("Jointer").Build(t, testDB.Stores.Equipment)
	testutil.NewEquipmentTypeBuilder().WithName("Band Saw").Build(t, testDB.Stores.Equipment)

	types, err := svc.GetCatalog(ctx)
	require.NoError(t, err)
	require.Len(t, types, 2)
	assert.Equal(t, "Band Saw", types[0].Name)
}

func TestEquipmentService_AddEquipmentToUser(t *testing.T) {
	svc, testDB := newEquipmentService(t)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.Stores.Users)
	equipmentType := testutil.NewEquipmentTypeBuilder().WithMaintenanceInterval(90).Build(t, testDB.Stores.Equipment)

	purchased := time.Date(2026, 6, 1, 15, 4, 5, 0, time.UTC)
	instance, err := svc.AddEquipmentToUser(ctx, user.ID, equipmentType.ID, "shop floor unit", datePtr(purchased))
	require.NoError(t, err)

	assert.Equal(t, user.ID, instance.UserID)
	assert.Equal(t, "shop floor unit", instance.Notes)
	require.NotNil(t, instance.EquipmentType)
	assert.Equal(t, equipmentType.Name, instance.EquipmentType.Name)

	// First due date is one interval past the purchase date, at midnight
	wantDue := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	require.NotNil(t, instance.NextMaintenanceDate)
	assert.Equal(t, wantDue, instance.NextMaintenanceDate.UTC())
	assert.Nil(t, instance.LastMaintenanceDate)
}

func TestEquipmentService_AddEquipmentToUser_UnknownReferences(t *testing.T) {
	svc, testDB := newEquipmentService(t)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.Stores.Users)
	equipmentType := testutil.NewEquipmentTypeBuilder().Build(t, testDB.Stores.Equipment)

	_, err := svc.AddEquipmentToUser(ctx, 99999, equipmentType.ID, "", nil)
	require.Error(t, err)
	assert.True(t, domain.IsValidationError(err))

	_, err = svc.AddEquipmentToUser(ctx, user.ID, 99999, "", nil)
	require.Error(t, err)
	assert.True(t, domain.IsValidationError(err))
}

func TestEquipmentService_PerformMaintenance_AnchorsToServiceDate(t *testing.T) {
	svc, testDB := newEquipmentService(t)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.Stores.Users)
	equipmentType := testutil.NewEquipmentTypeBuilder().WithMaintenanceInterval(60).Build(t, testDB.Stores.Equipment)

	purchased := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	instance, err := svc.AddEquipmentToUser(ctx, user.ID, equipmentType.ID, "", datePtr(purchased))
	require.NoError(t, err)

	serviced := time.Date(2026, 5, 15, 9, 0, 0, 0, time.UTC)
	got, err := svc.PerformMaintenance(ctx, instance.ID, datePtr(serviced))
	require.NoError(t, err)

	require.NotNil(t, got.LastMaintenanceDate)
	assert.Equal(t, time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC), got.LastMaintenanceDate.UTC())
	require.NotNil(t, got.NextMaintenanceDate)
	assert.Equal(t, time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC), got.NextMaintenanceDate.UTC())
}

func TestEquipmentService_PerformMaintenance_UnknownEquipment(t *testing.T) {
	svc, _ := newEquipmentService(t)
	ctx := context.Background()

	_, err := svc.PerformMaintenance(ctx, 99999, nil)
	require.Error(t, err)
	assert.True(t, domain.IsValidationError(err))
}

func TestEquipmentService_GetMaintenanceSummary(t *testing.T) {
	svc, testDB := newEquipmentService(t)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.Stores.Users)
	equipmentType := testutil.NewEquipmentTypeBuilder().Build(t, testDB.Stores.Equipment)

	today := time.Now().UTC().Truncate(24 * time.Hour)

	testutil.NewEquipmentInstanceBuilder(user.ID, equipmentType.ID).
		WithNextMaintenance(today.AddDate(0, 0, -10)).
		Build(t, testDB.Stores.Equipment)
	testutil.NewEquipmentInstanceBuilder(user.ID, equipmentType.ID).
		WithNextMaintenance(today.AddDate(0, 0, 5)).
		Build(t, testDB.Stores.Equipment)
	testutil.NewEquipmentInstanceBuilder(user.ID, equipmentType.ID).
		WithNextMaintenance(today.AddDate(0, 0, 200)).
		Build(t, testDB.Stores.Equipment)

	summary, err := svc.GetMaintenanceSummary(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, summary.UserID)
	assert.Equal(t, 3, summary.TotalEquipment)
	assert.Equal(t, 1, summary.OverdueMaintenance)
	assert.Equal(t, 1, summary.DueWithin30Days)
}

func TestEquipmentService_GetMaintenanceSchedule(t *testing.T) {
	svc, testDB := newEquipmentService(t)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().WithUsername("dana").Build(t, testDB.Stores.Users)
	equipmentType := testutil.NewEquipmentTypeBuilder().WithName("Drill Press").Build(t, testDB.Stores.Equipment)

	today := time.Now().UTC().Truncate(24 * time.Hour)

	overdue := testutil.NewEquipmentInstanceBuilder(user.ID, equipmentType.ID).
		WithNextMaintenance(today.AddDate(0, 0, -3)).
		Build(t, testDB.Stores.Equipment)
	thisWeek := testutil.NewEquipmentInstanceBuilder(user.ID, equipmentType.ID).
		WithNextMaintenance(today.AddDate(0, 0, 4)).
		Build(t, testDB.Stores.Equipment)
	upcoming := testutil.NewEquipmentInstanceBuilder(user.ID, equipmentType.ID).
		WithNextMaintenance(today.AddDate(0, 0, 45)).
		Build(t, testDB.Stores.Equipment)
	// Never placed in a shop, so it must not appear in the schedule
	testutil.NewEquipmentInstanceBuilder(user.ID, equipmentType.ID).
		WithNextMaintenance(today.AddDate(0, 0, 1)).
		Build(t, testDB.Stores.Equipment)

	testutil.NewShopSpaceBuilder("dana").
		WithShopName("MainShop").
		WithPlacement(domain.Placement{EquipmentID: overdue.ID, DateAdded: today}).
		WithPlacement(domain.Placement{EquipmentID: thisWeek.ID, DateAdded: today}).
		WithPlacement(domain.Placement{EquipmentID: upcoming.ID, DateAdded: today}).
		WithPlacement(domain.Placement{EquipmentID: 99999, DateAdded: today}).
		Build(t, testDB.Stores.ShopSpaces)

	schedule, err := svc.GetMaintenanceSchedule(ctx, user.ID)
	require.NoError(t, err)

	// Only placed equipment shows up; the dangling 99999 entry and the
	// unplaced instance are skipped
	require.Len(t, schedule.Overdue, 1)
	require.Len(t, schedule.ThisWeek, 1)
	require.Len(t, schedule.Upcoming, 1)

	assert.Equal(t, overdue.ID, schedule.Overdue[0].EquipmentID)
	assert.True(t, schedule.Overdue[0].IsOverdue)
	assert.Negative(t, schedule.Overdue[0].DaysUntil)

	assert.Equal(t, thisWeek.ID, schedule.ThisWeek[0].EquipmentID)
	assert.True(t, schedule.ThisWeek[0].IsDueSoon)
	assert.Equal(t, "Drill Press", schedule.ThisWeek[0].EquipmentName)
	assert.Equal(t, "MainShop", schedule.ThisWeek[0].ShopName)

	assert.Equal(t, upcoming.ID, schedule.Upcoming[0].EquipmentID)
	assert.False(t, schedule.Upcoming[0].IsOverdue)
	assert.False(t, schedule.Upcoming[0].IsDueSoon)
}

func TestEquipmentService_GetMaintenanceSchedule_UnknownUser(t *testing.T) {
	svc, _ := newEquipmentService(t)
	ctx := context.Background()

	_, err := svc.GetMaintenanceSchedule(ctx, 99999)
	require.Error(t, err)
	assert.True(t, domain.IsValidationError(err))
}

func TestEquipmentService_GetMaintenanceSchedule_EmptyBucketsAreNotNil(t *testing.T) {
	svc, testDB := newEquipmentService(t)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.Stores.Users)

	schedule, err := svc.GetMaintenanceSchedule(ctx, user.ID)
	require.NoError(t, err)
	assert.NotNil(t, schedule.Overdue)
	assert.NotNil(t, schedule.ThisWeek)
	assert.NotNil(t, schedule.Upcoming)
	assert.Empty(t, schedule.Overdue)
}

func TestEquipmentService_DeleteLeavesPlacementsDangling(t *testing.T) {
	svc, testDB := newEquipmentService(t)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().WithUsername("erin").Build(t, testDB.Stores.Users)
	equipmentType := testutil.NewEquipmentTypeBuilder().Build(t, testDB.Stores.Equipment)
	instance := testutil.NewEquipmentInstanceBuilder(user.ID, equipmentType.ID).Build(t, testDB.Stores.Equipment)

	shop := testutil.NewShopSpaceBuilder("erin").
		WithPlacement(domain.Placement{EquipmentID: instance.ID}).
		Build(t, testDB.Stores.ShopSpaces)

	deleted, err := svc.DeleteUserEquipment(ctx, instance.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	// The placement row is untouched; cleanup is the shop owner's job
	var got domain.ShopSpace
	require.NoError(t, testDB.Stores.ShopSpaces.First(&got, "shop_id = ?", shop.ShopID).Error)
	require.Len(t, got.Equipment, 1)
	assert.Equal(t, instance.ID, got.Equipment[0].EquipmentID)
}
