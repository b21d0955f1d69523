package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/ben/workshop-manager/internal/domain"
	"github.com/ben/workshop-manager/internal/repository/postgres"
	"github.com/ben/workshop-manager/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShopSpaceRepository_CreateAndGet(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewShopSpaceRepository(testDB.Stores.ShopSpaces)
	ctx := context.Background()

	shop := testutil.NewShopSpaceBuilder("alice").
		WithShopName("MySpace").
		WithDimensions(500, 400, 300).
		Build(t, testDB.Stores.ShopSpaces)

	got, err := repo.GetByID(ctx, shop.ShopID)
	require.NoError(t, err)
	assert.Equal(t, shop.ShopID, got.ShopID)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "MySpace", got.ShopName)
	assert.Equal(t, 500.0, got.Length)
	assert.Equal(t, 400.0, got.Width)
	assert.Equal(t, 300.0, got.Height)
	assert.Empty(t, got.Equipment)
}

func TestShopSpaceRepository_GetByID_NotFound(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewShopSpaceRepository(testDB.Stores.ShopSpaces)
	ctx := context.Background()

	got, err := repo.GetByID(ctx, "nobody_NoShop_20260101_000000")
	assert.Error(t, err)
	assert.Nil(t, got)
}

func TestShopSpaceRepository_DuplicateShopID(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewShopSpaceRepository(testDB.Stores.ShopSpaces)
	ctx := context.Background()

	shop := testutil.NewShopSpaceBuilder("alice").Build(t, testDB.Stores.ShopSpaces)

	dup := &domain.ShopSpace{
		ShopID:            shop.ShopID,
		Username:          shop.Username,
		ShopName:          shop.ShopName,
		CreationTimestamp: shop.CreationTimestamp,
		Length:            1,
		Width:             1,
		Height:            1,
	}
	assert.Error(t, repo.Create(ctx, dup))
}

func TestShopSpaceRepository_GetByUsername_NewestFirst(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewShopSpaceRepository(testDB.Stores.ShopSpaces)
	ctx := context.Background()

	older := &domain.ShopSpace{
		ShopID:            "bob_OldShop_20260101_000000",
		Username:          "bob",
		ShopName:          "OldShop",
		CreationTimestamp: time.Now().Add(-2 * time.Hour),
		Length:            100, Width: 100, Height: 100,
	}
	newer := &domain.ShopSpace{
		ShopID:            "bob_NewShop_20260101_020000",
		Username:          "bob",
		ShopName:          "NewShop",
		CreationTimestamp: time.Now(),
		Length:            100, Width: 100, Height: 100,
	}
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))

	// Another user's shop must not leak in
	testutil.NewShopSpaceBuilder("carol").Build(t, testDB.Stores.ShopSpaces)

	shops, err := repo.GetByUsername(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, shops, 2)
	assert.Equal(t, "NewShop", shops[0].ShopName)
	assert.Equal(t, "OldShop", shops[1].ShopName)
}

func TestShopSpaceRepository_GetByUsername_UnknownUserIsEmpty(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewShopSpaceRepository(testDB.Stores.ShopSpaces)
	ctx := context.Background()

	shops, err := repo.GetByUsername(ctx, "ghost")
	require.NoError(t, err)
	assert.Empty(t, shops)
}

func TestShopSpaceRepository_SaveRewritesEquipmentColumn(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewShopSpaceRepository(testDB.Stores.ShopSpaces)
	ctx := context.Background()

	shop := testutil.NewShopSpaceBuilder("alice").Build(t, testDB.Stores.ShopSpaces)

	shop.Equipment = append(shop.Equipment, domain.Placement{
		EquipmentID: 42,
		DateAdded:   time.Now().UTC().Truncate(time.Second),
		X:           1.0, Y: 2.0, Z: 0.0,
	})
	require.NoError(t, repo.Save(ctx, shop))

	got, err := repo.GetByID(ctx, shop.ShopID)
	require.NoError(t, err)
	require.Len(t, got.Equipment, 1)
	assert.EqualValues(t, 42, got.Equipment[0].EquipmentID)
	assert.Equal(t, 1.0, got.Equipment[0].X)
	assert.Equal(t, 2.0, got.Equipment[0].Y)

	got.Equipment = domain.PlacementList{}
	require.NoError(t, repo.Save(ctx, got))

	emptied, err := repo.GetByID(ctx, shop.ShopID)
	require.NoError(t, err)
	assert.Empty(t, emptied.Equipment)
}

func TestShopSpaceRepository_Delete(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewShopSpaceRepository(testDB.Stores.ShopSpaces)
	ctx := context.Background()

	shop := testutil.NewShopSpaceBuilder("alice").Build(t, testDB.Stores.ShopSpaces)

	deleted, err := repo.Delete(ctx, shop.ShopID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, shop.ShopID)
	require.NoError(t, err)
	assert.False(t, deleted)
}
