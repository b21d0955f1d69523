package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ben/workshop-manager/internal/domain"
	"github.com/ben/workshop-manager/internal/repository"
	repoPostgres "github.com/ben/workshop-manager/internal/repository/postgres"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB manages a testcontainers PostgreSQL instance. The production
// deployment splits users, equipment and shop spaces across three
// stores; tests point all three at the same container, which preserves
// the "no cross-store constraints" property since each store only ever
// touches its own tables.
type TestDB struct {
	Container testcontainers.Container
	Stores    *repoPostgres.Stores
	DSN       string
}

// NewTestDB starts a PostgreSQL testcontainer, runs migrations for all
// three stores, and registers cleanup.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	container, err := tcPostgres.Run(ctx,
		"postgres:15-alpine",
		tcPostgres.WithDatabase("test_workshop"),
		tcPostgres.WithUsername("test"),
		tcPostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	db, err := gorm.Open(gormPostgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&domain.User{},
		&domain.UserSession{},
		&domain.EquipmentType{},
		&domain.EquipmentInstance{},
		&domain.ShopSpace{},
	)
	if err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	testDB := &TestDB{
		Container: container,
		Stores:    &repoPostgres.Stores{Users: db, Equipment: db, ShopSpaces: db},
		DSN:       dsn,
	}

	t.Cleanup(func() {
		testDB.Cleanup()
	})

	return testDB
}

// Repositories builds the repository bundle over the test stores.
func (tdb *TestDB) Repositories() *repository.Repositories {
	return repoPostgres.NewRepositories(tdb.Stores)
}

// Cleanup terminates the container
func (tdb *TestDB) Cleanup() {
	if tdb.Container != nil {
		ctx := context.Background()
		tdb.Container.Terminate(ctx)
	}
}

// Truncate clears all tables for test isolation
func (tdb *TestDB) Truncate(t *testing.T) {
	t.Helper()

	tables := []string{
		"shop_spaces",
		"equipment_instances",
		"equipment_types",
		"user_sessions",
		"users",
	}

	for _, table := range tables {
		if err := tdb.Stores.Users.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error; err != nil {
			t.Fatalf("failed to truncate %s: %v", table, err)
		}
	}
}
