package testutil

import (
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/ben/workshop-manager/internal/api"
	"github.com/ben/workshop-manager/internal/config"
	"github.com/ben/workshop-manager/internal/repository"
	"github.com/ben/workshop-manager/internal/service"
	"github.com/ben/workshop-manager/internal/ws"
	"go.uber.org/zap"
)

// TestConfig returns a configuration suitable for testing
func TestConfig() *config.Config {
	return &config.Config{
		Port:               "0",
		Environment:        "test",
		JWTSecret:          "test-jwt-secret-key-for-testing-only",
		JWTExpirationHours: 1,
	}
}

// TestServer holds all components for integration testing
type TestServer struct {
	Server   *httptest.Server
	DB       *TestDB
	Repos    *repository.Repositories
	Services *service.Services
	Hub      *ws.Hub
	Config   *config.Config
}

// NewTestServer creates a complete test server with all dependencies.
// The catalog cache is disabled; tests exercise the store directly.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	testDB := NewTestDB(t)
	cfg := TestConfig()

	repos := testDB.Repositories()
	hub := ws.NewHub(zap.NewNop())
	go hub.Run()

	services := service.NewServices(repos, cfg, nil, zap.NewNop())
	router := api.NewRouter(services, hub)

	server := httptest.NewServer(router)

	ts := &TestServer{
		Server:   server,
		DB:       testDB,
		Repos:    repos,
		Services: services,
		Hub:      hub,
		Config:   cfg,
	}

	t.Cleanup(func() {
		server.Close()
		hub.Stop()
	})

	return ts
}

// APIURL returns the full API URL for a given path
func (ts *TestServer) APIURL(path string) string {
	return fmt.Sprintf("%s/api/v1%s", ts.Server.URL, path)
}

// WebSocketURL returns the subscription URL for a shop space
func (ts *TestServer) WebSocketURL(shopID string) string {
	return fmt.Sprintf("ws%s/ws?shop_id=%s", ts.Server.URL[4:], shopID)
}
