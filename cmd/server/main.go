package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ben/workshop-manager/internal/api"
	"github.com/ben/workshop-manager/internal/cache"
	"github.com/ben/workshop-manager/internal/config"
	"github.com/ben/workshop-manager/internal/logger"
	"github.com/ben/workshop-manager/internal/repository/postgres"
	"github.com/ben/workshop-manager/internal/service"
	"github.com/ben/workshop-manager/internal/ws"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	zlog := logger.L()
	defer zlog.Sync()

	stores, err := postgres.NewStores(cfg.UsersDatabaseURL, cfg.EquipmentDatabaseURL, cfg.ShopDatabaseURL)
	if err != nil {
		zlog.Fatal("failed to connect to stores", zap.Error(err))
	}
	repos := postgres.NewRepositories(stores)

	redisClient := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	catalogCache := cache.NewCatalogCache(redisClient, cfg.CatalogCacheTTL)

	hub := ws.NewHub(zlog)
	go hub.Run()

	services := service.NewServices(repos, cfg, catalogCache, zlog)

	router := api.NewRouter(services, hub)

	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zlog.Info("server starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zlog.Fatal("server forced to shutdown", zap.Error(err))
	}

	hub.Stop()
	zlog.Info("server stopped")
}
