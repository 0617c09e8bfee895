package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/tiendamx/tienda-engine/config"
	"github.com/tiendamx/tienda-engine/internal/app/catalog"
	"github.com/tiendamx/tienda-engine/internal/app/controller"
	"github.com/tiendamx/tienda-engine/internal/app/service"
	"github.com/tiendamx/tienda-engine/internal/app/storage"
	"github.com/tiendamx/tienda-engine/internal/events"
	"github.com/tiendamx/tienda-engine/internal/router"
	"github.com/tiendamx/tienda-engine/internal/scheduler"
	"github.com/tiendamx/tienda-engine/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting Tienda storefront engine", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"feed":        cfg.Feed.Endpoint,
		"cart_store":  cfg.Cart.Store,
	})

	// Pick the cart persistence backend
	store, err := buildCartStore(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize cart store", err)
	}

	// Event hub for the rendering layer
	hub := events.NewHub()
	go hub.Run()

	// Initialize services
	feedLoader := catalog.NewFeedLoader(cfg.Feed.Endpoint, nil)
	catalogService := service.NewCatalogService(feedLoader, hub)
	cartService := service.NewCartService(store, hub)
	authService := service.NewAuthService(
		cfg.Auth.DemoEmail,
		cfg.Auth.DemoPasswordHash,
		cfg.Auth.JWTSecret,
		cfg.Auth.SessionExpiry,
	)

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	catalogController := controller.NewCatalogController(catalogService)
	cartController := controller.NewCartController(cartService, catalogService)

	// First load; failures keep the catalog empty until a refresh
	// succeeds, renderers get the classified failure over the hub.
	go func() {
		if _, err := catalogService.Load(context.Background()); err != nil {
			logger.Warn("Initial catalog load failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	// Periodic refresh, when configured
	if cfg.Feed.RefreshCron != "" {
		feedScheduler := scheduler.NewFeedScheduler(catalogService, cfg.Feed.RefreshCron)
		if err := feedScheduler.Start(); err != nil {
			logger.Fatal("Failed to start feed scheduler", err)
		}
		defer feedScheduler.Stop()
	}

	// Setup router
	r := router.NewRouter(
		authController,
		catalogController,
		cartController,
		hub,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}

func buildCartStore(cfg *config.Config) (storage.CartStore, error) {
	switch cfg.Cart.Store {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return storage.NewRedisStore(client, cfg.Cart.Slot), nil

	case "postgres":
		db, err := gorm.Open(postgres.Open(cfg.DB.DSN()), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return storage.NewGormStore(db, cfg.Cart.Slot)

	default:
		return storage.NewFileStore(cfg.Cart.FilePath), nil
	}
}
