package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/qkart/storefront/config"
	"github.com/qkart/storefront/internal/api"
	"github.com/qkart/storefront/internal/app/controller"
	"github.com/qkart/storefront/internal/app/service"
	"github.com/qkart/storefront/internal/middleware"
	"github.com/qkart/storefront/internal/router"
	"github.com/qkart/storefront/internal/scheduler"
	"github.com/qkart/storefront/internal/session"
	"github.com/qkart/storefront/pkg/logger"
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

	logger.Info("Starting QKart storefront server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"backend":     cfg.Backend.Endpoint,
		"log_level":   logLevel,
	})

	// Initialize backend API client
	client, err := api.NewClient(api.Config{
		Endpoint: cfg.Backend.Endpoint,
		Timeout:  cfg.Backend.Timeout,
	})
	if err != nil {
		logger.Fatal("Failed to initialize backend client", err)
	}

	// Initialize session store
	var store session.Store
	switch cfg.Session.Store {
	case "redis":
		redisStore, err := session.NewRedisStore(session.RedisConfig{
			Addr:     cfg.Session.RedisAddr,
			Password: cfg.Session.RedisPassword,
			DB:       cfg.Session.RedisDB,
			TTL:      cfg.Session.TTL,
		})
		if err != nil {
			logger.Fatal("Failed to connect to redis session store", err)
		}
		defer func() {
			if err := redisStore.Close(); err != nil {
				logger.Error("Failed to close redis connection", err)
			}
		}()
		store = redisStore
	default:
		store = session.NewMemoryStore()
	}

	// Initialize services
	catalogService := service.NewCatalogService(client)
	cartService := service.NewCartService(client, catalogService)
	searchService := service.NewSearchService(catalogService, cfg.Search.QuietInterval)
	addressService := service.NewAddressService(client)
	checkoutService := service.NewCheckoutService(client, store)
	authService := service.NewAuthService(client, store)

	// Warm the catalog cache; failure is tolerated, the first product
	// request retries.
	if err := catalogService.Refresh(context.Background()); err != nil {
		logger.Warn("Initial catalog refresh failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Initialize controllers
	authController := controller.NewAuthController(authService, cfg.Session.CookieName)
	productController := controller.NewProductController(catalogService)
	searchController := controller.NewSearchController(searchService)
	cartController := controller.NewCartController(cartService)
	addressController := controller.NewAddressController(addressService)
	checkoutController := controller.NewCheckoutController(cartService, addressService, checkoutService)

	// Initialize middleware
	sessionMiddleware := middleware.NewSessionMiddleware(store, cfg.Session.CookieName)

	// Start catalog refresh scheduler
	catalogScheduler := scheduler.NewCatalogScheduler(catalogService, cfg.Catalog.RefreshSpec)
	if err := catalogScheduler.Start(); err != nil {
		logger.Fatal("Failed to start catalog scheduler", err)
	}
	defer catalogScheduler.Stop()

	// Setup router
	r := router.NewRouter(
		authController,
		productController,
		searchController,
		cartController,
		addressController,
		checkoutController,
		sessionMiddleware,
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
