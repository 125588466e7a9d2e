package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"idleview/internal/api"
	"idleview/internal/commands"
	"idleview/internal/config"
	"idleview/internal/scheduler"
	"idleview/internal/services"
	"idleview/internal/settings"
	"idleview/pkg/client"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	zap.ReplaceGlobals(logger)
	logger.Info("Starting idleview backend")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Resolve the settings file location
	settingsPath := cfg.Settings.Path
	if settingsPath == "" {
		settingsPath, err = settings.DefaultPath()
		if err != nil {
			logger.Fatal("Failed to resolve settings path", zap.Error(err))
		}
	}

	// Initialize settings store
	store, err := settings.NewStore(settingsPath, logger)
	if err != nil {
		logger.Fatal("Failed to initialize settings store", zap.Error(err))
	}
	defer store.Close()

	// Derivation engine and shared photo state
	engine := services.NewEngine(services.NewSunTimesCache(), logger)
	photos := services.NewPhotoState()

	// Outbound provider clients
	clientConfig := client.ClientConfig{
		Timeout:        10 * time.Second,
		MaxRetries:     cfg.Retry.MaxRetries,
		RetryDelay:     cfg.Retry.Delay,
		Multiplier:     cfg.Retry.Multiplier,
		BreakerTimeout: cfg.CircuitBreaker.Timeout,
	}
	openMeteo := client.NewOpenMeteoClient(cfg.Providers.OpenMeteoURL, clientConfig, logger)
	unsplash := client.NewUnsplashClient(cfg.Providers.UnsplashURL, cfg.Providers.UnsplashAccessKey, clientConfig, logger)
	ipAPI := client.NewIPAPIClient(cfg.Providers.IPAPIURL, clientConfig, logger)

	// Command facade shared by the GUI shell and the refresh scheduler
	cmds := commands.New(store, engine, photos, openMeteo, unsplash, ipAPI, cfg.Providers.UnsplashAccessKey, logger)

	// Background photo refresh
	photoScheduler := scheduler.NewScheduler(cmds, store, cfg.Photos.Width, cfg.Photos.Height, logger)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: errorHandler,
	})

	// Setup handlers and routes
	handler := api.NewHandler(store, photos, logger)
	api.SetupRoutes(app, handler, cfg.Panel.StaticDir, logger)

	// Start scheduler
	photoScheduler.Start()

	// Start server in goroutine
	go func() {
		addr := ":" + cfg.Server.Port
		logger.Info("Starting server", zap.String("address", addr))

		if err := app.Listen(addr); err != nil {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Stop scheduler
	photoScheduler.Stop()

	// Shutdown Fiber app
	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}

	logger.Info("Server stopped")
}

func errorHandler(c *fiber.Ctx, err error) error {
	zap.L().Error("HTTP error",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err))

	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
