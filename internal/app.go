// Package internal contains core application wiring
package internal

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/Elusive7733/upautomate-analytics-be/internal/config"
	"github.com/Elusive7733/upautomate-analytics-be/internal/database"
	"github.com/Elusive7733/upautomate-analytics-be/internal/logging"
)

// Application bundles the configured server with its dependencies.
type Application struct {
	Config    *config.Config
	Logger    *slog.Logger
	DBManager *database.DBManager

	server *fiber.App
}

// NewApp creates a new application instance with default settings
func NewApp() (*Application, error) {
	cfg := config.GetConfig()
	logger := logging.NewLogger(cfg)

	dbManager := database.NewDBManager(cfg, logger)
	if err := dbManager.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	server := fiber.New(fiber.Config{
		AppName:               cfg.AppName,
		DisableStartupMessage: cfg.IsProduction(),
	})
	MountAppRoutes(server, dbManager.GetConnection(), logger, cfg)

	return &Application{
		Config:    cfg,
		Logger:    logger,
		DBManager: dbManager,
		server:    server,
	}, nil
}

// Server exposes the underlying fiber app, mainly for tests.
func (a *Application) Server() *fiber.App {
	return a.server
}

// Start blocks serving HTTP until the listener is closed.
func (a *Application) Start() error {
	return a.server.Listen(":" + a.Config.GetPort())
}

// StartAsync starts the HTTP listener in the background. Listener
// failures are fatal and reported through errCh.
func (a *Application) StartAsync() <-chan error {
	errCh := make(chan error, 1)
	go func() {
		if err := a.Start(); err != nil {
			errCh <- err
		}
	}()
	return errCh
}

// Shutdown stops the HTTP server and closes the database connection.
func (a *Application) Shutdown(ctx context.Context) error {
	if err := a.server.ShutdownWithContext(ctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	db := a.DBManager.GetConnection()
	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				return fmt.Errorf("closing database: %w", err)
			}
		}
	}
	return nil
}
