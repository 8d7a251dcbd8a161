package internal

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/gorm"

	"github.com/Elusive7733/upautomate-analytics-be/internal/config"
	"github.com/Elusive7733/upautomate-analytics-be/internal/http"
	"github.com/Elusive7733/upautomate-analytics-be/internal/timewindow"
)

// MountAppRoutes mounts all application routes on the fiber app.
// The API is read-only, so only GET (and preflight OPTIONS) is allowed.
func MountAppRoutes(app *fiber.App, db *gorm.DB, logger *slog.Logger, cfg *config.Config) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.DashboardOrigin,
		AllowMethods: "GET,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	timeProvider := &timewindow.DefaultTimeProvider{}

	app.Get("/_health", http.HealthIndexAction(db, logger))
	app.Head("/_health", http.HealthIndexAction(db, logger))

	// daily-distribution must be registered before the :days wildcard
	// or it would be captured as a (non-numeric) day count
	app.Get("/analytics/daily-distribution", http.GetDailyDistributionAction(db, logger))
	app.Get("/analytics", http.GetAnalyticsAction(db, logger, timeProvider))
	app.Get("/analytics/:days", http.GetAnalyticsAction(db, logger, timeProvider))

	app.Get("/users", http.GetUsersAction(db, logger))
}
