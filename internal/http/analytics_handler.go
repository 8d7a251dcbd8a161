package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Elusive7733/upautomate-analytics-be/internal/analytics"
	"github.com/Elusive7733/upautomate-analytics-be/internal/timewindow"
	"github.com/Elusive7733/upautomate-analytics-be/internal/users"
)

const (
	msgAnalyticsRetrieved    = "Analytics retrieved successfully"
	msgDistributionRetrieved = "Daily user distribution retrieved successfully"
	msgUsersRetrieved        = "Users retrieved successfully"
	errNoUsersFound          = "No users found"
	errSomethingWentWrong    = "Something went wrong"
	errInvalidDays           = "Invalid days parameter: must be a positive integer"
)

// GetAnalyticsAction serves both the all-time report and the windowed
// report; the optional :days route parameter selects the window size.
func GetAnalyticsAction(db *gorm.DB, logger *slog.Logger, tp timewindow.TimeProvider) fiber.Handler {
	return func(c *fiber.Ctx) error {
		days := 0
		if raw := c.Params("days"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				return respondError(c, http.StatusBadRequest, errInvalidDays, "")
			}
			days = parsed
		}

		snapshot, err := users.GetAllUsers(db)
		if err != nil {
			return handleDirectoryError(c, logger, err)
		}

		report, err := analytics.BuildUserAnalytics(snapshot, days, tp)
		if err != nil {
			var notFound *analytics.NoUsersInWindowError
			if errors.As(err, &notFound) {
				return respond(c, http.StatusNotFound, notFound.Error(), nil)
			}
			logger.Error("Failed to build analytics report", slog.Any("error", err))
			return respondError(c, http.StatusInternalServerError, errSomethingWentWrong, err.Error())
		}

		logger.Debug("Built analytics report",
			slog.Int("days", days),
			slog.Int("snapshotSize", len(snapshot)))
		return respond(c, http.StatusOK, msgAnalyticsRetrieved, report)
	}
}

// GetDailyDistributionAction serves the per-day activity breakdown
// over the full user population.
func GetDailyDistributionAction(db *gorm.DB, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		snapshot, err := users.GetAllUsers(db)
		if err != nil {
			return handleDirectoryError(c, logger, err)
		}

		distribution := analytics.BuildDailyDistribution(snapshot)
		return respond(c, http.StatusOK, msgDistributionRetrieved, distribution)
	}
}

// GetUsersAction lists all eligible users with their relations resolved.
func GetUsersAction(db *gorm.DB, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		snapshot, err := users.GetAllUsers(db)
		if err != nil {
			return handleDirectoryError(c, logger, err)
		}
		return respond(c, http.StatusOK, msgUsersRetrieved, snapshot)
	}
}

// handleDirectoryError maps a directory fetch failure onto the response
// envelope: an empty directory is a not-found outcome, anything else is
// surfaced as-is with a 500.
func handleDirectoryError(c *fiber.Ctx, logger *slog.Logger, err error) error {
	if errors.Is(err, users.ErrNoUsersFound) {
		return respond(c, http.StatusNotFound, errNoUsersFound, nil)
	}
	logger.Error("Failed to fetch users", slog.Any("error", err))
	return respondError(c, http.StatusInternalServerError, errSomethingWentWrong, err.Error())
}
