package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Elusive7733/upautomate-analytics-be/internal"
	"github.com/Elusive7733/upautomate-analytics-be/internal/config"
	"github.com/Elusive7733/upautomate-analytics-be/internal/testsupport"
	"github.com/Elusive7733/upautomate-analytics-be/internal/users"
)

func newTestApp(t *testing.T, db *gorm.DB) *fiber.App {
	t.Helper()
	app := fiber.New()
	internal.MountAppRoutes(app, db, testsupport.GetLogger(), config.GetConfig())
	return app
}

func getJSON(t *testing.T, app *fiber.App, path string) (int, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest("GET", path, nil)
	resp, err := app.Test(req, 30000)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &payload), "body: %s", body)
	return resp.StatusCode, payload
}

func TestGetAnalyticsAction(t *testing.T) {
	db := testsupport.SetupTestDB(t)

	t.Run("returns 404 when directory is empty", func(t *testing.T) {
		testsupport.CleanAllTables(db)
		app := newTestApp(t, db)

		status, payload := getJSON(t, app, "/analytics")
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, float64(404), payload["statusCode"])
		assert.Equal(t, "No users found", payload["message"])
		assert.Nil(t, payload["data"])
	})

	t.Run("returns full report for existing users", func(t *testing.T) {
		testsupport.CleanAllTables(db)
		plan := testsupport.CreateTestPlan(t, db, "pro", 29)
		testsupport.CreateTestUser(t, db, testsupport.UserFixture{
			Email:      "alice@example.com",
			Created:    time.Now().UTC().Add(-2 * time.Hour),
			Plan:       &plan,
			FeedCount:  2,
			IsVerified: true,
		})
		app := newTestApp(t, db)

		status, payload := getJSON(t, app, "/analytics")
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "Analytics retrieved successfully", payload["message"])

		data := payload["data"].(map[string]interface{})
		userMetrics := data["userMetrics"].(map[string]interface{})
		totalUsers := userMetrics["totalUsers"].(map[string]interface{})
		assert.Equal(t, float64(1), totalUsers["current"])

		planDist := data["planDistribution"].(map[string]interface{})
		currentPlans := planDist["current"].([]interface{})
		require.Len(t, currentPlans, 1)
		assert.Equal(t, "pro", currentPlans[0].(map[string]interface{})["planName"])
	})

	t.Run("windowed report excludes old signups", func(t *testing.T) {
		testsupport.CleanAllTables(db)
		testsupport.CreateTestUser(t, db, testsupport.UserFixture{
			Email:   "recent@example.com",
			Created: time.Now().UTC().AddDate(0, 0, -2),
		})
		testsupport.CreateTestUser(t, db, testsupport.UserFixture{
			Email:   "ancient@example.com",
			Created: time.Now().UTC().AddDate(0, 0, -90),
		})
		app := newTestApp(t, db)

		status, payload := getJSON(t, app, "/analytics/7")
		assert.Equal(t, http.StatusOK, status)

		data := payload["data"].(map[string]interface{})
		userMetrics := data["userMetrics"].(map[string]interface{})
		totalUsers := userMetrics["totalUsers"].(map[string]interface{})
		assert.Equal(t, float64(1), totalUsers["current"])
	})

	t.Run("returns 404 when no users fall in the window", func(t *testing.T) {
		testsupport.CleanAllTables(db)
		testsupport.CreateTestUser(t, db, testsupport.UserFixture{
			Email:   "ancient@example.com",
			Created: time.Now().UTC().AddDate(0, 0, -90),
		})
		app := newTestApp(t, db)

		status, payload := getJSON(t, app, "/analytics/7")
		assert.Equal(t, http.StatusNotFound, status)
		assert.Contains(t, payload["message"], "last 7 days")
		assert.Nil(t, payload["data"])
	})

	t.Run("rejects non-numeric day counts", func(t *testing.T) {
		testsupport.CleanAllTables(db)
		app := newTestApp(t, db)

		status, payload := getJSON(t, app, "/analytics/soon")
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, float64(400), payload["statusCode"])
	})

	t.Run("rejects non-positive day counts", func(t *testing.T) {
		testsupport.CleanAllTables(db)
		app := newTestApp(t, db)

		status, _ := getJSON(t, app, "/analytics/0")
		assert.Equal(t, http.StatusBadRequest, status)
	})
}

func TestGetDailyDistributionAction(t *testing.T) {
	db := testsupport.SetupTestDB(t)

	t.Run("buckets creations and returns sorted days", func(t *testing.T) {
		testsupport.CleanAllTables(db)
		testsupport.CreateTestUser(t, db, testsupport.UserFixture{
			Email:        "first@example.com",
			Created:      time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
			LastActivity: time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC),
		})
		testsupport.CreateTestUser(t, db, testsupport.UserFixture{
			Email:   "second@example.com",
			Created: time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC),
		})
		app := newTestApp(t, db)

		status, payload := getJSON(t, app, "/analytics/daily-distribution")
		assert.Equal(t, http.StatusOK, status)

		days := payload["data"].([]interface{})
		require.Len(t, days, 3)

		first := days[0].(map[string]interface{})
		assert.Equal(t, "2024-01-01", first["date"])
		assert.Equal(t, float64(1), first["newUsers"])

		third := days[2].(map[string]interface{})
		assert.Equal(t, "2024-01-03", third["date"])
		assert.Equal(t, float64(1), third["returningUsers"])
	})

	t.Run("daily-distribution is not captured by the days wildcard", func(t *testing.T) {
		testsupport.CleanAllTables(db)
		app := newTestApp(t, db)

		// empty directory: must answer 404 from the distribution
		// handler, not 400 from day-count validation
		status, payload := getJSON(t, app, "/analytics/daily-distribution")
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "No users found", payload["message"])
	})
}

func TestGetUsersAction(t *testing.T) {
	db := testsupport.SetupTestDB(t)

	t.Run("lists eligible users only", func(t *testing.T) {
		testsupport.CleanAllTables(db)
		testsupport.CreateTestUser(t, db, testsupport.UserFixture{
			Email:   "visible@example.com",
			Created: time.Now().UTC(),
		})
		testsupport.CreateTestUser(t, db, testsupport.UserFixture{
			Email:   users.BlacklistedEmails[0],
			Created: time.Now().UTC(),
		})
		app := newTestApp(t, db)

		status, payload := getJSON(t, app, "/users")
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "Users retrieved successfully", payload["message"])

		list := payload["data"].([]interface{})
		require.Len(t, list, 1)
	})
}

func TestHealthIndexAction(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	app := newTestApp(t, db)

	req := httptest.NewRequest("GET", "/_health", nil)
	resp, err := app.Test(req, 30000)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var health map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &health))
	assert.Equal(t, "ok", health["status"])
	assert.Equal(t, "ok", health["db_status"])
}
