// Package testsupport provides shared database fixtures for tests.
package testsupport

import (
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Elusive7733/upautomate-analytics-be/internal/users"
)

// testDBCache caches test databases by test name to allow multiple calls
// within the same test to share the same database
var testDBCache = make(map[string]*gorm.DB)
var testDBCacheMu sync.Mutex

// allModels returns all persisted models for migration
func allModels() []any {
	return []any{
		&users.Plan{},
		&users.UserLimits{},
		&users.User{},
		&users.Feed{},
		&users.RSSFeed{},
	}
}

// SetupTestDB creates a test database with all models migrated.
// Uses a named in-memory database with cache=shared to allow multiple
// connections to share the same database within a test. Caches the
// database by root test name so subtests share one database.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	testName := t.Name()
	rootName := testName
	if idx := strings.Index(testName, "/"); idx > 0 {
		rootName = testName[:idx]
	}

	testDBCacheMu.Lock()
	if db, exists := testDBCache[rootName]; exists {
		testDBCacheMu.Unlock()
		return db
	}
	testDBCacheMu.Unlock()

	sanitizedName := strings.ReplaceAll(rootName, "/", "_")
	dsn := fmt.Sprintf("file:test_%s_%d?mode=memory&cache=shared", sanitizedName, time.Now().UnixNano())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("testsupport: failed to open test database: %v", err)
	}

	db.Exec("PRAGMA foreign_keys = ON")

	if err := db.AutoMigrate(allModels()...); err != nil {
		t.Fatalf("testsupport: failed to migrate models: %v", err)
	}

	testDBCacheMu.Lock()
	testDBCache[rootName] = db
	testDBCacheMu.Unlock()

	t.Cleanup(func() {
		testDBCacheMu.Lock()
		delete(testDBCache, rootName)
		testDBCacheMu.Unlock()
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return db
}

// CleanAllTables clears all non-system tables in the database
func CleanAllTables(db *gorm.DB) {
	var tableNames []string
	db.Raw("SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%'").Scan(&tableNames)

	db.Exec("PRAGMA foreign_keys = OFF")
	defer db.Exec("PRAGMA foreign_keys = ON")

	db.Transaction(func(tx *gorm.DB) error {
		for _, table := range tableNames {
			tx.Exec("DELETE FROM " + table)
			tx.Exec("DELETE FROM sqlite_sequence WHERE name=?", table)
		}
		return nil
	})
}

// GetLogger returns a silent logger for tests
func GetLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// CreateTestPlan inserts a plan, reusing an existing one with the same name.
func CreateTestPlan(t *testing.T, db *gorm.DB, name string, price float64) users.Plan {
	t.Helper()

	var plan users.Plan
	if db.Where("plan_name = ?", name).First(&plan).Error == nil {
		return plan
	}
	plan = users.Plan{Name: name, Price: price, FeedLimit: 10, RSSLimit: 5}
	require.NoError(t, db.Create(&plan).Error)
	return plan
}

// UserFixture describes a test user to insert. Zero values produce a
// plain unverified user with no plan, feeds, or activity timestamp.
type UserFixture struct {
	Email                   string
	Name                    string
	Created                 time.Time // zero means no date_created
	LastActivity            time.Time // zero means no updated_at
	Plan                    *users.Plan
	FeedCount               int
	RSSCount                int
	IsVerified              bool
	IsTrialActive           bool
	UpworkProfileIsVerified bool
	UpworkData              string
}

// CreateTestUser inserts a user and its sub-resources from a fixture.
func CreateTestUser(t *testing.T, db *gorm.DB, fx UserFixture) users.User {
	t.Helper()

	if fx.Name == "" {
		fx.Name = strings.SplitN(fx.Email, "@", 2)[0]
	}

	user := users.User{
		Email:                   fx.Email,
		Name:                    fx.Name,
		IsVerified:              fx.IsVerified,
		IsTrialActive:           fx.IsTrialActive,
		UpworkProfileIsVerified: fx.UpworkProfileIsVerified,
		UpworkData:              fx.UpworkData,
	}
	if !fx.Created.IsZero() {
		user.DateCreated = sql.NullTime{Time: fx.Created.UTC(), Valid: true}
	}
	if !fx.LastActivity.IsZero() {
		user.LastActivityAt = sql.NullTime{Time: fx.LastActivity.UTC(), Valid: true}
	}
	if fx.Plan != nil {
		user.PlanID = sql.NullInt64{Int64: int64(fx.Plan.ID), Valid: true}
	}
	require.NoError(t, db.Create(&user).Error)

	for i := 0; i < fx.FeedCount; i++ {
		feed := users.Feed{UserID: user.ID, Title: fmt.Sprintf("feed-%d", i+1)}
		require.NoError(t, db.Create(&feed).Error)
	}
	for i := 0; i < fx.RSSCount; i++ {
		rss := users.RSSFeed{UserID: user.ID, URL: fmt.Sprintf("https://rss.example.com/%s/%d", fx.Name, i+1)}
		require.NoError(t, db.Create(&rss).Error)
	}

	return user
}
