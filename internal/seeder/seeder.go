// Package seeder populates a development database with a plausible
// user population so the analytics endpoints return non-trivial data.
package seeder

import (
	"database/sql"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/karloscodes/cartridge"
	"github.com/karloscodes/cartridge/sqlite"
	"gorm.io/gorm"

	"github.com/Elusive7733/upautomate-analytics-be/internal/users"
)

// Seeder handles the demo-data seeding process.
type Seeder struct {
	DBManager cartridge.DBManager
	Logger    *slog.Logger
	UserCount int
	rng       *rand.Rand
}

// NewSeeder creates a new seeder instance. The generator is seeded
// with a fixed value so repeated runs produce the same population.
func NewSeeder(dbManager cartridge.DBManager, logger *slog.Logger, userCount int) *Seeder {
	if logger == nil {
		logger = slog.Default()
	}
	if userCount <= 0 {
		userCount = 200
	}
	return &Seeder{
		DBManager: dbManager,
		Logger:    logger,
		UserCount: userCount,
		rng:       rand.New(rand.NewPCG(42, 1337)),
	}
}

var seedPlans = []users.Plan{
	{Name: "free", Price: 0, FeedLimit: 3, RSSLimit: 1},
	{Name: "starter", Price: 12, FeedLimit: 10, RSSLimit: 3},
	{Name: "pro", Price: 29, FeedLimit: 50, RSSLimit: 10},
}

// Seed inserts the plans and a spread of users created over the last
// 120 days. Roughly two thirds of the users come back on a later day,
// which makes the retention and daily-distribution sections non-flat.
func (s *Seeder) Seed() error {
	start := time.Now()
	s.Logger.Info("Seeding demo data...", slog.Int("userCount", s.UserCount))

	db := s.DBManager.GetConnection()
	if db == nil {
		return fmt.Errorf("no database connection")
	}

	plans, err := s.ensurePlans(db)
	if err != nil {
		return fmt.Errorf("seeding plans: %w", err)
	}

	now := time.Now().UTC()
	for i := 0; i < s.UserCount; i++ {
		if err := s.seedUser(db, plans, now, i); err != nil {
			return fmt.Errorf("seeding user %d: %w", i, err)
		}
	}

	s.Logger.Info("Seeding complete",
		slog.Int("userCount", s.UserCount),
		slog.Duration("elapsed", time.Since(start)))
	return nil
}

func (s *Seeder) ensurePlans(db *gorm.DB) ([]users.Plan, error) {
	result := make([]users.Plan, 0, len(seedPlans))
	for _, plan := range seedPlans {
		existing := users.Plan{}
		if db.Where("plan_name = ?", plan.Name).First(&existing).Error == nil {
			result = append(result, existing)
			continue
		}

		created := plan
		err := sqlite.PerformWrite(s.Logger, db, func(tx *gorm.DB) error {
			return tx.Create(&created).Error
		})
		if err != nil {
			return nil, err
		}
		result = append(result, created)
	}
	return result, nil
}

func (s *Seeder) seedUser(db *gorm.DB, plans []users.Plan, now time.Time, i int) error {
	email := fmt.Sprintf("user%03d@example.com", i+1)
	if _, err := users.FindByEmail(db, email); err == nil {
		return nil // already seeded
	}

	createdDaysAgo := s.rng.IntN(120)
	created := now.AddDate(0, 0, -createdDaysAgo).Add(-time.Duration(s.rng.IntN(86400)) * time.Second)

	user := users.User{
		Name:        fmt.Sprintf("User %03d", i+1),
		Email:       email,
		DateCreated: sql.NullTime{Time: created, Valid: true},
		IsVerified:  s.rng.IntN(100) < 70,
	}

	// two of three users return on a later day
	if s.rng.IntN(3) < 2 && createdDaysAgo > 1 {
		activity := created.AddDate(0, 0, 1+s.rng.IntN(createdDaysAgo))
		if activity.After(now) {
			activity = now
		}
		user.LastActivityAt = sql.NullTime{Time: activity, Valid: true}
	}

	plan := plans[s.rng.IntN(len(plans))]
	user.PlanID = sql.NullInt64{Int64: int64(plan.ID), Valid: true}
	user.IsTrialActive = plan.Name != "free" && s.rng.IntN(100) < 25

	if s.rng.IntN(100) < 40 {
		user.UpworkProfileIsVerified = true
		user.UpworkData = fmt.Sprintf(`{"profile_id":"up-%04d","synced_at":%q}`,
			i+1, now.Format(time.RFC3339))
	}

	err := sqlite.PerformWrite(s.Logger, db, func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		for f := 0; f < s.rng.IntN(plan.FeedLimit+1); f++ {
			feed := users.Feed{
				UserID: user.ID,
				Title:  fmt.Sprintf("Feed %d for %s", f+1, user.Name),
				Query:  "golang developer",
			}
			if err := tx.Create(&feed).Error; err != nil {
				return err
			}
		}
		for r := 0; r < s.rng.IntN(plan.RSSLimit+1); r++ {
			rss := users.RSSFeed{
				UserID: user.ID,
				URL:    fmt.Sprintf("https://www.upwork.com/ab/feed/jobs/rss?q=feed-%d-%d", i+1, r+1),
			}
			if err := tx.Create(&rss).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return err
}
