package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Elusive7733/upautomate-analytics-be/internal/analytics"
	"github.com/Elusive7733/upautomate-analytics-be/internal/users"
)

func planUser(planName string, price float64, trial bool, feedCount int) users.User {
	var plan *users.Plan
	if planName != "" {
		plan = &users.Plan{Name: planName, Price: price}
	}
	return users.User{
		Plan:          plan,
		IsTrialActive: trial,
		Feeds:         make([]users.Feed, feedCount),
	}
}

func TestCalculatePlanDistribution(t *testing.T) {
	t.Run("groups by plan with counts and averages", func(t *testing.T) {
		subset := []users.User{
			planUser("pro", 29, false, 4),
			planUser("pro", 29, true, 2),
			planUser("free", 0, false, 0),
		}

		dist := analytics.CalculatePlanDistribution(subset)
		require.Len(t, dist, 2)

		pro := dist[0]
		assert.Equal(t, "pro", pro.PlanName)
		assert.Equal(t, 2, pro.UserCount)
		assert.Equal(t, 3.0, pro.AverageFeeds)
		assert.Equal(t, 1, pro.TrialCount)
		assert.Equal(t, 1, pro.NonTrialCount)
		assert.Equal(t, 29.0, pro.Price)

		free := dist[1]
		assert.Equal(t, "free", free.PlanName)
		assert.Equal(t, 1, free.UserCount)
		assert.Equal(t, 0.0, free.AverageFeeds)
	})

	t.Run("preserves first-seen order", func(t *testing.T) {
		subset := []users.User{
			planUser("zeta", 10, false, 0),
			planUser("alpha", 20, false, 0),
			planUser("zeta", 10, false, 0),
			planUser("mid", 15, false, 0),
		}

		dist := analytics.CalculatePlanDistribution(subset)
		require.Len(t, dist, 3)
		assert.Equal(t, "zeta", dist[0].PlanName)
		assert.Equal(t, "alpha", dist[1].PlanName)
		assert.Equal(t, "mid", dist[2].PlanName)
	})

	t.Run("skips users without a resolved plan", func(t *testing.T) {
		subset := []users.User{
			planUser("", 0, false, 3),
			planUser("pro", 29, false, 1),
		}

		dist := analytics.CalculatePlanDistribution(subset)
		require.Len(t, dist, 1)
		assert.Equal(t, "pro", dist[0].PlanName)
		assert.Equal(t, 1, dist[0].UserCount)
	})

	t.Run("trial plus non-trial equals user count", func(t *testing.T) {
		subset := []users.User{
			planUser("pro", 29, true, 0),
			planUser("pro", 29, false, 0),
			planUser("pro", 29, true, 0),
			planUser("free", 0, false, 0),
		}

		for _, plan := range analytics.CalculatePlanDistribution(subset) {
			assert.Equal(t, plan.UserCount, plan.TrialCount+plan.NonTrialCount,
				"plan %s", plan.PlanName)
		}
	})

	t.Run("average feeds rounds to two decimals", func(t *testing.T) {
		subset := []users.User{
			planUser("pro", 29, false, 1),
			planUser("pro", 29, false, 1),
			planUser("pro", 29, false, 0),
		}

		dist := analytics.CalculatePlanDistribution(subset)
		require.Len(t, dist, 1)
		assert.Equal(t, 0.67, dist[0].AverageFeeds)
	})

	t.Run("empty subset yields empty distribution", func(t *testing.T) {
		assert.Empty(t, analytics.CalculatePlanDistribution(nil))
	})
}
