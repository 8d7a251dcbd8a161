package analytics

import (
	"github.com/Elusive7733/upautomate-analytics-be/internal/users"
)

// PlanAnalytics is the per-plan slice of the report.
type PlanAnalytics struct {
	PlanName      string  `json:"planName"`
	UserCount     int     `json:"userCount"`
	AverageFeeds  float64 `json:"averageFeeds"`
	TrialCount    int     `json:"trialCount"`
	NonTrialCount int     `json:"nonTrialCount"`
	Price         float64 `json:"price"`
}

// planAccumulator collects running totals for one plan group during
// the reduction pass; averaging happens in a separate finalize pass.
type planAccumulator struct {
	userCount     int
	feedSum       int
	trialCount    int
	nonTrialCount int
	price         float64
}

// CalculatePlanDistribution groups a subset by plan name and computes
// per-plan counts and averages. Users whose plan reference did not
// resolve are skipped silently rather than failing the aggregation.
// Groups come back in first-seen order, never sorted; the price is
// taken from the first user of each group (plans are uniform per name).
func CalculatePlanDistribution(subset []users.User) []PlanAnalytics {
	groups := make(map[string]*planAccumulator)
	var order []string

	for i := range subset {
		u := &subset[i]
		if !u.HasPlan() {
			continue
		}

		name := u.Plan.Name
		acc, ok := groups[name]
		if !ok {
			acc = &planAccumulator{price: u.Plan.Price}
			groups[name] = acc
			order = append(order, name)
		}

		acc.userCount++
		acc.feedSum += len(u.Feeds)
		if u.IsTrialActive {
			acc.trialCount++
		} else {
			acc.nonTrialCount++
		}
	}

	result := make([]PlanAnalytics, 0, len(order))
	for _, name := range order {
		acc := groups[name]

		averageFeeds := 0.0
		if acc.userCount > 0 {
			averageFeeds = round2(float64(acc.feedSum) / float64(acc.userCount))
		}

		result = append(result, PlanAnalytics{
			PlanName:      name,
			UserCount:     acc.userCount,
			AverageFeeds:  averageFeeds,
			TrialCount:    acc.trialCount,
			NonTrialCount: acc.nonTrialCount,
			Price:         acc.price,
		})
	}
	return result
}
