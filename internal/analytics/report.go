package analytics

import (
	"fmt"

	"github.com/Elusive7733/upautomate-analytics-be/internal/timewindow"
	"github.com/Elusive7733/upautomate-analytics-be/internal/users"
)

// TimeRange reports the windows the comparison was computed over.
type TimeRange struct {
	Current  timewindow.Window `json:"current"`
	Previous timewindow.Window `json:"previous"`
}

// UserMetrics holds the direct count comparisons.
type UserMetrics struct {
	TotalUsers      MetricComparison `json:"totalUsers"`
	ActiveTrials    MetricComparison `json:"activeTrials"`
	VerifiedUsers   MetricComparison `json:"verifiedUsers"`
	UnverifiedUsers MetricComparison `json:"unverifiedUsers"`
}

// PlanDistribution holds the per-plan breakdown for both periods.
type PlanDistribution struct {
	Current  []PlanAnalytics `json:"current"`
	Previous []PlanAnalytics `json:"previous"`
}

// UserEngagement holds the feed and rss usage comparisons.
type UserEngagement struct {
	UsersWithFeeds      MetricComparison `json:"usersWithFeeds"`
	UsersWithoutFeeds   MetricComparison `json:"usersWithoutFeeds"`
	AverageFeedsPerUser MetricComparison `json:"averageFeedsPerUser"`
	TotalFeeds          MetricComparison `json:"totalFeeds"`
	UsersWithRss        MetricComparison `json:"usersWithRss"`
	TotalRssFeeds       MetricComparison `json:"totalRssFeeds"`
	AverageRssPerUser   MetricComparison `json:"averageRssPerUser"`
}

// UpworkIntegration holds the integration status comparisons.
type UpworkIntegration struct {
	VerifiedProfiles   MetricComparison `json:"verifiedProfiles"`
	UnverifiedProfiles MetricComparison `json:"unverifiedProfiles"`
	ProfilesWithData   MetricComparison `json:"profilesWithData"`
}

// UserRetention holds the returning/one-time comparisons.
type UserRetention struct {
	ReturningUsers MetricComparison `json:"returningUsers"`
	OneTimeUsers   MetricComparison `json:"oneTimeUsers"`
	ReturnRate     MetricComparison `json:"returnRate"`
}

// UserAnalytics is the full comparative report.
type UserAnalytics struct {
	TimeRange         TimeRange         `json:"timeRange"`
	UserMetrics       UserMetrics       `json:"userMetrics"`
	PlanDistribution  PlanDistribution  `json:"planDistribution"`
	UserEngagement    UserEngagement    `json:"userEngagement"`
	UpworkIntegration UpworkIntegration `json:"upworkIntegration"`
	UserRetention     UserRetention     `json:"userRetention"`
}

// NoUsersInWindowError is returned when the current window matched no
// users. It is a not-found outcome, not a failure: the report is
// simply empty for the requested range.
type NoUsersInWindowError struct {
	Window timewindow.Window
	Days   int
}

func (e *NoUsersInWindowError) Error() string {
	if e.Days > 0 {
		return fmt.Sprintf("no users found in the last %d days (%s)", e.Days, e.Window)
	}
	return fmt.Sprintf("no users found for the requested time range (%s)", e.Window)
}

// BuildUserAnalytics assembles the full report for a snapshot and a
// window size. days == 0 means all time. The snapshot must arrive
// already filtered (no test or blacklisted accounts) with plan
// references resolved; this function performs no I/O.
func BuildUserAnalytics(snapshot []users.User, days int, tp timewindow.TimeProvider) (*UserAnalytics, error) {
	if tp == nil {
		tp = &timewindow.DefaultTimeProvider{}
	}

	pair := timewindow.Calculate(days, tp)
	current := FilterByWindow(snapshot, pair.Current)
	previous := FilterByWindow(snapshot, pair.Previous)

	if len(current) == 0 {
		return nil, &NoUsersInWindowError{Window: pair.Current, Days: days}
	}

	currentRetention := CalculateRetention(current)
	previousRetention := CalculateRetention(previous)

	report := &UserAnalytics{
		TimeRange: TimeRange{
			Current:  pair.Current,
			Previous: pair.Previous,
		},
		UserMetrics: UserMetrics{
			TotalUsers: NewMetricComparison(float64(len(current)), float64(len(previous))),
			ActiveTrials: CompareCounts(current, previous, func(u *users.User) bool {
				return u.IsTrialActive
			}),
			VerifiedUsers: CompareCounts(current, previous, func(u *users.User) bool {
				return u.IsVerified
			}),
			UnverifiedUsers: CompareCounts(current, previous, func(u *users.User) bool {
				return !u.IsVerified
			}),
		},
		PlanDistribution: PlanDistribution{
			Current:  CalculatePlanDistribution(current),
			Previous: CalculatePlanDistribution(previous),
		},
		UserEngagement: UserEngagement{
			UsersWithFeeds: CompareCounts(current, previous, func(u *users.User) bool {
				return len(u.Feeds) > 0
			}),
			UsersWithoutFeeds: CompareCounts(current, previous, func(u *users.User) bool {
				return len(u.Feeds) == 0
			}),
			AverageFeedsPerUser: CompareAverages(current, previous, func(u *users.User) int {
				return len(u.Feeds)
			}),
			TotalFeeds: CompareSums(current, previous, func(u *users.User) int {
				return len(u.Feeds)
			}),
			UsersWithRss: CompareCounts(current, previous, func(u *users.User) bool {
				return len(u.RSS) > 0
			}),
			TotalRssFeeds: CompareSums(current, previous, func(u *users.User) int {
				return len(u.RSS)
			}),
			AverageRssPerUser: CompareAverages(current, previous, func(u *users.User) int {
				return len(u.RSS)
			}),
		},
		UpworkIntegration: UpworkIntegration{
			VerifiedProfiles: CompareCounts(current, previous, func(u *users.User) bool {
				return u.UpworkProfileIsVerified
			}),
			UnverifiedProfiles: CompareCounts(current, previous, func(u *users.User) bool {
				return !u.UpworkProfileIsVerified
			}),
			ProfilesWithData: CompareCounts(current, previous, func(u *users.User) bool {
				return u.HasUpworkData()
			}),
		},
		UserRetention: UserRetention{
			ReturningUsers: NewMetricComparison(
				float64(currentRetention.ReturningUsers),
				float64(previousRetention.ReturningUsers),
			),
			OneTimeUsers: NewMetricComparison(
				float64(currentRetention.OneTimeUsers),
				float64(previousRetention.OneTimeUsers),
			),
			ReturnRate: NewMetricComparison(
				currentRetention.ReturnRate,
				previousRetention.ReturnRate,
			),
		},
	}

	return report, nil
}
