package analytics

import (
	"math"

	"github.com/Elusive7733/upautomate-analytics-be/internal/timewindow"
	"github.com/Elusive7733/upautomate-analytics-be/internal/users"
)

// RetentionStats summarizes the returning/one-time split of a subset.
type RetentionStats struct {
	ReturningUsers int
	OneTimeUsers   int
	ReturnRate     float64
}

// IsReturning classifies a user as returning when its last recorded
// activity (updated_at) falls on a different UTC calendar day than its
// creation. Users without both timestamps, or whose activity happened
// on the creation day, are one-time. updated_at drives this on
// purpose: it is maintained for every user action, while last_login
// misses activity from long-lived sessions.
func IsReturning(u *users.User) bool {
	if !u.DateCreated.Valid || !u.LastActivityAt.Valid {
		return false
	}
	return !timewindow.SameDay(u.DateCreated.Time, u.LastActivityAt.Time)
}

// CalculateRetention classifies every user in the subset and computes
// the return rate. Classification is total: each user lands in exactly
// one of the two buckets, so returning + one-time always equals the
// subset size. An empty subset has a return rate of 0.
func CalculateRetention(subset []users.User) RetentionStats {
	stats := RetentionStats{}
	for i := range subset {
		if IsReturning(&subset[i]) {
			stats.ReturningUsers++
		} else {
			stats.OneTimeUsers++
		}
	}

	if total := len(subset); total > 0 {
		stats.ReturnRate = math.Round(float64(stats.ReturningUsers) / float64(total) * 100)
	}
	return stats
}
