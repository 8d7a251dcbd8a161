package analytics

import (
	"sort"

	"github.com/Elusive7733/upautomate-analytics-be/internal/timewindow"
	"github.com/Elusive7733/upautomate-analytics-be/internal/users"
)

// DailyUserDistribution is one calendar-day bucket of user activity.
// Only days with at least one qualifying event get a bucket.
type DailyUserDistribution struct {
	Date           string `json:"date"`
	NewUsers       int    `json:"newUsers"`
	ReturningUsers int    `json:"returningUsers"`
}

// BuildDailyDistribution buckets the full, unwindowed snapshot by UTC
// calendar day. Each user increments newUsers at its creation day; a
// returning user additionally increments returningUsers at its
// activity day, which is always a different day, so a single user can
// contribute to two buckets. Output is sorted ascending by
// the ISO date key, which orders correctly as a plain string.
func BuildDailyDistribution(snapshot []users.User) []DailyUserDistribution {
	buckets := make(map[string]*DailyUserDistribution)

	bucket := func(key string) *DailyUserDistribution {
		b, ok := buckets[key]
		if !ok {
			b = &DailyUserDistribution{Date: key}
			buckets[key] = b
		}
		return b
	}

	for i := range snapshot {
		u := &snapshot[i]
		if u.DateCreated.Valid {
			bucket(timewindow.DayKey(u.DateCreated.Time)).NewUsers++
		}
		if IsReturning(u) {
			bucket(timewindow.DayKey(u.LastActivityAt.Time)).ReturningUsers++
		}
	}

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	result := make([]DailyUserDistribution, 0, len(keys))
	for _, key := range keys {
		result = append(result, *buckets[key])
	}
	return result
}
