// Package analytics turns a flat snapshot of user records into the
// comparative usage report served by the API.
//
// The package is organized into focused modules:
//   - comparison.go: current/previous metric pairs and percentage change
//   - filter.go: windowed filtering of the user snapshot
//   - plans.go: per-plan grouping and averages
//   - retention.go: returning vs one-time classification
//   - daily.go: per-calendar-day activity buckets
//   - report.go: report assembly
//
// All computation here is pure: the snapshot is read-only, nothing is
// cached between calls, and concurrent report builds are isolated by
// construction.
package analytics

import "math"

// round2 rounds to 2 decimal places; every average in the report is
// rounded this way before a comparison is built from it.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
