package analytics

import (
	"math"

	"github.com/Elusive7733/upautomate-analytics-be/internal/users"
)

// MetricComparison is the (current, previous, percent-change) triple
// used for every paired measurement in the report.
type MetricComparison struct {
	Current          float64 `json:"current"`
	Previous         float64 `json:"previous"`
	PercentageChange float64 `json:"percentageChange"`
}

// PercentageChange computes the rounded percent change from previous
// to current. A previous value of zero yields 0 when current is also
// zero and 100 otherwise, so a division by zero can never occur.
// Halves round toward positive infinity, so -2.5 becomes -2.
func PercentageChange(current, previous float64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return math.Floor(((current-previous)/previous)*100 + 0.5)
}

// NewMetricComparison builds the comparison triple for a pair of values.
func NewMetricComparison(current, previous float64) MetricComparison {
	return MetricComparison{
		Current:          current,
		Previous:         previous,
		PercentageChange: PercentageChange(current, previous),
	}
}

// CountWhere counts the users matching a predicate.
func CountWhere(subset []users.User, match func(*users.User) bool) int {
	count := 0
	for i := range subset {
		if match(&subset[i]) {
			count++
		}
	}
	return count
}

// SumBy sums an integer measurement over a subset.
func SumBy(subset []users.User, value func(*users.User) int) int {
	sum := 0
	for i := range subset {
		sum += value(&subset[i])
	}
	return sum
}

// AverageBy returns the mean of an integer measurement, rounded to 2
// decimals. An empty subset averages to 0.
func AverageBy(subset []users.User, value func(*users.User) int) float64 {
	if len(subset) == 0 {
		return 0
	}
	return round2(float64(SumBy(subset, value)) / float64(len(subset)))
}

// CompareCounts builds a comparison of a predicate count over the
// current and previous subsets.
func CompareCounts(current, previous []users.User, match func(*users.User) bool) MetricComparison {
	return NewMetricComparison(
		float64(CountWhere(current, match)),
		float64(CountWhere(previous, match)),
	)
}

// CompareSums builds a comparison of a summed measurement over the
// current and previous subsets.
func CompareSums(current, previous []users.User, value func(*users.User) int) MetricComparison {
	return NewMetricComparison(
		float64(SumBy(current, value)),
		float64(SumBy(previous, value)),
	)
}

// CompareAverages builds a comparison of an averaged measurement over
// the current and previous subsets. Averages are rounded before the
// comparison is built.
func CompareAverages(current, previous []users.User, value func(*users.User) int) MetricComparison {
	return NewMetricComparison(
		AverageBy(current, value),
		AverageBy(previous, value),
	)
}
