package timewindow_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Elusive7733/upautomate-analytics-be/internal/timewindow"
)

// fixedTimeProvider pins Now() for deterministic window boundaries
type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

func TestCalculateWithDayCount(t *testing.T) {
	now := time.Date(2024, 6, 15, 14, 30, 45, 0, time.UTC)
	tp := &fixedTimeProvider{now: now}

	t.Run("seven day window covers today and the six days before", func(t *testing.T) {
		pair := timewindow.Calculate(7, tp)

		assert.Equal(t, time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC), pair.Current.Start)
		assert.Equal(t, time.Date(2024, 6, 15, 23, 59, 59, 999999999, time.UTC), pair.Current.End)

		assert.Equal(t, time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC), pair.Previous.Start)
		assert.Equal(t, time.Date(2024, 6, 8, 23, 59, 59, 999999999, time.UTC), pair.Previous.End)
	})

	t.Run("windows abut with no gap or overlap", func(t *testing.T) {
		for _, days := range []int{1, 7, 30, 90, 365} {
			pair := timewindow.Calculate(days, tp)

			gap := pair.Current.Start.Sub(pair.Previous.End)
			assert.Equal(t, time.Duration(time.Nanosecond), gap,
				"days=%d: previous end and current start must be one tick apart", days)
			assert.True(t, pair.Previous.End.Before(pair.Current.Start),
				"days=%d: previous window must end before current starts", days)
		}
	})

	t.Run("windows are equal length", func(t *testing.T) {
		for _, days := range []int{1, 7, 30} {
			pair := timewindow.Calculate(days, tp)
			assert.Equal(t, pair.Current.Duration(), pair.Previous.Duration(),
				"days=%d", days)
		}
	})

	t.Run("single day window is today only", func(t *testing.T) {
		pair := timewindow.Calculate(1, tp)

		assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), pair.Current.Start)
		assert.Equal(t, time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC), pair.Previous.Start)
		assert.Equal(t, time.Date(2024, 6, 14, 23, 59, 59, 999999999, time.UTC), pair.Previous.End)
	})

	t.Run("window spans a month boundary", func(t *testing.T) {
		pair := timewindow.Calculate(30, &fixedTimeProvider{
			now: time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC),
		})

		assert.Equal(t, time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), pair.Current.Start)
		assert.Equal(t, time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC), pair.Previous.Start)
	})
}

func TestCalculateAllTime(t *testing.T) {
	now := time.Date(2024, 6, 15, 14, 30, 45, 0, time.UTC)
	pair := timewindow.Calculate(0, &fixedTimeProvider{now: now})

	assert.Equal(t, timewindow.AllTimeFloor, pair.Current.Start)
	assert.Equal(t, now, pair.Current.End)

	assert.True(t, pair.Previous.IsZeroLength(),
		"previous window must collapse to a single instant in all-time mode")
	assert.Equal(t, timewindow.AllTimeFloor, pair.Previous.Start)
}

func TestWindowContains(t *testing.T) {
	w := timewindow.Window{
		Start: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 6, 7, 23, 59, 59, 999999999, time.UTC),
	}

	tests := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"inside", time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC), true},
		{"exactly at start", w.Start, true},
		{"exactly at end", w.End, true},
		{"one tick before start", w.Start.Add(-time.Nanosecond), false},
		{"one tick after end", w.End.Add(time.Nanosecond), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.Contains(tt.t))
		})
	}
}

func TestSameDay(t *testing.T) {
	t.Run("same calendar day different hours", func(t *testing.T) {
		a := time.Date(2024, 1, 1, 0, 5, 0, 0, time.UTC)
		b := time.Date(2024, 1, 1, 23, 55, 0, 0, time.UTC)
		assert.True(t, timewindow.SameDay(a, b))
	})

	t.Run("adjacent days minutes apart", func(t *testing.T) {
		a := time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC)
		b := time.Date(2024, 1, 2, 0, 1, 0, 0, time.UTC)
		assert.False(t, timewindow.SameDay(a, b))
	})

	t.Run("non-UTC inputs are compared on their UTC day", func(t *testing.T) {
		loc, err := time.LoadLocation("America/New_York")
		require.NoError(t, err)

		// 23:00 in New York on Jan 1 is already Jan 2 in UTC
		a := time.Date(2024, 1, 1, 23, 0, 0, 0, loc)
		b := time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)
		assert.True(t, timewindow.SameDay(a, b))
	})
}

func TestDayKey(t *testing.T) {
	assert.Equal(t, "2024-01-03", timewindow.DayKey(time.Date(2024, 1, 3, 18, 30, 0, 0, time.UTC)))
	assert.Equal(t, "2024-12-31", timewindow.DayKey(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)))
}
