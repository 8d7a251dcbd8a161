// Package timewindow derives the aligned current/previous reporting
// windows that every comparative metric is computed over. All window
// arithmetic is done in UTC.
package timewindow

import (
	"fmt"
	"time"
)

// TimeProvider abstracts the wall clock so window boundaries are
// deterministic in tests.
type TimeProvider interface {
	Now() time.Time
}

// DefaultTimeProvider is the default implementation that uses the
// system clock.
type DefaultTimeProvider struct{}

// Now returns the current time in UTC.
func (p *DefaultTimeProvider) Now() time.Time {
	return time.Now().UTC()
}

// AllTimeFloor is the lower bound used when no day count is given:
// "since inception" is modeled as the Unix epoch.
var AllTimeFloor = time.Unix(0, 0).UTC()

// Window represents a closed interval of time. Both ends are inclusive
// when matching user creation timestamps.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the window, inclusive on
// both ends.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Duration returns the length of the window.
func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// IsZeroLength reports whether the window has collapsed to a single
// instant, which happens for the previous window in all-time mode.
func (w Window) IsZeroLength() bool {
	return w.Start.Equal(w.End)
}

func (w Window) String() string {
	return fmt.Sprintf("%s to %s",
		w.Start.Format("2006-01-02"), w.End.Format("2006-01-02"))
}

// Pair holds the current window and the equally-sized window
// immediately preceding it.
type Pair struct {
	Current  Window `json:"current"`
	Previous Window `json:"previous"`
}

// Calculate derives the current and previous windows for a day count.
//
// For days >= 1 the current window covers the last `days` calendar days
// ending today (end of day), and the previous window covers the `days`
// calendar days immediately before it. The two windows abut with no gap
// or overlap and span the same number of days.
//
// For days == 0 ("all time") the current window runs from AllTimeFloor
// to now and the previous window collapses to the zero-length instant
// at AllTimeFloor. Every previous-period metric is then computed over
// an empty set, so all percentage changes come out as 0 or 100. That
// mirrors the upstream behavior and is kept as-is.
func Calculate(days int, tp TimeProvider) Pair {
	now := tp.Now().UTC()

	if days <= 0 {
		floor := AllTimeFloor
		return Pair{
			Current:  Window{Start: floor, End: now},
			Previous: Window{Start: floor, End: floor},
		}
	}

	currentEnd := endOfDay(now)
	currentStart := startOfDay(now.AddDate(0, 0, -(days - 1)))

	previousEnd := currentStart.Add(-time.Nanosecond)
	previousStart := startOfDay(previousEnd.AddDate(0, 0, -(days - 1)))

	return Pair{
		Current:  Window{Start: currentStart, End: currentEnd},
		Previous: Window{Start: previousStart, End: previousEnd},
	}
}

// SameDay reports whether two instants fall on the same UTC calendar
// day. Retention classification and daily bucketing both rely on this
// single definition so the two stay consistent.
func SameDay(a, b time.Time) bool {
	au, bu := a.UTC(), b.UTC()
	return au.Year() == bu.Year() && au.Month() == bu.Month() && au.Day() == bu.Day()
}

// DayKey formats an instant as its UTC calendar-day bucket key. The
// ISO form sorts correctly as a plain string.
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

func startOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func endOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 23, 59, 59, 999999999, time.UTC)
}
