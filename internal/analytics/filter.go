package analytics

import (
	"github.com/Elusive7733/upautomate-analytics-be/internal/timewindow"
	"github.com/Elusive7733/upautomate-analytics-be/internal/users"
)

// FilterByWindow returns the subset of the snapshot whose creation
// timestamp falls inside the window, inclusive on both ends. Records
// without a usable date_created match no window at all. For the
// abutting current/previous windows this makes the two subsets
// disjoint: no record is ever counted in both periods.
func FilterByWindow(snapshot []users.User, w timewindow.Window) []users.User {
	var matched []users.User
	for i := range snapshot {
		u := &snapshot[i]
		if !u.DateCreated.Valid {
			continue
		}
		if w.Contains(u.DateCreated.Time) {
			matched = append(matched, *u)
		}
	}
	return matched
}
