package format

import "github.com/teemow/groupavail/internal/availability"

// DayTracker remembers the last day written during one render so that a day
// header is emitted only when the day changes. Use a fresh tracker per
// render.
type DayTracker struct {
	last    availability.Date
	started bool
}

// Advance records day and reports whether it starts a new group.
func (d *DayTracker) Advance(day availability.Date) bool {
	changed := !d.started || day != d.last
	d.last, d.started = day, true
	return changed
}
