package format

import (
	"time"

	"github.com/teemow/groupavail/internal/availability"
)

const (
	layout12 = "03:04 pm"
	layout24 = "15:04"
)

// presenter formats instants for one output zone.
type presenter struct {
	zone string
	loc  *time.Location
}

// newPresenter resolves zone for display. An unknown zone is shown in UTC
// so rendering never fails on a label.
func newPresenter(zone string) presenter {
	loc, err := time.LoadLocation(zone)
	if err != nil || zone == "" {
		loc = time.UTC
	}
	return presenter{zone: zone, loc: loc}
}

// Time formats t as a wall-clock time in the output zone.
func (p presenter) Time(t time.Time) string {
	if twelveHour(p.zone) {
		return t.In(p.loc).Format(layout12)
	}
	return t.In(p.loc).Format(layout24)
}

// Day formats the day header of t, such as "Mon (Jul 1)".
func (p presenter) Day(t time.Time) string {
	return t.In(p.loc).Format("Mon (Jan 2)")
}

func (p presenter) date(t time.Time) availability.Date {
	return availability.DateOf(t.In(p.loc))
}

// FormatTime formats t for zone the way renderers do.
func FormatTime(t time.Time, zone string) string {
	return newPresenter(zone).Time(t)
}
