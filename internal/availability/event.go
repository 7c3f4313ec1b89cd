package availability

import (
	"sort"
	"time"
)

// Date is a calendar date without a time or zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// AddDays returns the date n days later (or earlier for negative n).
func (d Date) AddDays(n int) Date {
	return DateOf(time.Date(d.Year, d.Month, d.Day+n, 0, 0, 0, 0, time.UTC))
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	return d.midnight().Before(other.midnight())
}

// At returns the instant at tod on this date in loc.
func (d Date) At(tod TimeOfDay, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, tod.Hour, tod.Minute, 0, 0, loc)
}

func (d Date) midnight() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.midnight().Format(time.DateOnly)
}

// Event is a blocking calendar entry. It is either timed, with concrete
// instants, or all-day, covering whole dates.
type Event struct {
	Label string

	allDay bool

	// timed
	start, end time.Time

	// all-day, both inclusive
	first, last Date
}

// Timed returns an event occupying [start, end).
func Timed(label string, start, end time.Time) Event {
	return Event{Label: label, start: start, end: end}
}

// AllDay returns an event occupying the dates first through last, inclusive.
func AllDay(label string, first, last Date) Event {
	if last.Before(first) {
		last = first
	}
	return Event{Label: label, allDay: true, first: first, last: last}
}

// Bounds returns the raw interval the event occupies in the request's time
// base. All-day events span from the work window start on their first date
// to the work window end on their last date.
func (e Event) Bounds(req SearchRequest) (start, end time.Time) {
	if e.allDay {
		return e.first.At(req.DayStart, req.Location), e.last.At(req.DayEnd, req.Location)
	}
	return e.start.In(req.Location), e.end.In(req.Location)
}

// SortEvents orders events by the start of their bounds. The sort is stable
// so events sharing a start keep their input order.
func SortEvents(events []Event, req SearchRequest) {
	sort.SliceStable(events, func(i, j int) bool {
		a, _ := events[i].Bounds(req)
		b, _ := events[j].Bounds(req)
		return a.Before(b)
	})
}
