package ics

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/teemow/groupavail/internal/availability"
)

// maxOccurrences caps the instances generated per recurring event.
const maxOccurrences = 5000

// expand turns parsed events into instances overlapping [from, to).
// Overrides replace the instance named by their RECURRENCE-ID.
func expand(events []vevent, from, to time.Time) []availability.RawEvent {
	overrides := make(map[string][]vevent)
	for _, ev := range events {
		if ev.recurrence != nil {
			overrides[ev.uid] = append(overrides[ev.uid], ev)
		}
	}

	var out []availability.RawEvent
	for _, ev := range events {
		if ev.recurrence != nil {
			if overlaps(ev.start, ev.end, from, to) {
				out = append(out, ev.occurrence(ev.start))
			}
			continue
		}
		if ev.rrule == "" {
			if overlaps(ev.start, ev.end, from, to) {
				out = append(out, ev.occurrence(ev.start))
			}
			continue
		}

		starts, err := occurrences(ev, overrides[ev.uid], from, to)
		if err != nil {
			// A broken rule still blocks its first instance.
			if overlaps(ev.start, ev.end, from, to) {
				out = append(out, ev.occurrence(ev.start))
			}
			continue
		}
		for _, s := range starts {
			out = append(out, ev.occurrence(s))
		}
	}
	return out
}

// occurrences lists the instance starts of a recurring event whose span
// overlaps [from, to), minus EXDATEs and overridden instances.
func occurrences(ev vevent, overrides []vevent, from, to time.Time) ([]time.Time, error) {
	opt, err := rrule.StrToROption(ev.rrule)
	if err != nil {
		return nil, fmt.Errorf("invalid RRULE %q: %w", ev.rrule, err)
	}
	opt.Dtstart = ev.start
	r, err := rrule.NewRRule(*opt)
	if err != nil {
		return nil, fmt.Errorf("invalid RRULE %q: %w", ev.rrule, err)
	}

	set := &rrule.Set{}
	set.RRule(r)
	for _, ex := range ev.exdates {
		set.ExDate(ex.In(ev.start.Location()))
	}
	for _, ov := range overrides {
		set.ExDate(ov.recurrence.In(ev.start.Location()))
	}

	// Instances starting before from can still reach into the window.
	lower := from.Add(-ev.duration())
	starts := set.Between(lower.In(ev.start.Location()), to.In(ev.start.Location()), true)
	if len(starts) > maxOccurrences {
		starts = starts[:maxOccurrences]
	}

	out := starts[:0]
	for _, s := range starts {
		if overlaps(s, s.Add(ev.duration()), from, to) {
			out = append(out, s)
		}
	}
	return out, nil
}

// overlaps reports whether [aStart, aEnd) intersects [bStart, bEnd).
// Zero-length instances count when they fall inside the window.
func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	if aEnd.Equal(aStart) {
		return !aStart.Before(bStart) && aStart.Before(bEnd)
	}
	return aStart.Before(bEnd) && aEnd.After(bStart)
}
