package availability

import (
	"fmt"
	"time"
)

// BusyInterval is a span of time during which at least one invitee is busy.
type BusyInterval struct {
	Label string
	Start time.Time
	End   time.Time
}

// String formats the interval for logs and debugging.
func (b BusyInterval) String() string {
	return fmt.Sprintf("%s [%s, %s)", b.Label, b.Start.Format(time.RFC3339), b.End.Format(time.RFC3339))
}

// BuildBlocked converts blocking events into disjoint, ordered busy intervals.
//
// Events must already be sorted by start (see SortEvents). Boundaries are
// snapped outward to the duration grid, and a start falling after the work
// window of the event's last day is pulled back to that day's end so evening
// events block nothing inside the window. Overlapping or touching intervals
// are merged into one.
//
// It returns ErrEmptyEventSet when no events produce an interval. Callers
// should then treat the whole search window as free (see FreeWindow).
func BuildBlocked(events []Event, req SearchRequest) ([]BusyInterval, error) {
	if len(events) == 0 {
		return nil, ErrEmptyEventSet
	}

	blocked := make([]BusyInterval, 0, len(events))
	for _, ev := range events {
		start, end := ev.Bounds(req)
		start = Round(start, true, req.MinDuration)
		end = Round(end, false, req.MinDuration)

		if dayEnd := req.DayEndOn(end); start.After(dayEnd) {
			start = dayEnd
		}
		if !end.After(start) {
			continue
		}

		blocked = fold(blocked, BusyInterval{Label: ev.Label, Start: start, End: end})
	}

	if len(blocked) == 0 {
		return nil, ErrEmptyEventSet
	}
	return blocked, nil
}

// merge folds already-bounded intervals, sorted by start, into disjoint ones.
// merge is idempotent.
func merge(intervals []BusyInterval) []BusyInterval {
	merged := make([]BusyInterval, 0, len(intervals))
	for _, iv := range intervals {
		if !iv.End.After(iv.Start) {
			continue
		}
		merged = fold(merged, iv)
	}
	return merged
}

// fold merges next into the last interval of list or appends it.
func fold(list []BusyInterval, next BusyInterval) []BusyInterval {
	if len(list) == 0 {
		return append(list, next)
	}

	last := &list[len(list)-1]
	switch {
	case !next.End.After(last.End):
		// contained in last
	case !next.Start.After(last.End):
		last.End = next.End
	default:
		list = append(list, next)
	}
	return list
}
