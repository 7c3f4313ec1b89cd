package availability

import (
	"fmt"
	"time"
)

const day = 24 * time.Hour

// Slot is a window in which every invitee is free. A slot never crosses a
// day boundary and lies inside that day's work window.
type Slot struct {
	Start time.Time
	End   time.Time
}

// Duration returns the length of the slot.
func (s Slot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// String formats the slot for logs and debugging.
func (s Slot) String() string {
	return fmt.Sprintf("[%s, %s)", s.Start.Format(time.RFC3339), s.End.Format(time.RFC3339))
}

// Extract returns the free slots between the merged busy intervals, split per
// day, clamped to the work window and clipped to the search window. Slots
// shorter than the minimum duration are dropped, as are weekend slots unless
// the request includes weekends. The gap after the last busy interval runs
// to the later of that day's work window end and the search end, so days
// after the last busy interval are offered too.
//
// blocked must be the non-empty output of BuildBlocked.
func Extract(req SearchRequest, blocked []BusyInterval) ([]Slot, error) {
	if len(blocked) == 0 {
		return nil, ErrEmptyEventSet
	}

	x := &extractor{req: req}
	x.gap(req.Start, blocked[0].Start)
	for i := 0; i+1 < len(blocked); i++ {
		x.gap(blocked[i].End, blocked[i+1].Start)
	}

	last := blocked[len(blocked)-1].End
	tail := req.DayEndOn(last)
	if req.End.After(tail) {
		tail = req.End
	}
	x.gap(last, tail)

	return x.result(), nil
}

// FreeWindow returns the slots of a search window with nothing blocking it.
func FreeWindow(req SearchRequest) []Slot {
	x := &extractor{req: req}
	x.gap(req.Start, req.End)
	return x.result()
}

// extractor accumulates the slots of a single extraction.
type extractor struct {
	req   SearchRequest
	slots []Slot
}

// gap emits the free time in [start, end) after clipping it to the search
// window.
func (x *extractor) gap(start, end time.Time) {
	if start.Before(x.req.Start) {
		start = x.req.Start
	}
	if end.After(x.req.End) {
		end = x.req.End
	}
	x.emit(start.In(x.req.Location), end.In(x.req.Location))
}

func (x *extractor) emit(start, end time.Time) {
	if !end.After(start) {
		return
	}
	req := x.req

	if req.SameDay(start, end) {
		if dayStart := req.DayStartOn(start); start.Before(dayStart) {
			start = dayStart
		}
		if dayEnd := req.DayEndOn(end); end.After(dayEnd) {
			end = dayEnd
		}
		if !end.After(start) || end.Sub(start) < req.MinDuration {
			return
		}
		x.slots = append(x.slots, Slot{Start: start, End: end})
		return
	}

	if dayEnd := req.DayEndOn(start); start.Before(dayEnd) {
		x.emit(start, dayEnd)
	}

	endDayCovered := false
	if span := end.Sub(start); span > day {
		current := start
		for i := 0; i < int(span/day); i++ {
			current = current.AddDate(0, 0, 1)
			windowEnd := req.DayEndOn(current)
			if end.Before(windowEnd) {
				windowEnd = end
			}
			x.emit(req.DayStartOn(current), windowEnd)
			if req.SameDay(current, end) {
				endDayCovered = true
			}
		}
	}

	if !endDayCovered {
		x.emit(req.DayStartOn(end), end)
	}
}

func (x *extractor) result() []Slot {
	if x.req.IncludeWeekends {
		return x.slots
	}
	weekdays := x.slots[:0]
	for _, s := range x.slots {
		switch s.Start.In(x.req.Location).Weekday() {
		case time.Saturday, time.Sunday:
			continue
		}
		weekdays = append(weekdays, s)
	}
	return weekdays
}
