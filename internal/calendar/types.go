package calendar

import (
	"fmt"
	"time"

	calendar "google.golang.org/api/calendar/v3"

	"github.com/teemow/groupavail/internal/availability"
)

const dateLayout = "2006-01-02"

// toRawEvent converts an API event into the engine's raw form. Events with
// a Date start are all-day; their End date is exclusive.
func toRawEvent(e *calendar.Event) (availability.RawEvent, error) {
	if e.Start == nil || e.End == nil {
		return availability.RawEvent{}, fmt.Errorf("missing start or end")
	}

	ev := availability.RawEvent{
		Summary:      e.Summary,
		Transparency: availability.ParseTransparency(e.Transparency),
	}

	var err error
	if e.Start.DateTime == "" && e.Start.Date != "" {
		ev.AllDay = true
		if ev.Start, err = time.Parse(dateLayout, e.Start.Date); err != nil {
			return ev, fmt.Errorf("invalid start date: %w", err)
		}
		if ev.End, err = time.Parse(dateLayout, e.End.Date); err != nil {
			return ev, fmt.Errorf("invalid end date: %w", err)
		}
	} else {
		if ev.Start, err = time.Parse(time.RFC3339, e.Start.DateTime); err != nil {
			return ev, fmt.Errorf("invalid start time: %w", err)
		}
		if ev.End, err = time.Parse(time.RFC3339, e.End.DateTime); err != nil {
			return ev, fmt.Errorf("invalid end time: %w", err)
		}
	}

	for _, a := range e.Attendees {
		if a == nil {
			continue
		}
		// The API reports one participation value; it serves as both the
		// invitation status and the reply.
		resp := availability.ParseResponse(a.ResponseStatus)
		ev.Attendees = append(ev.Attendees, availability.AttendeeRecord{
			Email:    a.Email,
			Status:   resp,
			Response: resp,
		})
	}
	return ev, nil
}
