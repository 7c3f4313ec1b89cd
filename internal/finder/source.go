package finder

import (
	"context"
	"time"

	"github.com/teemow/groupavail/internal/availability"
)

// EventSource lists the events of one calendar.
type EventSource interface {
	// Name identifies the source in metrics and logs.
	Name() string

	// Events returns the events of calendarID overlapping [from, to).
	Events(ctx context.Context, calendarID string, from, to time.Time) ([]availability.RawEvent, error)
}

// Owner is implemented by sources that serve only some calendars.
type Owner interface {
	Has(calendarID string) bool
}

// route picks the first source that serves calendarID. Sources without an
// Owner implementation serve every calendar.
func route(sources []EventSource, calendarID string) (EventSource, bool) {
	for _, src := range sources {
		if o, ok := src.(Owner); ok && !o.Has(calendarID) {
			continue
		}
		return src, true
	}
	return nil, false
}
