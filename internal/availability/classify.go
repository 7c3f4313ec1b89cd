package availability

import (
	"strings"
	"time"

	"github.com/samber/mo"
)

// Transparency tells whether an event marks its owner as busy.
type Transparency int

const (
	Opaque Transparency = iota
	Transparent
)

// ParseTransparency maps a calendar transparency value. Anything other than
// "transparent" is opaque.
func ParseTransparency(s string) Transparency {
	if strings.EqualFold(strings.TrimSpace(s), "transparent") {
		return Transparent
	}
	return Opaque
}

// Response is an attendee's participation state.
type Response int

const (
	ResponseOther Response = iota
	ResponseNotReplied
	ResponseNeedsAction
	ResponseDeclined
	ResponseTentative
	ResponseAccepted
)

var responseNames = map[string]Response{
	"notreplied":  ResponseNotReplied,
	"needsaction": ResponseNeedsAction,
	"declined":    ResponseDeclined,
	"tentative":   ResponseTentative,
	"accepted":    ResponseAccepted,
	// iCalendar PARTSTAT values
	"needs-action": ResponseNeedsAction,
}

// ParseResponse maps a participation value from Google Calendar or
// iCalendar. Unknown values map to ResponseOther.
func ParseResponse(s string) Response {
	if r, ok := responseNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return r
	}
	return ResponseOther
}

// String returns the calendar name of the response.
func (r Response) String() string {
	switch r {
	case ResponseNotReplied:
		return "notReplied"
	case ResponseNeedsAction:
		return "needsAction"
	case ResponseDeclined:
		return "declined"
	case ResponseTentative:
		return "tentative"
	case ResponseAccepted:
		return "accepted"
	default:
		return "other"
	}
}

// AttendeeRecord is one attendee entry of a raw event.
type AttendeeRecord struct {
	Email    string
	Status   Response
	Response Response
}

// RawEvent is an event as fetched from a calendar, before classification.
type RawEvent struct {
	Summary string

	// Start and End are instants for timed events. For all-day events only
	// their dates are used and End is exclusive.
	Start  time.Time
	End    time.Time
	AllDay bool

	Transparency Transparency

	// Attendees is empty when the event has no attendee list.
	Attendees []AttendeeRecord
}

// Normalize converts the raw event into its timed or all-day form.
func (r RawEvent) Normalize() Event {
	if !r.AllDay {
		return Timed(r.Summary, r.Start, r.End)
	}
	first := DateOf(r.Start)
	last := DateOf(r.End).AddDays(-1)
	return AllDay(r.Summary, first, last)
}

// BlockingFacts are the inputs of the blocking decision for one calendar
// owner.
type BlockingFacts struct {
	HasAttendees bool
	Owner        mo.Option[AttendeeRecord]
	Transparency Transparency
}

// FactsFor extracts the blocking facts of ev for the calendar owned by owner.
func FactsFor(ev RawEvent, owner string) BlockingFacts {
	facts := BlockingFacts{
		HasAttendees: len(ev.Attendees) > 0,
		Owner:        mo.None[AttendeeRecord](),
		Transparency: ev.Transparency,
	}
	for _, a := range ev.Attendees {
		if strings.EqualFold(a.Email, owner) {
			facts.Owner = mo.Some(a)
			break
		}
	}
	return facts
}

// Blocks reports whether the facts describe time the owner is not free.
func (f BlockingFacts) Blocks() bool {
	if !f.HasAttendees {
		return f.Transparency != Transparent
	}

	owner, ok := f.Owner.Get()
	if !ok {
		return false
	}

	switch owner.Status {
	case ResponseTentative, ResponseAccepted:
		return true
	}

	if f.Transparency == Transparent {
		return false
	}

	switch owner.Response {
	case ResponseNotReplied, ResponseNeedsAction, ResponseDeclined:
		return false
	}
	return true
}

// Classify reports whether ev blocks time on owner's calendar.
func Classify(ev RawEvent, owner string) bool {
	return FactsFor(ev, owner).Blocks()
}
