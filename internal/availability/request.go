package availability

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeOfDay is a wall-clock time without a date, used for the daily work
// window.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses "HH:MM" (24-hour clock).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return TimeOfDay{}, fmt.Errorf("%w: time of day %q must be HH:MM", ErrInvalidRequest, s)
	}
	hour, err := strconv.Atoi(h)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: time of day %q: %v", ErrInvalidRequest, s, err)
	}
	minute, err := strconv.Atoi(m)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: time of day %q: %v", ErrInvalidRequest, s, err)
	}
	tod := TimeOfDay{Hour: hour, Minute: minute}
	if err := tod.validate(); err != nil {
		return TimeOfDay{}, err
	}
	return tod, nil
}

func (t TimeOfDay) validate() error {
	if t.Hour < 0 || t.Hour > 23 || t.Minute < 0 || t.Minute > 59 {
		return fmt.Errorf("%w: time of day %02d:%02d out of range", ErrInvalidRequest, t.Hour, t.Minute)
	}
	return nil
}

func (t TimeOfDay) minutes() int {
	return t.Hour*60 + t.Minute
}

// String formats the time as HH:MM.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// On returns the instant at this wall-clock time on t's calendar day in loc.
func (t TimeOfDay) On(day time.Time, loc *time.Location) time.Time {
	day = day.In(loc)
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour, t.Minute, 0, 0, loc)
}

// RawRequest is a search request as entered by a user.
type RawRequest struct {
	// Invitees are the calendar owners to search. Must not be empty.
	Invitees []string

	// StartDate and EndDate are the picked dates as milliseconds since the
	// epoch, anchored to the engine zone (midnight UTC for date pickers).
	StartDate int64
	EndDate   int64

	DayStart TimeOfDay
	DayEnd   TimeOfDay

	// MinDurationMinutes is the shortest useful slot.
	MinDurationMinutes int

	IncludeWeekends bool

	// Zone is an IANA identifier. Empty means the engine's ambient zone.
	Zone string
}

// DateField converts a calendar date into the epoch-millisecond form used by
// RawRequest. Only the year, month and day of d are used.
func DateField(d time.Time) int64 {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC).UnixMilli()
}

// SearchRequest is a normalized, validated request. Every instant in it is
// expressed in Location.
type SearchRequest struct {
	Invitees []string

	// Start and End bound the search. Start is never in the past relative
	// to normalization time and End is always after Start.
	Start time.Time
	End   time.Time

	DayStart TimeOfDay
	DayEnd   TimeOfDay

	MinDuration     time.Duration
	IncludeWeekends bool

	Zone string

	// Location is the fixed-offset computation time base for Zone.
	Location *time.Location
}

// DayStartOn returns the start of the work window on t's day.
func (r SearchRequest) DayStartOn(t time.Time) time.Time {
	return r.DayStart.On(t, r.Location)
}

// DayEndOn returns the end of the work window on t's day.
func (r SearchRequest) DayEndOn(t time.Time) time.Time {
	return r.DayEnd.On(t, r.Location)
}

// SameDay reports whether a and b fall on the same calendar day in the
// request's location.
func (r SearchRequest) SameDay(a, b time.Time) bool {
	a, b = a.In(r.Location), b.In(r.Location)
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// Normalizer turns raw user input into a SearchRequest.
type Normalizer struct {
	Offsets Offsets

	// AmbientZone is used when a request carries no zone. Defaults to
	// DefaultEngineZone.
	AmbientZone string
}

// Normalize validates raw and resolves it into concrete instants in the
// request zone's fixed-offset location. A search start in the past is moved
// to the current time, floored to the duration grid.
func (n Normalizer) Normalize(raw RawRequest) (SearchRequest, error) {
	if len(raw.Invitees) == 0 {
		return SearchRequest{}, fmt.Errorf("%w: at least one invitee is required", ErrInvalidRequest)
	}
	if raw.MinDurationMinutes <= 0 {
		return SearchRequest{}, fmt.Errorf("%w: minimum duration must be positive, got %d minutes",
			ErrInvalidRequest, raw.MinDurationMinutes)
	}
	if err := raw.DayStart.validate(); err != nil {
		return SearchRequest{}, err
	}
	if err := raw.DayEnd.validate(); err != nil {
		return SearchRequest{}, err
	}
	if raw.DayEnd.minutes() <= raw.DayStart.minutes() {
		return SearchRequest{}, fmt.Errorf("%w: day end %s must be after day start %s",
			ErrInvalidRange, raw.DayEnd, raw.DayStart)
	}

	zone := raw.Zone
	if zone == "" {
		zone = n.AmbientZone
	}
	if zone == "" {
		zone = DefaultEngineZone
	}

	loc, err := n.Offsets.Location(zone)
	if err != nil {
		return SearchRequest{}, err
	}

	dayStart, err := n.dayField(raw.DayStart, zone, loc)
	if err != nil {
		return SearchRequest{}, err
	}
	dayEnd, err := n.dayField(raw.DayEnd, zone, loc)
	if err != nil {
		return SearchRequest{}, err
	}

	minDuration := time.Duration(raw.MinDurationMinutes) * time.Minute

	startDay, err := n.Offsets.FromEpochField(raw.StartDate, zone)
	if err != nil {
		return SearchRequest{}, err
	}
	endDay, err := n.Offsets.FromEpochField(raw.EndDate, zone)
	if err != nil {
		return SearchRequest{}, err
	}

	start := dayStart.On(startDay, loc)
	if now := n.Offsets.now().In(loc); start.Before(now) {
		start = Round(now, true, minDuration)
	}
	end := dayEnd.On(endDay, loc)

	if !end.After(start) {
		return SearchRequest{}, fmt.Errorf("%w: search end %s is not after start %s",
			ErrInvalidRange, end.Format(time.RFC3339), start.Format(time.RFC3339))
	}

	return SearchRequest{
		Invitees:        raw.Invitees,
		Start:           start,
		End:             end,
		DayStart:        dayStart,
		DayEnd:          dayEnd,
		MinDuration:     minDuration,
		IncludeWeekends: raw.IncludeWeekends,
		Zone:            zone,
		Location:        loc,
	}, nil
}

// dayField resolves a time-of-day field through the zone offset so that the
// day window is read in the computation time base.
func (n Normalizer) dayField(tod TimeOfDay, zone string, loc *time.Location) (TimeOfDay, error) {
	t, err := n.Offsets.FromHourMinuteField(tod.Hour, tod.Minute, zone)
	if err != nil {
		return TimeOfDay{}, err
	}
	t = t.In(loc)
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}
