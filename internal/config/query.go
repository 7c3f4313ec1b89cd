package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/teemow/groupavail/internal/availability"
	"github.com/teemow/groupavail/internal/format"
)

// DateLayout is the layout of start and end dates in queries.
const DateLayout = "2006-01-02"

// Query is a search as entered by a user. Empty fields take their value
// from the configuration.
type Query struct {
	// Invitees are addresses or bare user names, possibly several per
	// entry separated by commas.
	Invitees []string

	StartDate string
	EndDate   string

	DayStart string
	DayEnd   string

	MinDurationMinutes int
	IncludeWeekends    *bool

	Zone string
}

// Request resolves q against the configuration into an engine request.
// Bare invitee names are qualified with the workspace domain, invitees
// outside it are dropped unless an iCalendar feed is configured for them,
// and the configured user is always included.
// Missing dates span SearchDays from today in the request zone.
func (c Config) Request(q Query, now time.Time) (availability.RawRequest, error) {
	invitees := availability.ParseInvitees(strings.Join(q.Invitees, ","), c.WorkspaceDomain)
	feeds, err := c.Feeds()
	if err != nil {
		return availability.RawRequest{}, err
	}
	invitees = availability.FilterSchedulees(invitees, c.WorkspaceDomain, c.User, func(inv string) bool {
		_, ok := feeds[strings.ToLower(inv)]
		return ok
	})

	zone := format.PresentationZone(firstNonEmpty(q.Zone, c.DefaultZone))
	if loc, err := time.LoadLocation(zone); err == nil {
		now = now.In(loc)
	}
	from, to := c.Window(now)

	start, err := parseDate(q.StartDate, from)
	if err != nil {
		return availability.RawRequest{}, fmt.Errorf("start date: %w", err)
	}
	end := to
	if q.StartDate != "" && q.EndDate == "" {
		end = start.AddDate(0, 0, c.SearchDays)
	}
	if end, err = parseDate(q.EndDate, end); err != nil {
		return availability.RawRequest{}, fmt.Errorf("end date: %w", err)
	}

	dayStart, err := availability.ParseTimeOfDay(firstNonEmpty(q.DayStart, c.DayStart))
	if err != nil {
		return availability.RawRequest{}, fmt.Errorf("day start: %w", err)
	}
	dayEnd, err := availability.ParseTimeOfDay(firstNonEmpty(q.DayEnd, c.DayEnd))
	if err != nil {
		return availability.RawRequest{}, fmt.Errorf("day end: %w", err)
	}

	minDuration := q.MinDurationMinutes
	if minDuration == 0 {
		minDuration = c.MinDurationMinutes
	}
	weekends := c.IncludeWeekends
	if q.IncludeWeekends != nil {
		weekends = *q.IncludeWeekends
	}

	return availability.RawRequest{
		Invitees:           invitees,
		StartDate:          availability.DateField(start),
		EndDate:            availability.DateField(end),
		DayStart:           dayStart,
		DayEnd:             dayEnd,
		MinDurationMinutes: minDuration,
		IncludeWeekends:    weekends,
		Zone:               zone,
	}, nil
}

func parseDate(s string, fallback time.Time) (time.Time, error) {
	if s == "" {
		return fallback, nil
	}
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a YYYY-MM-DD date", availability.ErrInvalidRequest, s)
	}
	return t, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
