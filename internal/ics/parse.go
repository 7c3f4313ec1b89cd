package ics

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/teemow/groupavail/internal/availability"
)

// vevent is a parsed VEVENT before recurrence expansion.
type vevent struct {
	uid     string
	summary string
	start   time.Time
	end     time.Time
	allDay  bool

	transparency availability.Transparency
	attendees    []availability.AttendeeRecord

	rrule      string
	exdates    []time.Time
	recurrence *time.Time
}

func (v vevent) duration() time.Duration {
	return v.end.Sub(v.start)
}

func (v vevent) occurrence(start time.Time) availability.RawEvent {
	return availability.RawEvent{
		Summary:      v.summary,
		Start:        start,
		End:          start.Add(v.duration()),
		AllDay:       v.allDay,
		Transparency: v.transparency,
		Attendees:    v.attendees,
	}
}

func parse(body []byte, floating *time.Location) ([]vevent, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, errors.New("empty calendar")
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var out []vevent
	for _, ve := range cal.Events() {
		if p := ve.GetProperty(ical.ComponentPropertyStatus); p != nil && strings.EqualFold(p.Value, "CANCELLED") {
			continue
		}
		ev, err := parseVEvent(ve, floating)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, nil
}

func parseVEvent(ve *ical.VEvent, floating *time.Location) (vevent, error) {
	var out vevent
	if p := ve.GetProperty(ical.ComponentPropertyUniqueId); p != nil {
		out.uid = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		out.summary = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyTransp); p != nil {
		out.transparency = availability.ParseTransparency(p.Value)
	}

	dtstart := ve.GetProperty(ical.ComponentPropertyDtStart)
	if dtstart == nil {
		return out, fmt.Errorf("event %q has no DTSTART", out.uid)
	}
	start, allDay, err := parseTime(dtstart.Value, dtstart.ICalParameters, floating)
	if err != nil {
		return out, fmt.Errorf("event %q: invalid DTSTART: %w", out.uid, err)
	}
	out.start, out.allDay = start, allDay

	switch dtend := ve.GetProperty(ical.ComponentPropertyDtEnd); {
	case dtend != nil:
		if out.end, _, err = parseTime(dtend.Value, dtend.ICalParameters, floating); err != nil {
			return out, fmt.Errorf("event %q: invalid DTEND: %w", out.uid, err)
		}
	case allDay:
		out.end = start.AddDate(0, 0, 1)
	default:
		out.end = start
	}

	for _, a := range ve.Attendees() {
		resp := availability.ParseResponse(string(a.ParticipationStatus()))
		out.attendees = append(out.attendees, availability.AttendeeRecord{
			Email:    a.Email(),
			Status:   resp,
			Response: resp,
		})
	}

	if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil {
		out.rrule = p.Value
	}
	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		for _, part := range strings.Split(p.Value, ",") {
			if part = strings.TrimSpace(part); part == "" {
				continue
			}
			t, _, err := parseTime(part, p.ICalParameters, floating)
			if err != nil {
				return out, fmt.Errorf("event %q: invalid EXDATE: %w", out.uid, err)
			}
			out.exdates = append(out.exdates, t)
		}
	}
	if p := ve.GetProperty(ical.ComponentProperty("RECURRENCE-ID")); p != nil {
		t, _, err := parseTime(p.Value, p.ICalParameters, floating)
		if err != nil {
			return out, fmt.Errorf("event %q: invalid RECURRENCE-ID: %w", out.uid, err)
		}
		out.recurrence = &t
	}
	return out, nil
}

// parseTime parses a DATE or DATE-TIME value. Dates are returned as UTC
// midnight and reported as all-day.
func parseTime(value string, params map[string][]string, floating *time.Location) (time.Time, bool, error) {
	value = strings.TrimSpace(value)

	isDate := !strings.Contains(value, "T")
	if vs := params[string(ical.ParameterValue)]; len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		isDate = true
	}
	if isDate {
		t, err := time.Parse("20060102", value)
		return t, true, err
	}

	if strings.HasSuffix(value, "Z") {
		t, err := time.Parse("20060102T150405Z", value)
		return t, false, err
	}

	loc := floating
	if tz := params[string(ical.ParameterTzid)]; len(tz) > 0 {
		l, err := time.LoadLocation(strings.Trim(tz[0], `"`))
		if err != nil {
			return time.Time{}, false, fmt.Errorf("unknown TZID %q: %w", tz[0], err)
		}
		loc = l
	}
	t, err := time.ParseInLocation("20060102T150405", value, loc)
	return t, false, err
}
