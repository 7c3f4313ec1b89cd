// Package ics reads busy time from iCalendar files and feeds.
//
// Each calendar id (an invitee address) maps to a local .ics file or an
// http(s) URL. VEVENTs are parsed with golang-ical and recurring events are
// expanded inside the requested window with rrule-go, honouring EXDATE and
// RECURRENCE-ID overrides.
package ics
