package google

import calendar "google.golang.org/api/calendar/v3"

// Scopes are the OAuth scopes requested for availability searches. Only
// read access to calendars is needed.
var Scopes = []string{
	"openid",
	"https://www.googleapis.com/auth/userinfo.email",
	calendar.CalendarReadonlyScope,
}
