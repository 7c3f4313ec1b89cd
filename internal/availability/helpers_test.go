package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// testNow is a Monday, a week before the dates most tests search.
var testNow = time.Date(2024, 7, 1, 8, 0, 0, 0, time.UTC)

func fixedOffsets(now time.Time) Offsets {
	return Offsets{Now: func() time.Time { return now }}
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(time.DateOnly, s)
	require.NoError(t, err)
	return d
}

func newRequest(t *testing.T, from, to string, minutes int, weekends bool) SearchRequest {
	t.Helper()
	n := Normalizer{Offsets: fixedOffsets(testNow), AmbientZone: "UTC"}
	req, err := n.Normalize(RawRequest{
		Invitees:           []string{"alice@example.com"},
		StartDate:          DateField(mustDate(t, from)),
		EndDate:            DateField(mustDate(t, to)),
		DayStart:           TimeOfDay{Hour: 9},
		DayEnd:             TimeOfDay{Hour: 17},
		MinDurationMinutes: minutes,
		IncludeWeekends:    weekends,
	})
	require.NoError(t, err)
	return req
}

// at returns hh:mm on date in the request's location.
func at(t *testing.T, req SearchRequest, date string, hh, mm int) time.Time {
	t.Helper()
	d := mustDate(t, date)
	return time.Date(d.Year(), d.Month(), d.Day(), hh, mm, 0, 0, req.Location)
}
