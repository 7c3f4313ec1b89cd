package availability

import "time"

// maxGridMinutes caps the rounding grid regardless of the minimum duration.
const maxGridMinutes = 30

// gridMinutes returns the rounding granularity for a minimum duration:
// durations above 15 minutes round to half hours, shorter ones to their own
// length, never below one minute.
func gridMinutes(minDuration time.Duration) int {
	m := int(minDuration / time.Minute)
	if m > 15 {
		return maxGridMinutes
	}
	if m < 1 {
		return 1
	}
	return m
}

// Round snaps t to the duration grid in t's own location. Start boundaries
// are floored, end boundaries are ceiled, rolling into the next hour when the
// ceiling reaches 60. Seconds and sub-seconds are always dropped.
func Round(t time.Time, isStart bool, minDuration time.Duration) time.Time {
	grid := gridMinutes(minDuration)
	hour, minute := t.Hour(), t.Minute()

	if isStart {
		minute = (minute / grid) * grid
	} else {
		minute = ((minute + grid - 1) / grid) * grid
		if minute >= 60 {
			hour++
			minute = 0
		}
	}

	return time.Date(t.Year(), t.Month(), t.Day(), hour, minute, 0, 0, t.Location())
}
