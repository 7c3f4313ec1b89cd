package availability

import (
	"fmt"
	"time"
)

// DefaultEngineZone is the zone UI date fields are implicitly anchored to.
// Date pickers deliver the picked day as midnight UTC.
const DefaultEngineZone = "UTC"

// Offsets translates user-facing date and time fields into instants of a
// named zone. All offsets are computed once from the current moment and then
// applied uniformly, so conversions across a DST change are off by the DST
// delta.
type Offsets struct {
	// Now returns the current instant. Defaults to time.Now.
	Now func() time.Time

	// EngineZone is the zone epoch-millisecond date fields are anchored to.
	// Defaults to DefaultEngineZone.
	EngineZone string
}

func (o Offsets) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func (o Offsets) engineZone() string {
	if o.EngineZone == "" {
		return DefaultEngineZone
	}
	return o.EngineZone
}

// OffsetFor returns the signed offset of zone at the given instant, such that
// the wall clock in zone equals at + offset when read as UTC.
func (o Offsets) OffsetFor(zone string, at time.Time) (time.Duration, error) {
	loc, err := loadZone(zone)
	if err != nil {
		return 0, err
	}

	at = at.Truncate(time.Second)
	wall := at.In(loc)
	naive := time.Date(wall.Year(), wall.Month(), wall.Day(),
		wall.Hour(), wall.Minute(), wall.Second(), 0, time.UTC)

	return naive.Sub(at), nil
}

// FromEpochField converts a date field given as milliseconds since the epoch,
// anchored to the engine zone, into the instant with the same wall clock in
// zone.
func (o Offsets) FromEpochField(ms int64, zone string) (time.Time, error) {
	now := o.now()

	zoneOffset, err := o.OffsetFor(zone, now)
	if err != nil {
		return time.Time{}, err
	}
	engineOffset, err := o.OffsetFor(o.engineZone(), now)
	if err != nil {
		return time.Time{}, err
	}

	return time.UnixMilli(ms).Add(engineOffset - zoneOffset), nil
}

// FromHourMinuteField returns today's hours:minutes wall clock in zone.
// "Today" is the current UTC date.
func (o Offsets) FromHourMinuteField(hours, minutes int, zone string) (time.Time, error) {
	now := o.now()

	offset, err := o.OffsetFor(zone, now)
	if err != nil {
		return time.Time{}, err
	}

	utc := now.UTC()
	wall := time.Date(utc.Year(), utc.Month(), utc.Day(), hours, minutes, 0, 0, time.UTC)
	return wall.Add(-offset), nil
}

// Location returns the fixed-offset location used as the computation time
// base for zone. The offset is the one in effect now.
func (o Offsets) Location(zone string) (*time.Location, error) {
	offset, err := o.OffsetFor(zone, o.now())
	if err != nil {
		return nil, err
	}
	return time.FixedZone(zone, int(offset/time.Second)), nil
}

func loadZone(zone string) (*time.Location, error) {
	if zone == "" {
		return nil, fmt.Errorf("%w: empty zone identifier", ErrInvalidZone)
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidZone, zone, err)
	}
	return loc, nil
}
