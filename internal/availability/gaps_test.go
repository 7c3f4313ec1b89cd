package availability

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type wantSlot struct {
	date           string
	sh, sm, eh, em int
}

func assertSlots(t *testing.T, req SearchRequest, got []Slot, want []wantSlot) {
	t.Helper()
	require.Len(t, got, len(want), "slots: %v", got)
	for i, w := range want {
		start := at(t, req, w.date, w.sh, w.sm)
		end := at(t, req, w.date, w.eh, w.em)
		assert.True(t, got[i].Start.Equal(start), "slot %d start: want %s got %s", i, start, got[i].Start)
		assert.True(t, got[i].End.Equal(end), "slot %d end: want %s got %s", i, end, got[i].End)
	}
}

func extract(t *testing.T, req SearchRequest, events ...Event) []Slot {
	t.Helper()
	SortEvents(events, req)
	busy, err := BuildBlocked(events, req)
	require.NoError(t, err)
	slots, err := Extract(req, busy)
	require.NoError(t, err)
	return slots
}

func TestExtract_Empty(t *testing.T) {
	req := newRequest(t, "2024-07-08", "2024-07-08", 30, false)
	_, err := Extract(req, nil)
	assert.ErrorIs(t, err, ErrEmptyEventSet)
}

func TestExtract_SingleDay(t *testing.T) {
	req := newRequest(t, "2024-07-08", "2024-07-08", 30, false)

	slots := extract(t, req, Timed("meeting", at(t, req, "2024-07-08", 10, 0), at(t, req, "2024-07-08", 11, 0)))

	assertSlots(t, req, slots, []wantSlot{
		{"2024-07-08", 9, 0, 10, 0},
		{"2024-07-08", 11, 0, 17, 0},
	})
}

func TestExtract_MultiDaySpan(t *testing.T) {
	events := func(t *testing.T, req SearchRequest) []Event {
		return []Event{
			Timed("long", at(t, req, "2024-07-08", 9, 0), at(t, req, "2024-07-08", 16, 50)),
			Timed("late start", at(t, req, "2024-07-10", 9, 30), at(t, req, "2024-07-10", 10, 0)),
		}
	}

	t.Run("short tail kept when it meets the minimum", func(t *testing.T) {
		req := newRequest(t, "2024-07-08", "2024-07-10", 10, false)
		slots := extract(t, req, events(t, req)...)

		assertSlots(t, req, slots, []wantSlot{
			{"2024-07-08", 16, 50, 17, 0},
			{"2024-07-09", 9, 0, 17, 0},
			{"2024-07-10", 9, 0, 9, 30},
			{"2024-07-10", 10, 0, 17, 0},
		})
	})

	t.Run("short tail dropped by the grid", func(t *testing.T) {
		req := newRequest(t, "2024-07-08", "2024-07-10", 30, false)
		slots := extract(t, req, events(t, req)...)

		assertSlots(t, req, slots, []wantSlot{
			{"2024-07-09", 9, 0, 17, 0},
			{"2024-07-10", 9, 0, 9, 30},
			{"2024-07-10", 10, 0, 17, 0},
		})
	})
}

func TestExtract_WeekendFilter(t *testing.T) {
	// 2024-07-12 is a Friday, 2024-07-15 a Monday.
	events := func(t *testing.T, req SearchRequest) []Event {
		return []Event{
			Timed("friday", at(t, req, "2024-07-12", 9, 0), at(t, req, "2024-07-12", 17, 0)),
			Timed("monday", at(t, req, "2024-07-15", 9, 0), at(t, req, "2024-07-15", 17, 0)),
		}
	}

	t.Run("excluded", func(t *testing.T) {
		req := newRequest(t, "2024-07-12", "2024-07-15", 30, false)
		assert.Empty(t, extract(t, req, events(t, req)...))
	})

	t.Run("included", func(t *testing.T) {
		req := newRequest(t, "2024-07-12", "2024-07-15", 30, true)
		assertSlots(t, req, extract(t, req, events(t, req)...), []wantSlot{
			{"2024-07-13", 9, 0, 17, 0},
			{"2024-07-14", 9, 0, 17, 0},
		})
	})
}

func TestExtract_EveningEventClamp(t *testing.T) {
	req := newRequest(t, "2024-07-08", "2024-07-08", 30, false)

	slots := extract(t, req, Timed("dinner", at(t, req, "2024-07-08", 19, 0), at(t, req, "2024-07-08", 20, 0)))

	assertSlots(t, req, slots, []wantSlot{
		{"2024-07-08", 9, 0, 17, 0},
	})
}

func TestExtract_ExactlyOneDayGap(t *testing.T) {
	req := newRequest(t, "2024-07-08", "2024-07-09", 30, false)

	slots := extract(t, req,
		Timed("morning", at(t, req, "2024-07-08", 9, 0), at(t, req, "2024-07-08", 12, 0)),
		Timed("afternoon", at(t, req, "2024-07-09", 12, 0), at(t, req, "2024-07-09", 17, 0)),
	)

	assertSlots(t, req, slots, []wantSlot{
		{"2024-07-08", 12, 0, 17, 0},
		{"2024-07-09", 9, 0, 12, 0},
	})
}

func TestExtract_TrailingDaysAfterLastBusy(t *testing.T) {
	req := newRequest(t, "2024-07-08", "2024-07-10", 30, false)

	slots := extract(t, req, Timed("standup", at(t, req, "2024-07-08", 9, 0), at(t, req, "2024-07-08", 9, 30)))

	assertSlots(t, req, slots, []wantSlot{
		{"2024-07-08", 9, 30, 17, 0},
		{"2024-07-09", 9, 0, 17, 0},
		{"2024-07-10", 9, 0, 17, 0},
	})
}

func TestExtract_ClipsToSearchStart(t *testing.T) {
	now := time.Date(2024, 7, 8, 10, 7, 0, 0, time.UTC)
	n := Normalizer{Offsets: fixedOffsets(now)}
	req, err := n.Normalize(RawRequest{
		Invitees:           []string{"alice@example.com"},
		StartDate:          DateField(now),
		EndDate:            DateField(now),
		DayStart:           TimeOfDay{Hour: 9},
		DayEnd:             TimeOfDay{Hour: 17},
		MinDurationMinutes: 30,
		Zone:               "UTC",
	})
	require.NoError(t, err)

	slots := extract(t, req, Timed("early", at(t, req, "2024-07-08", 9, 0), at(t, req, "2024-07-08", 9, 30)))

	assertSlots(t, req, slots, []wantSlot{
		{"2024-07-08", 10, 0, 17, 0},
	})
}

func TestExtract_NonUTCZone(t *testing.T) {
	n := Normalizer{Offsets: fixedOffsets(testNow)}
	req, err := n.Normalize(RawRequest{
		Invitees:           []string{"alice@example.com"},
		StartDate:          DateField(mustDate(t, "2024-07-08")),
		EndDate:            DateField(mustDate(t, "2024-07-08")),
		DayStart:           TimeOfDay{Hour: 9},
		DayEnd:             TimeOfDay{Hour: 17},
		MinDurationMinutes: 30,
		Zone:               "America/New_York",
	})
	require.NoError(t, err)

	// 14:00-15:00 UTC is 10:00-11:00 in New York during summer time.
	meeting := Timed("sync",
		time.Date(2024, 7, 8, 14, 0, 0, 0, time.UTC),
		time.Date(2024, 7, 8, 15, 0, 0, 0, time.UTC))

	slots := extract(t, req, meeting)

	assertSlots(t, req, slots, []wantSlot{
		{"2024-07-08", 9, 0, 10, 0},
		{"2024-07-08", 11, 0, 17, 0},
	})
	assert.True(t, slots[0].Start.Equal(time.Date(2024, 7, 8, 13, 0, 0, 0, time.UTC)))
}

func TestFreeWindow(t *testing.T) {
	t.Run("weekdays only", func(t *testing.T) {
		req := newRequest(t, "2024-07-12", "2024-07-15", 30, false)
		assertSlots(t, req, FreeWindow(req), []wantSlot{
			{"2024-07-12", 9, 0, 17, 0},
			{"2024-07-15", 9, 0, 17, 0},
		})
	})

	t.Run("with weekends", func(t *testing.T) {
		req := newRequest(t, "2024-07-12", "2024-07-14", 30, true)
		assertSlots(t, req, FreeWindow(req), []wantSlot{
			{"2024-07-12", 9, 0, 17, 0},
			{"2024-07-13", 9, 0, 17, 0},
			{"2024-07-14", 9, 0, 17, 0},
		})
	})

	t.Run("single day", func(t *testing.T) {
		req := newRequest(t, "2024-07-08", "2024-07-08", 30, false)
		assertSlots(t, req, FreeWindow(req), []wantSlot{
			{"2024-07-08", 9, 0, 17, 0},
		})
	})
}

func TestSlot_Duration(t *testing.T) {
	s := Slot{Start: testNow, End: testNow.Add(45 * time.Minute)}
	assert.Equal(t, 45*time.Minute, s.Duration())
	assert.Contains(t, s.String(), "2024-07-01T08:00:00Z")
}

// TestExtract_Properties checks coverage, disjointness and the duration floor
// over pseudo-random calendars.
func TestExtract_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for _, minutes := range []int{5, 10, 15, 30, 45, 90} {
		for round := 0; round < 4; round++ {
			t.Run(fmt.Sprintf("min%d/round%d", minutes, round), func(t *testing.T) {
				req := newRequest(t, "2024-07-08", "2024-07-14", minutes, true)

				var events []Event
				for i := 0; i < 20; i++ {
					day := time.Date(2024, 7, 8+rng.Intn(7), 0, 0, 0, 0, req.Location)
					start := day.Add(time.Duration(7*60+rng.Intn(130)*5) * time.Minute)
					length := time.Duration(5+rng.Intn(36)*5) * time.Minute
					events = append(events, Timed(fmt.Sprintf("e%d", i), start, start.Add(length)))
				}

				SortEvents(events, req)
				busy, err := BuildBlocked(events, req)
				require.NoError(t, err)
				slots, err := Extract(req, busy)
				require.NoError(t, err)

				checkBusyDisjoint(t, busy)
				checkSlotShape(t, req, slots)
				checkCoverage(t, req, busy, slots)
			})
		}
	}
}

func TestExtract_PropertiesWeekendFilter(t *testing.T) {
	req := newRequest(t, "2024-07-08", "2024-07-21", 30, false)

	busy := []BusyInterval{
		{Label: "a", Start: at(t, req, "2024-07-10", 11, 0), End: at(t, req, "2024-07-10", 12, 0)},
		{Label: "b", Start: at(t, req, "2024-07-16", 9, 0), End: at(t, req, "2024-07-16", 10, 0)},
	}
	slots, err := Extract(req, busy)
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	for _, s := range slots {
		wd := s.Start.In(req.Location).Weekday()
		assert.NotEqual(t, time.Saturday, wd, "slot %s", s)
		assert.NotEqual(t, time.Sunday, wd, "slot %s", s)
	}
}

func checkBusyDisjoint(t *testing.T, busy []BusyInterval) {
	t.Helper()
	for i, b := range busy {
		assert.True(t, b.End.After(b.Start), "interval %s is empty", b)
		if i > 0 {
			assert.True(t, b.Start.After(busy[i-1].End), "interval %s touches or overlaps %s", b, busy[i-1])
		}
	}
}

func checkSlotShape(t *testing.T, req SearchRequest, slots []Slot) {
	t.Helper()
	for i, s := range slots {
		assert.GreaterOrEqual(t, s.Duration(), req.MinDuration, "slot %s too short", s)
		assert.True(t, req.SameDay(s.Start, s.End), "slot %s crosses midnight", s)
		assert.False(t, s.Start.Before(req.DayStartOn(s.Start)), "slot %s starts before day start", s)
		assert.False(t, s.End.After(req.DayEndOn(s.Start)), "slot %s ends after day end", s)
		assert.False(t, s.Start.Before(req.Start), "slot %s starts before search", s)
		assert.False(t, s.End.After(req.End), "slot %s ends after search", s)
		if i > 0 {
			assert.False(t, s.Start.Before(slots[i-1].End), "slot %s overlaps %s", s, slots[i-1])
		}
	}
}

// checkCoverage walks every minute of every work window in the search and
// requires it to be either busy or free, never both. Uncovered runs must be
// shorter than the minimum duration.
func checkCoverage(t *testing.T, req SearchRequest, busy []BusyInterval, slots []Slot) {
	t.Helper()

	inBusy := func(m time.Time) bool {
		for _, b := range busy {
			if !m.Before(b.Start) && m.Before(b.End) {
				return true
			}
		}
		return false
	}
	inSlot := func(m time.Time) bool {
		for _, s := range slots {
			if !m.Before(s.Start) && m.Before(s.End) {
				return true
			}
		}
		return false
	}

	for d := req.Start; !d.After(req.End); d = d.AddDate(0, 0, 1) {
		from, to := req.DayStartOn(d), req.DayEndOn(d)
		if from.Before(req.Start) {
			from = req.Start
		}
		if to.After(req.End) {
			to = req.End
		}

		var run time.Duration
		for m := from; m.Before(to); m = m.Add(time.Minute) {
			b, s := inBusy(m), inSlot(m)
			assert.False(t, b && s, "%s is both busy and free", m)
			if b || s {
				assert.Less(t, run, req.MinDuration, "uncovered run ending %s", m)
				run = 0
				continue
			}
			run += time.Minute
		}
		assert.Less(t, run, req.MinDuration, "uncovered run ending %s", to)
	}
}
