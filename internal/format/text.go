package format

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/teemow/groupavail/internal/availability"
)

// Text renders slots as an indented list grouped by day.
type Text struct {
	// NoColor disables terminal colors regardless of the output.
	NoColor bool
}

func (t *Text) Render(w io.Writer, slots []availability.Slot, zone string) error {
	title := color.New(color.Bold, color.Underline)
	day := color.New(color.FgCyan, color.Bold)
	if t.NoColor {
		title.DisableColor()
		day.DisableColor()
	}

	if len(slots) == 0 {
		_, err := fmt.Fprintln(w, NoSlotsMessage)
		return err
	}

	p := newPresenter(zone)
	if _, err := title.Fprintf(w, "Available Times %s", Label(zone)); err != nil {
		return err
	}
	fmt.Fprintln(w)

	var tracker DayTracker
	for _, s := range slots {
		if tracker.Advance(p.date(s.Start)) {
			if _, err := day.Fprintf(w, "  %s:", p.Day(s.Start)); err != nil {
				return err
			}
			fmt.Fprintln(w)
		}
		if _, err := fmt.Fprintf(w, "    %s to %s\n", p.Time(s.Start), p.Time(s.End)); err != nil {
			return err
		}
	}
	return nil
}
