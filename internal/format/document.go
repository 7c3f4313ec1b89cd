package format

import (
	"encoding/json"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/teemow/groupavail/internal/availability"
)

// Document is the structured form of a search result.
type Document struct {
	Zone    string        `json:"zone" yaml:"zone"`
	Label   string        `json:"label" yaml:"label"`
	Message string        `json:"message,omitempty" yaml:"message,omitempty"`
	Days    []DocumentDay `json:"days" yaml:"days"`
}

// DocumentDay groups the slots of one day.
type DocumentDay struct {
	Date  string         `json:"date" yaml:"date"`
	Slots []DocumentSlot `json:"slots" yaml:"slots"`
}

// DocumentSlot is one free slot.
type DocumentSlot struct {
	Start   time.Time `json:"start" yaml:"start"`
	End     time.Time `json:"end" yaml:"end"`
	Minutes int       `json:"minutes" yaml:"minutes"`
	Display string    `json:"display" yaml:"display"`
}

// NewDocument groups slots by day in zone.
func NewDocument(slots []availability.Slot, zone string) Document {
	p := newPresenter(zone)
	doc := Document{Zone: zone, Label: Label(zone), Days: []DocumentDay{}}
	if len(slots) == 0 {
		doc.Message = NoSlotsMessage
	}

	var tracker DayTracker
	for _, s := range slots {
		if tracker.Advance(p.date(s.Start)) {
			doc.Days = append(doc.Days, DocumentDay{Date: p.date(s.Start).String()})
		}
		cur := &doc.Days[len(doc.Days)-1]
		cur.Slots = append(cur.Slots, DocumentSlot{
			Start:   s.Start.In(p.loc),
			End:     s.End.In(p.loc),
			Minutes: int(s.Duration() / time.Minute),
			Display: p.Time(s.Start) + " to " + p.Time(s.End),
		})
	}
	return doc
}

// JSON renders a Document as JSON.
type JSON struct {
	Indent string
}

func (j JSON) Render(w io.Writer, slots []availability.Slot, zone string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", j.Indent)
	return enc.Encode(NewDocument(slots, zone))
}

// YAML renders a Document as YAML.
type YAML struct{}

func (YAML) Render(w io.Writer, slots []availability.Slot, zone string) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewDocument(slots, zone)); err != nil {
		return err
	}
	return enc.Close()
}
