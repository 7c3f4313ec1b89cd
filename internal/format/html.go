package format

import (
	"html/template"
	"io"

	"github.com/teemow/groupavail/internal/availability"
)

var htmlTemplate = template.Must(template.New("availability").Parse(
	`{{if not .Days}}<i>{{.Empty}}</i>
{{else}}<br><u><b>Available Times</b> {{.Label}}</u><br>
{{range .Days}}<b>&nbsp;&nbsp;{{.Header}} : </b><ul>
{{range .Slots}}<li>{{.}}</li>
{{end}}</ul>
{{end}}{{end}}`))

type htmlDay struct {
	Header string
	Slots  []string
}

// HTML renders slots as an HTML fragment suitable for an email body.
type HTML struct{}

func (HTML) Render(w io.Writer, slots []availability.Slot, zone string) error {
	p := newPresenter(zone)

	var (
		days    []htmlDay
		tracker DayTracker
	)
	for _, s := range slots {
		if tracker.Advance(p.date(s.Start)) {
			days = append(days, htmlDay{Header: p.Day(s.Start)})
		}
		cur := &days[len(days)-1]
		cur.Slots = append(cur.Slots, p.Time(s.Start)+" to "+p.Time(s.End))
	}

	return htmlTemplate.Execute(w, struct {
		Empty string
		Label string
		Days  []htmlDay
	}{NoSlotsMessage, Label(zone), days})
}
