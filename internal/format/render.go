package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/teemow/groupavail/internal/availability"
)

// NoSlotsMessage is written when a search yields no slots.
const NoSlotsMessage = "No time slots are available for the specified invitees/parameters"

// Output format names.
const (
	FormatText = "text"
	FormatHTML = "html"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Renderer writes availability slots for a zone.
type Renderer interface {
	Render(w io.Writer, slots []availability.Slot, zone string) error
}

// Names lists the available output formats.
func Names() []string {
	return []string{FormatText, FormatHTML, FormatJSON, FormatYAML}
}

// New returns the renderer for name.
func New(name string) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", FormatText:
		return &Text{}, nil
	case FormatHTML:
		return HTML{}, nil
	case FormatJSON:
		return JSON{Indent: "  "}, nil
	case FormatYAML:
		return YAML{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want one of %s)", name, strings.Join(Names(), ", "))
	}
}
