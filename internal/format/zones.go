package format

import (
	"sort"
	"strings"
)

var zoneLabels = map[string]string{
	"America/New_York":    "(ET)",
	"America/Chicago":     "(CT)",
	"America/Denver":      "(MT)",
	"America/Phoenix":     "(MST)",
	"America/Los_Angeles": "(PT)",
	"America/Anchorage":   "(AK)",
	"Pacific/Honolulu":    "(HAST)",
	"Canada/Atlantic":     "(Canada/Atlantic)",
	"Canada/Central":      "(Canada/Central)",
	"Canada/Eastern":      "(Canada/Eastern)",
	"Canada/Mountain":     "(Canada/Mountain)",
	"Canada/Newfoundland": "(Canada/Newfoundland)",
	"Canada/Pacific":      "(Canada/Pacific)",
	"Mexico/General":      "(Mexico/General)",
	"Mexico/BajaNorte":    "(Mexico/BajaNorte)",
	"Mexico/BajaSur":      "(Mexico/BajaSur)",
	"Brazil/East":         "(Brazil/East)",
	"Brazil/West":         "(Brazil/West)",
	"Europe/Amsterdam":    "(Europe/Amsterdam)",
	"Europe/Athens":       "(Europe/Athens)",
	"Europe/Belfast":      "(Europe/Belfast)",
	"Europe/Belgrade":     "(Europe/Belgrade)",
	"Europe/Berlin":       "(Europe/Berlin)",
	"Europe/Brussels":     "(Europe/Brussels)",
	"Europe/Bucharest":    "(Europe/Bucharest)",
	"Europe/Budapest":     "(Europe/Budapest)",
	"Europe/Dublin":       "(Europe/Dublin)",
	"Europe/Helsinki":     "(Europe/Helsinki)",
	"Europe/Lisbon":       "(Europe/Lisbon)",
	"Europe/London":       "(Europe/London)",
	"Europe/Madrid":       "(Europe/Madrid)",
	"Europe/Oslo":         "(Europe/Oslo)",
	"Europe/Paris":        "(Europe/Paris)",
	"Europe/Prague":       "(Europe/Prague)",
	"Europe/Rome":         "(Europe/Rome)",
	"Europe/Stockholm":    "(Europe/Stockholm)",
	"Europe/Vienna":       "(Europe/Vienna)",
	"Europe/Warsaw":       "(Europe/Warsaw)",
	"Europe/Zurich":       "(Europe/Zurich)",
}

// Label returns the display label of zone, such as "(ET)" for
// America/New_York. Zones without a short label are shown in parentheses.
func Label(zone string) string {
	if l, ok := zoneLabels[zone]; ok {
		return l
	}
	return "(" + zone + ")"
}

// SupportedZones returns the zones offered for selection, sorted.
func SupportedZones() []string {
	zones := make([]string, 0, len(zoneLabels))
	for z := range zoneLabels {
		zones = append(zones, z)
	}
	sort.Strings(zones)
	return zones
}

// IsSupported reports whether zone is one of SupportedZones.
func IsSupported(zone string) bool {
	_, ok := zoneLabels[zone]
	return ok
}

// PresentationZone maps zone onto the supported zone it is presented in,
// such as America/Detroit onto America/New_York. Zones outside the known
// families are returned unchanged.
func PresentationZone(zone string) string {
	if IsSupported(zone) {
		return zone
	}
	if z, ok := zoneFamilies[zone]; ok {
		return z
	}
	return zone
}

// twelveHour reports whether zone reads times on a 12-hour clock.
func twelveHour(zone string) bool {
	return strings.HasPrefix(zone, "America") || strings.HasPrefix(zone, "Canada")
}
