package instrumentation

import "strings"

// Cardinality helpers reduce label values that would otherwise explode the
// number of series.

// ExtractUserDomain extracts the domain part from an email address.
//
//	ExtractUserDomain("jane@example.com")  // "example.com"
//	ExtractUserDomain("invalid")           // "unknown"
func ExtractUserDomain(email string) string {
	if email == "" {
		return "unknown"
	}

	parts := strings.Split(email, "@")
	if len(parts) == 2 && parts[1] != "" {
		return parts[1]
	}

	return "unknown"
}

// ZoneRegion reduces an IANA zone identifier to its area.
//
//	ZoneRegion("America/Argentina/Buenos_Aires")  // "America"
//	ZoneRegion("UTC")                             // "UTC"
//	ZoneRegion("")                                // "unknown"
func ZoneRegion(zone string) string {
	if zone == "" {
		return "unknown"
	}
	region, _, _ := strings.Cut(zone, "/")
	return region
}
