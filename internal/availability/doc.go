// Package availability computes shared free time across a set of calendars.
//
// It is the pure computational core of groupavail: given the raw events of
// every invitee and a search request, it classifies which events block time,
// merges them into disjoint busy intervals and extracts the free gaps between
// them, split per day and clamped to the daily work window.
//
// The pipeline is:
//
//	Normalizer.Normalize  -> SearchRequest
//	Classify / Normalize  -> []Event
//	BuildBlocked          -> []BusyInterval
//	Extract (or FreeWindow when nothing blocks) -> []Slot
//
// Every computation for a request happens in a fixed-offset location derived
// from the request's time zone at the moment the request is normalized. This
// is a deliberate simplification: a DST transition between "now" and the
// searched days shifts results by the DST delta.
//
// Nothing in this package performs I/O, logs, or keeps state between calls,
// so independent requests can be computed concurrently.
//
// Example usage:
//
//	n := availability.Normalizer{AmbientZone: "UTC"}
//	req, err := n.Normalize(raw)
//	if err != nil {
//	    return err
//	}
//	busy, err := availability.BuildBlocked(events, req)
//	if errors.Is(err, availability.ErrEmptyEventSet) {
//	    return availability.FreeWindow(req), nil
//	}
//	slots, err := availability.Extract(req, busy)
package availability
