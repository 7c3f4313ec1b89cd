// Package finder runs group availability searches.
//
// A Finder normalizes a request, fetches every invitee's events from the
// configured event sources, keeps the events that block each invitee and
// hands the merged set to the availability engine.
package finder
