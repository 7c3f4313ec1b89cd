package availability

import "errors"

var (
	// ErrInvalidRange is returned when a search window or day window ends
	// before it starts.
	ErrInvalidRange = errors.New("invalid range")

	// ErrInvalidZone is returned for an unrecognized time zone identifier.
	ErrInvalidZone = errors.New("invalid time zone")

	// ErrEmptyEventSet is returned when there are no blocking events to merge.
	// Callers should treat the whole search window as free instead.
	ErrEmptyEventSet = errors.New("no blocking events")

	// ErrInvalidRequest is returned when a request field is missing or malformed.
	ErrInvalidRequest = errors.New("invalid request")
)
