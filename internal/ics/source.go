package ics

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/teemow/groupavail/internal/availability"
	"github.com/teemow/groupavail/internal/instrumentation"
)

// SourceName identifies iCalendar feeds in metrics and logs.
const SourceName = "ics"

// maxFeedSize bounds the size of a downloaded feed.
const maxFeedSize = 32 << 20

// ErrUnknownCalendar is returned for a calendar id without a configured feed.
var ErrUnknownCalendar = errors.New("no iCalendar feed configured for calendar")

// Source serves events from iCalendar feeds.
type Source struct {
	feeds    map[string]string
	client   *http.Client
	floating *time.Location
}

// Option configures a Source.
type Option func(*Source)

// WithHTTPClient sets the client used for http(s) feeds.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Source) {
		s.client = c
	}
}

// WithFloatingLocation sets the zone of date-times that carry neither a
// TZID nor a UTC marker. Defaults to UTC.
func WithFloatingLocation(loc *time.Location) Option {
	return func(s *Source) {
		if loc != nil {
			s.floating = loc
		}
	}
}

// NewSource creates a Source from a calendar id to location mapping.
// Locations are file paths or http, https or webcal URLs.
func NewSource(feeds map[string]string, opts ...Option) *Source {
	s := &Source{
		feeds:    make(map[string]string, len(feeds)),
		client:   &http.Client{Timeout: 30 * time.Second},
		floating: time.UTC,
	}
	for id, loc := range feeds {
		s.feeds[strings.ToLower(strings.TrimSpace(id))] = strings.TrimSpace(loc)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ParseMapping parses "id=location" pairs.
func ParseMapping(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		id, loc, ok := strings.Cut(pair, "=")
		id, loc = strings.TrimSpace(id), strings.TrimSpace(loc)
		if !ok || id == "" || loc == "" {
			return nil, fmt.Errorf("invalid feed mapping %q: want id=path", pair)
		}
		out[strings.ToLower(id)] = loc
	}
	return out, nil
}

// Name returns the source name.
func (s *Source) Name() string {
	return SourceName
}

// Has reports whether a feed is configured for calendarID.
func (s *Source) Has(calendarID string) bool {
	_, ok := s.feeds[strings.ToLower(calendarID)]
	return ok
}

// Events returns the event instances of calendarID overlapping [from, to),
// sorted by start.
func (s *Source) Events(ctx context.Context, calendarID string, from, to time.Time) ([]availability.RawEvent, error) {
	loc, ok := s.feeds[strings.ToLower(calendarID)]
	if !ok {
		return nil, fmt.Errorf("%w %s", ErrUnknownCalendar, calendarID)
	}

	body, err := s.read(ctx, loc)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed of %s: %w", calendarID, err)
	}

	parsed, err := parse(body, s.floating)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed of %s: %w", calendarID, err)
	}

	events := expand(parsed, from, to)
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Start.Before(events[j].Start)
	})
	return events, nil
}

func (s *Source) read(ctx context.Context, loc string) ([]byte, error) {
	if strings.HasPrefix(loc, "webcal://") {
		loc = "https://" + strings.TrimPrefix(loc, "webcal://")
	}
	if !strings.HasPrefix(loc, "http://") && !strings.HasPrefix(loc, "https://") {
		return os.ReadFile(loc)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, loc, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/calendar")

	ctx, span := instrumentation.StartSpan(ctx, "ics.download",
		attribute.String("server.address", req.URL.Host))
	defer span.End()

	resp, err := s.client.Do(req.WithContext(ctx))
	if err != nil {
		instrumentation.SetSpanError(span, err)
		return nil, err
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("unexpected status %s", resp.Status)
		instrumentation.SetSpanError(span, err)
		return nil, err
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxFeedSize))
}
