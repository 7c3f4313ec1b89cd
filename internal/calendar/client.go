package calendar

import (
	"context"
	"fmt"
	"time"

	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/teemow/groupavail/internal/availability"
	"github.com/teemow/groupavail/internal/google"
)

// SourceName identifies Google Calendar in metrics and logs.
const SourceName = "google"

// DefaultPageSize is the number of events requested per page.
const DefaultPageSize = 2000

// Client reads events from Google Calendar.
type Client struct {
	svc      *calendar.Service
	pageSize int64
	apiOpts  []option.ClientOption
}

// Option configures a Client.
type Option func(*Client)

// WithPageSize sets the number of events requested per page.
func WithPageSize(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithClientOption passes a raw option to the Calendar API client.
func WithClientOption(opt option.ClientOption) Option {
	return func(c *Client) {
		c.apiOpts = append(c.apiOpts, opt)
	}
}

// NewClient creates a Calendar client authenticated as account using the
// token provider.
func NewClient(ctx context.Context, account string, provider google.TokenProvider, opts ...Option) (*Client, error) {
	if provider == nil {
		return nil, fmt.Errorf("token provider cannot be nil")
	}

	ts, err := provider.TokenSource(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("failed to get Google OAuth token for account %s: %w", account, err)
	}

	opts = append([]Option{WithClientOption(option.WithHTTPClient(google.HTTPClient(ctx, ts)))}, opts...)
	return newClient(ctx, opts...)
}

func newClient(ctx context.Context, opts ...Option) (*Client, error) {
	c := &Client{pageSize: DefaultPageSize}
	for _, opt := range opts {
		opt(c)
	}

	svc, err := calendar.NewService(ctx, c.apiOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Calendar service: %w", err)
	}
	c.svc = svc
	return c, nil
}

// Name returns the source name.
func (c *Client) Name() string {
	return SourceName
}

// Events lists the single-instance events of calendarID overlapping
// [from, to), following every result page. Cancelled events are skipped.
func (c *Client) Events(ctx context.Context, calendarID string, from, to time.Time) ([]availability.RawEvent, error) {
	call := c.svc.Events.List(calendarID).
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		ShowDeleted(false).
		MaxResults(c.pageSize)

	var events []availability.RawEvent
	err := call.Pages(ctx, func(page *calendar.Events) error {
		for _, item := range page.Items {
			if item == nil || item.Status == "cancelled" {
				continue
			}
			ev, err := toRawEvent(item)
			if err != nil {
				return fmt.Errorf("event %s: %w", item.Id, err)
			}
			events = append(events, ev)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list events of calendar %s: %w", calendarID, err)
	}
	return events, nil
}
