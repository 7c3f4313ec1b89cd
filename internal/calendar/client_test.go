package calendar

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/teemow/groupavail/internal/availability"
)

func TestToRawEvent(t *testing.T) {
	tests := []struct {
		name     string
		input    *calendar.Event
		expected availability.RawEvent
		wantErr  bool
	}{
		{
			name: "timed event with attendees",
			input: &calendar.Event{
				Summary: "Design review",
				Start:   &calendar.EventDateTime{DateTime: "2024-07-01T10:00:00+02:00"},
				End:     &calendar.EventDateTime{DateTime: "2024-07-01T11:00:00+02:00"},
				Attendees: []*calendar.EventAttendee{
					{Email: "alice@example.com", ResponseStatus: "accepted"},
					{Email: "bob@example.com", ResponseStatus: "needsAction"},
				},
			},
			expected: availability.RawEvent{
				Summary: "Design review",
				Start:   time.Date(2024, 7, 1, 8, 0, 0, 0, time.UTC),
				End:     time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC),
				Attendees: []availability.AttendeeRecord{
					{Email: "alice@example.com", Status: availability.ResponseAccepted, Response: availability.ResponseAccepted},
					{Email: "bob@example.com", Status: availability.ResponseNeedsAction, Response: availability.ResponseNeedsAction},
				},
			},
		},
		{
			name: "all-day transparent event",
			input: &calendar.Event{
				Summary:      "Conference",
				Transparency: "transparent",
				Start:        &calendar.EventDateTime{Date: "2024-07-02"},
				End:          &calendar.EventDateTime{Date: "2024-07-04"},
			},
			expected: availability.RawEvent{
				Summary:      "Conference",
				Start:        time.Date(2024, 7, 2, 0, 0, 0, 0, time.UTC),
				End:          time.Date(2024, 7, 4, 0, 0, 0, 0, time.UTC),
				AllDay:       true,
				Transparency: availability.Transparent,
			},
		},
		{
			name:    "missing end",
			input:   &calendar.Event{Start: &calendar.EventDateTime{Date: "2024-07-02"}},
			wantErr: true,
		},
		{
			name: "malformed time",
			input: &calendar.Event{
				Start: &calendar.EventDateTime{DateTime: "tomorrow"},
				End:   &calendar.EventDateTime{DateTime: "2024-07-01T11:00:00Z"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := toRawEvent(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected.Summary, got.Summary)
			assert.True(t, tt.expected.Start.Equal(got.Start), "start %s", got.Start)
			assert.True(t, tt.expected.End.Equal(got.End), "end %s", got.End)
			assert.Equal(t, tt.expected.AllDay, got.AllDay)
			assert.Equal(t, tt.expected.Transparency, got.Transparency)
			assert.Equal(t, tt.expected.Attendees, got.Attendees)
		})
	}
}

func TestAllDayEventConversion(t *testing.T) {
	ev, err := toRawEvent(&calendar.Event{
		Start: &calendar.EventDateTime{Date: "2024-07-02"},
		End:   &calendar.EventDateTime{Date: "2024-07-04"},
	})
	require.NoError(t, err)

	assert.True(t, ev.AllDay)
	assert.True(t, ev.Start.Equal(time.Date(2024, 7, 2, 0, 0, 0, 0, time.UTC)), "start %s", ev.Start)
	assert.True(t, ev.End.Equal(time.Date(2024, 7, 4, 0, 0, 0, 0, time.UTC)), "end %s", ev.End)
}

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	opts = append(opts,
		WithClientOption(option.WithEndpoint(srv.URL+"/")),
		WithClientOption(option.WithHTTPClient(srv.Client())),
	)
	client, err := newClient(context.Background(), opts...)
	require.NoError(t, err)
	return client
}

func TestClient_EventsFollowsPages(t *testing.T) {
	var queries []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		queries = append(queries, r.URL.RawQuery)
		assert.True(t, strings.Contains(r.URL.Path, "alice@example.com"), "path %s", r.URL.Path)

		q := r.URL.Query()
		assert.Equal(t, "true", q.Get("singleEvents"))
		assert.Equal(t, "startTime", q.Get("orderBy"))
		assert.Equal(t, "false", q.Get("showDeleted"))
		assert.Equal(t, "50", q.Get("maxResults"))

		page := calendar.Events{}
		if q.Get("pageToken") == "" {
			page.NextPageToken = "p2"
			page.Items = []*calendar.Event{{
				Id:      "a",
				Summary: "Standup",
				Start:   &calendar.EventDateTime{DateTime: "2024-07-01T09:00:00Z"},
				End:     &calendar.EventDateTime{DateTime: "2024-07-01T09:15:00Z"},
			}}
		} else {
			page.Items = []*calendar.Event{
				{
					Id:     "b",
					Status: "cancelled",
					Start:  &calendar.EventDateTime{DateTime: "2024-07-01T10:00:00Z"},
					End:    &calendar.EventDateTime{DateTime: "2024-07-01T11:00:00Z"},
				},
				{
					Id:      "c",
					Summary: "Offsite",
					Start:   &calendar.EventDateTime{Date: "2024-07-03"},
					End:     &calendar.EventDateTime{Date: "2024-07-04"},
				},
			}
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(page))
	}, WithPageSize(50))

	from := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	events, err := client.Events(context.Background(), "alice@example.com", from, from.AddDate(0, 0, 7))
	require.NoError(t, err)

	assert.Len(t, queries, 2)
	require.Len(t, events, 2)
	assert.Equal(t, "Standup", events[0].Summary)
	assert.Equal(t, "Offsite", events[1].Summary)
	assert.True(t, events[1].AllDay)
	assert.Equal(t, SourceName, client.Name())
}

func TestClient_EventsError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":404,"message":"Not Found"}}`, http.StatusNotFound)
	})

	from := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	_, err := client.Events(context.Background(), "nobody@example.com", from, from.Add(time.Hour))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nobody@example.com")
}

func TestNewClient_NilProvider(t *testing.T) {
	_, err := NewClient(context.Background(), "default", nil)
	assert.Error(t, err)
}
