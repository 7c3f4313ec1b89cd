package instrumentation

import (
	"context"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestMetrics(t *testing.T, detailed bool) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := NewMetrics(mp.Meter("test"), detailed)
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	return m, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}
	out := map[string]metricdata.Metrics{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func sumPoints(t *testing.T, m metricdata.Metrics) []metricdata.DataPoint[int64] {
	t.Helper()
	sum, ok := m.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("%s is %T, want Sum[int64]", m.Name, m.Data)
	}
	return sum.DataPoints
}

func attr(dp metricdata.DataPoint[int64], key string) string {
	v, _ := dp.Attributes.Value(attribute.Key(key))
	return v.AsString()
}

func TestMetrics_RecordSearch(t *testing.T) {
	ctx := context.Background()
	m, reader := newTestMetrics(t, false)

	m.RecordSearch(ctx, OutcomeSlots, "Europe/Berlin", 3, 120*time.Millisecond)
	m.RecordSearch(ctx, OutcomeSlots, "Europe/Paris", 1, 80*time.Millisecond)
	m.RecordSearch(ctx, OutcomeError, "America/New_York", 0, time.Millisecond)

	got := collect(t, reader)

	points := sumPoints(t, got["availability_searches_total"])
	if len(points) != 2 {
		t.Fatalf("expected 2 series, got %d", len(points))
	}
	for _, dp := range points {
		switch attr(dp, attrZone) {
		case "Europe":
			if dp.Value != 2 || attr(dp, attrOutcome) != OutcomeSlots {
				t.Errorf("Europe series = %d %s", dp.Value, attr(dp, attrOutcome))
			}
		case "America":
			if dp.Value != 1 || attr(dp, attrOutcome) != OutcomeError {
				t.Errorf("America series = %d %s", dp.Value, attr(dp, attrOutcome))
			}
		default:
			t.Errorf("unexpected zone label %q", attr(dp, attrZone))
		}
	}

	slots, ok := got["availability_slots_found"].Data.(metricdata.Histogram[int64])
	if !ok {
		t.Fatalf("availability_slots_found is %T", got["availability_slots_found"].Data)
	}
	if len(slots.DataPoints) != 1 || slots.DataPoints[0].Count != 2 || slots.DataPoints[0].Sum != 4 {
		t.Errorf("slots histogram = %+v", slots.DataPoints)
	}

	if _, ok := got["availability_search_duration_seconds"]; !ok {
		t.Error("missing search duration histogram")
	}
}

func TestMetrics_DetailedZoneLabels(t *testing.T) {
	m, reader := newTestMetrics(t, true)

	m.RecordSearch(context.Background(), OutcomeFree, "Europe/Berlin", 5, time.Second)

	points := sumPoints(t, collect(t, reader)["availability_searches_total"])
	if len(points) != 1 || attr(points[0], attrZone) != "Europe/Berlin" {
		t.Errorf("expected full zone label, got %+v", points)
	}
}

func TestMetrics_RecordCalendarFetchAndCache(t *testing.T) {
	ctx := context.Background()
	m, reader := newTestMetrics(t, false)

	m.RecordCalendarFetch(ctx, SourceGoogle, StatusSuccess, 300*time.Millisecond)
	m.RecordCalendarFetch(ctx, SourceICS, StatusError, 10*time.Millisecond)
	m.RecordCacheLookup(ctx, true)
	m.RecordCacheLookup(ctx, false)
	m.RecordCacheLookup(ctx, false)

	got := collect(t, reader)

	if n := len(sumPoints(t, got["calendar_fetch_total"])); n != 2 {
		t.Errorf("expected 2 fetch series, got %d", n)
	}

	for _, dp := range sumPoints(t, got["calendar_cache_lookups_total"]) {
		want := map[string]int64{"hit": 1, "miss": 2}[attr(dp, attrResult)]
		if dp.Value != want {
			t.Errorf("cache %s = %d, want %d", attr(dp, attrResult), dp.Value, want)
		}
	}
}

func TestMetrics_RecordToolAndHTTP(t *testing.T) {
	ctx := context.Background()
	m, reader := newTestMetrics(t, false)

	m.RecordToolInvocation(ctx, "find_group_availability", StatusSuccess, time.Second)
	m.RecordHTTPRequest(ctx, "POST", "/mcp", 200, 10*time.Millisecond)

	got := collect(t, reader)
	for _, name := range []string{"mcp_tool_invocations_total", "http_requests_total"} {
		points := sumPoints(t, got[name])
		if len(points) != 1 || points[0].Value != 1 {
			t.Errorf("%s = %+v", name, points)
		}
	}
}

func TestMetrics_NilSafe(t *testing.T) {
	ctx := context.Background()

	var nilMetrics *Metrics
	nilMetrics.RecordSearch(ctx, OutcomeSlots, "UTC", 1, time.Second)
	nilMetrics.RecordCalendarFetch(ctx, SourceICS, StatusSuccess, time.Second)
	nilMetrics.RecordCacheLookup(ctx, true)
	nilMetrics.RecordToolInvocation(ctx, "x", StatusSuccess, time.Second)
	nilMetrics.RecordHTTPRequest(ctx, "GET", "/", 200, time.Second)

	empty := &Metrics{}
	empty.RecordSearch(ctx, OutcomeSlots, "UTC", 1, time.Second)
}
