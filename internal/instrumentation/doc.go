// Package instrumentation provides OpenTelemetry metrics, tracing and audit
// logging for groupavail.
//
// # Metrics
//
// Search metrics:
//   - availability_searches_total: Counter of searches by outcome and zone region
//   - availability_search_duration_seconds: Histogram of end-to-end search durations
//   - availability_slots_found: Histogram of slots returned per search
//
// Calendar source metrics:
//   - calendar_fetch_total: Counter of event fetches by source and status
//   - calendar_fetch_duration_seconds: Histogram of event fetch durations
//   - calendar_cache_lookups_total: Counter of event cache hits and misses
//
// Server metrics:
//   - mcp_tool_invocations_total: Counter of MCP tool invocations by tool name and status
//   - mcp_tool_duration_seconds: Histogram of MCP tool execution durations
//   - http_requests_total: Counter of HTTP requests by method, path, and status
//   - http_request_duration_seconds: Histogram of HTTP request durations
//
// # Tracing
//
// Spans are created for:
//   - availability searches (finder.search)
//   - calendar fetches (calendar.<source>.list)
//   - MCP tool invocations (tool.<name>)
//
// # Configuration
//
// Instrumentation can be configured via environment variables:
//   - INSTRUMENTATION_ENABLED: Enable/disable instrumentation (default: true)
//   - METRICS_EXPORTER: prometheus, otlp or stdout (default: prometheus)
//   - TRACING_EXPORTER: otlp, stdout or none (default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint for traces/metrics
//   - OTEL_TRACES_SAMPLER_ARG: Sampling rate (0.0 to 1.0, default: 0.1)
//   - OTEL_SERVICE_NAME: Service name (default: groupavail)
//   - METRICS_DETAILED_LABELS: Record full zone identifiers (default: false)
//
// # Example Usage
//
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	recorder := provider.Metrics()
//	recorder.RecordSearch(ctx, instrumentation.OutcomeSlots, "Europe/Berlin", 4, time.Since(start))
package instrumentation
