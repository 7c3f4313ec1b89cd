// Package server holds the runtime pieces of the MCP server: the shared
// ServerContext, the streamable HTTP transport, health probes and the
// Prometheus metrics endpoint.
//
// # ServerContext
//
// ServerContext owns the loaded configuration and lazily builds one
// finder.Finder per Google account. Each finder searches the configured
// iCalendar feeds first and falls back to Google Calendar when a token is
// stored for the account. Finders are cached for the lifetime of the
// context and their event caches are purged on Shutdown.
//
// # HTTP transport
//
// HTTPServer mounts the MCP server at /mcp and registers the probes:
//   - /healthz: liveness, always 200 while the process runs
//   - /readyz: readiness, 503 when shutting down or no calendar source is configured
//   - /healthz/detailed: uptime and per-source status
//
// Every request is counted through instrumentation.Metrics, labelled with
// the matched route.
//
// # Metrics
//
// MetricsServer exposes /metrics on a dedicated address so the scrape
// endpoint is not reachable through the MCP listener.
package server
