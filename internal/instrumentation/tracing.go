package instrumentation

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the default tracer name for groupavail.
const TracerName = "github.com/teemow/groupavail"

// Span attribute keys.
const (
	SpanAttrTool      = "mcp.tool"
	SpanAttrSource    = "calendar.source"
	SpanAttrRequestID = "availability.request_id"
	SpanAttrZone      = "availability.zone"
	SpanAttrInvitees  = "availability.invitees"
	SpanAttrSlots     = "availability.slots"
	SpanAttrBusy      = "availability.busy_intervals"
)

func tracer() trace.Tracer {
	return otel.GetTracerProvider().Tracer(TracerName)
}

// StartSpan starts a new span with the given name and attributes.
// The caller is responsible for ending the span with defer span.End().
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracer().Start(ctx, name, trace.WithAttributes(attrs...))
}

// StartSearchSpan starts the root span of an availability search.
func StartSearchSpan(ctx context.Context, requestID, zone string, invitees int) (context.Context, trace.Span) {
	return tracer().Start(ctx, "finder.search",
		trace.WithAttributes(
			attribute.String(SpanAttrRequestID, requestID),
			attribute.String(SpanAttrZone, zone),
			attribute.Int(SpanAttrInvitees, invitees),
		),
	)
}

// StartFetchSpan starts a client span for listing events from a calendar source.
func StartFetchSpan(ctx context.Context, source string) (context.Context, trace.Span) {
	return tracer().Start(ctx, "calendar."+source+".list",
		trace.WithAttributes(attribute.String(SpanAttrSource, source)),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

// StartToolSpan starts a server span for an MCP tool invocation.
func StartToolSpan(ctx context.Context, toolName string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := make([]attribute.KeyValue, 0, len(attrs)+1)
	allAttrs = append(allAttrs, attribute.String(SpanAttrTool, toolName))
	allAttrs = append(allAttrs, attrs...)

	return tracer().Start(ctx, "tool."+toolName,
		trace.WithAttributes(allAttrs...),
		trace.WithSpanKind(trace.SpanKindServer),
	)
}

// SetSpanError records an error on the span and sets the status to error.
func SetSpanError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// SetSpanSuccess sets the span status to OK.
func SetSpanSuccess(span trace.Span) {
	span.SetStatus(codes.Ok, "")
}

// AddSpanEvent adds an event to the span with optional attributes.
func AddSpanEvent(span trace.Span, name string, attrs ...attribute.KeyValue) {
	span.AddEvent(name, trace.WithAttributes(attrs...))
}

// GetTraceID returns the trace ID from the current span in context.
// Returns empty string if no valid span is present.
func GetTraceID(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		return span.SpanContext().TraceID().String()
	}
	return ""
}

// GetSpanID returns the span ID from the current span in context.
// Returns empty string if no valid span is present.
func GetSpanID(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		return span.SpanContext().SpanID().String()
	}
	return ""
}
