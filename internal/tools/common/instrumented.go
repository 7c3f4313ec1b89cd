package common

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/teemow/groupavail/internal/instrumentation"
	"github.com/teemow/groupavail/internal/logging"
	"github.com/teemow/groupavail/internal/server"
)

// ToolHandler is the signature of an MCP tool handler.
type ToolHandler = func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)

type invocationKey struct{}

// errToolResult stands in for the text of an error result, which is not
// available as an error value.
var errToolResult = errors.New("tool returned an error result")

// InstrumentedToolHandler wraps a tool handler with a span, metrics and
// audit logging. Handlers add the shape of their search with RecordSearch.
//
// Usage:
//
//	s.AddTool(myTool, common.InstrumentedToolHandler("my_tool", sc, handler))
func InstrumentedToolHandler(toolName string, sc *server.ServerContext, handler ToolHandler) ToolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ctx, span := instrumentation.StartToolSpan(ctx, toolName)
		defer span.End()

		start := time.Now()
		invocation := instrumentation.NewToolInvocation(toolName).
			WithRequester(sc.Config().User).
			WithSpanContext(ctx)
		ctx = context.WithValue(ctx, invocationKey{}, invocation)

		result, err := handler(ctx, request)
		duration := time.Since(start)

		status := instrumentation.StatusSuccess
		switch {
		case err != nil:
			status = instrumentation.StatusError
			invocation.CompleteWithError(err)
			instrumentation.SetSpanError(span, err)
		case result != nil && result.IsError:
			status = instrumentation.StatusError
			invocation.Complete(false, nil)
			instrumentation.SetSpanError(span, errToolResult)
		default:
			invocation.CompleteSuccess()
			instrumentation.SetSpanSuccess(span)
		}

		sc.Metrics().RecordToolInvocation(ctx, toolName, status, duration)
		sc.AuditLogger().LogToolInvocation(invocation)
		logging.WithTool(sc.Logger(), toolName).DebugContext(ctx, "tool call finished",
			logging.Status(status),
			slog.Duration(logging.KeyDuration, duration),
		)

		return result, err
	}
}

// RecordSearch annotates the current tool invocation with the searched
// zone, the number of invitees and the number of slots found. It is a no-op
// outside InstrumentedToolHandler.
func RecordSearch(ctx context.Context, zone string, invitees, slots int) {
	invocation, ok := ctx.Value(invocationKey{}).(*instrumentation.ToolInvocation)
	if !ok {
		return
	}
	invocation.WithSearch(zone, invitees).WithSlots(slots)
	instrumentation.AddSpanEvent(trace.SpanFromContext(ctx), "search.completed",
		attribute.String(instrumentation.SpanAttrZone, zone),
		attribute.Int(instrumentation.SpanAttrInvitees, invitees),
		attribute.Int(instrumentation.SpanAttrSlots, slots),
	)
}
