package availability_tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/groupavail/internal/availability"
	"github.com/teemow/groupavail/internal/finder"
	"github.com/teemow/groupavail/internal/format"
	"github.com/teemow/groupavail/internal/server"
	"github.com/teemow/groupavail/internal/tools/common"
)

func findHandler(sc *server.ServerContext) common.ToolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleFindGroupAvailability(ctx, request, sc)
	}
}

func busyHandler(sc *server.ServerContext) common.ToolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleQueryBusyIntervals(ctx, request, sc)
	}
}

func handleFindGroupAvailability(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	formatName, _ := args["format"].(string)
	renderer, err := rendererFor(formatName)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	f, raw, err := prepareSearch(args, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := f.Find(ctx, raw)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to find availability: %v", err)), nil
	}
	common.RecordSearch(ctx, result.Request.Zone, len(result.Request.Invitees), len(result.Slots))

	var buf bytes.Buffer
	if err := renderer.Render(&buf, result.Slots, result.Request.Zone); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to render availability: %v", err)), nil
	}
	return mcp.NewToolResultText(buf.String()), nil
}

// BusyInterval is one merged busy interval in the query_busy_intervals
// output.
type BusyInterval struct {
	Label   string `json:"label,omitempty"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Display string `json:"display"`
}

// BusyReport is the query_busy_intervals output.
type BusyReport struct {
	Zone     string         `json:"zone"`
	Invitees []string       `json:"invitees"`
	Busy     []BusyInterval `json:"busy"`
}

func handleQueryBusyIntervals(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	f, raw, err := prepareSearch(request.GetArguments(), sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := f.Busy(ctx, raw)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to query busy intervals: %v", err)), nil
	}
	common.RecordSearch(ctx, result.Request.Zone, len(result.Request.Invitees), 0)

	out, err := json.MarshalIndent(newBusyReport(result), "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode busy intervals: %v", err)), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

// prepareSearch resolves the tool arguments into a request and the finder
// of the selected account.
func prepareSearch(args map[string]interface{}, sc *server.ServerContext) (*finder.Finder, availability.RawRequest, error) {
	cfg := sc.Config()

	q, err := parseQuery(args)
	if err != nil {
		return nil, availability.RawRequest{}, err
	}
	raw, err := cfg.Request(q, sc.Now())
	if err != nil {
		return nil, availability.RawRequest{}, err
	}

	f, err := sc.FinderForAccount(common.GetAccountFromArgs(args, cfg.Account))
	if err != nil {
		return nil, availability.RawRequest{}, err
	}
	return f, raw, nil
}

// rendererFor returns the renderer for name. Tool output never carries
// terminal colors.
func rendererFor(name string) (format.Renderer, error) {
	if strings.TrimSpace(name) == "" || strings.EqualFold(name, format.FormatText) {
		return &format.Text{NoColor: true}, nil
	}
	return format.New(name)
}

func newBusyReport(result finder.Result) BusyReport {
	zone := result.Request.Zone
	loc, err := time.LoadLocation(zone)
	if err != nil {
		loc = time.UTC
	}

	report := BusyReport{
		Zone:     zone,
		Invitees: result.Request.Invitees,
		Busy:     make([]BusyInterval, 0, len(result.Busy)),
	}
	for _, b := range result.Busy {
		report.Busy = append(report.Busy, BusyInterval{
			Label:   b.Label,
			Start:   b.Start.In(loc).Format(time.RFC3339),
			End:     b.End.In(loc).Format(time.RFC3339),
			Display: fmt.Sprintf("%s %s to %s", b.Start.In(loc).Format("Mon (Jan 2)"),
				format.FormatTime(b.Start, zone), format.FormatTime(b.End, zone)),
		})
	}
	return report
}
