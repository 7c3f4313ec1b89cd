package availability_tools

import (
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/groupavail/internal/config"
	"github.com/teemow/groupavail/internal/format"
	"github.com/teemow/groupavail/internal/server"
	"github.com/teemow/groupavail/internal/tools/common"
)

// Tool names.
const (
	FindGroupAvailabilityTool = "find_group_availability"
	QueryBusyIntervalsTool    = "query_busy_intervals"
)

// RegisterAvailabilityTools registers the availability tools with the MCP server.
func RegisterAvailabilityTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	cfg := sc.Config()

	findOpts := append(searchOptions(cfg),
		mcp.WithDescription("Find time slots when every invitee is free. Slots fall inside the daily "+
			"window on each day of the date range and last at least the minimum duration."),
		mcp.WithString("format",
			mcp.Description("Output format: "+strings.Join(format.Names(), ", ")+" (default: text)"),
			mcp.Enum(format.Names()...),
		),
	)
	s.AddTool(mcp.NewTool(FindGroupAvailabilityTool, findOpts...),
		common.InstrumentedToolHandler(FindGroupAvailabilityTool, sc, findHandler(sc)))

	busyOpts := append(searchOptions(cfg),
		mcp.WithDescription("List the merged busy intervals of a group of invitees inside the daily "+
			"window of each day in the date range, as JSON."),
	)
	s.AddTool(mcp.NewTool(QueryBusyIntervalsTool, busyOpts...),
		common.InstrumentedToolHandler(QueryBusyIntervalsTool, sc, busyHandler(sc)))

	return nil
}

// searchOptions are the arguments shared by both tools. Defaults in the
// descriptions come from cfg.
func searchOptions(cfg config.Config) []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("invitees",
			mcp.Required(),
			mcp.Description("Comma-separated invitee email addresses. Bare user names are qualified with the workspace domain."),
		),
		mcp.WithString("start_date",
			mcp.Description("First day to search (YYYY-MM-DD, default: today)"),
		),
		mcp.WithString("end_date",
			mcp.Description(fmt.Sprintf("Last day to search (YYYY-MM-DD, default: %d days after the start)", cfg.SearchDays)),
		),
		mcp.WithString("day_start",
			mcp.Description(fmt.Sprintf("Start of the daily window, HH:MM (default: %s)", cfg.DayStart)),
		),
		mcp.WithString("day_end",
			mcp.Description(fmt.Sprintf("End of the daily window, HH:MM (default: %s)", cfg.DayEnd)),
		),
		mcp.WithNumber("min_duration",
			mcp.Description(fmt.Sprintf("Minimum slot length in minutes (default: %d)", cfg.MinDurationMinutes)),
		),
		mcp.WithBoolean("include_weekends",
			mcp.Description(fmt.Sprintf("Search Saturdays and Sundays too (default: %t)", cfg.IncludeWeekends)),
		),
		mcp.WithString("zone",
			mcp.Description(fmt.Sprintf("IANA time zone of the daily window and the output (default: %s). Supported: %s",
				cfg.DefaultZone, strings.Join(format.SupportedZones(), ", "))),
		),
		mcp.WithString("account",
			mcp.Description("Account name (default: configured account). Selects the stored Google token."),
		),
	}
}

// parseQuery reads the search arguments of a tool call.
func parseQuery(args map[string]interface{}) (config.Query, error) {
	invitees, err := common.ParseStringOrArray(args["invitees"], "invitees")
	if err != nil {
		return config.Query{}, err
	}

	q := config.Query{Invitees: invitees}
	for key, dst := range map[string]*string{
		"start_date": &q.StartDate,
		"end_date":   &q.EndDate,
		"day_start":  &q.DayStart,
		"day_end":    &q.DayEnd,
		"zone":       &q.Zone,
	} {
		if v, ok := args[key]; ok {
			s, ok := v.(string)
			if !ok {
				return config.Query{}, fmt.Errorf("%s must be a string", key)
			}
			*dst = strings.TrimSpace(s)
		}
	}

	if v, ok := args["min_duration"]; ok {
		n, ok := v.(float64)
		if !ok || n <= 0 || n != float64(int(n)) {
			return config.Query{}, fmt.Errorf("min_duration must be a positive whole number of minutes")
		}
		q.MinDurationMinutes = int(n)
	}
	if v, ok := args["include_weekends"]; ok {
		b, ok := v.(bool)
		if !ok {
			return config.Query{}, fmt.Errorf("include_weekends must be a boolean")
		}
		q.IncludeWeekends = &b
	}
	return q, nil
}
