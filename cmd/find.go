package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/teemow/groupavail/internal/availability"
	"github.com/teemow/groupavail/internal/config"
	"github.com/teemow/groupavail/internal/format"
	"github.com/teemow/groupavail/internal/server"
)

// findOptions holds the search flags of the find command.
type findOptions struct {
	invitees    []string
	start       string
	end         string
	dayStart    string
	dayEnd      string
	minDuration int
	weekends    bool
	zone        string
	output      string
	busy        bool
}

func newFindCmd() *cobra.Command {
	var opts findOptions

	cmd := &cobra.Command{
		Use:   "find",
		Short: "Find time slots when all invitees are free",
		Long: `Find the time slots in which every invitee is free.

The configured user is always part of the group. Bare user names are
qualified with the workspace domain. Omitted dates search the next
search_days days; the daily window, minimum duration and zone default to
the configuration.

Calendars listed with --ics are read from the given file or URL, all other
invitees are read from Google Calendar as --account.

Supported zones: ` + strings.Join(format.SupportedZones(), ", "),
		Example: `  groupavail find --invitees alice,bob --start 2024-07-08 --end 2024-07-19
  groupavail find --invitees alice@example.com --zone America/New_York --output json
  groupavail find --invitees bob --ics bob@example.com=./bob.ics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("include-weekends") {
				return runFind(cmd, opts, &opts.weekends)
			}
			return runFind(cmd, opts, nil)
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVarP(&opts.invitees, "invitees", "i", nil, "Invitee addresses or user names, comma-separated (required)")
	flags.StringVar(&opts.start, "start", "", "First day to search, YYYY-MM-DD (default: today)")
	flags.StringVar(&opts.end, "end", "", "Last day to search, YYYY-MM-DD (default: start plus search_days)")
	flags.StringVar(&opts.dayStart, "day-start", "", "Start of the daily window, HH:MM (default: day_start)")
	flags.StringVar(&opts.dayEnd, "day-end", "", "End of the daily window, HH:MM (default: day_end)")
	flags.IntVar(&opts.minDuration, "min-duration", 0, "Minimum slot length in minutes (default: min_duration_minutes)")
	flags.BoolVar(&opts.weekends, "include-weekends", false, "Search Saturdays and Sundays too (default: include_weekends)")
	flags.StringVarP(&opts.zone, "zone", "z", "", "IANA time zone of the window and the output (default: default_zone)")
	flags.StringVarP(&opts.output, "output", "o", format.FormatText, "Output format: "+strings.Join(format.Names(), ", "))
	flags.BoolVar(&opts.busy, "busy", false, "Print the merged busy intervals instead of free slots")

	flags.StringSlice("ics", nil, "Read an invitee's calendar from an iCalendar file or URL, as address=location (repeatable)")
	flags.String("account", "", "Google account whose stored token is used (default: account)")
	flags.String("workspace-domain", "", "Domain qualifying bare user names (default: workspace_domain)")
	flags.String("user", "", "Requesting user, always included in the search (default: user)")
	_ = cmd.MarkFlagRequired("invitees")

	return cmd
}

func runFind(cmd *cobra.Command, opts findOptions, weekends *bool) error {
	renderer, err := format.New(opts.output)
	if err != nil {
		return err
	}

	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	raw, err := cfg.Request(config.Query{
		Invitees:           opts.invitees,
		StartDate:          opts.start,
		EndDate:            opts.end,
		DayStart:           opts.dayStart,
		DayEnd:             opts.dayEnd,
		MinDurationMinutes: opts.minDuration,
		IncludeWeekends:    weekends,
		Zone:               opts.zone,
	}, time.Now())
	if err != nil {
		return err
	}

	sc, err := server.NewServerContext(ctx, cfg, tokenProvider(logger), server.WithLogger(logger))
	if err != nil {
		return err
	}
	defer func() { _ = sc.Shutdown() }()

	f, err := sc.FinderForAccount(cfg.Account)
	if err != nil {
		return err
	}

	if opts.busy {
		result, err := f.Busy(ctx, raw)
		if err != nil {
			return err
		}
		return printBusy(cmd, result.Busy, result.Request.Zone)
	}

	result, err := f.Find(ctx, raw)
	if err != nil {
		return err
	}
	return renderer.Render(cmd.OutOrStdout(), result.Slots, result.Request.Zone)
}

// printBusy writes one line per busy interval, in zone.
func printBusy(cmd *cobra.Command, busy []availability.BusyInterval, zone string) error {
	out := cmd.OutOrStdout()
	if len(busy) == 0 {
		_, err := fmt.Fprintln(out, "No busy intervals")
		return err
	}

	loc, err := time.LoadLocation(zone)
	if err != nil {
		loc = time.UTC
	}
	for _, b := range busy {
		if _, err := fmt.Fprintf(out, "%s  %s to %s  %s\n",
			b.Start.In(loc).Format("Mon (Jan 2)"),
			format.FormatTime(b.Start, zone), format.FormatTime(b.End, zone), b.Label); err != nil {
			return err
		}
	}
	return nil
}
