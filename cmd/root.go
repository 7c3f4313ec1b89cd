package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the groupavail application
var rootCmd = newRootCmd()

// version will be set by main
var version = "dev"

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "groupavail",
		Short: "Finds meeting slots when a whole group is free",
		Long: `groupavail reads the calendars of a group of invitees and lists the time
slots inside a daily working window in which all of them are free.

Calendars are read from Google Calendar or from iCalendar files and URLs.
It can run as:
  - A command-line tool (find)
  - An MCP (Model Context Protocol) server for AI assistants (serve)`,
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.String("config", "", "Config file (default: groupavail.yaml in . or the user config directory)")
	flags.String("log-level", "info", "Log level: debug, info, warn, error")
	flags.String("log-format", "text", "Log format: text or json")

	cmd.AddCommand(newFindCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newAuthCmd())
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newGenerateDocsCmd())
	return cmd
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "groupavail version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
