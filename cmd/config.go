package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/teemow/groupavail/internal/config"
	"github.com/teemow/groupavail/internal/google"
	"github.com/teemow/groupavail/internal/logging"
)

// configKeys are the config keys a command may override with a flag of the
// same name, dashes for underscores.
var configKeys = []string{
	"workspace_domain",
	"user",
	"account",
	"default_zone",
	"search_days",
	"max_results",
	"ics",
}

// loadConfig resolves the configuration of cmd and installs the process
// logger it describes.
func loadConfig(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	v := config.NewViper()
	flags := cmd.Flags()

	if err := config.BindFlags(v, flags, configKeys...); err != nil {
		return config.Config{}, nil, err
	}
	for key, name := range map[string]string{"log.level": "log-level", "log.format": "log-format"} {
		if f := flags.Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return config.Config{}, nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}

	file, _ := flags.GetString("config")
	cfg, err := config.Load(v, file)
	if err != nil {
		return config.Config{}, nil, err
	}

	logger := logging.Setup(logging.Options{
		Level:  cfg.Log.Level,
		Format: logging.Format(cfg.Log.Format),
		Output: cmd.ErrOrStderr(),
	})
	if used := v.ConfigFileUsed(); used != "" {
		logger.Debug("loaded config file", "path", used)
	}
	return cfg, logger, nil
}

// tokenProvider returns the Google token provider, or nil when no OAuth
// client is configured. Searches then only read iCalendar feeds.
func tokenProvider(logger *slog.Logger) google.TokenProvider {
	conf, err := google.OAuthConfig()
	if err != nil {
		logger.Debug("Google Calendar disabled", logging.Err(err))
		return nil
	}
	return google.NewFileTokenProvider(google.DefaultStore(), conf)
}
