// Package config loads groupavail settings from a YAML file, environment
// variables and command-line flags.
//
// Precedence, highest first: flags bound with BindFlags, GROUPAVAIL_*
// environment variables, the config file, defaults. Nested keys map to
// environment variables with dots replaced by underscores, so cache.ttl is
// GROUPAVAIL_CACHE_TTL.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/teemow/groupavail/internal/availability"
	"github.com/teemow/groupavail/internal/ics"
)

// EnvPrefix is the prefix of environment variable overrides.
const EnvPrefix = "GROUPAVAIL"

// FileName is the config file base name looked up when no file is given.
const FileName = "groupavail"

// Config holds the effective settings.
type Config struct {
	// WorkspaceDomain qualifies bare invitee names and limits which
	// calendars are scanned through Google.
	WorkspaceDomain string `mapstructure:"workspace_domain" yaml:"workspace_domain"`

	// User is the requesting user's address. It is always added to the
	// invitees of a search.
	User string `mapstructure:"user" yaml:"user"`

	// Account names the stored Google OAuth token to use.
	Account string `mapstructure:"account" yaml:"account"`

	DefaultZone        string `mapstructure:"default_zone" yaml:"default_zone"`
	DayStart           string `mapstructure:"day_start" yaml:"day_start"`
	DayEnd             string `mapstructure:"day_end" yaml:"day_end"`
	MinDurationMinutes int    `mapstructure:"min_duration_minutes" yaml:"min_duration_minutes"`
	IncludeWeekends    bool   `mapstructure:"include_weekends" yaml:"include_weekends"`

	// SearchDays is the default search window length counted from today.
	SearchDays int `mapstructure:"search_days" yaml:"search_days"`

	// MaxResults caps events fetched per calendar and page.
	MaxResults int64 `mapstructure:"max_results" yaml:"max_results"`

	// ICS lists "address=location" pairs mapping invitees to iCalendar
	// files or URLs. Invitees listed here are read from the feed instead
	// of Google.
	ICS []string `mapstructure:"ics" yaml:"ics,omitempty"`

	Cache CacheConfig `mapstructure:"cache" yaml:"cache"`
	Fetch FetchConfig `mapstructure:"fetch" yaml:"fetch"`
	Log   LogConfig   `mapstructure:"log" yaml:"log"`
}

// CacheConfig configures the per-calendar event cache. A negative Size or
// TTL disables caching.
type CacheConfig struct {
	TTL  time.Duration `mapstructure:"ttl" yaml:"ttl"`
	Size int           `mapstructure:"size" yaml:"size"`
}

// FetchConfig configures calendar fetching.
type FetchConfig struct {
	Concurrency int           `mapstructure:"concurrency" yaml:"concurrency"`
	Timeout     time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("workspace_domain", "")
	v.SetDefault("user", "")
	v.SetDefault("account", "default")
	v.SetDefault("default_zone", "UTC")
	v.SetDefault("day_start", "09:00")
	v.SetDefault("day_end", "17:00")
	v.SetDefault("min_duration_minutes", 30)
	v.SetDefault("include_weekends", false)
	v.SetDefault("search_days", 14)
	v.SetDefault("max_results", 2000)
	v.SetDefault("cache.ttl", 5*time.Minute)
	v.SetDefault("cache.size", 256)
	v.SetDefault("fetch.concurrency", 4)
	v.SetDefault("fetch.timeout", 30*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// NewViper returns a viper instance with defaults and environment
// overrides configured.
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags binds flags to config keys. Keys are flag names with dashes
// replaced by underscores; flags that do not exist are skipped.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet, keys ...string) error {
	for _, key := range keys {
		f := flags.Lookup(strings.ReplaceAll(key, "_", "-"))
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", f.Name, err)
		}
	}
	return nil
}

// Load reads the config file and returns the validated configuration.
// When file is empty, groupavail.yaml is looked up in the working directory
// and the user config directory; a missing file is not an error.
func Load(v *viper.Viper, file string) (Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, FileName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks that the configuration can drive a search.
func (c Config) Validate() error {
	var errs []error

	dayStart, err := availability.ParseTimeOfDay(c.DayStart)
	if err != nil {
		errs = append(errs, fmt.Errorf("day_start: %w", err))
	}
	dayEnd, err := availability.ParseTimeOfDay(c.DayEnd)
	if err != nil {
		errs = append(errs, fmt.Errorf("day_end: %w", err))
	}
	if len(errs) == 0 && dayEnd.Hour*60+dayEnd.Minute <= dayStart.Hour*60+dayStart.Minute {
		errs = append(errs, fmt.Errorf("day_end %s must be after day_start %s", c.DayEnd, c.DayStart))
	}

	if _, err := time.LoadLocation(c.DefaultZone); err != nil || c.DefaultZone == "" {
		errs = append(errs, fmt.Errorf("default_zone %q is not a valid time zone", c.DefaultZone))
	}
	if c.MinDurationMinutes <= 0 {
		errs = append(errs, fmt.Errorf("min_duration_minutes must be positive"))
	}
	if c.SearchDays <= 0 {
		errs = append(errs, fmt.Errorf("search_days must be positive"))
	}
	if c.MaxResults <= 0 {
		errs = append(errs, fmt.Errorf("max_results must be positive"))
	}
	if c.Fetch.Concurrency <= 0 {
		errs = append(errs, fmt.Errorf("fetch.concurrency must be positive"))
	}
	if _, err := c.Feeds(); err != nil {
		errs = append(errs, fmt.Errorf("ics: %w", err))
	}

	return errors.Join(errs...)
}

// Feeds returns the iCalendar feed of each mapped invitee.
func (c Config) Feeds() (map[string]string, error) {
	return ics.ParseMapping(c.ICS)
}

// Window returns the default search window: today through SearchDays later.
func (c Config) Window(now time.Time) (from, to time.Time) {
	return now, now.AddDate(0, 0, c.SearchDays)
}
