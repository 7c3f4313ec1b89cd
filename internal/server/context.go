package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/teemow/groupavail/internal/availability"
	"github.com/teemow/groupavail/internal/calendar"
	"github.com/teemow/groupavail/internal/config"
	"github.com/teemow/groupavail/internal/finder"
	"github.com/teemow/groupavail/internal/google"
	"github.com/teemow/groupavail/internal/ics"
	"github.com/teemow/groupavail/internal/instrumentation"
)

// ErrShutdown is returned once the server context has been shut down.
var ErrShutdown = errors.New("server is shutting down")

// ServerContext holds the shared state of the MCP server: configuration,
// one Finder per Google account and the instrumentation sinks.
type ServerContext struct {
	ctx    context.Context
	cancel context.CancelFunc

	config   config.Config
	tokens   google.TokenProvider
	feeds    *ics.Source
	finders  map[string]accountFinder
	metrics  *instrumentation.Metrics
	audit    *instrumentation.AuditLogger
	logger   *slog.Logger
	now      func() time.Time
	mu       sync.RWMutex
	shutdown bool
}

// Option configures a ServerContext.
type Option func(*ServerContext)

// WithMetrics sets the metrics recorder.
func WithMetrics(m *instrumentation.Metrics) Option {
	return func(sc *ServerContext) { sc.metrics = m }
}

// WithAuditLogger sets the audit logger for tool invocations.
func WithAuditLogger(a *instrumentation.AuditLogger) Option {
	return func(sc *ServerContext) { sc.audit = a }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(sc *ServerContext) { sc.logger = l }
}

// WithClock sets the clock searches are normalized against.
func WithClock(now func() time.Time) Option {
	return func(sc *ServerContext) { sc.now = now }
}

// NewServerContext creates a server context. tokens may be nil when only
// iCalendar feeds are configured.
func NewServerContext(ctx context.Context, cfg config.Config, tokens google.TokenProvider, opts ...Option) (*ServerContext, error) {
	shutdownCtx, cancel := context.WithCancel(ctx)

	sc := &ServerContext{
		ctx:     shutdownCtx,
		cancel:  cancel,
		config:  cfg,
		tokens:  tokens,
		finders: make(map[string]accountFinder),
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(sc)
	}

	feeds, err := cfg.Feeds()
	if err != nil {
		cancel()
		return nil, err
	}
	if len(feeds) > 0 {
		sc.feeds = ics.NewSource(feeds)
	}
	return sc, nil
}

// Context returns the server context.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Config returns the configuration.
func (sc *ServerContext) Config() config.Config {
	return sc.config
}

// Metrics returns the metrics recorder, which may be nil.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	return sc.metrics
}

// AuditLogger returns the audit logger, which may be nil.
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	return sc.audit
}

// Logger returns the logger.
func (sc *ServerContext) Logger() *slog.Logger {
	return sc.logger
}

// Now returns the current time of the server clock.
func (sc *ServerContext) Now() time.Time {
	return sc.now()
}

// HasToken reports whether a Google token is stored for account.
func (sc *ServerContext) HasToken(account string) bool {
	return sc.tokens != nil && sc.tokens.HasToken(account)
}

// HasFeeds reports whether iCalendar feeds are configured.
func (sc *ServerContext) HasFeeds() bool {
	return sc.feeds != nil
}

// accountFinder is a cached finder and whether it reads Google Calendar.
type accountFinder struct {
	finder *finder.Finder
	google bool
}

// FinderForAccount returns the Finder searching calendars as account,
// creating and caching it on first use. A finder built before a Google
// token was stored for account is rebuilt once the token exists.
func (sc *ServerContext) FinderForAccount(account string) (*finder.Finder, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil, ErrShutdown
	}
	hasToken := sc.HasToken(account)
	if e, ok := sc.finders[account]; ok {
		if e.google || !hasToken {
			return e.finder, nil
		}
		e.finder.PurgeCache()
	}

	sources, err := sc.sources(account)
	if err != nil {
		return nil, err
	}

	f, err := finder.New(finder.Config{
		Normalizer: availability.Normalizer{
			Offsets:     availability.Offsets{Now: sc.now},
			AmbientZone: sc.config.DefaultZone,
		},
		Sources:      sources,
		Concurrency:  sc.config.Fetch.Concurrency,
		FetchTimeout: sc.config.Fetch.Timeout,
		CacheSize:    sc.config.Cache.Size,
		CacheTTL:     sc.config.Cache.TTL,
		Metrics:      sc.metrics,
		Logger:       sc.logger,
	})
	if err != nil {
		return nil, err
	}
	sc.finders[account] = accountFinder{finder: f, google: hasToken}
	return f, nil
}

// SetFinderForAccount installs f for account. It is never rebuilt.
func (sc *ServerContext) SetFinderForAccount(account string, f *finder.Finder) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.finders[account] = accountFinder{finder: f, google: true}
}

// sources lists the event sources for account: configured feeds first,
// then Google Calendar when a token is stored.
func (sc *ServerContext) sources(account string) ([]finder.EventSource, error) {
	var sources []finder.EventSource
	if sc.feeds != nil {
		sources = append(sources, sc.feeds)
	}

	if sc.HasToken(account) {
		client, err := calendar.NewClient(sc.ctx, account, sc.tokens,
			calendar.WithPageSize(sc.config.MaxResults))
		if err != nil {
			return nil, fmt.Errorf("failed to create Calendar client for account %s: %w", account, err)
		}
		sources = append(sources, client)
	}

	if len(sources) == 0 {
		return nil, fmt.Errorf("%w for account %q; run 'groupavail auth --account %s' or configure iCalendar feeds",
			google.ErrNoToken, account, account)
	}
	return sources, nil
}

// IsShutdown returns whether the server has been shut down.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	for _, e := range sc.finders {
		e.finder.PurgeCache()
	}
	sc.cancel()
	return nil
}
