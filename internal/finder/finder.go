package finder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/teemow/groupavail/internal/availability"
	"github.com/teemow/groupavail/internal/instrumentation"
	"github.com/teemow/groupavail/internal/logging"
)

// DefaultConcurrency bounds parallel calendar fetches.
const DefaultConcurrency = 4

// ErrNoSource is returned when no event source serves an invitee.
var ErrNoSource = errors.New("no event source for calendar")

// Config configures a Finder.
type Config struct {
	Normalizer availability.Normalizer

	// Sources are tried in order for each invitee.
	Sources []EventSource

	// Concurrency bounds parallel fetches. Zero means DefaultConcurrency.
	Concurrency int

	// FetchTimeout bounds a single calendar fetch. Zero means no limit.
	FetchTimeout time.Duration

	// CacheSize and CacheTTL configure the event cache. Zero values use the
	// defaults; a negative value disables caching.
	CacheSize int
	CacheTTL  time.Duration

	Metrics *instrumentation.Metrics
	Logger  *slog.Logger
}

// Result is the outcome of a search.
type Result struct {
	ID      string
	Request availability.SearchRequest
	Busy    []availability.BusyInterval
	Slots   []availability.Slot
}

// Finder searches for common free time.
type Finder struct {
	normalizer   availability.Normalizer
	sources      []EventSource
	concurrency  int
	fetchTimeout time.Duration
	cache        *eventCache
	metrics      *instrumentation.Metrics
	logger       *slog.Logger
}

// New creates a Finder.
func New(cfg Config) (*Finder, error) {
	if len(cfg.Sources) == 0 {
		return nil, errors.New("at least one event source is required")
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Finder{
		normalizer:   cfg.Normalizer,
		sources:      cfg.Sources,
		concurrency:  cfg.Concurrency,
		fetchTimeout: cfg.FetchTimeout,
		cache:        newEventCache(cfg.CacheSize, cfg.CacheTTL),
		metrics:      cfg.Metrics,
		logger:       logging.WithOperation(cfg.Logger, "finder.search"),
	}, nil
}

// Find returns the slots in which every invitee is free.
func (f *Finder) Find(ctx context.Context, raw availability.RawRequest) (Result, error) {
	return f.search(ctx, raw, true)
}

// Busy returns the merged intervals in which at least one invitee is busy.
func (f *Finder) Busy(ctx context.Context, raw availability.RawRequest) (Result, error) {
	return f.search(ctx, raw, false)
}

// PurgeCache drops all cached calendar pages.
func (f *Finder) PurgeCache() {
	f.cache.purge()
}

func (f *Finder) search(ctx context.Context, raw availability.RawRequest, withSlots bool) (Result, error) {
	started := time.Now()
	res := Result{ID: uuid.NewString()}
	logger := logging.WithRequest(f.logger, res.ID)

	req, err := f.normalizer.Normalize(raw)
	if err != nil {
		f.metrics.RecordSearch(ctx, instrumentation.OutcomeError, raw.Zone, 0, time.Since(started))
		logger.Debug("rejected request", logging.Err(err))
		return res, err
	}
	res.Request = req

	ctx, span := instrumentation.StartSearchSpan(ctx, res.ID, req.Zone, len(req.Invitees))
	defer span.End()

	logger.Info("searching",
		logging.Zone(req.Zone),
		slog.Int("invitees", len(req.Invitees)),
		slog.Time("start", req.Start),
		slog.Time("end", req.End),
		slog.Duration("min_duration", req.MinDuration))

	events, err := f.collect(ctx, req, logger)
	if err != nil {
		instrumentation.SetSpanError(span, err)
		f.metrics.RecordSearch(ctx, instrumentation.OutcomeError, req.Zone, 0, time.Since(started))
		logger.Error("search failed", logging.Err(err))
		return res, err
	}

	outcome := instrumentation.OutcomeSlots
	res.Busy, err = availability.BuildBlocked(events, req)
	switch {
	case errors.Is(err, availability.ErrEmptyEventSet):
		outcome = instrumentation.OutcomeFree
		if withSlots {
			res.Slots = availability.FreeWindow(req)
		}
	case err != nil:
		instrumentation.SetSpanError(span, err)
		f.metrics.RecordSearch(ctx, instrumentation.OutcomeError, req.Zone, 0, time.Since(started))
		return res, err
	case withSlots:
		if res.Slots, err = availability.Extract(req, res.Busy); err != nil {
			instrumentation.SetSpanError(span, err)
			f.metrics.RecordSearch(ctx, instrumentation.OutcomeError, req.Zone, 0, time.Since(started))
			return res, err
		}
	}
	if withSlots && len(res.Slots) == 0 {
		outcome = instrumentation.OutcomeNoSlots
	}

	span.SetAttributes(
		attribute.Int(instrumentation.SpanAttrBusy, len(res.Busy)),
		attribute.Int(instrumentation.SpanAttrSlots, len(res.Slots)),
	)
	instrumentation.SetSpanSuccess(span)
	f.metrics.RecordSearch(ctx, outcome, req.Zone, len(res.Slots), time.Since(started))

	logger.Info("search completed",
		logging.Status(outcome),
		logging.Busy(len(res.Busy)),
		logging.Slots(len(res.Slots)),
		slog.Duration(logging.KeyDuration, time.Since(started)))
	return res, nil
}

// collect fetches every invitee's calendar and returns the events blocking
// their owner, sorted by start.
func (f *Finder) collect(ctx context.Context, req availability.SearchRequest, logger *slog.Logger) ([]availability.Event, error) {
	perInvitee := make([][]availability.Event, len(req.Invitees))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.concurrency)
	for i, invitee := range req.Invitees {
		g.Go(func() error {
			raw, err := f.fetch(gctx, invitee, req.Start, req.End, logger)
			if err != nil {
				return err
			}
			for _, ev := range raw {
				if availability.Classify(ev, invitee) {
					perInvitee[i] = append(perInvitee[i], ev.Normalize())
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var events []availability.Event
	for _, evs := range perInvitee {
		events = append(events, evs...)
	}
	availability.SortEvents(events, req)
	return events, nil
}

func (f *Finder) fetch(ctx context.Context, calendarID string, from, to time.Time, logger *slog.Logger) ([]availability.RawEvent, error) {
	src, ok := route(f.sources, calendarID)
	if !ok {
		return nil, fmt.Errorf("%w %s", ErrNoSource, calendarID)
	}

	key := cacheKey(src.Name(), calendarID, from, to)
	if events, ok := f.cache.get(key); ok {
		f.metrics.RecordCacheLookup(ctx, true)
		return events, nil
	}
	if f.cache != nil {
		f.metrics.RecordCacheLookup(ctx, false)
	}

	ctx, span := instrumentation.StartFetchSpan(ctx, src.Name())
	defer span.End()
	if f.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.fetchTimeout)
		defer cancel()
	}

	started := time.Now()
	events, err := src.Events(ctx, calendarID, from, to)
	if err != nil {
		instrumentation.SetSpanError(span, err)
		f.metrics.RecordCalendarFetch(ctx, src.Name(), instrumentation.StatusError, time.Since(started))
		logger.Warn("calendar fetch failed",
			logging.Source(src.Name()),
			logging.Calendar(calendarID),
			logging.Err(err))
		return nil, fmt.Errorf("calendar %s is not accessible: %w", calendarID, err)
	}

	instrumentation.SetSpanSuccess(span)
	f.metrics.RecordCalendarFetch(ctx, src.Name(), instrumentation.StatusSuccess, time.Since(started))
	logger.Debug("calendar fetched",
		logging.Source(src.Name()),
		logging.Calendar(calendarID),
		slog.Int("events", len(events)))

	f.cache.add(key, events)
	return events, nil
}
