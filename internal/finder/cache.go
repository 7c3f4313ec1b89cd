package finder

import (
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/teemow/groupavail/internal/availability"
)

const (
	defaultCacheSize = 256
	defaultCacheTTL  = 5 * time.Minute
)

// eventCache keeps recently fetched calendar pages. A nil cache is a
// permanent miss.
type eventCache struct {
	lru *expirable.LRU[string, []availability.RawEvent]
}

func newEventCache(size int, ttl time.Duration) *eventCache {
	if size < 0 || ttl < 0 {
		return nil
	}
	if size == 0 {
		size = defaultCacheSize
	}
	if ttl == 0 {
		ttl = defaultCacheTTL
	}
	return &eventCache{lru: expirable.NewLRU[string, []availability.RawEvent](size, nil, ttl)}
}

func cacheKey(source, calendarID string, from, to time.Time) string {
	return fmt.Sprintf("%s|%s|%d|%d", source, strings.ToLower(calendarID), from.Unix(), to.Unix())
}

func (c *eventCache) get(key string) ([]availability.RawEvent, bool) {
	if c == nil {
		return nil, false
	}
	return c.lru.Get(key)
}

func (c *eventCache) add(key string, events []availability.RawEvent) {
	if c == nil {
		return
	}
	c.lru.Add(key, events)
}

func (c *eventCache) purge() {
	if c == nil {
		return
	}
	c.lru.Purge()
}
