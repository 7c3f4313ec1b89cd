package server

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/teemow/groupavail/internal/config"
	"github.com/teemow/groupavail/internal/finder"
	"github.com/teemow/groupavail/internal/google"
)

type fakeTokens struct {
	accounts map[string]bool
}

func (f fakeTokens) TokenSource(_ context.Context, account string) (oauth2.TokenSource, error) {
	if !f.accounts[account] {
		return nil, google.ErrNoToken
	}
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "test-" + account}), nil
}

func (f fakeTokens) HasToken(account string) bool {
	return f.accounts[account]
}

func testConfig() config.Config {
	return config.Config{
		Account:            "default",
		DefaultZone:        "UTC",
		DayStart:           "09:00",
		DayEnd:             "17:00",
		MinDurationMinutes: 30,
		SearchDays:         14,
		MaxResults:         100,
		Cache:              config.CacheConfig{TTL: time.Minute, Size: 16},
		Fetch:              config.FetchConfig{Concurrency: 2, Timeout: 5 * time.Second},
	}
}

func newTestContext(t *testing.T, cfg config.Config, tokens google.TokenProvider) *ServerContext {
	t.Helper()
	sc, err := NewServerContext(context.Background(), cfg, tokens)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func TestNewServerContext(t *testing.T) {
	t.Run("without feeds", func(t *testing.T) {
		sc := newTestContext(t, testConfig(), nil)
		assert.False(t, sc.HasFeeds())
		assert.False(t, sc.HasToken("default"))
		assert.NotNil(t, sc.Logger())
		assert.Nil(t, sc.Metrics())
		assert.Nil(t, sc.AuditLogger())
		assert.Equal(t, "UTC", sc.Config().DefaultZone)
	})

	t.Run("with feeds", func(t *testing.T) {
		cfg := testConfig()
		cfg.ICS = []string{"alice@example.com=testdata/alice.ics"}
		sc := newTestContext(t, cfg, nil)
		assert.True(t, sc.HasFeeds())
	})

	t.Run("invalid feed mapping", func(t *testing.T) {
		cfg := testConfig()
		cfg.ICS = []string{"alice@example.com"}
		_, err := NewServerContext(context.Background(), cfg, nil)
		assert.Error(t, err)
	})
}

func TestServerContext_Clock(t *testing.T) {
	fixed := time.Date(2024, 7, 1, 8, 0, 0, 0, time.UTC)
	sc, err := NewServerContext(context.Background(), testConfig(), nil,
		WithClock(func() time.Time { return fixed }))
	require.NoError(t, err)
	assert.Equal(t, fixed, sc.Now())
}

func TestServerContext_FinderForAccount(t *testing.T) {
	t.Run("no sources", func(t *testing.T) {
		sc := newTestContext(t, testConfig(), fakeTokens{})
		_, err := sc.FinderForAccount("default")
		require.Error(t, err)
		assert.True(t, errors.Is(err, google.ErrNoToken))
		assert.Contains(t, err.Error(), "groupavail auth --account default")
	})

	t.Run("google token", func(t *testing.T) {
		sc := newTestContext(t, testConfig(), fakeTokens{accounts: map[string]bool{"work": true}})

		f, err := sc.FinderForAccount("work")
		require.NoError(t, err)
		require.NotNil(t, f)

		again, err := sc.FinderForAccount("work")
		require.NoError(t, err)
		assert.Same(t, f, again)

		_, err = sc.FinderForAccount("personal")
		assert.Error(t, err)
	})

	t.Run("feeds only", func(t *testing.T) {
		cfg := testConfig()
		cfg.ICS = []string{"alice@example.com=testdata/alice.ics"}
		sc := newTestContext(t, cfg, nil)

		f, err := sc.FinderForAccount("anyone")
		require.NoError(t, err)
		assert.NotNil(t, f)
	})

	t.Run("token stored after feeds-only finder", func(t *testing.T) {
		cfg := testConfig()
		cfg.ICS = []string{"alice@example.com=testdata/alice.ics"}
		tokens := fakeTokens{accounts: map[string]bool{}}
		sc := newTestContext(t, cfg, tokens)

		feedsOnly, err := sc.FinderForAccount("work")
		require.NoError(t, err)
		again, err := sc.FinderForAccount("work")
		require.NoError(t, err)
		assert.Same(t, feedsOnly, again)

		tokens.accounts["work"] = true

		withGoogle, err := sc.FinderForAccount("work")
		require.NoError(t, err)
		assert.NotSame(t, feedsOnly, withGoogle)

		again, err = sc.FinderForAccount("work")
		require.NoError(t, err)
		assert.Same(t, withGoogle, again)
	})

	t.Run("installed finder", func(t *testing.T) {
		sc := newTestContext(t, testConfig(), nil)
		installed := &finder.Finder{}
		sc.SetFinderForAccount("default", installed)

		f, err := sc.FinderForAccount("default")
		require.NoError(t, err)
		assert.Same(t, installed, f)
	})
}

func TestServerContext_Shutdown(t *testing.T) {
	sc, err := NewServerContext(context.Background(), testConfig(), fakeTokens{accounts: map[string]bool{"default": true}})
	require.NoError(t, err)

	_, err = sc.FinderForAccount("default")
	require.NoError(t, err)

	require.NoError(t, sc.Shutdown())
	assert.True(t, sc.IsShutdown())
	assert.Error(t, sc.Context().Err())

	_, err = sc.FinderForAccount("default")
	assert.ErrorIs(t, err, ErrShutdown)

	// idempotent
	assert.NoError(t, sc.Shutdown())
}
