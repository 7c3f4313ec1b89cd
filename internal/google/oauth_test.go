package google

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestValidateAccountName(t *testing.T) {
	tests := []struct {
		name    string
		account string
		wantErr bool
	}{
		{"valid default", "default", false},
		{"valid with hyphen", "work-email", false},
		{"valid with underscore", "personal_email", false},
		{"empty", "", true},
		{"with spaces", "my account", true},
		{"with slash", "work/personal", true},
		{"with dot", "work.email", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateAccountName(tt.account)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateAccountName() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestStore_RoundTrip(t *testing.T) {
	store := &Store{Dir: filepath.Join(t.TempDir(), "tokens")}

	assert.False(t, store.HasToken("work"))

	_, err := store.Load("work")
	assert.ErrorIs(t, err, ErrNoToken)

	tok := &oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		Expiry:       time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Save("work", tok))
	assert.True(t, store.HasToken("work"))

	got, err := store.Load("work")
	require.NoError(t, err)
	assert.Equal(t, "access", got.AccessToken)
	assert.Equal(t, "refresh", got.RefreshToken)
	assert.True(t, got.Expiry.Equal(tok.Expiry))

	path, err := store.TokenPath("work")
	require.NoError(t, err)
	assert.Equal(t, "google-work.token", filepath.Base(path))
}

func TestStore_InvalidAccount(t *testing.T) {
	store := &Store{Dir: t.TempDir()}

	assert.False(t, store.HasToken("../escape"))
	assert.Error(t, store.Save("../escape", &oauth2.Token{}))
}

func TestOAuthConfig(t *testing.T) {
	t.Setenv(EnvClientID, "")
	t.Setenv(EnvClientSecret, "")
	_, err := OAuthConfig()
	assert.Error(t, err)

	t.Setenv(EnvClientID, "id")
	t.Setenv(EnvClientSecret, "secret")
	conf, err := OAuthConfig()
	require.NoError(t, err)
	assert.Equal(t, Scopes, conf.Scopes)
	assert.Contains(t, conf.AuthCodeURL("state"), "calendar.readonly")
}

func TestFileTokenProvider(t *testing.T) {
	store := &Store{Dir: t.TempDir()}
	conf := &oauth2.Config{ClientID: "id"}
	provider := NewFileTokenProvider(store, conf)

	assert.False(t, provider.HasToken("default"))
	_, err := provider.TokenSource(context.Background(), "default")
	assert.ErrorIs(t, err, ErrNoToken)

	// an unexpired token needs no refresh
	require.NoError(t, store.Save("default", &oauth2.Token{
		AccessToken: "valid",
		TokenType:   "Bearer",
		Expiry:      time.Now().Add(time.Hour),
	}))
	ts, err := provider.TokenSource(context.Background(), "default")
	require.NoError(t, err)
	tok, err := ts.Token()
	require.NoError(t, err)
	assert.Equal(t, "valid", tok.AccessToken)
}

func TestHTTPClient(t *testing.T) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "x"})
	client := HTTPClient(context.Background(), ts)

	transport, ok := client.Transport.(*oauth2.Transport)
	require.True(t, ok)
	assert.NotNil(t, transport.Base)
}
