package google

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
)

// TokenProvider supplies OAuth token sources per account.
type TokenProvider interface {
	TokenSource(ctx context.Context, account string) (oauth2.TokenSource, error)
	HasToken(account string) bool
}

// FileTokenProvider serves refreshable tokens from a Store.
type FileTokenProvider struct {
	store  *Store
	config *oauth2.Config
}

// NewFileTokenProvider creates a provider reading tokens from store and
// refreshing them with config.
func NewFileTokenProvider(store *Store, config *oauth2.Config) *FileTokenProvider {
	return &FileTokenProvider{store: store, config: config}
}

// TokenSource returns a token source that refreshes the stored token of
// account as needed.
func (p *FileTokenProvider) TokenSource(ctx context.Context, account string) (oauth2.TokenSource, error) {
	tok, err := p.store.Load(account)
	if err != nil {
		return nil, err
	}
	ts := p.config.TokenSource(ctx, tok)
	if _, err := ts.Token(); err != nil {
		return nil, fmt.Errorf("stored token for %q is no longer valid: %w", account, err)
	}
	return ts, nil
}

// HasToken reports whether a token is stored for account.
func (p *FileTokenProvider) HasToken(account string) bool {
	return p.store.HasToken(account)
}
