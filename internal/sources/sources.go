// Package sources provides pluggable news search providers that return raw
// articles for a commodity query.
package sources

import (
	"context"
	"errors"
	"fmt"
	"time"

	"minebrief/internal/config"
	"minebrief/internal/core"
)

// ErrUnknownProvider reports a provider name outside the registry.
var ErrUnknownProvider = errors.New("unknown search provider")

// ErrMissingAPIKey reports a provider that needs a key that is not configured.
var ErrMissingAPIKey = errors.New("search provider API key not configured")

// searchWindow restricts every provider to recent news.
const searchWindow = 7 * 24 * time.Hour

// defaultMaxResults caps how many articles a provider returns when no limit
// is configured.
const defaultMaxResults = 20

// Provider searches for news articles matching a query.
type Provider interface {
	// Name identifies the provider in logs and errors.
	Name() string
	// Search returns up to the configured limit of articles from the last
	// seven days.
	Search(ctx context.Context, query string) ([]core.NewsArticle, error)
}

// Registry resolves provider names to configured providers.
type Registry struct {
	cfg config.Search
}

// NewRegistry creates a provider registry from search configuration.
func NewRegistry(cfg config.Search) *Registry {
	return &Registry{cfg: cfg}
}

// For returns the provider for name, or the configured default when name is
// empty. Unknown names yield ErrUnknownProvider; providers whose key is
// absent yield ErrMissingAPIKey.
func (r *Registry) For(name string) (Provider, error) {
	if name == "" {
		name = r.cfg.DefaultProvider
	}

	switch name {
	case "rss":
		return NewRSSProvider(r.cfg.Timeout, r.limit()), nil
	case "newsapi":
		if r.cfg.NewsAPIKey == "" {
			return nil, fmt.Errorf("%w: newsapi", ErrMissingAPIKey)
		}
		return NewNewsAPIProvider(r.cfg.NewsAPIKey, r.cfg.Timeout, r.limit()), nil
	case "serpapi":
		if r.cfg.SerpAPIKey == "" {
			return nil, fmt.Errorf("%w: serpapi", ErrMissingAPIKey)
		}
		return NewSerpAPIProvider(r.cfg.SerpAPIKey, r.cfg.Timeout, r.limit()), nil
	default:
		return nil, fmt.Errorf("%w: %q (use 'serpapi', 'newsapi', or 'rss')", ErrUnknownProvider, name)
	}
}

// limit returns the configured result cap, falling back to the default.
func (r *Registry) limit() int {
	if r.cfg.MaxResults > 0 {
		return r.cfg.MaxResults
	}
	return defaultMaxResults
}
