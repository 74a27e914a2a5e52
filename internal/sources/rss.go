package sources

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"minebrief/internal/core"

	"github.com/google/uuid"
	"github.com/mmcdole/gofeed"
)

// RSSProvider searches Google News RSS. Free, no API key required; this is
// the default provider.
type RSSProvider struct {
	parser     *gofeed.Parser
	timeout    time.Duration
	maxResults int
}

// NewRSSProvider creates the RSS search provider.
func NewRSSProvider(timeout time.Duration, maxResults int) *RSSProvider {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	return &RSSProvider{
		parser:     gofeed.NewParser(),
		timeout:    timeout,
		maxResults: maxResults,
	}
}

// Name identifies the provider.
func (p *RSSProvider) Name() string { return "rss" }

// Search queries the Google News RSS feed with a 7-day window, skipping
// entries older than the cutoff and splitting the "Title - Source" format
// Google News uses.
func (p *RSSProvider) Search(ctx context.Context, query string) ([]core.NewsArticle, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	feedURL := fmt.Sprintf("https://news.google.com/rss/search?q=%s+when:7d&hl=en-US&gl=US&ceid=US:en",
		url.QueryEscape(query))

	feed, err := p.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse RSS feed: %w", err)
	}

	cutoff := time.Now().Add(-searchWindow)
	var articles []core.NewsArticle

	for _, item := range feed.Items {
		if item.PublishedParsed != nil && item.PublishedParsed.Before(cutoff) {
			continue
		}

		title, source := splitGoogleNewsTitle(item.Title)

		date := ""
		if item.PublishedParsed != nil {
			date = item.PublishedParsed.Format("2006-01-02")
		} else if item.Published != "" {
			date = item.Published
		}

		articles = append(articles, core.NewsArticle{
			ID:      uuid.NewString(),
			Title:   title,
			Link:    item.Link,
			Snippet: item.Description,
			Source:  source,
			Date:    date,
		})

		if len(articles) >= p.maxResults {
			break
		}
	}

	return articles, nil
}

// splitGoogleNewsTitle separates "Title - Source" on the last separator.
func splitGoogleNewsTitle(title string) (string, string) {
	if idx := strings.LastIndex(title, " - "); idx >= 0 {
		return title[:idx], title[idx+3:]
	}
	return title, ""
}
