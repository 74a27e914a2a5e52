package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"minebrief/internal/core"

	"github.com/google/uuid"
)

// NewsAPIProvider searches via NewsAPI.org's /v2/everything endpoint.
type NewsAPIProvider struct {
	apiKey     string
	client     *http.Client
	maxResults int
}

// NewNewsAPIProvider creates the NewsAPI search provider.
func NewNewsAPIProvider(apiKey string, timeout time.Duration, maxResults int) *NewsAPIProvider {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	return &NewsAPIProvider{
		apiKey:     apiKey,
		client:     &http.Client{Timeout: timeout},
		maxResults: maxResults,
	}
}

// Name identifies the provider.
func (p *NewsAPIProvider) Name() string { return "newsapi" }

type newsAPIResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Articles []struct {
		Title       string `json:"title"`
		URL         string `json:"url"`
		Description string `json:"description"`
		PublishedAt string `json:"publishedAt"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

// Search queries NewsAPI for English articles from the last seven days,
// newest first.
func (p *NewsAPIProvider) Search(ctx context.Context, query string) ([]core.NewsArticle, error) {
	fromDate := time.Now().Add(-searchWindow).Format("2006-01-02")

	params := url.Values{}
	params.Set("q", query)
	params.Set("apiKey", p.apiKey)
	params.Set("language", "en")
	params.Set("sortBy", "publishedAt")
	params.Set("from", fromDate)
	params.Set("pageSize", strconv.Itoa(p.maxResults))

	req, err := http.NewRequestWithContext(ctx, "GET", "https://newsapi.org/v2/everything?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create NewsAPI request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("NewsAPI request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("NewsAPI returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode NewsAPI response: %w", err)
	}
	if parsed.Status != "ok" {
		return nil, fmt.Errorf("NewsAPI error: %s", parsed.Message)
	}

	var articles []core.NewsArticle
	for _, item := range parsed.Articles {
		// ISO timestamp; keep just the date part.
		date := item.PublishedAt
		if idx := strings.Index(date, "T"); idx >= 0 {
			date = date[:idx]
		}

		articles = append(articles, core.NewsArticle{
			ID:      uuid.NewString(),
			Title:   item.Title,
			Link:    item.URL,
			Snippet: item.Description,
			Source:  item.Source.Name,
			Date:    date,
		})
	}

	return articles, nil
}
