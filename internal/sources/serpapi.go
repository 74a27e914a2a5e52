package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"minebrief/internal/core"

	"github.com/google/uuid"
)

// SerpAPIProvider searches Google News through SerpAPI.
type SerpAPIProvider struct {
	apiKey     string
	client     *http.Client
	maxResults int
}

// NewSerpAPIProvider creates the SerpAPI search provider.
func NewSerpAPIProvider(apiKey string, timeout time.Duration, maxResults int) *SerpAPIProvider {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	return &SerpAPIProvider{
		apiKey:     apiKey,
		client:     &http.Client{Timeout: timeout},
		maxResults: maxResults,
	}
}

// Name identifies the provider.
func (p *SerpAPIProvider) Name() string { return "serpapi" }

type serpAPIResponse struct {
	NewsResults []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
		Source  string `json:"source"`
		Date    string `json:"date"`
	} `json:"news_results"`
}

// Search runs a Google News search restricted to the last week.
func (p *SerpAPIProvider) Search(ctx context.Context, query string) ([]core.NewsArticle, error) {
	params := url.Values{}
	params.Set("engine", "google")
	params.Set("q", query)
	params.Set("api_key", p.apiKey)
	params.Set("num", strconv.Itoa(p.maxResults))
	params.Set("tbm", "nws")
	params.Set("tbs", "qdr:w")

	req, err := http.NewRequestWithContext(ctx, "GET", "https://serpapi.com/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create SerpAPI request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("SerpAPI request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("SerpAPI returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed serpAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode SerpAPI response: %w", err)
	}

	var articles []core.NewsArticle
	for _, item := range parsed.NewsResults {
		articles = append(articles, core.NewsArticle{
			ID:      uuid.NewString(),
			Title:   item.Title,
			Link:    item.Link,
			Snippet: item.Snippet,
			Source:  item.Source,
			Date:    item.Date,
		})
	}

	return articles, nil
}
