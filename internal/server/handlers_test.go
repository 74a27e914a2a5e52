package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"minebrief/internal/config"
	"minebrief/internal/core"
	"minebrief/internal/sources"
	"minebrief/internal/synthesis"
)

type mockSynthesizer struct {
	result core.SynthesisResult
	err    error
	calls  int
}

func (m *mockSynthesizer) Synthesize(ctx context.Context, articles []core.Article) (core.SynthesisResult, error) {
	m.calls++
	if m.err != nil {
		return core.SynthesisResult{}, m.err
	}
	return m.result, nil
}

type mockProvider struct {
	name     string
	articles []core.NewsArticle
	err      error
}

func (m *mockProvider) Name() string { return m.name }

func (m *mockProvider) Search(ctx context.Context, query string) ([]core.NewsArticle, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.articles, nil
}

type mockResolver struct {
	provider sources.Provider
	err      error
	lastName string
}

func (m *mockResolver) For(name string) (sources.Provider, error) {
	m.lastName = name
	if m.err != nil {
		return nil, m.err
	}
	return m.provider, nil
}

func newTestServer(synth Synthesizer, resolver ProviderResolver) *Server {
	return New(synth, resolver, config.Server{Host: "127.0.0.1", Port: 0})
}

func doRequest(t *testing.T, s *Server, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Error struct {
			Status  int    `json:"status"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body.Error.Message
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(&mockSynthesizer{}, &mockResolver{})

	rec := doRequest(t, s, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestAPIInfoListsEndpoints(t *testing.T) {
	s := newTestServer(&mockSynthesizer{}, &mockResolver{})

	rec := doRequest(t, s, http.MethodGet, "/api", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var info APIInfoResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	for _, path := range []string{"/news/search", "/news/paraphrase", "/export/docx", "/export/pdf"} {
		if _, ok := info.Endpoints[path]; !ok {
			t.Errorf("endpoint %s missing from API info", path)
		}
	}
}

func TestSearchRequiresCommodity(t *testing.T) {
	s := newTestServer(&mockSynthesizer{}, &mockResolver{})

	rec := doRequest(t, s, http.MethodGet, "/news/search", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSearchUnknownProvider(t *testing.T) {
	resolver := &mockResolver{err: fmt.Errorf("%w: magic (use 'serpapi', 'newsapi', or 'rss')", sources.ErrUnknownProvider)}
	s := newTestServer(&mockSynthesizer{}, resolver)

	rec := doRequest(t, s, http.MethodGet, "/news/search?commodity=gold&provider=magic", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if resolver.lastName != "magic" {
		t.Errorf("resolver received name %q", resolver.lastName)
	}
	if msg := errorMessage(t, rec); !strings.Contains(msg, "unknown search provider") {
		t.Errorf("unexpected error message: %q", msg)
	}
}

func TestSearchMissingAPIKey(t *testing.T) {
	resolver := &mockResolver{err: fmt.Errorf("%w: newsapi", sources.ErrMissingAPIKey)}
	s := newTestServer(&mockSynthesizer{}, resolver)

	rec := doRequest(t, s, http.MethodGet, "/news/search?commodity=gold&provider=newsapi", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSearchSuccess(t *testing.T) {
	provider := &mockProvider{
		name: "rss",
		articles: []core.NewsArticle{
			{ID: "1", Title: "Gold climbs", Source: "Example Wire", Date: "2025-08-28"},
			{ID: "2", Title: "Gold steadies", Source: "Example Post", Date: "2025-08-29"},
		},
	}
	s := newTestServer(&mockSynthesizer{}, &mockResolver{provider: provider})

	rec := doRequest(t, s, http.MethodGet, "/news/search?commodity=gold", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp NewsSearchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.Query != "gold commodity news (last 7 days)" {
		t.Errorf("unexpected query: %q", resp.Query)
	}
	if resp.TotalResults != 2 || len(resp.Articles) != 2 {
		t.Errorf("expected 2 results, got total=%d len=%d", resp.TotalResults, len(resp.Articles))
	}
}

func TestSearchProviderFailure(t *testing.T) {
	provider := &mockProvider{name: "newsapi", err: errors.New("connection refused")}
	s := newTestServer(&mockSynthesizer{}, &mockResolver{provider: provider})

	rec := doRequest(t, s, http.MethodGet, "/news/search?commodity=copper", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if msg := errorMessage(t, rec); !strings.Contains(msg, "Search service unavailable") {
		t.Errorf("unexpected error message: %q", msg)
	}
}

func TestParaphraseEmptyArticles(t *testing.T) {
	synth := &mockSynthesizer{err: synthesis.ErrNoArticles}
	s := newTestServer(synth, &mockResolver{})

	rec := doRequest(t, s, http.MethodPost, "/news/paraphrase", ParaphraseRequest{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if msg := errorMessage(t, rec); msg != "At least one article is required" {
		t.Errorf("unexpected error message: %q", msg)
	}
}

func TestParaphraseRelevanceRejection(t *testing.T) {
	synth := &mockSynthesizer{err: &synthesis.RelevanceError{Message: "Cannot synthesize: Articles appear unrelated"}}
	s := newTestServer(synth, &mockResolver{})

	req := ParaphraseRequest{Articles: []core.Article{{Title: "Gold"}, {Title: "Football"}}}
	rec := doRequest(t, s, http.MethodPost, "/news/paraphrase", req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if msg := errorMessage(t, rec); !strings.Contains(msg, "Articles appear unrelated") {
		t.Errorf("unexpected error message: %q", msg)
	}
}

func TestParaphraseInvalidBody(t *testing.T) {
	s := newTestServer(&mockSynthesizer{}, &mockResolver{})

	req := httptest.NewRequest(http.MethodPost, "/news/paraphrase", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestParaphraseSuccess(t *testing.T) {
	synth := &mockSynthesizer{
		result: core.SynthesisResult{
			Article:     "One.\n\nTwo.\n\nThree.",
			Headline:    "Gold Holds Near Record High",
			SourceCount: 2,
		},
	}
	s := newTestServer(synth, &mockResolver{})

	req := ParaphraseRequest{Articles: []core.Article{{Title: "A"}, {Title: "B"}}}
	rec := doRequest(t, s, http.MethodPost, "/news/paraphrase", req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if synth.calls != 1 {
		t.Errorf("expected 1 synthesizer call, got %d", synth.calls)
	}

	var result core.SynthesisResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if result.Headline != "Gold Holds Near Record High" || result.SourceCount != 2 {
		t.Errorf("unexpected result: %+v", result)
	}
	if !strings.Contains(rec.Body.String(), `"synthesized_article"`) {
		t.Errorf("response missing synthesized_article field: %s", rec.Body.String())
	}
}

func TestParaphraseSynthesisFailure(t *testing.T) {
	synth := &mockSynthesizer{err: errors.New("all generation backends failed")}
	s := newTestServer(synth, &mockResolver{})

	req := ParaphraseRequest{Articles: []core.Article{{Title: "A"}}}
	rec := doRequest(t, s, http.MethodPost, "/news/paraphrase", req)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestExportDOCXAttachment(t *testing.T) {
	s := newTestServer(&mockSynthesizer{}, &mockResolver{})

	body := core.SynthesisResult{
		Article:     "One.\n\nTwo.\n\nThree.",
		Headline:    "Copper Update",
		SourceCount: 1,
	}
	rec := doRequest(t, s, http.MethodPost, "/export/docx", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); !strings.Contains(got, "wordprocessingml") {
		t.Errorf("unexpected content type: %q", got)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "commodity_news_article.docx") {
		t.Errorf("unexpected content disposition: %q", got)
	}
	if data := rec.Body.Bytes(); len(data) < 2 || data[0] != 'P' || data[1] != 'K' {
		t.Error("body does not look like a DOCX archive")
	}
}

func TestExportPDFAttachment(t *testing.T) {
	s := newTestServer(&mockSynthesizer{}, &mockResolver{})

	body := core.SynthesisResult{
		Article:     "One.\n\nTwo.\n\nThree.",
		Headline:    "Copper Update",
		SourceCount: 1,
	}
	rec := doRequest(t, s, http.MethodPost, "/export/pdf", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != "application/pdf" {
		t.Errorf("unexpected content type: %q", got)
	}
	if !strings.HasPrefix(rec.Body.String(), "%PDF") {
		t.Error("body does not start with PDF header")
	}
}
