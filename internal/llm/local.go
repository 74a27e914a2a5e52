package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"minebrief/internal/config"
	"minebrief/internal/logger"
)

// LocalBackend generates text with a local Ollama model. The handle is lazily
// initialized on first use, process-wide, and read-only afterwards; concurrent
// requests share one probe.
type LocalBackend struct {
	baseURL    string
	model      string
	httpClient *http.Client

	mu    sync.Mutex
	ready bool
}

// NewLocalBackend creates the local fallback backend. Construction never
// probes the endpoint; availability is checked once on first Generate.
func NewLocalBackend(cfg config.OllamaConfig) *LocalBackend {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	model := cfg.Model
	if model == "" {
		model = "llama3.2:3b"
	}

	return &LocalBackend{
		baseURL: baseURL,
		model:   model,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Name identifies the backend in logs.
func (l *LocalBackend) Name() string { return "local" }

// Generate runs the prompt through Ollama's completion endpoint after a
// guarded availability check. The check runs at most once per process on
// success; a failed probe is retried on the next call.
func (l *LocalBackend) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if err := l.ensureReady(ctx); err != nil {
		return "", fmt.Errorf("local model unavailable: %w", err)
	}

	requestBody := map[string]interface{}{
		"model":  l.model,
		"prompt": prompt,
		"stream": false,
		"options": map[string]interface{}{
			"temperature": 0.7,
			"num_predict": maxTokens,
		},
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", l.baseURL+"/api/generate", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("ollama request failed: %d - %s", resp.StatusCode, string(body))
	}

	var response struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", err
	}

	text := strings.TrimSpace(response.Response)
	if text == "" {
		return "", errors.New("empty response from local model")
	}
	return text, nil
}

// ensureReady serializes the one-time probe so concurrent requests share a
// single initialization.
func (l *LocalBackend) ensureReady(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.ready {
		return nil
	}
	if err := l.initialize(ctx); err != nil {
		return err
	}
	l.ready = true
	return nil
}

// initialize probes the Ollama endpoint and checks the model is present.
func (l *LocalBackend) initialize(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, "GET", l.baseURL+"/api/tags", nil)
	if err != nil {
		return err
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ollama not accessible: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama not accessible: status %d", resp.StatusCode)
	}

	var result struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return err
	}

	for _, m := range result.Models {
		if strings.HasPrefix(m.Name, l.model) {
			logger.Info("local model initialized", "model", l.model)
			return nil
		}
	}

	return fmt.Errorf("model %s not available in ollama", l.model)
}
