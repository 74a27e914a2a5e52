// Package llm abstracts text generation over an ordered chain of backends.
// Backends are tried in priority order and each is attempted at most once per
// call; the last backend in a well-formed chain is deterministic and cannot
// fail, so Generate normally always returns text.
package llm

import (
	"context"
	"errors"
	"fmt"

	"minebrief/internal/config"
	"minebrief/internal/logger"
)

// Backend is a single text-generation capability: prompt in, text out.
type Backend interface {
	// Name identifies the backend in logs.
	Name() string
	// Generate produces text for the prompt, bounded by maxTokens.
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// Chain tries each backend in order until one succeeds.
type Chain struct {
	backends []Backend
}

// NewChain creates a chain over the given backends, in priority order.
func NewChain(backends ...Backend) *Chain {
	return &Chain{backends: backends}
}

// NewDefaultChain assembles the standard fallback chain from configuration:
// Gemini, then DeepSeek, then the local Ollama model, then the deterministic
// template backend. Backends whose keys or endpoints are not configured are
// left out rather than failing construction.
func NewDefaultChain(cfg *config.AI) *Chain {
	var backends []Backend

	if gemini, err := NewGeminiBackend(cfg.Gemini); err != nil {
		logger.Warn("gemini backend unavailable", "reason", err.Error())
	} else {
		backends = append(backends, gemini)
	}

	if deepseek, err := NewDeepSeekBackend(cfg.DeepSeek); err != nil {
		logger.Warn("deepseek backend unavailable", "reason", err.Error())
	} else {
		backends = append(backends, deepseek)
	}

	backends = append(backends, NewLocalBackend(cfg.Ollama))
	backends = append(backends, NewTemplateBackend())

	return NewChain(backends...)
}

// Generate tries each backend once, in order, and returns the first success.
// It fails only if every backend fails, which a chain ending in the template
// backend never does.
func (c *Chain) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if len(c.backends) == 0 {
		return "", errors.New("no generation backends configured")
	}

	var lastErr error
	for _, backend := range c.backends {
		text, err := backend.Generate(ctx, prompt, maxTokens)
		if err != nil {
			logger.Warn("generation backend failed, falling through",
				"backend", backend.Name(), "error", err.Error())
			lastErr = err
			continue
		}
		logger.Info("generated text", "backend", backend.Name(), "chars", len(text))
		return text, nil
	}

	logger.Error("all generation backends failed", lastErr, "backends", len(c.backends))
	return "", fmt.Errorf("all generation backends failed: %w", lastErr)
}
