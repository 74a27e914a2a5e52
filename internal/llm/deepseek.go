package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"minebrief/internal/config"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// DeepSeekBackend generates text through DeepSeek's OpenAI-compatible chat
// completions endpoint.
type DeepSeekBackend struct {
	client  openai.Client
	model   string
	timeout time.Duration
}

// NewDeepSeekBackend creates the secondary cloud backend. It fails when no
// API key is configured so the chain can skip it.
func NewDeepSeekBackend(cfg config.DeepSeekConfig) (*DeepSeekBackend, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("deepseek API key not configured")
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	client := openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
	)

	return &DeepSeekBackend{
		client:  client,
		model:   cfg.Model,
		timeout: timeout,
	}, nil
}

// Name identifies the backend in logs.
func (d *DeepSeekBackend) Name() string { return "deepseek" }

// Generate sends the prompt as a single user message with the backend's own
// timeout; on timeout the error propagates and the chain falls through.
func (d *DeepSeekBackend) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	resp, err := d.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: d.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		MaxTokens:   openai.Int(int64(maxTokens)),
		Temperature: openai.Float(0.7),
	})
	if err != nil {
		return "", fmt.Errorf("deepseek generation failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("empty response from deepseek")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", errors.New("empty response from deepseek")
	}
	return text, nil
}
