package llm

import (
	"context"
	"strings"

	"minebrief/internal/logger"
)

// commodityTemplate is returned when the prompt reads like a commodity or
// mining synthesis request.
const commodityTemplate = `Market developments continued across commodity sectors this week. Trading activity remained active with participants monitoring supply and demand fundamentals.

Price movements reflected ongoing market dynamics and investor sentiment. Various factors influenced trading patterns including economic indicators and industry reports.

Industry participants focused on operational efficiency and market positioning. Companies reported quarterly results while analysts provided market outlook assessments.`

// genericTemplate covers every other prompt.
const genericTemplate = `Recent market developments have shown continued activity across multiple sectors. Industry participants reported various operational updates and financial results.

Price movements reflected current market conditions and investor sentiment throughout the trading period. Market participants continued to monitor key economic indicators.

Industry outlook remains focused on fundamental factors and operational efficiency measures. Companies and analysts provided updated assessments of market conditions.`

// TemplateBackend is the deterministic last resort in the chain: it picks one
// of two fixed three-paragraph templates by a keyword heuristic on the prompt
// and never fails.
type TemplateBackend struct{}

// NewTemplateBackend creates the deterministic fallback backend.
func NewTemplateBackend() *TemplateBackend {
	return &TemplateBackend{}
}

// Name identifies the backend in logs.
func (t *TemplateBackend) Name() string { return "template" }

// Generate returns the template matching the prompt. maxTokens is ignored;
// the downstream paragraph enforcement owns length.
func (t *TemplateBackend) Generate(_ context.Context, prompt string, _ int) (string, error) {
	logger.Warn("using template fallback content generation")

	lower := strings.ToLower(prompt)
	if strings.Contains(lower, "commodity") || strings.Contains(lower, "mining") || strings.Contains(lower, "metal") {
		return commodityTemplate, nil
	}
	return genericTemplate, nil
}
