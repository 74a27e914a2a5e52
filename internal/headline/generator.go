// Package headline derives a short headline for a synthesized article,
// shrinking the request until the 70-character budget is met.
package headline

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"minebrief/internal/logger"
	"minebrief/internal/textclean"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MaxLength is the headline character budget.
const MaxLength = 70

// DefaultHeadline substitutes for an empty result.
const DefaultHeadline = "Commodity Market Update"

const (
	maxRetries      = 5
	retryFloor      = 50
	firstExcerptLen = 400
	retryExcerptLen = 300
	finalExcerptLen = 200
	firstMaxTokens  = 40
	retryMaxTokens  = 25
	finalMaxTokens  = 20
)

// Generator produces text for a prompt. Satisfied by llm.Chain.
type Generator interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// HeadlineGenerator asks the generation chain for progressively shorter
// headlines until one fits the budget.
type HeadlineGenerator struct {
	generator    Generator
	instructions string
	titleCaser   cases.Caser
}

// New creates a headline generator. instructions is the shared editorial
// preamble prepended to every prompt.
func New(generator Generator, instructions string) *HeadlineGenerator {
	return &HeadlineGenerator{
		generator:    generator,
		instructions: instructions,
		titleCaser:   cases.Title(language.BritishEnglish),
	}
}

// Generate returns a headline of at most MaxLength characters for the
// article. It never fails: generation errors and persistent over-length
// replies both end in the fixed default headline.
func (g *HeadlineGenerator) Generate(ctx context.Context, article string) string {
	prompt := fmt.Sprintf("%s Based on this synthesized article, write one complete sentence headline that is exactly %d characters or less: %s",
		g.instructions, MaxLength, excerpt(article, firstExcerptLen))
	headline := g.ask(ctx, prompt, firstMaxTokens)

	for attempt := 1; len(headline) > MaxLength && attempt <= maxRetries; attempt++ {
		limit := MaxLength - attempt*3
		if limit < retryFloor {
			limit = retryFloor
		}
		prompt = fmt.Sprintf("%s Based on this content, write one complete sentence headline that is EXACTLY %d characters or less (no truncation allowed, complete sentence only): %s",
			g.instructions, limit, excerpt(article, retryExcerptLen))
		headline = g.ask(ctx, prompt, retryMaxTokens)
	}

	if len(headline) > MaxLength {
		prompt = fmt.Sprintf("%s Write a very short complete sentence headline (maximum %d characters) about: %s",
			g.instructions, retryFloor, excerpt(article, finalExcerptLen))
		headline = g.ask(ctx, prompt, finalMaxTokens)
	}

	if len(headline) > MaxLength {
		logger.Warn("headline still over budget after all attempts, using default",
			"length", len(headline))
		headline = ""
	}

	if headline == "" {
		return DefaultHeadline
	}
	return g.titleCaser.String(headline)
}

// ask runs one generation attempt and post-processes the reply: strip quotes
// and newlines, then clean. A failed attempt yields an empty headline rather
// than an error.
func (g *HeadlineGenerator) ask(ctx context.Context, prompt string, maxTokens int) string {
	reply, err := g.generator.Generate(ctx, prompt, maxTokens)
	if err != nil {
		logger.Warn("headline generation attempt failed", "error", err.Error())
		return ""
	}

	reply = strings.NewReplacer("\"", "", "'", "", "\n", " ", "\r", " ").Replace(reply)
	return textclean.Clean(strings.TrimSpace(reply))
}

// excerpt caps text at n bytes, backing up so a multi-byte rune is never
// split at the boundary.
func excerpt(text string, n int) string {
	if len(text) <= n {
		return text
	}
	for n > 0 && !utf8.RuneStart(text[n]) {
		n--
	}
	return text[:n]
}
