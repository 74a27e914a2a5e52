// Package synthesis composes the end-to-end article synthesis operation:
// relevance gate, cleaning, prompt construction, generation with one bounded
// regeneration, paragraph enforcement and headline generation.
package synthesis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"minebrief/internal/core"
	"minebrief/internal/headline"
	"minebrief/internal/logger"
	"minebrief/internal/paragraph"
	"minebrief/internal/relevance"
	"minebrief/internal/textclean"
)

// ErrNoArticles is returned when the request carries no articles.
var ErrNoArticles = errors.New("at least one article is required")

// RelevanceError reports that the relevance gate rejected the article set.
type RelevanceError struct {
	Message string
}

func (e *RelevanceError) Error() string {
	return fmt.Sprintf("article relevance check failed: %s", e.Message)
}

const (
	// sourceBudget caps how much combined source text enters the prompt.
	sourceBudget = 1000
	// regenSourceBudget is the tighter cap for the regeneration prompt.
	regenSourceBudget = 600
	// synthesisMaxTokens bounds the first generation.
	synthesisMaxTokens = 450
	// regenMaxTokens bounds the single regeneration attempt.
	regenMaxTokens = 400
)

// Generator produces text for a prompt. Satisfied by llm.Chain.
type Generator interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// Orchestrator runs the synthesis pipeline. It is stateless; every invocation
// is independent.
type Orchestrator struct {
	generator Generator
	checker   *relevance.Checker
	headlines *headline.HeadlineGenerator
}

// NewOrchestrator wires the pipeline over one generation chain.
func NewOrchestrator(generator Generator) *Orchestrator {
	return &Orchestrator{
		generator: generator,
		checker:   relevance.NewChecker(generator),
		headlines: headline.New(generator, CleanInstructions),
	}
}

// Synthesize merges the articles into one three-paragraph report. It fails
// with ErrNoArticles before any network call when articles is empty, and with
// a RelevanceError carrying the checker's reason when the gate rejects the
// set. No partial synthesis is attempted after a rejection.
func (o *Orchestrator) Synthesize(ctx context.Context, articles []core.Article) (core.SynthesisResult, error) {
	if len(articles) == 0 {
		return core.SynthesisResult{}, ErrNoArticles
	}

	verdict := o.checker.Check(ctx, articles)
	if !verdict.IsRelevant {
		return core.SynthesisResult{}, &RelevanceError{Message: verdict.Message}
	}
	logger.Info("relevance check passed", "message", verdict.Message, "articles", len(articles))

	combined := combineSources(articles)

	prompt := fmt.Sprintf(synthesisPromptTemplate, truncate(combined, sourceBudget))
	text, err := o.generator.Generate(ctx, prompt, synthesisMaxTokens)
	if err != nil {
		return core.SynthesisResult{}, fmt.Errorf("synthesis generation failed: %w", err)
	}
	text = textclean.Clean(text)

	// One bounded regeneration when the reply came back as a single block.
	if !strings.Contains(text, paragraph.Separator) {
		logger.Warn("single paragraph detected, attempting one regeneration")
		strict := fmt.Sprintf(regenerationPromptTemplate, truncate(combined, regenSourceBudget))
		if regenerated, regenErr := o.generator.Generate(ctx, strict, regenMaxTokens); regenErr != nil {
			logger.Warn("regeneration failed, proceeding to paragraph enforcement", "error", regenErr.Error())
		} else {
			text = textclean.Clean(regenerated)
		}
	}

	article := paragraph.Enforce(text)
	head := o.headlines.Generate(ctx, article)

	return core.SynthesisResult{
		Article:     article,
		Headline:    head,
		SourceCount: len(articles),
		WordCounts: core.WordCounts{
			Headline: core.CountText(head),
			Article:  core.CountText(article),
		},
		SourceArticles: articles,
	}, nil
}

// combineSources cleans every article and joins them into one labelled blob,
// prefixed with the date range when publication dates are present.
func combineSources(articles []core.Article) string {
	var parts []string
	var dates []string

	for i, article := range articles {
		date := article.PublishedDate
		if date == "" {
			date = "Unknown date"
		} else {
			dates = append(dates, date)
		}

		title := textclean.Clean(article.Title)
		content := textclean.Clean(article.Content)
		parts = append(parts, fmt.Sprintf("Source %d (%s): %s. %s", i+1, date, title, content))
	}

	combined := strings.Join(parts, " ")
	if prefix := dateRange(dates); prefix != "" {
		combined = prefix + combined
	}
	return combined
}

// dateRange formats "[min] " or "[min to max] " from the collected dates.
// Dates are free-form strings, so the ordering is lexicographic.
func dateRange(dates []string) string {
	if len(dates) == 0 {
		return ""
	}
	sorted := append([]string(nil), dates...)
	sort.Strings(sorted)

	min, max := sorted[0], sorted[len(sorted)-1]
	if min == max {
		return fmt.Sprintf("[%s] ", min)
	}
	return fmt.Sprintf("[%s to %s] ", min, max)
}

// truncate caps text at n bytes, backing up so a multi-byte rune is never
// split at the boundary.
func truncate(text string, n int) string {
	if len(text) <= n {
		return text
	}
	for n > 0 && !utf8.RuneStart(text[n]) {
		n--
	}
	return text[:n]
}
