// Package relevance gates synthesis on whether the selected articles can be
// merged into one coherent report.
package relevance

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"minebrief/internal/core"
	"minebrief/internal/logger"
	"minebrief/internal/textclean"
)

const relevancePromptTemplate = `Analyze if these articles can be meaningfully synthesized together:

%s

Check if these articles are:
1. About the same specific commodity/market AND have related themes (price movements, supply issues, market developments)
2. Have coherent narrative connections that allow meaningful synthesis
3. Share common market factors, timeframes, or developments

Even if articles mention the same commodity, they should NOT be synthesized if they cover completely different aspects, unrelated timeframes, or contradictory themes that cannot create a coherent unified story.

Respond with only 'RELEVANT' if they can create a coherent synthesized article, or 'NOT_RELEVANT: [specific reason]' if they cannot.`

const relevanceMaxTokens = 50

// snippetLength caps how much of each article's content goes into the prompt.
const snippetLength = 200

// Generator produces text for a prompt. Satisfied by llm.Chain.
type Generator interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// Checker decides whether a set of articles is coherent enough to merge.
type Checker struct {
	generator Generator
}

// NewChecker creates a relevance checker over the given generator.
func NewChecker(generator Generator) *Checker {
	return &Checker{generator: generator}
}

// Check returns a verdict for the article set. Fewer than two articles are
// trivially relevant. A generation failure reports the set as relevant with a
// logged warning; this fail-open policy favors availability and can mask an
// upstream outage as "relevant".
func (c *Checker) Check(ctx context.Context, articles []core.Article) core.RelevanceVerdict {
	if len(articles) < 2 {
		return core.RelevanceVerdict{IsRelevant: true, Message: "Single article selected"}
	}

	var summaries []string
	for i, article := range articles {
		summaries = append(summaries, fmt.Sprintf("Article %d: %s - %s", i+1, article.Title, snippet(article.Content)))
	}

	prompt := fmt.Sprintf(relevancePromptTemplate, strings.Join(summaries, "\n"))

	reply, err := c.generator.Generate(ctx, prompt, relevanceMaxTokens)
	if err != nil {
		logger.Warn("relevance check failed, proceeding with synthesis", "error", err.Error())
		return core.RelevanceVerdict{IsRelevant: true, Message: "Relevance check failed, proceeding"}
	}

	logger.Debug("relevance reply received", "reply", reply)
	return parseVerdict(textclean.Clean(strings.TrimSpace(reply)))
}

// snippet caps content at snippetLength bytes, backing up so a multi-byte
// rune is never split at the boundary.
func snippet(text string) string {
	if len(text) <= snippetLength {
		return text
	}
	cut := snippetLength
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

// parseVerdict interprets the model's RELEVANT / NOT_RELEVANT reply.
func parseVerdict(reply string) core.RelevanceVerdict {
	if strings.HasPrefix(strings.ToUpper(reply), "RELEVANT") {
		return core.RelevanceVerdict{IsRelevant: true, Message: "Articles are related and can be synthesized"}
	}

	reason := "Articles appear unrelated"
	if idx := strings.Index(reply, ":"); idx >= 0 {
		if r := strings.TrimSpace(reply[idx+1:]); r != "" {
			reason = r
		}
	}
	return core.RelevanceVerdict{IsRelevant: false, Message: fmt.Sprintf("Cannot synthesize: %s", reason)}
}
