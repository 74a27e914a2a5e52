package headline

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"
)

type scriptedGenerator struct {
	replies   []string
	err       error
	callCount int
	prompts   []string
}

func (s *scriptedGenerator) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	s.prompts = append(s.prompts, prompt)
	s.callCount++
	if s.err != nil {
		return "", s.err
	}
	if s.callCount <= len(s.replies) {
		return s.replies[s.callCount-1], nil
	}
	return s.replies[len(s.replies)-1], nil
}

const instructions = "Write in British English as an industry analyst."

func TestGenerateReturnsFirstFittingHeadline(t *testing.T) {
	gen := &scriptedGenerator{replies: []string{"gold prices reach record high on safe-haven demand"}}
	g := New(gen, instructions)

	headline := g.Generate(context.Background(), "Gold prices surged to a record...")
	if len(headline) > MaxLength {
		t.Errorf("headline over budget: %d chars", len(headline))
	}
	if gen.callCount != 1 {
		t.Errorf("expected a single attempt, got %d", gen.callCount)
	}
	if headline != "Gold Prices Reach Record High On Safe-Haven Demand" {
		t.Errorf("expected title-cased headline, got %q", headline)
	}
}

func TestGenerateRetriesWithShrinkingTargets(t *testing.T) {
	long := strings.Repeat("very long headline that exceeds the budget ", 3)
	gen := &scriptedGenerator{replies: []string{long, long, "copper output climbs"}}
	g := New(gen, instructions)

	headline := g.Generate(context.Background(), strings.Repeat("article ", 100))
	if headline != "Copper Output Climbs" {
		t.Errorf("expected retry result, got %q", headline)
	}
	if gen.callCount != 3 {
		t.Errorf("expected 3 attempts, got %d", gen.callCount)
	}
	if !strings.Contains(gen.prompts[1], "EXACTLY 67 characters") {
		t.Errorf("second attempt should request 67 characters, prompt: %q", gen.prompts[1])
	}
}

func TestGenerateAlwaysWithinBudgetWhenEveryReplyIsLong(t *testing.T) {
	long := strings.Repeat("an interminable headline about commodity markets ", 4)
	gen := &scriptedGenerator{replies: []string{long}}
	g := New(gen, instructions)

	headline := g.Generate(context.Background(), "article text")
	if len(headline) > MaxLength {
		t.Fatalf("headline over budget: %d chars", len(headline))
	}
	if headline != DefaultHeadline {
		t.Errorf("expected default headline, got %q", headline)
	}
	// First ask, five retries, one final short ask.
	if gen.callCount != 7 {
		t.Errorf("expected 7 attempts, got %d", gen.callCount)
	}
}

func TestGenerateFallsBackToDefaultOnErrors(t *testing.T) {
	gen := &scriptedGenerator{err: errors.New("all backends down")}
	g := New(gen, instructions)

	headline := g.Generate(context.Background(), "article text")
	if headline != DefaultHeadline {
		t.Errorf("expected default headline, got %q", headline)
	}
}

func TestGenerateStripsQuotesAndNewlines(t *testing.T) {
	gen := &scriptedGenerator{replies: []string{"\"nickel supply\ntightens\""}}
	g := New(gen, instructions)

	headline := g.Generate(context.Background(), "article text")
	if strings.ContainsAny(headline, "\"\n") {
		t.Errorf("headline contains quotes or newlines: %q", headline)
	}
	if headline != "Nickel Supply Tightens" {
		t.Errorf("unexpected headline: %q", headline)
	}
}

func TestExcerptBacksUpToRuneBoundary(t *testing.T) {
	// Two-byte runes; 400 is even, 25 is not, so test an odd cap.
	text := strings.Repeat("é", 300)
	got := excerpt(text, 25)
	if !utf8.ValidString(got) {
		t.Error("excerpt split a multi-byte rune")
	}
	if len(got) != 24 {
		t.Errorf("expected 24 bytes after backing up, got %d", len(got))
	}
}
