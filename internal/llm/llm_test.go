package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// stubBackend implements Backend for testing the chain.
type stubBackend struct {
	name      string
	text      string
	err       error
	callCount int
}

func (s *stubBackend) Name() string { return s.name }

func (s *stubBackend) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	s.callCount++
	if s.err != nil {
		return "", s.err
	}
	return s.text, nil
}

func TestChainReturnsFirstSuccess(t *testing.T) {
	primary := &stubBackend{name: "primary", text: "primary output"}
	secondary := &stubBackend{name: "secondary", text: "secondary output"}
	chain := NewChain(primary, secondary)

	text, err := chain.Generate(context.Background(), "prompt", 100)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if text != "primary output" {
		t.Errorf("expected primary output, got %q", text)
	}
	if secondary.callCount != 0 {
		t.Errorf("secondary should not be called when primary succeeds, called %d times", secondary.callCount)
	}
}

func TestChainFallsThroughOnFailure(t *testing.T) {
	primary := &stubBackend{name: "primary", err: errors.New("quota exceeded")}
	secondary := &stubBackend{name: "secondary", err: errors.New("timeout")}
	tertiary := &stubBackend{name: "tertiary", text: "tertiary output"}
	chain := NewChain(primary, secondary, tertiary)

	text, err := chain.Generate(context.Background(), "prompt", 100)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if text != "tertiary output" {
		t.Errorf("expected tertiary output, got %q", text)
	}
	if primary.callCount != 1 || secondary.callCount != 1 {
		t.Errorf("each failed backend should be tried exactly once, got %d and %d",
			primary.callCount, secondary.callCount)
	}
}

func TestChainNeverRetriesABackend(t *testing.T) {
	failing := &stubBackend{name: "failing", err: errors.New("down")}
	chain := NewChain(failing, NewTemplateBackend())

	for i := 0; i < 3; i++ {
		if _, err := chain.Generate(context.Background(), "commodity report", 100); err != nil {
			t.Fatalf("Generate returned error: %v", err)
		}
	}
	if failing.callCount != 3 {
		t.Errorf("expected one attempt per call, got %d attempts over 3 calls", failing.callCount)
	}
}

func TestChainWithOnlyFailingBackendsErrors(t *testing.T) {
	chain := NewChain(&stubBackend{name: "a", err: errors.New("down")})

	if _, err := chain.Generate(context.Background(), "prompt", 100); err == nil {
		t.Fatal("expected error when every backend fails")
	}
}

func TestTemplateBackendNeverFails(t *testing.T) {
	backend := NewTemplateBackend()

	text, err := backend.Generate(context.Background(), "anything at all", 450)
	if err != nil {
		t.Fatalf("template backend returned error: %v", err)
	}
	if text == "" {
		t.Fatal("template backend returned empty text")
	}
	if got := len(strings.Split(text, "\n\n")); got != 3 {
		t.Errorf("expected 3 template paragraphs, got %d", got)
	}
}

func TestTemplateBackendKeywordHeuristic(t *testing.T) {
	backend := NewTemplateBackend()
	ctx := context.Background()

	commodity, _ := backend.Generate(ctx, "Synthesise these MINING updates", 450)
	if !strings.Contains(commodity, "commodity sectors this week") {
		t.Error("mining prompt should select the commodity template")
	}

	generic, _ := backend.Generate(ctx, "Summarize these technology updates", 450)
	if !strings.Contains(generic, "multiple sectors") {
		t.Error("generic prompt should select the generic template")
	}
}
