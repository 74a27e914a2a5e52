package textclean

import (
	"strings"
	"testing"
)

func TestCleanStripsMarkup(t *testing.T) {
	in := "<p>Gold prices <b>rose</b> sharply</p> [Reuters] today"
	got := Clean(in)
	if strings.ContainsAny(got, "<>[]") {
		t.Errorf("markup survived cleaning: %q", got)
	}
	if !strings.Contains(got, "Gold prices rose sharply") {
		t.Errorf("content lost during cleaning: %q", got)
	}
}

func TestCleanRemovesURLsAndEmails(t *testing.T) {
	in := "Read more at https://example.com/story or write to desk@example.com for details"
	got := Clean(in)
	if strings.Contains(got, "http") || strings.Contains(got, "@") {
		t.Errorf("URL or email survived cleaning: %q", got)
	}
}

func TestCleanRemovesBylinesAndTimestamps(t *testing.T) {
	in := "Posted: By: Jane Doe Updated: 12:45 PM on 08/21/2025 copper output fell"
	got := Clean(in)
	for _, token := range []string{"Posted:", "By:", "Updated:", "12:45", "08/21/2025"} {
		if strings.Contains(got, token) {
			t.Errorf("token %q survived cleaning: %q", token, got)
		}
	}
	if !strings.Contains(got, "copper output fell") {
		t.Errorf("content lost during cleaning: %q", got)
	}
}

func TestCleanUnwrapsBoldMarkers(t *testing.T) {
	got := Clean("The **iron ore** market tightened")
	if got != "The iron ore market tightened" {
		t.Errorf("got %q", got)
	}
}

func TestCleanCollapsesWhitespace(t *testing.T) {
	got := Clean("  spread   across\n\nmultiple\tlines  ")
	if got != "spread across multiple lines" {
		t.Errorf("got %q", got)
	}
}

func TestCleanIsIdempotent(t *testing.T) {
	in := "<div>Zinc [LME] stocks **fell** at https://lme.com, Posted: 10:00 AM</div>"
	once := Clean(in)
	twice := Clean(once)
	if once != twice {
		t.Errorf("cleaning is not idempotent:\n once: %q\ntwice: %q", once, twice)
	}
}
