package core

// Article is a single source article submitted for synthesis. Articles are
// immutable once fetched; the pipeline reads them and passes them through to
// the result so downstream renderers can build reference sections.
type Article struct {
	Title         string `json:"title"`                    // Article title
	Content       string `json:"content"`                  // Full or partial article text
	URL           string `json:"url,omitempty"`            // Canonical article URL
	PublishedDate string `json:"published_date,omitempty"` // Publication date, free-form
	Source        string `json:"source,omitempty"`         // Publisher name
}

// NewsArticle is a single search result returned by a search provider.
type NewsArticle struct {
	ID      string `json:"id"`             // Unique identifier assigned at fetch time
	Title   string `json:"title"`          // Article title
	Link    string `json:"link"`           // Article URL
	Snippet string `json:"snippet"`        // Short description or summary
	Source  string `json:"source"`         // Publisher name
	Date    string `json:"date,omitempty"` // Publication date, free-form
}

// TextCounts holds character and word counts for a piece of text.
type TextCounts struct {
	Characters int `json:"characters"`
	Words      int `json:"words"`
}

// WordCounts aggregates counts for the headline and the article body.
type WordCounts struct {
	Headline TextCounts `json:"headline"`
	Article  TextCounts `json:"synthesized_article"`
}

// SynthesisResult is the output of one synthesis invocation: exactly three
// paragraphs joined by a blank line, a headline of at most 70 characters, and
// the source articles passed through for reference rendering.
type SynthesisResult struct {
	Article        string     `json:"synthesized_article"`
	Headline       string     `json:"headline"`
	SourceCount    int        `json:"source_count"`
	WordCounts     WordCounts `json:"word_counts"`
	SourceArticles []Article  `json:"source_articles"`
}

// RelevanceVerdict is the outcome of the pre-synthesis relevance gate. It is
// produced and consumed within a single synthesis call and never persisted.
type RelevanceVerdict struct {
	IsRelevant bool   `json:"is_relevant"`
	Message    string `json:"message"`
}

// CountText computes the character and word counts for a text.
func CountText(text string) TextCounts {
	words := 0
	inWord := false
	for _, r := range text {
		switch r {
		case ' ', '\t', '\n', '\r':
			inWord = false
		default:
			if !inWord {
				words++
			}
			inWord = true
		}
	}
	return TextCounts{Characters: len(text), Words: words}
}
