// Package textclean strips markup and metadata noise from raw article text so
// only the human-written prose reaches the synthesis prompts.
package textclean

import (
	"regexp"
	"strings"
)

var (
	htmlTagRe    = regexp.MustCompile(`<[^>]+>`)
	urlRe        = regexp.MustCompile(`http[s]?://[a-zA-Z0-9$\-_@.&+!*\\(\\),%]+`)
	bracketedRe  = regexp.MustCompile(`\[.*?\]`)
	labelRe      = regexp.MustCompile(`(?i)Posted:|Published:|Updated:|By:|Author:`)
	clockTimeRe  = regexp.MustCompile(`\d{1,2}:\d{2}\s*(AM|PM|am|pm)?`)
	slashDateRe  = regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{2,4}`)
	emailRe      = regexp.MustCompile(`\S+@\S+`)
	boldRe       = regexp.MustCompile(`\*\*(.*?)\*\*`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Clean removes HTML tags, URLs, bracketed metadata, label prefixes, clock
// times, slash dates, email addresses and markdown bold markers, then
// collapses whitespace runs to single spaces and trims. Total and idempotent:
// Clean(Clean(x)) == Clean(x).
func Clean(text string) string {
	text = htmlTagRe.ReplaceAllString(text, "")
	text = urlRe.ReplaceAllString(text, "")
	text = bracketedRe.ReplaceAllString(text, "")
	text = labelRe.ReplaceAllString(text, "")
	text = clockTimeRe.ReplaceAllString(text, "")
	text = slashDateRe.ReplaceAllString(text, "")
	text = emailRe.ReplaceAllString(text, "")
	text = boldRe.ReplaceAllString(text, "$1")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
