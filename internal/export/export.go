// Package export renders a finished synthesis result to downloadable DOCX and
// PDF documents: headline, metadata, the three paragraphs, a references
// section and article statistics.
package export

import (
	"fmt"
	"strings"
	"time"

	"minebrief/internal/core"
	"minebrief/internal/paragraph"
)

// DOCXContentType is the MIME type for the DOCX attachment.
const DOCXContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// PDFContentType is the MIME type for the PDF attachment.
const PDFContentType = "application/pdf"

// DOCXFilename and PDFFilename name the attachments.
const (
	DOCXFilename = "commodity_news_article.docx"
	PDFFilename  = "commodity_news_article.pdf"
)

func headlineOrDefault(result core.SynthesisResult) string {
	if result.Headline == "" {
		return "Commodity News Article"
	}
	return result.Headline
}

func generatedLine(now time.Time) string {
	return now.Format("January 2, 2006 at 15:04")
}

func bodyParagraphs(result core.SynthesisResult) []string {
	var paras []string
	for _, p := range strings.Split(result.Article, paragraph.Separator) {
		if s := strings.TrimSpace(p); s != "" {
			paras = append(paras, s)
		}
	}
	return paras
}

// referenceLine formats one numbered entry of the references section.
func referenceLine(i int, article core.Article) string {
	line := fmt.Sprintf("%d. %s", i+1, titleOrDefault(article))
	if article.PublishedDate != "" {
		line += fmt.Sprintf(" (%s)", article.PublishedDate)
	}
	if article.URL != "" {
		line += " - " + article.URL
	}
	return line
}

func titleOrDefault(article core.Article) string {
	if article.Title == "" {
		return "Untitled Article"
	}
	return article.Title
}

func statisticsLines(result core.SynthesisResult) []string {
	return []string{
		fmt.Sprintf("Word Count: %d words", result.WordCounts.Article.Words),
		fmt.Sprintf("Character Count: %d characters", result.WordCounts.Article.Characters),
	}
}
