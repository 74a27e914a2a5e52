package export

import (
	"bytes"
	"fmt"
	"time"

	"minebrief/internal/core"

	"github.com/fumiama/go-docx"
)

// DOCX renders the result as a Word document.
func DOCX(result core.SynthesisResult) ([]byte, error) {
	doc := docx.New().WithDefaultTheme()

	title := doc.AddParagraph().Justification("center")
	title.AddText(headlineOrDefault(result)).Size("32").Bold()

	doc.AddParagraph().AddText(fmt.Sprintf("Generated on: %s", generatedLine(time.Now())))
	doc.AddParagraph().AddText(fmt.Sprintf("Sources combined: %d articles", result.SourceCount))
	doc.AddParagraph()

	for _, para := range bodyParagraphs(result) {
		doc.AddParagraph().AddText(para)
	}

	doc.AddParagraph()
	doc.AddParagraph().AddText("References").Size("28").Bold()
	if len(result.SourceArticles) == 0 {
		doc.AddParagraph().AddText("Source articles information not available")
	}
	for i, article := range result.SourceArticles {
		doc.AddParagraph().AddText(referenceLine(i, article))
	}

	doc.AddParagraph()
	doc.AddParagraph().AddText("---")
	for _, line := range statisticsLines(result) {
		doc.AddParagraph().AddText(line)
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write DOCX document: %w", err)
	}
	return buf.Bytes(), nil
}
