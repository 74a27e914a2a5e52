package export

import (
	"bytes"
	"fmt"
	"time"

	"minebrief/internal/core"

	"github.com/go-pdf/fpdf"
)

// PDF renders the result as a PDF document.
func PDF(result core.SynthesisResult) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(25, 25, 25)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 9, headlineOrDefault(result), "", "C", false)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 5, fmt.Sprintf("Generated on: %s", generatedLine(time.Now())), "", "L", false)
	pdf.MultiCell(0, 5, fmt.Sprintf("Sources combined: %d articles", result.SourceCount), "", "L", false)
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 11)
	for _, para := range bodyParagraphs(result) {
		pdf.MultiCell(0, 6, para, "", "J", false)
		pdf.Ln(3)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.MultiCell(0, 7, "References", "", "L", false)
	pdf.SetFont("Helvetica", "", 10)
	if len(result.SourceArticles) == 0 {
		pdf.MultiCell(0, 5, "Source articles information not available", "", "L", false)
	}
	for i, article := range result.SourceArticles {
		pdf.MultiCell(0, 5, referenceLine(i, article), "", "L", false)
		pdf.Ln(2)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.MultiCell(0, 7, "Article Statistics", "", "L", false)
	pdf.SetFont("Helvetica", "", 10)
	for _, line := range statisticsLines(result) {
		pdf.MultiCell(0, 5, line, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF document: %w", err)
	}
	return buf.Bytes(), nil
}
