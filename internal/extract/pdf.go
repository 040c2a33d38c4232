package extract

import (
	"bytes"
	"context"
	"log"
	"strings"

	"github.com/ledongthuc/pdf"
)

// pdfExtractor reads the PDF text layer page by page. Pages whose text layer
// is near-empty (scanned slides, exported images) are retried through the
// remote OCR service when one is configured; otherwise the thin text is kept
// as-is so the page still occupies its slot in the deck.
type pdfExtractor struct {
	ocr          *ocrClient
	minPageChars int
}

func (p *pdfExtractor) Extract(ctx context.Context, data []byte) ([]string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &ExtractionError{Reason: ReasonExtractionFailed, Err: err}
	}

	total := reader.NumPage()
	pages := make([]string, 0, total)
	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		var text string
		if !page.V.IsNull() {
			// Corrupt single pages are tolerated: the slot stays, coverage
			// reports it unreadable.
			if t, err := page.GetPlainText(nil); err == nil {
				text = t
			} else {
				log.Printf("[EXTRACT] pdf page %d: %v", i, err)
			}
		}
		text = strings.TrimSpace(text)

		if len(text) < p.minPageChars && p.ocr != nil {
			if ocrText, err := p.ocr.ExtractPage(ctx, data, "application/pdf", i); err == nil {
				text = strings.TrimSpace(ocrText)
			} else {
				log.Printf("[EXTRACT] ocr fallback page %d: %v", i, err)
			}
		}

		pages = append(pages, text)
	}

	return pages, nil
}
