package extract

import (
	"context"
	"strings"
)

// plainExtractor treats the upload as already-extracted text. Form feeds are
// the page separator (pdftotext and friends emit them); a document without
// any becomes a single page.
type plainExtractor struct{}

func (p *plainExtractor) Extract(_ context.Context, data []byte) ([]string, error) {
	text := string(data)
	if !strings.Contains(text, "\f") {
		return []string{strings.TrimSpace(text)}, nil
	}
	parts := strings.Split(text, "\f")
	pages := make([]string, 0, len(parts))
	for _, part := range parts {
		pages = append(pages, strings.TrimSpace(part))
	}
	return pages, nil
}
