// Package extract is the boundary to the OCR/text-extraction collaborator.
// It turns an uploaded document blob into raw per-page text; everything past
// this package works on text only.
package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/mohammad-safakhou/notescan/config"
)

// Extraction error reasons.
const (
	ReasonUnsupportedFormat = "unsupported-format"
	ReasonExtractionFailed  = "extraction-failed"
)

// ExtractionError describes why a document could not be turned into pages.
type ExtractionError struct {
	Reason string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extraction failed (%s): %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("extraction failed (%s)", e.Reason)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Extractor produces raw per-page text from a document blob. One entry per
// page/image in document order; entries may be empty when a page could not be
// read.
type Extractor interface {
	Extract(ctx context.Context, data []byte, mimeType string) ([]string, error)
}

// New builds the default extractor: PDF text layer with remote OCR fallback,
// remote OCR for images, readability for HTML and a plain-text splitter.
func New(cfg config.ExtractionConfig) Extractor {
	var ocr *ocrClient
	if cfg.OCRURL != "" {
		ocr = newOCRClient(cfg.OCRURL, cfg.Timeout)
	}
	return &extractor{
		pdf:   &pdfExtractor{ocr: ocr, minPageChars: cfg.MinPageChars},
		html:  &htmlExtractor{},
		plain: &plainExtractor{},
		ocr:   ocr,
	}
}

type extractor struct {
	pdf   *pdfExtractor
	html  *htmlExtractor
	plain *plainExtractor
	ocr   *ocrClient
}

func (e *extractor) Extract(ctx context.Context, data []byte, mimeType string) ([]string, error) {
	mt := normalizeMime(mimeType)
	switch mt {
	case "application/pdf":
		return e.pdf.Extract(ctx, data)
	case "text/html":
		return e.html.Extract(ctx, data)
	case "text/plain":
		return e.plain.Extract(ctx, data)
	case "image/png", "image/jpeg":
		if e.ocr == nil {
			return nil, &ExtractionError{Reason: ReasonUnsupportedFormat,
				Err: fmt.Errorf("image uploads need an OCR service (extraction.ocr_url)")}
		}
		return e.ocr.Extract(ctx, data, mt)
	default:
		return nil, &ExtractionError{Reason: ReasonUnsupportedFormat,
			Err: fmt.Errorf("mime type %q", mimeType)}
	}
}

// normalizeMime drops parameters ("text/html; charset=utf-8") and folds
// common aliases.
func normalizeMime(mimeType string) string {
	mt := strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.IndexByte(mt, ';'); i != -1 {
		mt = strings.TrimSpace(mt[:i])
	}
	if mt == "image/jpg" {
		mt = "image/jpeg"
	}
	return mt
}

// MimeFromFilename guesses a mime type from the upload's filename extension.
// Multipart uploads from the extension do not always carry a usable
// Content-Type part header.
func MimeFromFilename(name string) string {
	name = strings.ToLower(name)
	switch {
	case strings.HasSuffix(name, ".pdf"):
		return "application/pdf"
	case strings.HasSuffix(name, ".png"):
		return "image/png"
	case strings.HasSuffix(name, ".jpg"), strings.HasSuffix(name, ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(name, ".html"), strings.HasSuffix(name, ".htm"):
		return "text/html"
	case strings.HasSuffix(name, ".txt"), strings.HasSuffix(name, ".md"):
		return "text/plain"
	default:
		return ""
	}
}
