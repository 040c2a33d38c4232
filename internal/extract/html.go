package extract

import (
	"bytes"
	"context"
	"net/url"
	"regexp"
	"strings"

	readability "github.com/go-shiori/go-readability"
	"github.com/microcosm-cc/bluemonday"
)

var hrRe = regexp.MustCompile(`(?i)<hr[^>]*>`)

// htmlExtractor handles HTML slide exports. Decks exported to HTML separate
// slides with horizontal rules; each segment is stripped to plain text. A
// document without separators goes through readability as a single page.
type htmlExtractor struct{}

func (h *htmlExtractor) Extract(_ context.Context, data []byte) ([]string, error) {
	doc := string(data)
	policy := bluemonday.StrictPolicy()

	segments := hrRe.Split(doc, -1)
	if len(segments) > 1 {
		pages := make([]string, 0, len(segments))
		for _, seg := range segments {
			pages = append(pages, strings.TrimSpace(policy.Sanitize(seg)))
		}
		return pages, nil
	}

	article, err := readability.FromReader(bytes.NewReader(data), &url.URL{})
	if err != nil {
		// Readability gives up on fragments; fall back to tag stripping.
		return []string{strings.TrimSpace(policy.Sanitize(doc))}, nil
	}
	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		text = strings.TrimSpace(policy.Sanitize(doc))
	}
	return []string{text}, nil
}
