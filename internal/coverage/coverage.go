// Package coverage decides, slide by slide, whether a notes text demonstrates
// coverage of a deck.
package coverage

import (
	"context"

	"github.com/mohammad-safakhou/notescan/models"
)

// SlideVerdict is the per-slide coverage decision.
type SlideVerdict struct {
	Covered    bool    `json:"covered"`
	Confidence float64 `json:"confidence"` // in [0,1]
}

// Statement is one sentence-level claim from the notes, associated with the
// slide that matched it best. SlideIndex is 0 when no covered slide matched;
// the association is reused by the misconception detector so it is never
// recomputed.
type Statement struct {
	Text       string
	SlideIndex int
	Score      float64
}

// Result maps every slide index of the deck to a verdict, exactly once.
type Result struct {
	Verdicts   map[int]SlideVerdict
	Covered    int
	Total      int
	Statements []Statement
}

// CoveredSlides returns the covered subset of deck in slide order.
func (r *Result) CoveredSlides(deck *models.SlideDeck) []models.Slide {
	out := make([]models.Slide, 0, r.Covered)
	for _, slide := range deck.Slides {
		if v, ok := r.Verdicts[slide.Index]; ok && v.Covered {
			out = append(out, slide)
		}
	}
	return out
}

// Matcher judges coverage of a deck by a notes text. Implementations must be
// pure functions of their inputs: no hidden state, deterministic given a
// deterministic comparison method.
type Matcher interface {
	Match(ctx context.Context, deck *models.SlideDeck, notesText string) (*Result, error)
}
