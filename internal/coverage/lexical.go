package coverage

import (
	"context"

	"github.com/mohammad-safakhou/notescan/internal/helpers"
	"github.com/mohammad-safakhou/notescan/models"
)

// LexicalCoverageThreshold is the minimum normalized Jaccard similarity
// between a notes statement and a slide's token set for the slide to count
// as covered.
const LexicalCoverageThreshold = 0.2

// LexicalMatcher judges coverage by token-set overlap. Fully deterministic
// and dependency-free per request; the default engine.
type LexicalMatcher struct{}

func NewLexicalMatcher() *LexicalMatcher { return &LexicalMatcher{} }

func (m *LexicalMatcher) Match(_ context.Context, deck *models.SlideDeck, notesText string) (*Result, error) {
	statements := helpers.SplitStatements(notesText)

	stmtTokens := make([]map[string]struct{}, len(statements))
	for i, s := range statements {
		stmtTokens[i] = helpers.TokenSet(s)
	}

	result := &Result{
		Verdicts:   make(map[int]SlideVerdict, len(deck.Slides)),
		Total:      len(deck.Slides),
		Statements: make([]Statement, len(statements)),
	}
	for i, s := range statements {
		result.Statements[i] = Statement{Text: s}
	}

	for _, slide := range deck.Slides {
		// A slide whose extraction failed can never be covered; reporting
		// it uncovered with zero confidence beats a false positive from a
		// corrupt page.
		if slide.Text == "" {
			result.Verdicts[slide.Index] = SlideVerdict{}
			continue
		}
		slideTokens := helpers.TokenSet(slide.Text)

		best := 0.0
		for i, tokens := range stmtTokens {
			score := helpers.Jaccard(tokens, slideTokens)
			if score > best {
				best = score
			}
			// Track each statement's strongest slide for the detector.
			if score >= LexicalCoverageThreshold && score > result.Statements[i].Score {
				result.Statements[i].SlideIndex = slide.Index
				result.Statements[i].Score = score
			}
		}

		covered := best >= LexicalCoverageThreshold
		result.Verdicts[slide.Index] = SlideVerdict{Covered: covered, Confidence: best}
		if covered {
			result.Covered++
		}
	}

	return result, nil
}
