package coverage

import (
	"context"
	"fmt"
	"math"

	"github.com/mohammad-safakhou/notescan/internal/helpers"
	"github.com/mohammad-safakhou/notescan/models"
	"github.com/mohammad-safakhou/notescan/provider"
)

// EmbeddingCoverageThreshold is the minimum cosine similarity between a notes
// statement and a slide embedding for the slide to count as covered.
const EmbeddingCoverageThreshold = 0.3

// EmbeddingMatcher judges coverage by embedding cosine similarity. It
// tolerates paraphrase far better than token overlap at the cost of one
// provider round-trip per scan.
type EmbeddingMatcher struct {
	provider provider.Provider
}

func NewEmbeddingMatcher(p provider.Provider) *EmbeddingMatcher {
	return &EmbeddingMatcher{provider: p}
}

func (m *EmbeddingMatcher) Match(ctx context.Context, deck *models.SlideDeck, notesText string) (*Result, error) {
	statements := helpers.SplitStatements(notesText)

	result := &Result{
		Verdicts:   make(map[int]SlideVerdict, len(deck.Slides)),
		Total:      len(deck.Slides),
		Statements: make([]Statement, len(statements)),
	}
	for i, s := range statements {
		result.Statements[i] = Statement{Text: s}
	}

	// Empty notes are a valid input, not an error; skip the provider call.
	if len(statements) == 0 {
		for _, slide := range deck.Slides {
			result.Verdicts[slide.Index] = SlideVerdict{}
		}
		return result, nil
	}

	// One batch: statements first, then the readable slides.
	readable := make([]models.Slide, 0, len(deck.Slides))
	texts := make([]string, 0, len(statements)+len(deck.Slides))
	texts = append(texts, statements...)
	for _, slide := range deck.Slides {
		if slide.Text != "" {
			readable = append(readable, slide)
			texts = append(texts, slide.Text)
		}
	}

	vecs, err := m.provider.CreateEmbedding(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embedding coverage failed: %w", err)
	}
	if len(vecs) != len(texts) {
		return nil, fmt.Errorf("embedding coverage: got %d vectors for %d texts", len(vecs), len(texts))
	}
	stmtVecs := vecs[:len(statements)]
	slideVecs := vecs[len(statements):]

	for _, slide := range deck.Slides {
		result.Verdicts[slide.Index] = SlideVerdict{}
	}

	for j, slide := range readable {
		best := 0.0
		for i, sv := range stmtVecs {
			score := cosine(sv, slideVecs[j])
			if score > best {
				best = score
			}
			if score >= EmbeddingCoverageThreshold && score > result.Statements[i].Score {
				result.Statements[i].SlideIndex = slide.Index
				result.Statements[i].Score = score
			}
		}
		covered := best >= EmbeddingCoverageThreshold
		result.Verdicts[slide.Index] = SlideVerdict{Covered: covered, Confidence: clamp01(best)}
		if covered {
			result.Covered++
		}
	}

	return result, nil
}

func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		ai := float64(a[i])
		bi := float64(b[i])
		dot += ai * bi
		na += ai * ai
		nb += bi * bi
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
