package coverage

import (
	"context"
	"testing"

	"github.com/mohammad-safakhou/notescan/models"
)

func deckOf(texts ...string) *models.SlideDeck {
	deck := &models.SlideDeck{ID: "deck"}
	for i, text := range texts {
		deck.Slides = append(deck.Slides, models.Slide{Index: i + 1, Text: text})
	}
	return deck
}

func TestLexicalMatchMitosisScenario(t *testing.T) {
	t.Parallel()
	deck := deckOf("Mitosis has four phases.", "")
	notes := "Mitosis has four phases: prophase, metaphase, anaphase, telophase."

	result, err := NewLexicalMatcher().Match(context.Background(), deck, notes)
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if !result.Verdicts[1].Covered {
		t.Fatalf("slide 1 should be covered: %+v", result.Verdicts[1])
	}
	if result.Verdicts[2].Covered || result.Verdicts[2].Confidence != 0 {
		t.Fatalf("empty slide must never be covered: %+v", result.Verdicts[2])
	}
	if result.Covered != 1 || result.Total != 2 {
		t.Fatalf("got covered=%d total=%d, want 1/2", result.Covered, result.Total)
	}
}

func TestLexicalMatchEmptyNotes(t *testing.T) {
	t.Parallel()
	deck := deckOf("The Krebs cycle produces ATP.", "Photosynthesis happens in chloroplasts.")
	result, err := NewLexicalMatcher().Match(context.Background(), deck, "")
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if result.Covered != 0 {
		t.Fatalf("empty notes must cover nothing, got %d", result.Covered)
	}
	if len(result.Verdicts) != 2 {
		t.Fatalf("every slide must have a verdict, got %d", len(result.Verdicts))
	}
}

func TestLexicalMatchEmptySlideNeverCoveredByIdenticalNotes(t *testing.T) {
	t.Parallel()
	// Notes identical to slide 1's content must not leak coverage onto the
	// unreadable slide 2.
	deck := deckOf("DNA replication is semiconservative in nature.", "")
	result, err := NewLexicalMatcher().Match(context.Background(), deck, "DNA replication is semiconservative in nature.")
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if result.Verdicts[2].Covered {
		t.Fatalf("empty slide covered: %+v", result.Verdicts[2])
	}
	if !result.Verdicts[1].Covered {
		t.Fatalf("identical notes must cover slide 1")
	}
}

func TestLexicalMatchDuplicatedSlides(t *testing.T) {
	t.Parallel()
	// Slide 2 duplicates slide 1 with extra content; both are judged
	// independently, no cross-slide suppression.
	deck := deckOf(
		"Osmosis moves water across membranes.",
		"Osmosis moves water across membranes. Diffusion moves solutes.",
	)
	result, err := NewLexicalMatcher().Match(context.Background(), deck, "In class we learned osmosis moves water across membranes.")
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if !result.Verdicts[1].Covered || !result.Verdicts[2].Covered {
		t.Fatalf("both duplicated slides should be covered: %+v", result.Verdicts)
	}
}

func TestLexicalMatchInvariant(t *testing.T) {
	t.Parallel()
	deck := deckOf("alpha beta gamma delta", "unrelated content entirely", "")
	result, err := NewLexicalMatcher().Match(context.Background(), deck, "notes about alpha beta gamma delta and more.")
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if result.Covered > result.Total {
		t.Fatalf("covered %d exceeds total %d", result.Covered, result.Total)
	}
	if result.Total != len(deck.Slides) {
		t.Fatalf("total %d != deck size %d", result.Total, len(deck.Slides))
	}
	for _, slide := range deck.Slides {
		if _, ok := result.Verdicts[slide.Index]; !ok {
			t.Fatalf("slide %d missing from verdicts", slide.Index)
		}
	}
}

func TestLexicalMatchStatementAssociation(t *testing.T) {
	t.Parallel()
	deck := deckOf("Mitosis has four distinct phases.", "The mitochondrion produces ATP energy.")
	notes := "Mitosis has four distinct phases in cells. The mitochondrion produces ATP energy constantly."
	result, err := NewLexicalMatcher().Match(context.Background(), deck, notes)
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if len(result.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(result.Statements))
	}
	if result.Statements[0].SlideIndex != 1 {
		t.Fatalf("statement 0 should match slide 1, got %d", result.Statements[0].SlideIndex)
	}
	if result.Statements[1].SlideIndex != 2 {
		t.Fatalf("statement 1 should match slide 2, got %d", result.Statements[1].SlideIndex)
	}
}

func TestCoveredSlidesSubset(t *testing.T) {
	t.Parallel()
	deck := deckOf("alpha beta gamma delta epsilon", "zeta eta theta iota kappa")
	result, err := NewLexicalMatcher().Match(context.Background(), deck, "I reviewed alpha beta gamma delta epsilon today.")
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	covered := result.CoveredSlides(deck)
	if len(covered) != 1 || covered[0].Index != 1 {
		t.Fatalf("unexpected covered subset: %+v", covered)
	}
}
