package deckstore

import (
	"context"
	"errors"
	"testing"

	"github.com/mohammad-safakhou/notescan/internal/extract"
	"github.com/mohammad-safakhou/notescan/models"
)

// fakeExtractor returns canned pages or a canned error.
type fakeExtractor struct {
	pages []string
	err   error
}

func (f *fakeExtractor) Extract(_ context.Context, _ []byte, _ string) ([]string, error) {
	return f.pages, f.err
}

func TestIngestAssignsContiguousIndices(t *testing.T) {
	t.Parallel()
	store := New(&fakeExtractor{pages: []string{"  Mitosis has\n four phases ", "", "Telophase ends it"}}, NewMemoryBackend())

	deck, err := store.Ingest(context.Background(), []byte("blob"), "application/pdf")
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if len(deck.Slides) != 3 {
		t.Fatalf("expected 3 slides, got %d", len(deck.Slides))
	}
	for i, slide := range deck.Slides {
		if slide.Index != i+1 {
			t.Fatalf("slide %d has index %d", i, slide.Index)
		}
	}
	if deck.Slides[0].Text != "Mitosis has four phases" {
		t.Fatalf("expected normalized text, got %q", deck.Slides[0].Text)
	}
	if deck.Slides[1].Text != "" {
		t.Fatalf("unreadable page must be kept empty, got %q", deck.Slides[1].Text)
	}
	if deck.ID == "" || deck.CreatedAt.IsZero() {
		t.Fatalf("deck identity not populated: %+v", deck)
	}
}

func TestIngestEmptyDocument(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		pages []string
		data  []byte
	}{
		{name: "zero pages", pages: []string{}, data: []byte("blob")},
		{name: "all pages blank", pages: []string{"", "  \n "}, data: []byte("blob")},
		{name: "zero bytes", pages: []string{"x"}, data: nil},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			store := New(&fakeExtractor{pages: tt.pages}, NewMemoryBackend())
			_, err := store.Ingest(context.Background(), tt.data, "application/pdf")
			var ierr *IngestionError
			if !errors.As(err, &ierr) || ierr.Reason != ReasonEmptyDocument {
				t.Fatalf("expected empty-document, got %v", err)
			}
		})
	}
}

func TestIngestMapsExtractionErrors(t *testing.T) {
	t.Parallel()
	store := New(&fakeExtractor{err: &extract.ExtractionError{Reason: extract.ReasonUnsupportedFormat}}, NewMemoryBackend())
	_, err := store.Ingest(context.Background(), []byte("blob"), "application/zip")
	var ierr *IngestionError
	if !errors.As(err, &ierr) || ierr.Reason != ReasonUnsupportedFormat {
		t.Fatalf("expected unsupported-format, got %v", err)
	}

	store = New(&fakeExtractor{err: errors.New("boom")}, NewMemoryBackend())
	_, err = store.Ingest(context.Background(), []byte("blob"), "application/pdf")
	if !errors.As(err, &ierr) || ierr.Reason != ReasonExtractionFailed {
		t.Fatalf("expected extraction-failed, got %v", err)
	}
}

func TestGetUnknownDeck(t *testing.T) {
	t.Parallel()
	store := New(&fakeExtractor{}, NewMemoryBackend())
	_, err := store.Get(context.Background(), "nope")
	if !errors.Is(err, models.ErrDeckNotFound) {
		t.Fatalf("expected ErrDeckNotFound, got %v", err)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	t.Parallel()
	store := New(&fakeExtractor{pages: []string{"slide"}}, NewMemoryBackend())
	deck, err := store.Ingest(context.Background(), []byte("blob"), "text/plain")
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if err := store.Remove(context.Background(), deck.ID); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if err := store.Remove(context.Background(), deck.ID); err != nil {
		t.Fatalf("second Remove() must be idempotent, got %v", err)
	}
	if _, err := store.Get(context.Background(), deck.ID); !errors.Is(err, models.ErrDeckNotFound) {
		t.Fatalf("expected ErrDeckNotFound after removal, got %v", err)
	}
}
