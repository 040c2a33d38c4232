// Package deckstore owns ingested slide decks: extraction at the boundary,
// normalization, and persistence behind a pluggable backend.
package deckstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mohammad-safakhou/notescan/internal/extract"
	"github.com/mohammad-safakhou/notescan/internal/helpers"
	"github.com/mohammad-safakhou/notescan/models"
)

// Ingestion error reasons, surfaced verbatim to the caller.
const (
	ReasonUnsupportedFormat = "unsupported-format"
	ReasonExtractionFailed  = "extraction-failed"
	ReasonEmptyDocument     = "empty-document"
)

// IngestionError means the uploaded document could not become a deck. It is
// user-correctable: pick another file or format.
type IngestionError struct {
	Reason string
	Err    error
}

func (e *IngestionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ingestion failed (%s): %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("ingestion failed (%s)", e.Reason)
}

func (e *IngestionError) Unwrap() error { return e.Err }

// Backend persists decks. Implementations must treat decks as immutable
// after Save.
type Backend interface {
	Save(ctx context.Context, deck *models.SlideDeck) error
	Get(ctx context.Context, id string) (*models.SlideDeck, error)
	Remove(ctx context.Context, id string) error
}

// Store is the slide store: it ingests uploads through the extraction
// collaborator and serves decks by id.
type Store struct {
	extractor extract.Extractor
	backend   Backend
}

func New(extractor extract.Extractor, backend Backend) *Store {
	return &Store{extractor: extractor, backend: backend}
}

// Ingest extracts the document into per-page text, assigns contiguous
// 1-based slide indices in document order, and persists the deck. Pages that
// could not be read are kept with empty text so downstream coverage can
// report them instead of silently shifting indices.
func (s *Store) Ingest(ctx context.Context, data []byte, mimeType string) (*models.SlideDeck, error) {
	if len(data) == 0 {
		return nil, &IngestionError{Reason: ReasonEmptyDocument}
	}

	pages, err := s.extractor.Extract(ctx, data, mimeType)
	if err != nil {
		var xerr *extract.ExtractionError
		if errors.As(err, &xerr) && xerr.Reason == extract.ReasonUnsupportedFormat {
			return nil, &IngestionError{Reason: ReasonUnsupportedFormat, Err: err}
		}
		return nil, &IngestionError{Reason: ReasonExtractionFailed, Err: err}
	}

	slides := make([]models.Slide, 0, len(pages))
	blank := true
	for i, page := range pages {
		text := helpers.CollapseWhitespace(page)
		if text != "" {
			blank = false
		}
		slides = append(slides, models.Slide{Index: i + 1, Text: text})
	}
	if len(slides) == 0 || blank {
		return nil, &IngestionError{Reason: ReasonEmptyDocument}
	}

	deck := &models.SlideDeck{
		ID:        uuid.NewString(),
		Slides:    slides,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.backend.Save(ctx, deck); err != nil {
		return nil, fmt.Errorf("failed to persist deck: %w", err)
	}
	return deck, nil
}

// Get returns the deck or models.ErrDeckNotFound.
func (s *Store) Get(ctx context.Context, id string) (*models.SlideDeck, error) {
	return s.backend.Get(ctx, id)
}

// Remove deletes the deck. Idempotent: removing an unknown id is not an
// error.
func (s *Store) Remove(ctx context.Context, id string) error {
	return s.backend.Remove(ctx, id)
}
