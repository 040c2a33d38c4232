// Package slidesearch keeps a memory-only BM25 index per deck so students can
// jump to the slide that mentions a term. Indexes live and die with the deck.
package slidesearch

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/blevesearch/bleve"

	"github.com/mohammad-safakhou/notescan/models"
)

// Hit is one slide matching a query, best first.
type Hit struct {
	SlideIndex int     `json:"slide_index"`
	Snippet    string  `json:"snippet"`
	Score      float64 `json:"score"`
	Rank       int     `json:"rank"`
}

type slideDoc struct {
	Text string `json:"text"`
}

type deckIndex struct {
	bleve  bleve.Index
	slides map[string]models.Slide
}

// Index holds one BM25 index per ingested deck.
type Index struct {
	mu    sync.RWMutex
	decks map[string]*deckIndex
}

func New() *Index {
	return &Index{decks: make(map[string]*deckIndex)}
}

// Build indexes every readable slide of the deck, replacing any previous
// index for the same deck id.
func (ix *Index) Build(deck *models.SlideDeck) error {
	index, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return fmt.Errorf("creating slide index: %w", err)
	}
	di := &deckIndex{bleve: index, slides: make(map[string]models.Slide, len(deck.Slides))}
	for _, slide := range deck.Slides {
		if slide.Text == "" {
			continue
		}
		docID := strconv.Itoa(slide.Index)
		di.slides[docID] = slide
		if err := index.Index(docID, slideDoc{Text: slide.Text}); err != nil {
			return fmt.Errorf("indexing slide %d: %w", slide.Index, err)
		}
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.decks[deck.ID] = di
	return nil
}

// Search runs a BM25 query over one deck's slides and returns up to k hits.
func (ix *Index) Search(deckID, q string, k int) ([]Hit, error) {
	ix.mu.RLock()
	di, ok := ix.decks[deckID]
	ix.mu.RUnlock()
	if !ok {
		return nil, models.ErrDeckNotFound
	}

	query := bleve.NewQueryStringQuery(q)
	searchReq := bleve.NewSearchRequestOptions(query, k*3, 0, false)
	res, err := di.bleve.Search(searchReq)
	if err != nil {
		return nil, fmt.Errorf("searching deck %s: %w", deckID, err)
	}

	var out []Hit
	for _, hit := range res.Hits {
		slide, ok := di.slides[hit.ID]
		if !ok {
			continue
		}
		out = append(out, Hit{
			SlideIndex: slide.Index,
			Snippet:    snippet(slide.Text),
			Score:      hit.Score,
			Rank:       len(out) + 1,
		})
		if len(out) >= k {
			break
		}
	}
	return out, nil
}

// Remove drops the deck's index. Unknown ids are a no-op.
func (ix *Index) Remove(deckID string) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	delete(ix.decks, deckID)
}

func snippet(s string) string {
	if len(s) <= 300 {
		return s
	}
	return s[:300] + "…"
}
