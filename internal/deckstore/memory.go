package deckstore

import (
	"context"
	"sync"
	"time"

	"github.com/mohammad-safakhou/notescan/models"
)

// MemoryBackend keeps decks in process memory. The default for the
// single-binary deployment: decks live as long as the session that uploaded
// them, which is all the system guarantees.
type MemoryBackend struct {
	decks map[string]*models.SlideDeck
	mu    sync.RWMutex
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{decks: make(map[string]*models.SlideDeck)}
}

func (b *MemoryBackend) Save(_ context.Context, deck *models.SlideDeck) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.decks[deck.ID] = deck
	return nil
}

func (b *MemoryBackend) Get(_ context.Context, id string) (*models.SlideDeck, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	deck, ok := b.decks[id]
	if !ok {
		return nil, models.ErrDeckNotFound
	}
	return deck, nil
}

func (b *MemoryBackend) Remove(_ context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.decks, id)
	return nil
}

// Sweep drops decks older than maxAge and returns how many were removed.
// Called by the janitor; redis enforces TTLs natively and postgres decks are
// kept until removed.
func (b *MemoryBackend) Sweep(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)
	b.mu.Lock()
	defer b.mu.Unlock()
	removed := 0
	for id, deck := range b.decks {
		if deck.CreatedAt.Before(cutoff) {
			delete(b.decks, id)
			removed++
		}
	}
	return removed
}
