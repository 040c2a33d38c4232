package server

import (
	"context"
	"log"
	"time"

	"github.com/gorhill/cronexpr"

	"github.com/mohammad-safakhou/notescan/internal/deckstore"
	"github.com/mohammad-safakhou/notescan/internal/orchestrator"
)

// Janitor prunes expired sessions and, for the in-memory backend, decks that
// outlived every session that referenced them. Redis enforces deck TTLs
// natively and postgres decks are kept until removed.
type Janitor struct {
	Orch    *orchestrator.Orchestrator
	Decks   *deckstore.MemoryBackend // nil unless the memory backend is in use
	Cron    string
	DeckTTL time.Duration
	Stop    chan struct{}
}

func (j *Janitor) Start() {
	expr, err := cronexpr.Parse(j.Cron)
	if err != nil {
		log.Printf("[JANITOR] invalid cron %q, falling back to hourly: %v", j.Cron, err)
		expr = cronexpr.MustParse("0 * * * *")
	}
	go func() {
		for {
			next := expr.Next(time.Now())
			select {
			case <-j.Stop:
				return
			case <-time.After(time.Until(next)):
				j.tick()
			}
		}
	}()
}

func (j *Janitor) tick() {
	sessions := j.Orch.CleanupExpired(context.Background())
	orphans := 0
	if j.Decks != nil {
		orphans = j.Decks.Sweep(j.DeckTTL)
	}
	log.Printf("[JANITOR] swept %d sessions and %d orphaned decks", sessions, orphans)
}
