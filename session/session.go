// Package session holds per-student quiz state between requests. A session
// moves through a small state machine: empty until a deck is ingested, deck
// loaded until notes are scanned, then scanned and refreshable.
package session

import (
	"sync"
	"time"

	"github.com/mohammad-safakhou/notescan/internal/coverage"
	"github.com/mohammad-safakhou/notescan/models"
)

type State string

const (
	StateEmpty      State = "empty"
	StateDeckLoaded State = "deck_loaded"
	StateScanned    State = "scanned"
)

// Session is one student's context. Callers must hold the session lock for
// the whole of a compound operation; state, deck and history are only
// consistent with each other inside one critical section.
type Session struct {
	ID string

	State    State
	DeckID   string
	Notes    models.NotesSnapshot
	Coverage *coverage.Result
	History  []models.QuizQuestion

	mu        sync.Mutex
	expiresAt time.Time
}

func New(id string, ttl time.Duration) *Session {
	return &Session{
		ID:        id,
		State:     StateEmpty,
		expiresAt: time.Now().Add(ttl),
	}
}

func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// Touch pushes the expiry forward; every request through a session extends
// its life.
func (s *Session) Touch(ttl time.Duration) {
	s.expiresAt = time.Now().Add(ttl)
}

func (s *Session) ExpiresAt() time.Time { return s.expiresAt }

func (s *Session) Expired(now time.Time) bool {
	return now.After(s.expiresAt)
}

// ResetDeck installs a freshly ingested deck and discards everything derived
// from the previous one. Question history never survives a deck swap.
func (s *Session) ResetDeck(deckID string) {
	s.DeckID = deckID
	s.State = StateDeckLoaded
	s.Notes = models.NotesSnapshot{}
	s.Coverage = nil
	s.History = nil
}

// Store tracks live sessions keyed by id.
type Store interface {
	// EnsureSession returns the session for id, minting a new one when id is
	// empty or unknown. The returned session's expiry is pushed forward.
	EnsureSession(id string, ttl time.Duration) *Session
	// GetSession returns an existing live session.
	GetSession(id string) (*Session, bool)
	// Sweep removes expired sessions and returns them so callers can release
	// resources tied to them.
	Sweep(now time.Time) []*Session
}
