// Package orchestrator drives one student's upload-scan-refresh loop across
// the deck store, coverage matcher, question synthesizer and misconception
// detector. All compound operations run under the session lock, so concurrent
// requests for one session serialize while different sessions proceed in
// parallel.
package orchestrator

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mohammad-safakhou/notescan/internal/coverage"
	"github.com/mohammad-safakhou/notescan/internal/deckstore"
	"github.com/mohammad-safakhou/notescan/internal/misconception"
	"github.com/mohammad-safakhou/notescan/internal/quizgen"
	"github.com/mohammad-safakhou/notescan/internal/slidesearch"
	"github.com/mohammad-safakhou/notescan/models"
	"github.com/mohammad-safakhou/notescan/session"
)

// ReasonNoActiveScan rejects a refresh on a session that has not scanned
// notes yet.
const ReasonNoActiveScan = "no-active-scan"

// StateError means the request is valid in shape but arrived in the wrong
// session state.
type StateError struct {
	Reason string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("invalid session state (%s)", e.Reason)
}

// ScanOutcome is everything one scan produces. Question is nil when no slide
// is covered; Findings may be empty.
type ScanOutcome struct {
	Coverage *coverage.Result
	Question *models.QuizQuestion
	Findings []models.MisconceptionFinding
}

type Orchestrator struct {
	decks      *deckstore.Store
	matcher    coverage.Matcher
	quiz       *quizgen.Synthesizer
	detector   *misconception.Detector
	search     *slidesearch.Index
	sessions   session.Store
	sessionTTL time.Duration
}

func New(decks *deckstore.Store, matcher coverage.Matcher, quiz *quizgen.Synthesizer, detector *misconception.Detector, search *slidesearch.Index, sessions session.Store, sessionTTL time.Duration) *Orchestrator {
	return &Orchestrator{
		decks:      decks,
		matcher:    matcher,
		quiz:       quiz,
		detector:   detector,
		search:     search,
		sessions:   sessions,
		sessionTTL: sessionTTL,
	}
}

// Session resolves the caller's session, minting one when id is empty or
// expired.
func (o *Orchestrator) Session(id string) *session.Session {
	return o.sessions.EnsureSession(id, o.sessionTTL)
}

// Upload ingests a document into a new deck and makes it the session's
// active deck. The previous deck, its search index, and the question history
// are discarded; a new deck is a new quiz.
func (o *Orchestrator) Upload(ctx context.Context, sess *session.Session, data []byte, mimeType string) (*models.SlideDeck, error) {
	deck, err := o.decks.Ingest(ctx, data, mimeType)
	if err != nil {
		return nil, err
	}
	if err := o.search.Build(deck); err != nil {
		// Search is an extra; the deck is still usable without it.
		log.Printf("[ORCH] search index build failed for deck %s: %v", deck.ID, err)
	}

	sess.Lock()
	defer sess.Unlock()
	if prev := sess.DeckID; prev != "" && prev != deck.ID {
		o.dropDeck(ctx, prev)
	}
	sess.ResetDeck(deck.ID)
	return deck, nil
}

// Scan judges coverage of the notes against the session's deck, synthesizes
// one question from the covered slides, and flags misconceptions. With no
// covered slides there is nothing to quiz on and the question is nil.
func (o *Orchestrator) Scan(ctx context.Context, sess *session.Session, notes models.NotesSnapshot) (*ScanOutcome, error) {
	sess.Lock()
	defer sess.Unlock()

	deck, err := o.activeDeck(ctx, sess)
	if err != nil {
		return nil, err
	}

	cov, err := o.matcher.Match(ctx, deck, notes.Text)
	if err != nil {
		return nil, err
	}
	sess.Notes = notes
	sess.Coverage = cov
	sess.State = session.StateScanned

	outcome := &ScanOutcome{Coverage: cov}

	if covered := cov.CoveredSlides(deck); len(covered) > 0 {
		q, err := o.quiz.Synthesize(ctx, covered, sess.History)
		if err != nil {
			return nil, err
		}
		sess.History = append(sess.History, *q)
		outcome.Question = q
	}

	outcome.Findings = o.detector.Detect(ctx, deck, notes.Text, cov)
	return outcome, nil
}

// Refresh replaces the current question with a new one over the same scan.
// Caller-supplied previous questions are merged into the history first so
// non-repetition holds even across a restarted backend. A non-empty notesText
// that differs from the scanned snapshot re-runs coverage before generating;
// the notes may have changed since the scan.
func (o *Orchestrator) Refresh(ctx context.Context, sess *session.Session, notesText string, previous []models.QuizQuestion) (*models.QuizQuestion, error) {
	sess.Lock()
	defer sess.Unlock()

	if sess.State != session.StateScanned || sess.Coverage == nil {
		return nil, &StateError{Reason: ReasonNoActiveScan}
	}
	deck, err := o.activeDeck(ctx, sess)
	if err != nil {
		return nil, err
	}
	if notesText != "" && notesText != sess.Notes.Text {
		cov, err := o.matcher.Match(ctx, deck, notesText)
		if err != nil {
			return nil, err
		}
		sess.Notes = models.NotesSnapshot{Text: notesText, DocID: sess.Notes.DocID}
		sess.Coverage = cov
	}
	o.mergePrevious(sess, previous)

	covered := sess.Coverage.CoveredSlides(deck)
	if len(covered) == 0 {
		return nil, nil
	}
	q, err := o.quiz.Synthesize(ctx, covered, sess.History)
	if err != nil {
		return nil, err
	}
	sess.History = append(sess.History, *q)
	return q, nil
}

// Search runs a term query over the given deck's slides.
func (o *Orchestrator) Search(deckID, q string, k int) ([]slidesearch.Hit, error) {
	return o.search.Search(deckID, q, k)
}

// CleanupExpired sweeps dead sessions and releases the decks they held.
// Called from the janitor on a schedule.
func (o *Orchestrator) CleanupExpired(ctx context.Context) int {
	expired := o.sessions.Sweep(time.Now())
	for _, s := range expired {
		if s.DeckID != "" {
			o.dropDeck(ctx, s.DeckID)
		}
	}
	return len(expired)
}

// activeDeck loads the session's deck. A session whose deck has expired out
// of the store falls back to empty so the client re-uploads.
func (o *Orchestrator) activeDeck(ctx context.Context, sess *session.Session) (*models.SlideDeck, error) {
	if sess.DeckID == "" {
		return nil, models.ErrDeckNotFound
	}
	deck, err := o.decks.Get(ctx, sess.DeckID)
	if err != nil {
		sess.ResetDeck("")
		sess.State = session.StateEmpty
		return nil, err
	}
	return deck, nil
}

// mergePrevious folds validated caller-supplied questions into the history.
// Malformed entries are skipped, never fatal; near-duplicates of what we
// already track add nothing.
func (o *Orchestrator) mergePrevious(sess *session.Session, previous []models.QuizQuestion) {
	for _, q := range previous {
		if q.Question == "" || len(q.Options) < 2 {
			continue
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			continue
		}
		if quizgen.IsDuplicate(q, sess.History) {
			continue
		}
		sess.History = append(sess.History, q)
	}
}

func (o *Orchestrator) dropDeck(ctx context.Context, deckID string) {
	if err := o.decks.Remove(ctx, deckID); err != nil {
		log.Printf("[ORCH] removing deck %s: %v", deckID, err)
	}
	o.search.Remove(deckID)
}
