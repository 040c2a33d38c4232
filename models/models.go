package models

import (
	"errors"
	"time"
)

// ErrDeckNotFound is returned when a deck id is unknown or expired.
var ErrDeckNotFound = errors.New("deck not found")

// Slide is one page of an ingested deck. Text is whitespace-collapsed and may
// be empty when extraction could not read the page; empty slides are kept so
// coverage can report them as unreadable rather than silently dropping pages.
type Slide struct {
	Index int    `json:"index"` // 1-based, contiguous within the deck
	Text  string `json:"text"`
}

// SlideDeck is an immutable, ordered set of slides produced by one upload.
type SlideDeck struct {
	ID        string    `json:"id"`
	Slides    []Slide   `json:"slides"`
	CreatedAt time.Time `json:"created_at"`
}

// QuizQuestion is a single validated multiple-choice question.
type QuizQuestion struct {
	Topic        string   `json:"topic,omitempty"`
	Question     string   `json:"question"`
	Options      []string `json:"options"` // 3-5 entries, pairwise distinct
	CorrectIndex int      `json:"correct_index"`
	Explanation  string   `json:"explanation"`
}

// CorrectOption returns the text of the correct option, or "" when the
// question shape is invalid.
func (q QuizQuestion) CorrectOption() string {
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return ""
	}
	return q.Options[q.CorrectIndex]
}

// MisconceptionFinding flags a notes statement that contradicts or overstates
// slide content. Text is always a verbatim substring of the scanned notes so
// the extension can locate it for highlighting.
type MisconceptionFinding struct {
	Text       string `json:"text"`
	Suggestion string `json:"suggestion"`
	SlideIndex int    `json:"slide_index,omitempty"` // always a covered slide when set
}

// NotesSnapshot is one scan/refresh request's notes. DocID is advisory only;
// content is never fetched by it.
type NotesSnapshot struct {
	Text  string `json:"notes_text"`
	DocID string `json:"doc_id,omitempty"`
}
