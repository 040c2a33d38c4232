package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mohammad-safakhou/notescan/models"
	"github.com/mohammad-safakhou/notescan/session"
)

// scanNotes judges the notes against the active deck, returning coverage,
// one quiz question grounded in the covered slides, and any misconceptions.
// Empty notes are a valid scan that covers nothing.
func (s *Server) scanNotes(c echo.Context) error {
	sess := s.session(c)

	var req scanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := checkDeckID(sess, req.DeckID); err != nil {
		return err
	}

	outcome, err := s.orch.Scan(c.Request().Context(), sess, models.NotesSnapshot{
		Text:  req.NotesText,
		DocID: req.DocID,
	})
	if err != nil {
		return err
	}
	scansTotal.Inc()

	resp := scanResponse{
		SessionID:      sess.ID,
		Coverage:       coverageToPayload(outcome.Coverage),
		Question:       outcome.Question,
		Misconceptions: outcome.Findings,
	}
	if resp.Misconceptions == nil {
		resp.Misconceptions = []models.MisconceptionFinding{}
	}
	return c.JSON(http.StatusOK, resp)
}

// refreshQuestion swaps the current question for a fresh one over the same
// scan. Question comes back null when nothing was covered.
func (s *Server) refreshQuestion(c echo.Context) error {
	sess := s.session(c)

	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := checkDeckID(sess, req.DeckID); err != nil {
		return err
	}

	q, err := s.orch.Refresh(c.Request().Context(), sess, req.NotesText, req.PreviousQuestions)
	if err != nil {
		return err
	}
	refreshesTotal.Inc()

	return c.JSON(http.StatusOK, refreshResponse{SessionID: sess.ID, Question: q})
}

// checkDeckID rejects requests aimed at a deck the session does not hold.
// Stale extension tabs keep referencing decks long after a re-upload.
func checkDeckID(sess *session.Session, deckID string) error {
	if deckID == "" {
		return nil
	}
	sess.Lock()
	defer sess.Unlock()
	if deckID != sess.DeckID {
		return models.ErrDeckNotFound
	}
	return nil
}
