package server

import (
	"sort"

	"github.com/mohammad-safakhou/notescan/internal/coverage"
	"github.com/mohammad-safakhou/notescan/internal/highlight"
	"github.com/mohammad-safakhou/notescan/internal/slidesearch"
	"github.com/mohammad-safakhou/notescan/models"
)

type uploadResponse struct {
	SessionID  string `json:"session_id"`
	DeckID     string `json:"deck_id"`
	SlideCount int    `json:"slide_count"`
}

type scanRequest struct {
	// DeckID is optional; when set it must match the session's active deck.
	DeckID    string `json:"deck_id"`
	NotesText string `json:"notes_text"`
	DocID     string `json:"doc_id"`
}

type slideCoverage struct {
	Index      int     `json:"index"`
	Covered    bool    `json:"covered"`
	Confidence float64 `json:"confidence"`
}

type coveragePayload struct {
	Covered int             `json:"covered"`
	Total   int             `json:"total"`
	Slides  []slideCoverage `json:"slides"`
}

type scanResponse struct {
	SessionID      string                        `json:"session_id"`
	Coverage       coveragePayload               `json:"coverage"`
	Question       *models.QuizQuestion          `json:"question"`
	Misconceptions []models.MisconceptionFinding `json:"misconceptions"`
}

type refreshRequest struct {
	DeckID string `json:"deck_id"`
	// NotesText is optional; when it differs from the scanned snapshot,
	// coverage is recomputed before generating.
	NotesText         string                `json:"notes_text"`
	PreviousQuestions []models.QuizQuestion `json:"previous_questions"`
}

type refreshResponse struct {
	SessionID string               `json:"session_id"`
	Question  *models.QuizQuestion `json:"question"`
}

type searchResponse struct {
	DeckID string            `json:"deck_id"`
	Hits   []slidesearch.Hit `json:"hits"`
}

type highlightsRequest struct {
	DocumentText string                        `json:"document_text"`
	Findings     []models.MisconceptionFinding `json:"findings"`
}

type highlightsResponse struct {
	Patches []highlight.Patch `json:"patches"`
}

func coverageToPayload(cov *coverage.Result) coveragePayload {
	payload := coveragePayload{
		Covered: cov.Covered,
		Total:   cov.Total,
		Slides:  make([]slideCoverage, 0, len(cov.Verdicts)),
	}
	for index, v := range cov.Verdicts {
		payload.Slides = append(payload.Slides, slideCoverage{
			Index:      index,
			Covered:    v.Covered,
			Confidence: v.Confidence,
		})
	}
	sort.Slice(payload.Slides, func(i, j int) bool {
		return payload.Slides[i].Index < payload.Slides[j].Index
	})
	return payload
}
