// Package quizgen synthesizes exactly one multiple-choice question grounded
// in the covered slides, enforcing non-repetition against prior questions.
package quizgen

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mohammad-safakhou/notescan/models"
	"github.com/mohammad-safakhou/notescan/provider"
)

// Generation error reasons.
const (
	ReasonMalformedResponse = "malformed-response"
	ReasonTimeout           = "timeout"
	ReasonService           = "service"
)

// GenerationError means the generation collaborator could not produce a
// usable question. Recovered locally with one retry before surfacing.
type GenerationError struct {
	Reason string
	Err    error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("question generation failed (%s): %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("question generation failed (%s)", e.Reason)
}

func (e *GenerationError) Unwrap() error { return e.Err }

var (
	retriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notescan_quiz_generation_retries_total",
		Help: "Generation retries after a malformed collaborator response.",
	})
	dedupRejectsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notescan_quiz_dedup_rejections_total",
		Help: "Candidate questions rejected as semantic duplicates of prior ones.",
	})
	dedupFallbacksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notescan_quiz_dedup_fallbacks_total",
		Help: "Near-duplicate questions returned after the dedup retry also collided.",
	})
)

// Synthesizer produces quiz questions through the generation collaborator.
type Synthesizer struct {
	provider provider.Provider
}

func New(p provider.Provider) *Synthesizer {
	return &Synthesizer{provider: p}
}

// Synthesize returns one validated question grounded only in coveredSlides.
// coveredSlides must be non-empty; callers return "no question" instead of
// invoking a guaranteed failure.
//
// The collaborator response is untrusted: it is parsed and validated on
// every attempt. A malformed response earns one retry with a stricter
// instruction, then GenerationError(malformed-response). A candidate whose
// fingerprint collides with a prior question earns one regeneration; if that
// collides too, the near-duplicate is returned anyway; a repeated question
// beats a dead refresh button. The fallback is logged and counted.
func (s *Synthesizer) Synthesize(ctx context.Context, coveredSlides []models.Slide, prior []models.QuizQuestion) (*models.QuizQuestion, error) {
	lecture := lectureText(coveredSlides)
	if lecture == "" {
		return nil, &GenerationError{Reason: ReasonService, Err: errors.New("no covered slide text")}
	}

	question, err := s.generateOnce(ctx, lecture, prior, false)
	if err != nil {
		var gerr *GenerationError
		if errors.As(err, &gerr) && gerr.Reason == ReasonMalformedResponse {
			retriesTotal.Inc()
			question, err = s.generateOnce(ctx, lecture, prior, true)
		}
		if err != nil {
			return nil, err
		}
	}

	if !IsDuplicate(*question, prior) {
		return question, nil
	}
	dedupRejectsTotal.Inc()

	retry, rerr := s.generateOnce(ctx, lecture, prior, true)
	if rerr == nil && !IsDuplicate(*retry, prior) {
		return retry, nil
	}
	dedupFallbacksTotal.Inc()
	log.Printf("[QUIZ] dedup retry collided, returning near-duplicate question")
	if rerr == nil {
		return retry, nil
	}
	return question, nil
}

// generateOnce performs a single prompt -> parse -> validate round-trip.
func (s *Synthesizer) generateOnce(ctx context.Context, lecture string, prior []models.QuizQuestion, strict bool) (*models.QuizQuestion, error) {
	raw, err := s.provider.CompleteJSON(ctx, systemPrompt, buildUserPrompt(lecture, prior, strict))
	if err != nil {
		if errors.Is(err, provider.ErrTimeout) {
			return nil, &GenerationError{Reason: ReasonTimeout, Err: err}
		}
		return nil, &GenerationError{Reason: ReasonService, Err: err}
	}

	question, err := parseQuestion(raw)
	if err != nil {
		return nil, &GenerationError{Reason: ReasonMalformedResponse, Err: err}
	}
	return question, nil
}

// lectureText joins covered-slide text, skipping unreadable slides, capped at
// maxLectureChars. Uncovered slides never reach this function.
func lectureText(slides []models.Slide) string {
	var parts []string
	for _, s := range slides {
		if s.Text != "" {
			parts = append(parts, s.Text)
		}
	}
	lecture := strings.Join(parts, "\n\n")
	if len(lecture) > maxLectureChars {
		lecture = lecture[:maxLectureChars]
	}
	return strings.TrimSpace(lecture)
}
