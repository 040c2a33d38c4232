package quizgen

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mohammad-safakhou/notescan/internal/helpers"
	"github.com/mohammad-safakhou/notescan/models"
)

const (
	minOptions          = 3
	maxOptions          = 5
	maxExplanationWords = 40
)

// rawQuestion mirrors the JSON shape requested from the model. Every field is
// untrusted until validated.
type rawQuestion struct {
	Topic        string   `json:"topic"`
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Explanation  string   `json:"explanation"`
}

// parseQuestion extracts, decodes and validates a model response. Any
// structural defect is an error; the caller decides whether to retry.
func parseQuestion(raw string) (*models.QuizQuestion, error) {
	payload, err := helpers.ExtractJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("no JSON object in response: %w", err)
	}

	var rq rawQuestion
	if err := json.Unmarshal([]byte(payload), &rq); err != nil {
		return nil, fmt.Errorf("decoding question: %w", err)
	}

	q := models.QuizQuestion{
		Topic:        strings.TrimSpace(rq.Topic),
		Question:     helpers.CleanGeneratedText(rq.Question),
		CorrectIndex: rq.CorrectIndex,
		Explanation:  helpers.TruncateWords(helpers.CleanGeneratedText(rq.Explanation), maxExplanationWords),
	}
	if q.Question == "" {
		return nil, fmt.Errorf("empty question text")
	}

	// Drop options the cleaner emptied out, remapping correct_index as the
	// slice shrinks. Losing the correct option itself is fatal.
	correct := -1
	for i, opt := range rq.Options {
		cleaned := helpers.CleanGeneratedText(opt)
		if cleaned == "" {
			if i == rq.CorrectIndex {
				return nil, fmt.Errorf("correct option is empty")
			}
			continue
		}
		if i == rq.CorrectIndex {
			correct = len(q.Options)
		}
		q.Options = append(q.Options, cleaned)
	}
	if correct < 0 {
		return nil, fmt.Errorf("correct_index %d out of range for %d options", rq.CorrectIndex, len(rq.Options))
	}
	q.CorrectIndex = correct

	if len(q.Options) < minOptions || len(q.Options) > maxOptions {
		return nil, fmt.Errorf("got %d options, want %d to %d", len(q.Options), minOptions, maxOptions)
	}

	// Options must be pairwise distinct ignoring case and whitespace; two
	// identical choices make the question unanswerable.
	seen := make(map[string]struct{}, len(q.Options))
	for _, opt := range q.Options {
		key := strings.Join(strings.Fields(strings.ToLower(opt)), " ")
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("duplicate option %q", opt)
		}
		seen[key] = struct{}{}
	}

	return &q, nil
}
