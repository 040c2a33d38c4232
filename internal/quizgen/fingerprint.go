package quizgen

import (
	"github.com/mohammad-safakhou/notescan/internal/helpers"
	"github.com/mohammad-safakhou/notescan/models"
)

// FingerprintDupThreshold is the Jaccard similarity above which two question
// fingerprints are considered the same question reworded.
const FingerprintDupThreshold = 0.6

// Fingerprint reduces a question to the normalized token set of its text plus
// its correct option. Including the answer catches rewordings that ask for
// the same fact through a different sentence.
func Fingerprint(q models.QuizQuestion) map[string]struct{} {
	tokens := helpers.TokenSet(q.Question)
	for t := range helpers.TokenSet(q.CorrectOption()) {
		tokens[t] = struct{}{}
	}
	return tokens
}

// IsDuplicate reports whether q's fingerprint collides with any prior
// question's.
func IsDuplicate(q models.QuizQuestion, prior []models.QuizQuestion) bool {
	fp := Fingerprint(q)
	for _, p := range prior {
		if helpers.Jaccard(fp, Fingerprint(p)) > FingerprintDupThreshold {
			return true
		}
	}
	return false
}
