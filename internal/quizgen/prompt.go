package quizgen

import (
	"fmt"
	"strings"

	"github.com/mohammad-safakhou/notescan/internal/helpers"
	"github.com/mohammad-safakhou/notescan/models"
)

const (
	// maxLectureChars caps the slide text passed to the model so a large deck
	// cannot blow the prompt budget.
	maxLectureChars = 3000
	// maxPriorInPrompt caps how many prior questions are listed; the oldest
	// ones are least likely to collide and can be dropped.
	maxPriorInPrompt = 10
)

const systemPrompt = `You are a tutor writing one multiple-choice quiz question from lecture material.
Respond with a single JSON object and nothing else:
{"topic": "...", "question": "...", "options": ["...", "...", "...", "..."], "correct_index": 0, "explanation": "..."}
Rules:
- The question must be answerable from the provided material alone.
- Provide 3 to 5 plausible options with exactly one correct answer.
- correct_index is the zero-based position of the correct option.
- Keep the explanation to one or two short sentences.`

const strictInstruction = `Your previous reply was unusable. Reply with ONLY the JSON object described above. No markdown, no commentary, no code fences.`

func buildUserPrompt(lecture string, prior []models.QuizQuestion, strict bool) string {
	var b strings.Builder
	b.WriteString("Material the student has covered:\n\n")
	b.WriteString(lecture)
	b.WriteString("\n")

	if len(prior) > 0 {
		digest := prior
		if len(digest) > maxPriorInPrompt {
			digest = digest[len(digest)-maxPriorInPrompt:]
		}
		b.WriteString("\nAlready asked, do NOT repeat or rephrase any of these:\n")
		for i, q := range digest {
			fmt.Fprintf(&b, "%d. %s (answer: %s)\n", i+1, helpers.TruncateWords(q.Question, 25), q.CorrectOption())
		}
		b.WriteString("\nAsk about a different fact or concept from the material.\n")
	}

	if strict {
		b.WriteString("\n")
		b.WriteString(strictInstruction)
		b.WriteString("\n")
	}
	return b.String()
}
