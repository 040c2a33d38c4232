// Package misconception flags note statements that contradict the slide they
// refer to. Detection is best-effort: any failure yields fewer findings,
// never a failed scan.
package misconception

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/mohammad-safakhou/notescan/internal/coverage"
	"github.com/mohammad-safakhou/notescan/internal/helpers"
	"github.com/mohammad-safakhou/notescan/models"
	"github.com/mohammad-safakhou/notescan/provider"
)

// maxStatementChecks bounds provider round-trips for very long notes. The
// earliest statements are checked; misconceptions cluster where the student
// actually wrote substance.
const maxStatementChecks = 12

const systemPrompt = `You verify a single statement from a student's notes against the lecture slide it refers to.
If the statement contradicts the slide, reply on one line:
YES|<one short sentence correcting the student>
If the statement is consistent with the slide, or the slide does not address it, reply exactly:
NO`

type Detector struct {
	provider provider.Provider
}

func New(p provider.Provider) *Detector {
	return &Detector{provider: p}
}

// Detect reuses the statement-to-slide association computed during coverage;
// it never re-derives coverage on its own. Only statements tied to a covered
// slide are checked, and a finding is kept only when its text still appears
// verbatim in the notes, so the client can highlight it by exact match.
func (d *Detector) Detect(ctx context.Context, deck *models.SlideDeck, notesText string, cov *coverage.Result) []models.MisconceptionFinding {
	if cov == nil || deck == nil {
		return nil
	}
	slidesByIndex := make(map[int]models.Slide, len(deck.Slides))
	for _, s := range deck.Slides {
		slidesByIndex[s.Index] = s
	}

	var findings []models.MisconceptionFinding
	checked := 0
	for _, stmt := range cov.Statements {
		if checked >= maxStatementChecks {
			break
		}
		if stmt.SlideIndex == 0 || !cov.Verdicts[stmt.SlideIndex].Covered {
			continue
		}
		slide, ok := slidesByIndex[stmt.SlideIndex]
		if !ok || slide.Text == "" {
			continue
		}
		checked++

		verdict, err := d.provider.CompleteJSON(ctx, systemPrompt, checkPrompt(stmt.Text, slide.Text))
		if err != nil {
			log.Printf("[MISCONCEPTION] check failed for slide %d: %v", stmt.SlideIndex, err)
			continue
		}
		suggestion, found := parseVerdict(verdict)
		if !found {
			continue
		}
		// Case-sensitive: the client highlights by exact byte match.
		if !strings.Contains(notesText, stmt.Text) {
			continue
		}
		findings = append(findings, models.MisconceptionFinding{
			Text:       stmt.Text,
			Suggestion: suggestion,
			SlideIndex: stmt.SlideIndex,
		})
	}
	return findings
}

func checkPrompt(statement, slideText string) string {
	return fmt.Sprintf("Slide content:\n%s\n\nStudent statement:\n%s", slideText, statement)
}

// parseVerdict decodes the YES|correction protocol. Anything that is not an
// unambiguous YES with a usable correction counts as NO.
func parseVerdict(raw string) (string, bool) {
	line := strings.TrimSpace(raw)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = strings.TrimSpace(line[:i])
	}
	upper := strings.ToUpper(line)
	if !strings.HasPrefix(upper, "YES") {
		return "", false
	}
	rest := strings.TrimSpace(line[3:])
	rest = strings.TrimSpace(strings.TrimLeft(rest, "|:-"))
	rest = helpers.CleanGeneratedText(rest)
	if rest == "" {
		return "", false
	}
	return rest, true
}
