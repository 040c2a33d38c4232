// Package highlight turns misconception findings into byte-offset patches a
// client can paint onto the original notes document without re-searching the
// text itself.
package highlight

import (
	"sort"
	"strings"

	"github.com/mohammad-safakhou/notescan/models"
)

// Patch marks documentText[Start:End] as a misconception. Offsets are byte
// offsets into the exact document the patches were built from.
type Patch struct {
	Start      int    `json:"start"`
	End        int    `json:"end"`
	Text       string `json:"text"`
	Suggestion string `json:"suggestion"`
	SlideIndex int    `json:"slide_index"`
}

// Build locates each finding in documentText and returns non-overlapping
// patches sorted by start offset. Findings that no longer occur verbatim are
// skipped. When two patches overlap the one starting earlier wins; a double
// highlight confuses more than a missing one.
func Build(documentText string, findings []models.MisconceptionFinding) []Patch {
	patches := make([]Patch, 0, len(findings))
	for _, f := range findings {
		if f.Text == "" {
			continue
		}
		start := strings.Index(documentText, f.Text)
		if start < 0 {
			continue
		}
		patches = append(patches, Patch{
			Start:      start,
			End:        start + len(f.Text),
			Text:       f.Text,
			Suggestion: f.Suggestion,
			SlideIndex: f.SlideIndex,
		})
	}

	sort.Slice(patches, func(i, j int) bool {
		if patches[i].Start != patches[j].Start {
			return patches[i].Start < patches[j].Start
		}
		return patches[i].End > patches[j].End
	})

	out := patches[:0]
	lastEnd := -1
	for _, p := range patches {
		if p.Start < lastEnd {
			continue
		}
		out = append(out, p)
		lastEnd = p.End
	}
	return out
}
