package helpers

import (
	"regexp"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	statementRe  = regexp.MustCompile(`[.!?]\s+`)
	urlRe        = regexp.MustCompile(`http[s]?://\S+`)
	wwwRe        = regexp.MustCompile(`www\.\S+`)
	etAlRe       = regexp.MustCompile(`(?i)\bet\s+al\.?`)
	parenRe      = regexp.MustCompile(`\([^)]*\)`)
	yearRe       = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	tokenRe      = regexp.MustCompile(`[a-z0-9]+`)
)

// minStatementLen filters out fragments too short to carry a claim.
const minStatementLen = 10

// CollapseWhitespace trims s and folds every whitespace run into one space.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// SplitStatements segments free-form notes text into sentence-level
// statements. Fragments shorter than ten characters are dropped; they are
// headings, bullets or stray punctuation, not claims worth checking.
func SplitStatements(text string) []string {
	parts := statementRe.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if len(p) > minStatementLen {
			out = append(out, p)
		}
	}
	return out
}

// TokenSet lowercases s and returns its set of alphanumeric tokens.
func TokenSet(s string) map[string]struct{} {
	tokens := tokenRe.FindAllString(strings.ToLower(s), -1)
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

// Jaccard returns |a∩b| / |a∪b| for two token sets; 0 when either is empty.
func Jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for t := range a {
		if _, ok := b[t]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// CleanGeneratedText scrubs model output destined for students: URLs,
// citation fragments, parentheticals and bare years are removed and
// whitespace collapsed. Generated questions must read as if written from the
// lecture alone.
func CleanGeneratedText(s string) string {
	s = urlRe.ReplaceAllString(s, "")
	s = wwwRe.ReplaceAllString(s, "")
	s = etAlRe.ReplaceAllString(s, "")
	s = parenRe.ReplaceAllString(s, "")
	s = yearRe.ReplaceAllString(s, "")
	return CollapseWhitespace(s)
}

// TruncateWords caps s at n words, appending an ellipsis when cut.
func TruncateWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) <= n {
		return s
	}
	return strings.Join(words[:n], " ") + "…"
}
