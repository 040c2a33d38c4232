package quizgen

import (
	"strings"
	"testing"

	"github.com/mohammad-safakhou/notescan/models"
)

func TestParseQuestion(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		raw     string
		wantErr bool
		check   func(t *testing.T, q *models.QuizQuestion)
	}{
		{
			name: "plain object",
			raw:  `{"topic":"bio","question":"Which phase starts mitosis?","options":["Prophase","Metaphase","Anaphase","Telophase"],"correct_index":0,"explanation":"Prophase comes first."}`,
			check: func(t *testing.T, q *models.QuizQuestion) {
				if q.CorrectOption() != "Prophase" {
					t.Fatalf("wrong correct option: %+v", q)
				}
				if len(q.Options) != 4 {
					t.Fatalf("want 4 options, got %d", len(q.Options))
				}
			},
		},
		{
			name: "fenced with preamble",
			raw:  "Here you go:\n```json\n{\"topic\":\"bio\",\"question\":\"Which phase starts mitosis?\",\"options\":[\"Prophase\",\"Metaphase\",\"Anaphase\"],\"correct_index\":0,\"explanation\":\"ok\"}\n```",
			check: func(t *testing.T, q *models.QuizQuestion) {
				if q.Question != "Which phase starts mitosis?" {
					t.Fatalf("unexpected question: %q", q.Question)
				}
			},
		},
		{
			name: "empty option dropped and index remapped",
			raw:  `{"question":"Pick one.","options":["","Metaphase","Anaphase","Prophase"],"correct_index":3,"explanation":""}`,
			check: func(t *testing.T, q *models.QuizQuestion) {
				if len(q.Options) != 3 || q.CorrectOption() != "Prophase" {
					t.Fatalf("remap failed: %+v", q)
				}
			},
		},
		{
			name: "citation noise scrubbed",
			raw:  `{"question":"Who described mitosis (see https://example.com, Flemming et al. 1882)?","options":["Flemming","Darwin","Mendel"],"correct_index":0,"explanation":"ok"}`,
			check: func(t *testing.T, q *models.QuizQuestion) {
				if strings.Contains(q.Question, "http") || strings.Contains(q.Question, "et al") {
					t.Fatalf("noise survived cleaning: %q", q.Question)
				}
			},
		},
		{
			name:    "not json",
			raw:     "I cannot answer that.",
			wantErr: true,
		},
		{
			name:    "too few options",
			raw:     `{"question":"Pick.","options":["A","B"],"correct_index":0,"explanation":""}`,
			wantErr: true,
		},
		{
			name:    "too many options",
			raw:     `{"question":"Pick.","options":["A","B","C","D","E","F"],"correct_index":0,"explanation":""}`,
			wantErr: true,
		},
		{
			name:    "correct index out of range",
			raw:     `{"question":"Pick.","options":["A","B","C"],"correct_index":3,"explanation":""}`,
			wantErr: true,
		},
		{
			name:    "negative correct index",
			raw:     `{"question":"Pick.","options":["A","B","C"],"correct_index":-1,"explanation":""}`,
			wantErr: true,
		},
		{
			name:    "duplicate options ignoring case",
			raw:     `{"question":"Pick.","options":["Prophase","prophase","Anaphase"],"correct_index":2,"explanation":""}`,
			wantErr: true,
		},
		{
			name:    "empty question",
			raw:     `{"question":"  ","options":["A","B","C"],"correct_index":0,"explanation":""}`,
			wantErr: true,
		},
		{
			name:    "correct option empty",
			raw:     `{"question":"Pick.","options":["","B","C","D"],"correct_index":0,"explanation":""}`,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			q, err := parseQuestion(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseQuestion(%q) expected error, got %+v", tt.raw, q)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseQuestion() error = %v", err)
			}
			if tt.check != nil {
				tt.check(t, q)
			}
		})
	}
}

func TestParseQuestionTruncatesExplanation(t *testing.T) {
	t.Parallel()
	long := strings.Repeat("word ", 60)
	raw := `{"question":"Pick.","options":["A","B","C"],"correct_index":0,"explanation":"` + strings.TrimSpace(long) + `"}`
	q, err := parseQuestion(raw)
	if err != nil {
		t.Fatalf("parseQuestion() error = %v", err)
	}
	if got := len(strings.Fields(q.Explanation)); got > maxExplanationWords {
		t.Fatalf("explanation not truncated: %d words", got)
	}
}

func TestIsDuplicate(t *testing.T) {
	t.Parallel()
	prior := []models.QuizQuestion{{
		Question:     "Which phase starts mitosis?",
		Options:      []string{"Prophase", "Metaphase", "Anaphase"},
		CorrectIndex: 0,
	}}

	reworded := models.QuizQuestion{
		Question:     "Which phase starts mitosis first?",
		Options:      []string{"Prophase", "Metaphase", "Anaphase"},
		CorrectIndex: 0,
	}
	if !IsDuplicate(reworded, prior) {
		t.Fatal("reworded question with the same answer should collide")
	}

	fresh := models.QuizQuestion{
		Question:     "Which organelle makes energy for the cell?",
		Options:      []string{"Mitochondrion", "Nucleus", "Ribosome"},
		CorrectIndex: 0,
	}
	if IsDuplicate(fresh, prior) {
		t.Fatal("unrelated question should not collide")
	}
	if IsDuplicate(fresh, nil) {
		t.Fatal("no prior questions can never collide")
	}
}
