package helpers

import (
	"reflect"
	"testing"
)

func TestCollapseWhitespace(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "already clean", in: "mitosis has four phases", want: "mitosis has four phases"},
		{name: "tabs and newlines", in: "  cell\t\tdivision \n happens ", want: "cell division happens"},
		{name: "empty", in: "   \n\t ", want: ""},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := CollapseWhitespace(tt.in); got != tt.want {
				t.Fatalf("CollapseWhitespace() got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSplitStatements(t *testing.T) {
	t.Parallel()
	got := SplitStatements("Mitosis has four phases. Prophase comes first! Is that right? ok. The cell divides after telophase.")
	want := []string{
		"Mitosis has four phases",
		"Prophase comes first",
		"Is that right",
		"The cell divides after telophase.",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitStatements() got %v, want %v", got, want)
	}
}

func TestSplitStatementsEmpty(t *testing.T) {
	t.Parallel()
	if got := SplitStatements(""); len(got) != 0 {
		t.Fatalf("expected no statements, got %v", got)
	}
	if got := SplitStatements("ok. no. yes."); len(got) != 0 {
		t.Fatalf("expected short fragments to be dropped, got %v", got)
	}
}

func TestJaccard(t *testing.T) {
	t.Parallel()
	a := TokenSet("mitosis has four phases")
	b := TokenSet("Mitosis has four phases: prophase, metaphase, anaphase, telophase.")
	if got := Jaccard(a, b); got < 0.4 {
		t.Fatalf("expected strong overlap, got %f", got)
	}
	c := TokenSet("the krebs cycle produces ATP")
	if got := Jaccard(a, c); got > 0.1 {
		t.Fatalf("expected weak overlap, got %f", got)
	}
	if got := Jaccard(a, TokenSet("")); got != 0 {
		t.Fatalf("empty set must score 0, got %f", got)
	}
}

func TestJaccardSymmetric(t *testing.T) {
	t.Parallel()
	a := TokenSet("dna replication is semi conservative")
	b := TokenSet("replication of dna proceeds semi conservatively")
	if Jaccard(a, b) != Jaccard(b, a) {
		t.Fatalf("Jaccard must be symmetric")
	}
}

func TestCleanGeneratedText(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "strips urls and years",
			in:   "See https://example.com/proof for details from 2019 experiments",
			want: "See for details from experiments",
		},
		{
			name: "strips citations and parentheticals",
			in:   "Mitosis (as shown by Smith et al. 2020) has four phases",
			want: "Mitosis has four phases",
		},
		{name: "plain text untouched", in: "What is the powerhouse of the cell?", want: "What is the powerhouse of the cell?"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanGeneratedText(tt.in); got != tt.want {
				t.Fatalf("CleanGeneratedText() got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTruncateWords(t *testing.T) {
	t.Parallel()
	if got := TruncateWords("one two three", 5); got != "one two three" {
		t.Fatalf("short input must be untouched, got %q", got)
	}
	if got := TruncateWords("one two three four", 2); got != "one two…" {
		t.Fatalf("got %q", got)
	}
}
