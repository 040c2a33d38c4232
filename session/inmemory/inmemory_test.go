package inmemory

import (
	"testing"
	"time"

	"github.com/mohammad-safakhou/notescan/session"
)

func TestEnsureSessionMintsAndReuses(t *testing.T) {
	t.Parallel()
	st := New()

	s1 := st.EnsureSession("", time.Hour)
	if s1.ID == "" {
		t.Fatal("minted session must carry an id")
	}
	if s1.State != session.StateEmpty {
		t.Fatalf("new session state = %q, want empty", s1.State)
	}

	s2 := st.EnsureSession(s1.ID, time.Hour)
	if s2 != s1 {
		t.Fatal("existing id must return the same session")
	}

	s3 := st.EnsureSession("unknown-id", time.Hour)
	if s3 == s1 {
		t.Fatal("unknown id must mint a fresh session")
	}
	if s3.ID != "unknown-id" {
		t.Fatalf("caller-supplied id should be kept, got %q", s3.ID)
	}
}

func TestSweepRemovesExpired(t *testing.T) {
	t.Parallel()
	st := New()
	dead := st.EnsureSession("", time.Minute)
	dead.ResetDeck("deck-1")
	alive := st.EnsureSession("", time.Hour)

	expired := st.Sweep(time.Now().Add(30 * time.Minute))
	if len(expired) != 1 || expired[0] != dead {
		t.Fatalf("unexpected sweep result: %+v", expired)
	}
	if expired[0].DeckID != "deck-1" {
		t.Fatal("swept session must still expose its deck for cleanup")
	}
	if _, ok := st.GetSession(dead.ID); ok {
		t.Fatal("expired session still retrievable")
	}
	if _, ok := st.GetSession(alive.ID); !ok {
		t.Fatal("live session swept away")
	}
}
