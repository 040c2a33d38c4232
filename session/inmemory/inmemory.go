// Package inmemory is the default session store: a guarded map, suitable for
// a single-process deployment.
package inmemory

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mohammad-safakhou/notescan/session"
)

type Store struct {
	mu       sync.Mutex
	sessions map[string]*session.Session
}

func New() *Store {
	return &Store{sessions: make(map[string]*session.Session)}
}

func (st *Store) EnsureSession(id string, ttl time.Duration) *session.Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	if id != "" {
		if s, ok := st.sessions[id]; ok {
			s.Touch(ttl)
			return s
		}
	}
	if id == "" {
		id = uuid.NewString()
	}
	s := session.New(id, ttl)
	st.sessions[id] = s
	return s
}

func (st *Store) GetSession(id string) (*session.Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	return s, ok
}

func (st *Store) Sweep(now time.Time) []*session.Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	var expired []*session.Session
	for id, s := range st.sessions {
		if s.Expired(now) {
			expired = append(expired, s)
			delete(st.sessions, id)
		}
	}
	return expired
}
