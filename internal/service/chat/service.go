package chat

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	model "github.com/eduspark/backend/internal/model/chat"
)

var ErrSessionNotFound = errors.New("session not found")

// session pairs a transcript with its own lock so appends to one
// conversation never contend with appends to another.
type session struct {
	mu    sync.Mutex
	meta  model.Session
	turns []model.Turn
}

// Store owns every session transcript for the process lifetime. Nothing
// is persisted; a restart starts from an empty map.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*session
}

// NewStore bootstraps the in-memory session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*session)}
}

// Resolve returns the session id a request should use. A candidate the
// store already knows passes through unchanged; an empty or unknown
// candidate mints a fresh session with an empty transcript.
func (s *Store) Resolve(_ context.Context, candidateID string) (string, bool) {
	if candidateID != "" {
		s.mu.RLock()
		_, ok := s.sessions[candidateID]
		s.mu.RUnlock()
		if ok {
			return candidateID, false
		}
	}

	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = &session{
		meta:  model.Session{ID: id, CreatedAt: time.Now().UTC()},
		turns: make([]model.Turn, 0, 16),
	}
	s.mu.Unlock()

	return id, true
}

// Append records a single turn on an existing session.
func (s *Store) Append(ctx context.Context, sessionID string, turn model.Turn) error {
	return s.AppendExchange(ctx, sessionID, turn)
}

// AppendExchange records one or more turns under a single session lock,
// so a reader never observes a half-recorded user/bot exchange.
func (s *Store) AppendExchange(_ context.Context, sessionID string, turns ...model.Turn) error {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return ErrSessionNotFound
	}

	now := time.Now().UTC()

	sess.mu.Lock()
	defer sess.mu.Unlock()
	for _, turn := range turns {
		if turn.CreatedAt.IsZero() {
			turn.CreatedAt = now
		}
		sess.turns = append(sess.turns, turn)
	}
	return nil
}

// History returns a copy of the transcript in append order. Unknown
// sessions read as empty, not as an error.
func (s *Store) History(_ context.Context, sessionID string) []model.Turn {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return []model.Turn{}
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	copied := make([]model.Turn, len(sess.turns))
	copy(copied, sess.turns)
	return copied
}

// Reset drops a session and its transcript. Resetting an unknown
// session is a no-op.
func (s *Store) Reset(_ context.Context, sessionID string) {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
}

// Len reports how many sessions are live.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
