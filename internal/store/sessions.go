package store

import (
	"slices"
	"sync"
	"time"

	"voxel.app/studio/common/id"
	"voxel.app/studio/internal/chat"
)

// Session is one chat conversation with its settings.
type Session struct {
	ID         int64
	Transcript chat.Transcript
	Settings   chat.Options
	KeepPairs  int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SessionStore keeps sessions keyed by snowflake ID.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[int64]*Session)}
}

// Create registers a new session with the given settings and returns it.
func (s *SessionStore) Create(settings chat.Options, keepPairs int) Session {
	now := time.Now()
	sess := &Session{
		ID:        id.New(),
		Settings:  settings,
		KeepPairs: keepPairs,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	return snapshot(sess)
}

// Get returns a copy of the session, so callers can read the transcript
// without racing concurrent updates.
func (s *SessionStore) Get(sessionID int64) (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return Session{}, ErrNotFound
	}
	return snapshot(sess), nil
}

// Update applies fn to the session under the store lock. fn may mutate the
// transcript and settings in place.
func (s *SessionStore) Update(sessionID int64, fn func(*Session)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return ErrNotFound
	}
	fn(sess)
	sess.UpdatedAt = time.Now()
	return nil
}

// Reset clears the session's transcript but keeps its settings.
func (s *SessionStore) Reset(sessionID int64) error {
	return s.Update(sessionID, func(sess *Session) {
		sess.Transcript = nil
	})
}

// Delete removes the session. Deleting an unknown session is a no-op.
func (s *SessionStore) Delete(sessionID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

func snapshot(sess *Session) Session {
	out := *sess
	out.Transcript = slices.Clone(sess.Transcript)
	return out
}
