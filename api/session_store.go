package api

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"weather-widget/controller"
)

// ControllerFactory builds the controller for a new session
type ControllerFactory func() *controller.Controller

type session struct {
	ctrl     *controller.Controller
	lastSeen time.Time
}

// SessionStore holds one controller per browser session, keyed by session id
type SessionStore struct {
	data    map[string]*session
	mutex   sync.RWMutex
	factory ControllerFactory
	now     func() time.Time
}

// NewSessionStore creates a new in-memory session store
func NewSessionStore(factory ControllerFactory) *SessionStore {
	return &SessionStore{
		data:    make(map[string]*session),
		factory: factory,
		now:     time.Now,
	}
}

// Get retrieves the controller of a session and marks the session as seen
func (s *SessionStore) Get(id string) (*controller.Controller, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	sess, exists := s.data[id]
	if !exists {
		return nil, false
	}
	sess.lastSeen = s.now()
	return sess.ctrl, true
}

// Create starts a new session with a fresh controller
func (s *SessionStore) Create() (string, *controller.Controller) {
	id := uuid.NewString()
	ctrl := s.factory()

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.data[id] = &session{ctrl: ctrl, lastSeen: s.now()}
	return id, ctrl
}

// Len returns the number of live sessions
func (s *SessionStore) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.data)
}

// PruneIdle removes sessions not seen within maxAge
func (s *SessionStore) PruneIdle(maxAge time.Duration) int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	cutoff := s.now().Add(-maxAge)
	prunedCount := 0

	for id, sess := range s.data {
		if sess.lastSeen.Before(cutoff) {
			delete(s.data, id)
			prunedCount++
		}
	}

	return prunedCount
}
