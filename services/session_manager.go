package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/PrathamTiwari-max/fullstack-food-ordering-rbac/utils"
)

// SessionManager hands out one Session per browser session key.
type SessionManager struct {
	auth           Authenticator
	store          TokenStore
	resolveTimeout time.Duration

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewSessionManager(auth Authenticator, store TokenStore, resolveTimeout time.Duration) *SessionManager {
	if resolveTimeout <= 0 {
		resolveTimeout = 10 * time.Second
	}
	return &SessionManager{
		auth:           auth,
		store:          store,
		resolveTimeout: resolveTimeout,
		sessions:       make(map[string]*Session),
	}
}

// NewKey returns a fresh, unguessable session key for a browser cookie.
func (m *SessionManager) NewKey() string {
	return uuid.NewString()
}

// ValidKey reports whether key has the shape NewKey produces.
func (m *SessionManager) ValidKey(key string) bool {
	_, err := uuid.Parse(key)
	return err == nil
}

// Get returns the session for key. The first time a key is seen by this
// process, a token persisted under it is restored and resolved in the
// background; the session reports SessionLoading until that finishes.
//
// Only sessions holding a token stay in memory. An anonymous session is
// handed out fresh on every call until it logs in, and a session is
// dropped again once it logs out or fails to restore.
func (m *SessionManager) Get(ctx context.Context, key string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[key]; ok {
		return s
	}

	s := newSession(key, m.auth, m.store, m.resolveTimeout)
	s.track = m.track

	token, found, err := m.store.Load(ctx, key)
	if err != nil {
		utils.ErrorLogger.Errorf("load token for session %s: %v", key, err)
	}
	if err != nil || !found || token == "" {
		s.settle()
		return s
	}

	s.token = token
	s.status = SessionLoading
	m.sessions[key] = s
	// s is not shared yet, so its generation can be read without s.mu.
	go s.resolve(token, s.gen)
	return s
}

// track keeps s while it holds a token and drops it otherwise. It reads the
// session's current status, so calls arriving out of order still converge
// on the latest state.
func (m *SessionManager) track(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s.Status() != SessionUnauthenticated {
		m.sessions[s.key] = s
		return
	}
	if m.sessions[s.key] == s {
		delete(m.sessions, s.key)
	}
}
