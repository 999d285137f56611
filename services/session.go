package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/PrathamTiwari-max/fullstack-food-ordering-rbac/models"
	"github.com/PrathamTiwari-max/fullstack-food-ordering-rbac/utils"
)

type SessionStatus string

const (
	SessionLoading         SessionStatus = "loading"
	SessionAuthenticated   SessionStatus = "authenticated"
	SessionUnauthenticated SessionStatus = "unauthenticated"
)

// Authenticator is the slice of the API a session needs.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (string, error)
	Me(ctx context.Context, token string) (*models.User, error)
}

// Session is the state of one browser: its bearer token, the profile behind
// it and whether that profile is known yet. It is handed to views
// explicitly; nothing reads it from package state.
type Session struct {
	key            string
	auth           Authenticator
	store          TokenStore
	resolveTimeout time.Duration
	now            func() time.Time

	mu     sync.RWMutex
	status SessionStatus
	token  string
	user   *models.User
	// gen changes on every login/logout so a late resolution can tell that
	// its result is stale.
	gen uint64

	// persistMu orders writes to the token store so a stale generation
	// never overwrites a newer one.
	persistMu sync.Mutex

	settleOnce sync.Once
	settled    chan struct{}

	// track lets the owning manager re-check whether to keep this session
	// in memory after its state changed.
	track func(s *Session)
}

func newSession(key string, auth Authenticator, store TokenStore, resolveTimeout time.Duration) *Session {
	return &Session{
		key:            key,
		auth:           auth,
		store:          store,
		resolveTimeout: resolveTimeout,
		now:            time.Now,
		status:         SessionUnauthenticated,
		settled:        make(chan struct{}),
	}
}

func (s *Session) Key() string {
	return s.key
}

// CurrentUser returns the cached profile (nil unless authenticated) and the
// session status.
func (s *Session) CurrentUser() (*models.User, SessionStatus) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user, s.status
}

func (s *Session) Status() SessionStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Token returns the bearer token, or "" when there is none.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Wait blocks until the session is no longer loading or ctx is done, and
// returns the status at that moment.
func (s *Session) Wait(ctx context.Context) SessionStatus {
	select {
	case <-s.settled:
	case <-ctx.Done():
	}
	return s.Status()
}

// Login authenticates against the API and loads the profile. Any failure,
// including an unreachable backend, is reported as ErrAuthentication and
// leaves the session as it was.
func (s *Session) Login(ctx context.Context, username, password string) error {
	token, err := s.auth.Login(ctx, username, password)
	if err != nil {
		utils.InfoLogger.Infof("login failed for %q: %v", username, err)
		return fmt.Errorf("%w: %v", ErrAuthentication, err)
	}

	user, err := s.auth.Me(ctx, token)
	if err != nil {
		utils.InfoLogger.Infof("profile load after login failed for %q: %v", username, err)
		return fmt.Errorf("%w: %v", ErrAuthentication, err)
	}

	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.token = token
	s.user = user
	s.status = SessionAuthenticated
	s.mu.Unlock()
	s.settle()

	s.persist(context.WithoutCancel(ctx), gen, token)
	s.tracked()
	utils.InfoLogger.Infof("user %s (%s, %s) logged in", user.Username, user.Role, user.Country)
	return nil
}

// Logout drops token and profile. Calling it again changes nothing.
// Requests already in flight keep the token they started with.
func (s *Session) Logout() {
	s.clear()
}

// resolve turns a persisted token into a profile. It runs once, in the
// background, for a session restored from the token store. gen is the
// generation the token belongs to; a login or logout in the meantime wins.
func (s *Session) resolve(token string, gen uint64) {
	user, err := s.lookup(token)

	s.mu.Lock()
	if s.gen != gen {
		// A login or logout happened meanwhile and owns the state now.
		s.mu.Unlock()
		return
	}
	if err != nil {
		s.resetLocked()
		gen = s.gen
		s.mu.Unlock()
		utils.InfoLogger.Infof("session %s could not be restored: %v", s.key, err)
		s.persist(context.Background(), gen, "")
		s.settle()
		s.tracked()
		return
	}
	s.user = user
	s.status = SessionAuthenticated
	s.mu.Unlock()
	s.settle()
}

func (s *Session) lookup(token string) (*models.User, error) {
	presence, err := utils.DecodeTokenPresence(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthentication, err)
	}
	if presence.Expired(s.now()) {
		return nil, fmt.Errorf("%w: token expired", ErrAuthentication)
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.resolveTimeout)
	defer cancel()
	return s.auth.Me(ctx, token)
}

func (s *Session) clear() {
	s.mu.Lock()
	s.resetLocked()
	gen := s.gen
	s.mu.Unlock()
	s.persist(context.Background(), gen, "")
	s.settle()
	s.tracked()
}

func (s *Session) resetLocked() {
	s.gen++
	s.token = ""
	s.user = nil
	s.status = SessionUnauthenticated
}

// persist writes token (or deletes the row when token is empty) unless the
// session has moved past generation gen.
func (s *Session) persist(ctx context.Context, gen uint64, token string) {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	s.mu.RLock()
	stale := s.gen != gen
	s.mu.RUnlock()
	if stale {
		return
	}

	var err error
	if token == "" {
		err = s.store.Delete(ctx, s.key)
	} else {
		err = s.store.Save(ctx, s.key, token)
	}
	if err != nil {
		utils.ErrorLogger.Errorf("token store for session %s: %v", s.key, err)
	}
}

func (s *Session) settle() {
	s.settleOnce.Do(func() { close(s.settled) })
}

func (s *Session) tracked() {
	if s.track != nil {
		s.track(s)
	}
}
