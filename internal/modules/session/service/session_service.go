package service

import (
	"sync"

	"shiftware/internal/modules/session/domain"
)

// SessionService is the single mutation boundary for session state. All
// fields are private and every transition goes through a named method;
// nothing else in the repo writes session state. Bubble Tea commands run
// on their own goroutines, so reads and writes are mutex-guarded.
type SessionService struct {
	mu            sync.RWMutex
	authenticated bool
	token         string
	email         string
	profile       domain.Profile
}

func NewSessionService() *SessionService {
	return &SessionService{}
}

// Adopt installs a server-issued credential as the active session. The
// token is swapped as one value; there is no partially-authenticated state.
func (s *SessionService) Adopt(token, email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authenticated = token != ""
	s.token = token
	s.email = email
}

func (s *SessionService) SetProfile(p domain.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = p
	if s.email == "" {
		s.email = p.Email
	}
}

// Clear resets every field to its initial value.
func (s *SessionService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authenticated = false
	s.token = ""
	s.email = ""
	s.profile = domain.Profile{}
}

// Token implements rest.TokenSource.
func (s *SessionService) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *SessionService) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

func (s *SessionService) Snapshot() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.Session{
		Authenticated: s.authenticated,
		Token:         s.token,
		Email:         s.email,
		Profile:       s.profile,
	}
}
