package client

import (
	"context"
	"sync"
)

// Session is the dashboard's only notion of authentication: a flag set by a
// successful login.
type Session struct {
	mu       sync.RWMutex
	loggedIn bool
	email    string
}

func (s *Session) Login(ctx context.Context, auth Authenticator, email, password string) error {
	if err := auth.Login(ctx, email, password); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loggedIn = true
	s.email = email
	return nil
}

func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loggedIn = false
	s.email = ""
}

func (s *Session) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loggedIn
}

func (s *Session) Email() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.email
}
