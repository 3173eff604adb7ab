// Package session persists the access and refresh tokens of one profile.
package session

import "sync"

// Token names, shared by every Store implementation.
const (
	AccessTokenKey  = "access_token"
	RefreshTokenKey = "refresh_token"
)

// Store is the narrow token storage the request client depends on.
// An empty token means none is stored. Tokens are never checked for expiry.
type Store interface {
	AccessToken() (string, error)
	RefreshToken() (string, error)
	SetAccessToken(token string) error
	SetRefreshToken(token string) error
	// Clear removes both tokens and is idempotent.
	Clear() error
}

// MemoryStore keeps tokens in process memory only.
type MemoryStore struct {
	mu      sync.RWMutex
	access  string
	refresh string
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (s *MemoryStore) AccessToken() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access, nil
}

func (s *MemoryStore) RefreshToken() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refresh, nil
}

func (s *MemoryStore) SetAccessToken(token string) error {
	s.mu.Lock()
	s.access = token
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) SetRefreshToken(token string) error {
	s.mu.Lock()
	s.refresh = token
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	s.access, s.refresh = "", ""
	s.mu.Unlock()
	return nil
}
