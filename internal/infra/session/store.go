// Package session keeps the signed-in identity cache. It is the Go-side
// stand-in for the browser's locally stored user object: written at login,
// read to resolve the current user, never consulted by the chat core
// directly.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	domainuser "compramex/internal/domain/user"
)

type entry struct {
	identity  domainuser.Identity
	expiresAt time.Time
}

// Store maps opaque bearer tokens to cached identities.
type Store struct {
	mu    sync.RWMutex
	ttl   time.Duration
	items map[string]entry
}

// NewStore builds an empty session cache.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Store{
		ttl:   ttl,
		items: make(map[string]entry),
	}
}

// Put caches an identity and returns its opaque token.
func (s *Store) Put(identity domainuser.Identity) string {
	token := uuid.NewString()
	s.mu.Lock()
	s.items[token] = entry{identity: identity, expiresAt: time.Now().Add(s.ttl)}
	s.mu.Unlock()
	return token
}

// Resolve returns the identity for a token, if present and unexpired.
func (s *Store) Resolve(token string) (domainuser.Identity, bool) {
	s.mu.RLock()
	e, ok := s.items[token]
	s.mu.RUnlock()
	if !ok {
		return domainuser.Identity{}, false
	}
	if time.Now().After(e.expiresAt) {
		s.mu.Lock()
		delete(s.items, token)
		s.mu.Unlock()
		return domainuser.Identity{}, false
	}
	return e.identity, true
}

// Drop forgets a token at logout.
func (s *Store) Drop(token string) {
	s.mu.Lock()
	delete(s.items, token)
	s.mu.Unlock()
}
