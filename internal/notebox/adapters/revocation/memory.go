// Package revocation содержит хранилища отозванных токенов сессии.
package revocation

import (
	"context"
	"sync"
	"time"

	"notebox/internal/notebox/ports/repositories"
)

// MemoryStore хранит отозванные токены в памяти процесса.
type MemoryStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

// NewMemoryStore создает хранилище в памяти. now может быть nil.
func NewMemoryStore(now func() time.Time) repositories.RevocationStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{
		revoked: make(map[string]time.Time),
		now:     now,
	}
}

// Revoke запоминает токен до момента until.
func (s *MemoryStore) Revoke(_ context.Context, tokenID string, until time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeLocked()
	if until.After(s.now()) {
		s.revoked[tokenID] = until
	}
	return nil
}

// IsRevoked сообщает, отозван ли токен.
func (s *MemoryStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	until, ok := s.revoked[tokenID]
	if !ok {
		return false, nil
	}
	if !until.After(s.now()) {
		delete(s.revoked, tokenID)
		return false, nil
	}
	return true, nil
}

func (s *MemoryStore) purgeLocked() {
	now := s.now()
	for id, until := range s.revoked {
		if !until.After(now) {
			delete(s.revoked, id)
		}
	}
}
