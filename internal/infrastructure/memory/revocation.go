package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/bizos-api/internal/application/ports"
)

var _ ports.TokenRevocationStore = (*RevocationStore)(nil)

// RevocationStore lista de jti revocados en proceso. Se usa cuando no hay Redis configurado.
type RevocationStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

// NewRevocationStore crea la lista vacía.
func NewRevocationStore() *RevocationStore {
	return &RevocationStore{revoked: make(map[string]time.Time), now: time.Now}
}

// Revoke marca tokenID como revocado hasta until si no lo estaba. Purga las entradas vencidas.
func (s *RevocationStore) Revoke(_ context.Context, tokenID string, until time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for id, exp := range s.revoked {
		if !exp.After(now) {
			delete(s.revoked, id)
		}
	}
	if _, ok := s.revoked[tokenID]; ok {
		return false, nil
	}
	s.revoked[tokenID] = until
	return true, nil
}

// IsRevoked informa si tokenID sigue revocado.
func (s *RevocationStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp, ok := s.revoked[tokenID]
	return ok && exp.After(s.now()), nil
}
