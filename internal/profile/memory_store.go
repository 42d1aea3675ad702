package profile

import (
	"context"
	"sync"

	"github.com/congo-pay/onboarding/internal/onboarding"
)

// MemoryStore is an in-memory profile store.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]onboarding.ProfileRecord
}

// NewMemoryStore builds an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{profiles: make(map[string]onboarding.ProfileRecord)}
}

func (s *MemoryStore) WriteProfile(_ context.Context, record onboarding.ProfileRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.profiles[record.AccountID]; exists {
		return ErrProfileExists
	}
	s.profiles[record.AccountID] = record
	return nil
}

func (s *MemoryStore) Get(_ context.Context, accountID string) (onboarding.ProfileRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.profiles[accountID]
	if !ok {
		return onboarding.ProfileRecord{}, ErrProfileNotFound
	}
	return record, nil
}
