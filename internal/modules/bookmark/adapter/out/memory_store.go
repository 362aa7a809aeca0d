package out

import (
	"context"
	"sync"

	"formnav/internal/modules/bookmark/domain"
)

// MemoryStore keeps the encoded record in process memory. SetSaveError makes
// subsequent saves fail until it is cleared.
type MemoryStore struct {
	mu      sync.Mutex
	raw     []byte
	saveErr error
	saves   int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(_ context.Context, defaults domain.List) (domain.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.raw == nil {
		return defaults, nil
	}
	return decodeRecord(s.raw)
}

func (s *MemoryStore) Save(ctx context.Context, list domain.List) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	payload, err := encodeRecord(list)
	if err != nil {
		return err
	}
	s.raw = payload
	s.saves++
	return nil
}

func (s *MemoryStore) SetSaveError(err error) {
	s.mu.Lock()
	s.saveErr = err
	s.mu.Unlock()
}

// Saves counts successful writes.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}
