package memory

import (
	"context"
	"sync"

	"codequiz-service/internal/domain"
)

// ResultsStore keeps one payload per slot in process memory.
type ResultsStore struct {
	mu    sync.RWMutex
	slots map[string]domain.ResultsPayload
}

func NewResultsStore() *ResultsStore {
	return &ResultsStore{slots: make(map[string]domain.ResultsPayload)}
}

// Save overwrites whatever payload the slot held.
func (s *ResultsStore) Save(_ context.Context, slot string, payload domain.ResultsPayload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[slot] = payload
	return nil
}

func (s *ResultsStore) Load(_ context.Context, slot string) (domain.ResultsPayload, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	payload, ok := s.slots[slot]
	if !ok {
		return domain.ResultsPayload{}, domain.ErrResultsNotFound
	}
	return payload, nil
}
