package history

import (
	"context"
	"sync"
)

// MemoryStore keeps substitution history in memory. Counts survive only for
// the process lifetime; useful for tests and single-day sessions.
type MemoryStore struct {
	mu   sync.RWMutex
	runs []RunRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) CountFor(_ context.Context, staffID, date string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, r := range s.runs {
		if r.Date != date {
			continue
		}
		for _, a := range r.Assignments {
			if a.SubstituteID == staffID {
				n++
			}
		}
	}
	return n, nil
}

func (s *MemoryStore) RecordRun(_ context.Context, rec RunRecord) error {
	s.mu.Lock()
	s.runs = append(s.runs, rec)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Close() error { return nil }
