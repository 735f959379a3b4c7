package timetable

import (
	"fmt"
	"sync"

	"github.com/schoolops/subplan/core/model"
)

// Store holds per-staff timetables. Get must return a fully-free default
// when no timetable was recorded, never an error for a missing entry:
// absence of data is permissive by design.
type Store interface {
	Get(staffID string) (model.Timetable, error)
	Set(staffID string, tt model.Timetable) error
	SetPeriod(staffID string, day model.Weekday, periodTime, assignment string) error
}

// MemoryStore is an in-memory Store implementation.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]model.Timetable
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string]model.Timetable{}}
}

func (s *MemoryStore) Get(staffID string) (model.Timetable, error) {
	s.mu.RLock()
	tt, ok := s.data[staffID]
	s.mu.RUnlock()
	if !ok {
		return model.NewFreeTimetable(), nil
	}
	return tt.Clone(), nil
}

func (s *MemoryStore) Set(staffID string, tt model.Timetable) error {
	if staffID == "" {
		return fmt.Errorf("staff id is required")
	}
	s.mu.Lock()
	s.data[staffID] = tt.Clone()
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) SetPeriod(staffID string, day model.Weekday, periodTime, assignment string) error {
	if model.PeriodNumber(periodTime) == 0 {
		return fmt.Errorf("unknown period time %q", periodTime)
	}
	if assignment == "" {
		assignment = model.Free
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	tt, ok := s.data[staffID]
	if !ok {
		tt = model.NewFreeTimetable()
		s.data[staffID] = tt
	}
	periods, ok := tt[day]
	if !ok {
		periods = map[string]string{}
		tt[day] = periods
	}
	periods[periodTime] = assignment
	return nil
}
