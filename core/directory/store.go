package directory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/schoolops/subplan/core/model"
)

// Store holds the staff directory. The planner only reads it; the
// surrounding application owns record maintenance.
type Store interface {
	// ListAll returns every staff member sorted by code. The planner
	// relies on this order for deterministic candidate ties.
	ListAll() ([]model.StaffMember, error)
	Get(id string) (model.StaffMember, error)
	FindByCode(code string) (model.StaffMember, error)
	Add(s model.StaffMember) error
	Update(s model.StaffMember) error
	Remove(id string) error
}

// ErrNotFound is returned when no staff member matches the lookup.
var ErrNotFound = fmt.Errorf("staff member not found")

// MemoryStore is an in-memory Store implementation.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]model.StaffMember
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string]model.StaffMember{}}
}

func (s *MemoryStore) ListAll() ([]model.StaffMember, error) {
	s.mu.RLock()
	out := make([]model.StaffMember, 0, len(s.data))
	for _, m := range s.data {
		out = append(out, m)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (s *MemoryStore) Get(id string) (model.StaffMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.data[id]
	if !ok {
		return model.StaffMember{}, fmt.Errorf("staff %s: %w", id, ErrNotFound)
	}
	return m, nil
}

func (s *MemoryStore) FindByCode(code string) (model.StaffMember, error) {
	code = model.NormalizeCode(code)
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.data {
		if m.Code == code {
			return m, nil
		}
	}
	return model.StaffMember{}, fmt.Errorf("staff code %s: %w", code, ErrNotFound)
}

func (s *MemoryStore) Add(m model.StaffMember) error {
	if err := m.Validate(); err != nil {
		return err
	}
	m.Code = model.NormalizeCode(m.Code)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[m.ID]; ok {
		return fmt.Errorf("staff %s already exists", m.ID)
	}
	for _, other := range s.data {
		if other.Code == m.Code {
			return fmt.Errorf("staff code %s already in use by %s", m.Code, other.ID)
		}
	}
	s.data[m.ID] = m
	return nil
}

func (s *MemoryStore) Update(m model.StaffMember) error {
	if err := m.Validate(); err != nil {
		return err
	}
	m.Code = model.NormalizeCode(m.Code)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[m.ID]; !ok {
		return fmt.Errorf("staff %s: %w", m.ID, ErrNotFound)
	}
	s.data[m.ID] = m
	return nil
}

func (s *MemoryStore) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[id]; !ok {
		return fmt.Errorf("staff %s: %w", id, ErrNotFound)
	}
	delete(s.data, id)
	return nil
}
