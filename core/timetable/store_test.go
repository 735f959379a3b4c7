package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolops/subplan/core/model"
)

func TestGetMissingReturnsFreeDefault(t *testing.T) {
	s := NewMemoryStore()
	tt, err := s.Get("unknown")
	require.NoError(t, err)
	for _, day := range model.Weekdays {
		for _, p := range model.TeachingPeriods {
			assert.Equal(t, model.Free, tt.Assignment(day, p.Time))
		}
	}
}

func TestSetPeriod(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.SetPeriod("t1", model.Monday, "8:05", "Gr9 Math"))
	tt, err := s.Get("t1")
	require.NoError(t, err)
	assert.Equal(t, "Gr9 Math", tt.Assignment(model.Monday, "8:05"))
	assert.Equal(t, model.Free, tt.Assignment(model.Monday, "8:50"))

	if err := s.SetPeriod("t1", model.Monday, "7:00", "Gr9 Math"); err == nil {
		t.Errorf("unknown period time should be rejected")
	}
}

func TestGetReturnsCopy(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.SetPeriod("t1", model.Monday, "8:05", "Gr9 Math"))
	tt, _ := s.Get("t1")
	tt[model.Monday]["8:05"] = "tampered"
	again, _ := s.Get("t1")
	assert.Equal(t, "Gr9 Math", again.Assignment(model.Monday, "8:05"))
}
