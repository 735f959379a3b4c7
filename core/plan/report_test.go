package plan

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolops/subplan/core/model"
)

func TestReportEmptyResult(t *testing.T) {
	rep := Report(&Result{Slots: map[string]*Slot{}})
	assert.Zero(t, rep.Substitutes)
	assert.Zero(t, rep.Mean)
}

func TestReportLoadSpread(t *testing.T) {
	dir, tts, _ := newFixture(t)
	b := addStaff(t, dir, "b", "B")
	addStaff(t, dir, "s1", "S1")
	addStaff(t, dir, "s2", "S2")
	require.NoError(t, tts.SetPeriod(b.ID, model.Monday, "8:05", "Gr9 Math"))
	require.NoError(t, tts.SetPeriod(b.ID, model.Monday, "8:50", "Gr9 Math"))

	p := newPlanner(t, dir, tts, nil)
	res, err := p.Plan(context.Background(), model.AbsenceRequest{Date: monday, Absent: []model.StaffMember{b}})
	require.NoError(t, err)

	rep := Report(res)
	assert.Equal(t, 2, rep.Substitutes)
	assert.Equal(t, 1, rep.PerStaff["S1"])
	assert.Equal(t, 1, rep.PerStaff["S2"])
	assert.InDelta(t, 1.0, rep.Mean, 1e-9)
	assert.InDelta(t, 0.0, rep.StdDev, 1e-9)
	assert.Equal(t, 1, rep.Min)
	assert.Equal(t, 1, rep.Max)
}
