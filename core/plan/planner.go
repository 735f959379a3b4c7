package plan

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/schoolops/subplan/core/directory"
	"github.com/schoolops/subplan/core/events"
	"github.com/schoolops/subplan/core/history"
	"github.com/schoolops/subplan/core/logger"
	"github.com/schoolops/subplan/core/model"
	"github.com/schoolops/subplan/core/timetable"
	"github.com/schoolops/subplan/internal/eventbus"
)

// Candidate is one possible substitute for a slot, with the fairness count
// observed when the slot was computed.
type Candidate struct {
	SubstituteID string `json:"substitute_id"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	TodayCount   int    `json:"today_count"`
	Selected     bool   `json:"selected"`
}

// Slot is the unit of assignment: one absent staff member's one covered
// period. Candidates are ordered by ascending TodayCount; exactly one is
// selected.
type Slot struct {
	Key        string      `json:"key"`
	AbsentCode string      `json:"absent_code"`
	PeriodTime string      `json:"period_time"`
	Class      string      `json:"class"`
	Candidates []Candidate `json:"candidates"`
}

// SelectedCandidate returns the currently selected candidate, or nil when
// the list is empty.
func (s *Slot) SelectedCandidate() *Candidate {
	for i := range s.Candidates {
		if s.Candidates[i].Selected {
			return &s.Candidates[i]
		}
	}
	return nil
}

// UnassignedSlot records a period that could not be covered. This is a
// normal outcome, not an error.
type UnassignedSlot struct {
	AbsentCode string `json:"absent_code"`
	PeriodTime string `json:"period_time"`
	Class      string `json:"class"`
}

// Result holds the outcome of one planning run. It is created fresh per
// run and owned by the caller; nothing in it is shared across runs.
type Result struct {
	RunID       string           `json:"run_id"`
	Date        string           `json:"date"`
	Weekday     model.Weekday    `json:"weekday"`
	AbsentOrder []string         `json:"absent_order"`
	SlotOrder   []string         `json:"slot_order"`
	Slots       map[string]*Slot `json:"slots"`
	Unassigned  []UnassignedSlot `json:"unassigned"`
}

// SlotKey builds the key a slot is addressed by.
func SlotKey(absentCode, periodTime string) string {
	return fmt.Sprintf("%s-%s", absentCode, periodTime)
}

// Planner runs the greedy substitution assignment. All mutable state
// (occupancy, fairness counters) is scoped to a single Plan call.
type Planner struct {
	directory  directory.Store
	timetables timetable.Store
	history    history.Store
	log        logger.Logger
	bus        eventbus.EventBus
}

// NewPlanner creates a Planner. The history store and event bus are
// optional; without history every fairness seed is zero.
func NewPlanner(dir directory.Store, tts timetable.Store, hist history.Store, log logger.Logger, bus eventbus.EventBus) (*Planner, error) {
	if dir == nil || tts == nil || log == nil {
		return nil, fmt.Errorf("plan: nil parameter provided to NewPlanner")
	}
	return &Planner{directory: dir, timetables: tts, history: hist, log: log, bus: bus}, nil
}

// Plan executes one deterministic planning run for the request. Input
// validation happens before any store access; collaborator failures are
// wrapped in StoreError and returned without retry.
func (p *Planner) Plan(ctx context.Context, req model.AbsenceRequest) (*Result, error) {
	day, err := model.WeekdayOf(req.Date)
	if err != nil {
		return nil, &InvalidDateError{Date: req.Date, Err: err}
	}
	if len(req.Absent) == 0 {
		return nil, ErrEmptyAbsenceList
	}
	absent := dedupeAbsent(req.Absent)

	start := time.Now()
	staff, err := p.directory.ListAll()
	if err != nil {
		return nil, &StoreError{Op: "directory list", Err: err}
	}

	timetables, err := p.fetchTimetables(staff, absent)
	if err != nil {
		return nil, err
	}
	seeds, err := p.seedCounts(ctx, req.Date, staff)
	if err != nil {
		return nil, err
	}

	resolver := NewResolver(timetables)
	tracker := NewTracker(seeds)
	occupied := make(map[string]bool)
	absentIDs := make(map[string]bool, len(absent))
	for _, a := range absent {
		absentIDs[a.ID] = true
	}

	res := &Result{
		RunID:   uuid.NewString(),
		Date:    req.Date,
		Weekday: day,
		Slots:   map[string]*Slot{},
	}
	for _, a := range absent {
		res.AbsentOrder = append(res.AbsentOrder, a.Code)
		tt := timetables[a.ID]
		for _, period := range model.TeachingPeriods {
			class := tt.Assignment(day, period.Time)
			if class == model.Free {
				continue
			}
			pool := buildPool(staff, absentIDs, occupied, resolver, tracker, day, period.Time)
			if len(pool) == 0 {
				res.Unassigned = append(res.Unassigned, UnassignedSlot{
					AbsentCode: a.Code,
					PeriodTime: period.Time,
					Class:      class,
				})
				slotsUnassigned.Inc()
				p.log.Warnf("no substitute available for %s %s (%s)", a.Code, period.Time, class)
				continue
			}
			pool[0].Selected = true
			occupied[pool[0].SubstituteID] = true
			tracker.Record(pool[0].SubstituteID)

			key := SlotKey(a.Code, period.Time)
			res.Slots[key] = &Slot{
				Key:        key,
				AbsentCode: a.Code,
				PeriodTime: period.Time,
				Class:      class,
				Candidates: pool,
			}
			res.SlotOrder = append(res.SlotOrder, key)
			slotsAssigned.Inc()
		}
	}

	planRuns.WithLabelValues(string(day)).Inc()
	runDuration.Observe(time.Since(start).Seconds())
	p.log.Infof("plan run %s for %s: %d slots assigned, %d unassigned",
		res.RunID, req.Date, len(res.SlotOrder), len(res.Unassigned))
	if p.bus != nil {
		p.bus.Publish(events.RunCompletedEvent{
			RunID:      res.RunID,
			Date:       req.Date,
			Assigned:   len(res.SlotOrder),
			Unassigned: len(res.Unassigned),
		})
	}
	return res, nil
}

// fetchTimetables reads each needed timetable exactly once: one fetch per
// staff member, merged before the deterministic pass begins.
func (p *Planner) fetchTimetables(staff, absent []model.StaffMember) (map[string]model.Timetable, error) {
	timetables := make(map[string]model.Timetable, len(staff)+len(absent))
	for _, lists := range [][]model.StaffMember{staff, absent} {
		for _, m := range lists {
			if _, ok := timetables[m.ID]; ok {
				continue
			}
			tt, err := p.timetables.Get(m.ID)
			if err != nil {
				return nil, &StoreError{Op: fmt.Sprintf("timetable fetch for %s", m.ID), Err: err}
			}
			timetables[m.ID] = tt
		}
	}
	return timetables, nil
}

// seedCounts reads the historical same-date substitution count for every
// staff member. Without a history store all seeds are zero.
func (p *Planner) seedCounts(ctx context.Context, date string, staff []model.StaffMember) (map[string]int, error) {
	if p.history == nil {
		return nil, nil
	}
	seeds := make(map[string]int, len(staff))
	for _, m := range staff {
		n, err := p.history.CountFor(ctx, m.ID, date)
		if err != nil {
			return nil, &StoreError{Op: fmt.Sprintf("history count for %s", m.ID), Err: err}
		}
		seeds[m.ID] = n
	}
	return seeds, nil
}

// buildPool assembles the eligible substitutes for one slot, sorted by
// ascending fairness count. Ties keep the directory's code-sorted order.
func buildPool(staff []model.StaffMember, absent, occupied map[string]bool, resolver *Resolver, tracker *Tracker, day model.Weekday, periodTime string) []Candidate {
	var pool []Candidate
	for _, m := range staff {
		if absent[m.ID] || occupied[m.ID] {
			continue
		}
		if !resolver.IsFree(m.ID, day, periodTime) {
			continue
		}
		pool = append(pool, Candidate{
			SubstituteID: m.ID,
			Code:         m.Code,
			Name:         m.Name,
			TodayCount:   tracker.CountFor(m.ID),
		})
	}
	sort.SliceStable(pool, func(i, j int) bool { return pool[i].TodayCount < pool[j].TodayCount })
	return pool
}

// dedupeAbsent drops repeated staff while preserving first-seen order.
func dedupeAbsent(in []model.StaffMember) []model.StaffMember {
	seen := make(map[string]bool, len(in))
	out := make([]model.StaffMember, 0, len(in))
	for _, m := range in {
		if seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		out = append(out, m)
	}
	return out
}
