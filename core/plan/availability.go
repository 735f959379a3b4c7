package plan

import "github.com/schoolops/subplan/core/model"

// Resolver answers availability questions from timetables fetched once at
// run start. Absence of data is never fatal, only permissive: a staff
// member with no timetable, or no entry for the asked day and period, is
// free.
type Resolver struct {
	timetables map[string]model.Timetable
}

// NewResolver builds a Resolver over the batch-fetched timetables, keyed
// by staff ID.
func NewResolver(timetables map[string]model.Timetable) *Resolver {
	if timetables == nil {
		timetables = map[string]model.Timetable{}
	}
	return &Resolver{timetables: timetables}
}

// IsFree reports whether the staff member has no class obligation for the
// given day and period.
func (r *Resolver) IsFree(staffID string, day model.Weekday, periodTime string) bool {
	tt, ok := r.timetables[staffID]
	if !ok {
		return true
	}
	return tt.Assignment(day, periodTime) == model.Free
}
