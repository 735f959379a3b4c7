package plan

// Tracker counts substitutions per staff member for the lifetime of one
// planning run. Seeds come from same-date history; Record is called once
// per successful assignment and only influences slots computed afterwards.
type Tracker struct {
	counts map[string]int
}

// NewTracker returns a Tracker seeded with historical same-date counts.
// A nil seed starts every staff member at zero.
func NewTracker(seed map[string]int) *Tracker {
	counts := make(map[string]int, len(seed))
	for id, n := range seed {
		counts[id] = n
	}
	return &Tracker{counts: counts}
}

// CountFor returns the current substitution count for the staff member.
func (t *Tracker) CountFor(staffID string) int {
	return t.counts[staffID]
}

// Record increments the staff member's in-run count.
func (t *Tracker) Record(staffID string) {
	t.counts[staffID]++
}
