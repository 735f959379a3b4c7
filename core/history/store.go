package history

import "context"

// Assignment captures one recorded substitution: who covered which period
// for which absent staff member.
type Assignment struct {
	SubstituteID string `json:"substitute_id"`
	AbsentCode   string `json:"absent_code"`
	PeriodTime   string `json:"period_time"`
	Class        string `json:"class"`
}

// RunRecord captures the selected assignments of one completed planning run.
type RunRecord struct {
	RunID       string       `json:"run_id"`
	Date        string       `json:"date"`
	Assignments []Assignment `json:"assignments"`
}

// Store persists substitution history. The planner reads CountFor to seed
// same-date fairness; the surrounding application writes completed runs.
type Store interface {
	CountFor(ctx context.Context, staffID, date string) (int, error)
	RecordRun(ctx context.Context, rec RunRecord) error
	Close() error
}
