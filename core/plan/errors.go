package plan

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyAbsenceList is returned when a run is requested with no
	// absent staff.
	ErrEmptyAbsenceList = errors.New("absence list is empty")
	// ErrUnknownSlot is returned when an override names a slot the run
	// never planned.
	ErrUnknownSlot = errors.New("unknown slot")
	// ErrUnknownCandidate is returned when an override names a substitute
	// that is not in the slot's candidate list.
	ErrUnknownCandidate = errors.New("substitute not in candidate list")
)

// InvalidDateError reports a planning date outside Mon-Fri or one that
// does not parse at all.
type InvalidDateError struct {
	Date string
	Err  error
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid planning date %q: %v", e.Date, e.Err)
}

func (e *InvalidDateError) Unwrap() error { return e.Err }

// StoreError wraps a collaborator fetch failure. The planner never retries;
// the error is surfaced to the caller unchanged underneath.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store failure during %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
