// Package events defines the notifications emitted while planning
// substitutions. Consumers subscribe through the internal event bus.
package events

// RunCompletedEvent is published after a planning run finishes.
type RunCompletedEvent struct {
	RunID      string
	Date       string
	Assigned   int
	Unassigned int
}

// SlotReassignedEvent is published when a slot's selected substitute is
// manually changed.
type SlotReassignedEvent struct {
	RunID   string
	SlotKey string
	From    string
	To      string
}
