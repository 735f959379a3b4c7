package plan

import "fmt"

// Reselect changes the selected substitute of an already-planned slot to
// another candidate from its precomputed list.
//
// Availability and the global occupancy set are deliberately not
// re-validated here: overriding one slot does not free the previously
// selected substitute elsewhere, and the new selection may already be
// committed on another slot. The source system behaves this way and the
// behavior is preserved as-is.
func (r *Result) Reselect(slotKey, substituteID string) error {
	slot, ok := r.Slots[slotKey]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSlot, slotKey)
	}
	found := false
	for i := range slot.Candidates {
		if slot.Candidates[i].SubstituteID == substituteID {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: %s in slot %s", ErrUnknownCandidate, substituteID, slotKey)
	}
	for i := range slot.Candidates {
		slot.Candidates[i].Selected = slot.Candidates[i].SubstituteID == substituteID
	}
	return nil
}
