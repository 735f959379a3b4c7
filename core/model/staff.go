package model

import (
	"fmt"
	"strings"
)

// StaffMember represents one member of the teaching staff. Codes are the
// short identifiers staff are known by on the daily notice board.
type StaffMember struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// NormalizeCode returns the canonical form of a staff code: trimmed and
// upper-cased. Stores index staff by this form.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Validate checks that the staff member carries the fields every consumer
// relies on.
func (s StaffMember) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("staff id is required")
	}
	if strings.TrimSpace(s.Code) == "" {
		return fmt.Errorf("staff code is required")
	}
	return nil
}
