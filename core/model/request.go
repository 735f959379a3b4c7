package model

// AbsenceRequest describes one planning run: the civil date to cover and
// the absent staff in the order the caller listed them.
type AbsenceRequest struct {
	Date   string        `json:"date"`
	Absent []StaffMember `json:"absent"`
}
