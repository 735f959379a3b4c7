package model

import (
	"fmt"
	"time"
)

// Weekday identifies a teaching day. Weekend dates are rejected before any
// planning work starts.
type Weekday string

const (
	Monday    Weekday = "Mon"
	Tuesday   Weekday = "Tue"
	Wednesday Weekday = "Wed"
	Thursday  Weekday = "Thu"
	Friday    Weekday = "Fri"
)

// Weekdays lists the teaching days in calendar order.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}

// Period is one slot of the fixed teaching day.
type Period struct {
	Time  string `json:"time"`
	Label string `json:"label"`
}

// TeachingPeriods is the fixed eight-period day, ordered by start time.
// This sequence is process-wide configuration: period numbers in rendered
// plans are 1-based indexes into it.
var TeachingPeriods = []Period{
	{Time: "8:05", Label: "Period 1"},
	{Time: "8:50", Label: "Period 2"},
	{Time: "9:35", Label: "Period 3"},
	{Time: "10:45", Label: "Period 4"},
	{Time: "11:30", Label: "Period 5"},
	{Time: "12:15", Label: "Period 6"},
	{Time: "13:25", Label: "Period 7"},
	{Time: "14:10", Label: "Period 8"},
}

// PeriodNumber returns the 1-based position of the period starting at the
// given time, or 0 when no such period exists.
func PeriodNumber(periodTime string) int {
	for i, p := range TeachingPeriods {
		if p.Time == periodTime {
			return i + 1
		}
	}
	return 0
}

// DateLayout is the civil date format accepted by the planner.
const DateLayout = "2006-01-02"

// WeekdayOf parses a civil date and maps it to a teaching day. The date is
// interpreted in UTC so the weekday never depends on the server timezone.
func WeekdayOf(date string) (Weekday, error) {
	t, err := time.ParseInLocation(DateLayout, date, time.UTC)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", date, err)
	}
	switch t.Weekday() {
	case time.Monday:
		return Monday, nil
	case time.Tuesday:
		return Tuesday, nil
	case time.Wednesday:
		return Wednesday, nil
	case time.Thursday:
		return Thursday, nil
	case time.Friday:
		return Friday, nil
	default:
		return "", fmt.Errorf("date %s falls on a %s, expected Mon-Fri", date, t.Weekday())
	}
}
