package model

// Free is the sentinel assignment marking a period without a class
// obligation. Any other non-empty value is an opaque class label such as
// "Gr10 Math".
const Free = "FREE"

// Timetable maps a teaching day to the assignment per period start time.
// A missing day or period means the staff member is free then.
type Timetable map[Weekday]map[string]string

// NewFreeTimetable returns a timetable with every period of every teaching
// day set to Free. Stores hand this out when no timetable was recorded.
func NewFreeTimetable() Timetable {
	tt := make(Timetable, len(Weekdays))
	for _, day := range Weekdays {
		periods := make(map[string]string, len(TeachingPeriods))
		for _, p := range TeachingPeriods {
			periods[p.Time] = Free
		}
		tt[day] = periods
	}
	return tt
}

// Assignment returns the stored value for the day and period, or Free when
// the timetable carries no entry for it.
func (t Timetable) Assignment(day Weekday, periodTime string) string {
	periods, ok := t[day]
	if !ok {
		return Free
	}
	v, ok := periods[periodTime]
	if !ok || v == "" {
		return Free
	}
	return v
}

// Clone returns a deep copy so store reads never alias internal state.
func (t Timetable) Clone() Timetable {
	if t == nil {
		return nil
	}
	out := make(Timetable, len(t))
	for day, periods := range t {
		cp := make(map[string]string, len(periods))
		for k, v := range periods {
			cp[k] = v
		}
		out[day] = cp
	}
	return out
}
