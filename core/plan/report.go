package plan

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// LoadReport summarizes how the day's substitution load is spread over the
// selected substitutes, counting historical seeds plus this run.
type LoadReport struct {
	Substitutes int            `json:"substitutes"`
	Mean        float64        `json:"mean"`
	StdDev      float64        `json:"std_dev"`
	Min         int            `json:"min"`
	Max         int            `json:"max"`
	PerStaff    map[string]int `json:"per_staff"`
}

// Report computes the load spread over a result's selected candidates.
// The per-staff load is the candidate's observed TodayCount plus one for
// the assignment itself.
func Report(res *Result) LoadReport {
	loads := map[string]int{}
	for _, key := range res.SlotOrder {
		slot := res.Slots[key]
		sel := slot.SelectedCandidate()
		if sel == nil {
			continue
		}
		if _, ok := loads[sel.Code]; !ok {
			loads[sel.Code] = sel.TodayCount
		}
		loads[sel.Code]++
	}
	rep := LoadReport{Substitutes: len(loads), PerStaff: loads}
	if len(loads) == 0 {
		return rep
	}
	codes := make([]string, 0, len(loads))
	for c := range loads {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	vals := make([]float64, 0, len(codes))
	rep.Min = loads[codes[0]]
	for _, c := range codes {
		n := loads[c]
		vals = append(vals, float64(n))
		if n < rep.Min {
			rep.Min = n
		}
		if n > rep.Max {
			rep.Max = n
		}
	}
	rep.Mean = stat.Mean(vals, nil)
	if len(vals) > 1 {
		rep.StdDev = stat.StdDev(vals, nil)
	}
	return rep
}
