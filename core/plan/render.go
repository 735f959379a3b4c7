package plan

import (
	"fmt"
	"strings"

	"github.com/schoolops/subplan/core/model"
)

// Greeting is the fixed first line of every rendered plan.
const Greeting = "Good morning"

// Render produces the human-readable day plan from the current slot
// selections. Groups follow the order absent staff were supplied in, lines
// within a group follow the fixed period sequence. Rendering is pure:
// unchanged slot state yields byte-identical output.
func Render(res *Result) string {
	var b strings.Builder
	b.WriteString(Greeting)
	b.WriteString("\n")
	for _, code := range res.AbsentOrder {
		var lines []string
		for _, period := range model.TeachingPeriods {
			slot, ok := res.Slots[SlotKey(code, period.Time)]
			if !ok {
				continue
			}
			sel := slot.SelectedCandidate()
			if sel == nil {
				continue
			}
			lines = append(lines, fmt.Sprintf("P%d %s - %s",
				model.PeriodNumber(slot.PeriodTime), slot.Class, sel.Code))
		}
		if len(lines) == 0 {
			continue
		}
		b.WriteString("\nSubs for ")
		b.WriteString(code)
		b.WriteString("\n")
		for _, line := range lines {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return b.String()
}
