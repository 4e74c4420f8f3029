package report

import (
	"math"

	"github.com/danieljhkim/escala/internal/roster"
)

// OperationOccupancy is how full one operation's month is.
type OperationOccupancy struct {
	Operation roster.Operation `json:"operation"`
	Month     roster.Month     `json:"month"`
	Filled    int              `json:"filled"`
	Capacity  int              `json:"capacity"`
	Remaining int              `json:"remaining"`
	Percent   int              `json:"percent"`
	FullDays  int              `json:"fullDays"`
}

// Occupancy reports filled slots against capacity for each roster, in the
// order given.
func Occupancy(rosters ...*roster.MonthRoster) []OperationOccupancy {
	out := make([]OperationOccupancy, 0, len(rosters))
	for _, r := range rosters {
		if r == nil {
			continue
		}
		occ := OperationOccupancy{
			Operation: r.Operation,
			Month:     r.Month,
			Filled:    r.Filled(),
			Capacity:  r.Capacity(),
		}
		occ.Remaining = occ.Capacity - occ.Filled
		if occ.Capacity > 0 {
			occ.Percent = int(math.Round(float64(occ.Filled) * 100 / float64(occ.Capacity)))
		}
		for _, row := range r.Days {
			if len(row.Occupants()) >= r.Operation.Width() {
				occ.FullDays++
			}
		}
		out = append(out, occ)
	}
	return out
}
