package planner

import (
	"github.com/danieljhkim/escala/internal/roster"
	"github.com/danieljhkim/escala/internal/state"
)

// SavePlan represents the changes a draft makes to one confirmed roster.
type SavePlan struct {
	Operation roster.Operation `json:"operation"`
	Month     roster.Month     `json:"month"`

	// DraftID identifies the editing session being saved
	DraftID string `json:"draftId"`

	// Changes is ordered by day; days the draft left as they were are omitted
	Changes []Change `json:"changes"`

	// Stale is set when the confirmed roster changed after the draft started
	Stale bool `json:"stale"`
}

// Change represents the replacement of one day's row.
type Change struct {
	Day    int        `json:"day"`
	Kind   string     `json:"kind"`
	Before roster.Row `json:"before"`
	After  roster.Row `json:"after"`
}

// Change kind constants
const (
	ChangeFill    = "fill"
	ChangeReplace = "replace"
	ChangeClear   = "clear"
)

// NewSavePlan creates a new empty SavePlan.
func NewSavePlan(op roster.Operation, month roster.Month, draftID string) *SavePlan {
	return &SavePlan{
		Operation: op,
		Month:     month,
		DraftID:   draftID,
		Changes:   []Change{},
	}
}

// HasChanges returns true if saving would modify the confirmed roster.
func (p *SavePlan) HasChanges() bool {
	return len(p.Changes) > 0
}

// AddChange adds a change to the plan.
func (p *SavePlan) AddChange(c Change) {
	p.Changes = append(p.Changes, c)
}

// Placed returns the names newly placed by the plan, one entry per slot.
func (p *SavePlan) Placed() []string {
	var out []string
	for _, c := range p.Changes {
		for i, name := range c.After {
			if name != "" && (i >= len(c.Before) || c.Before[i] != name) {
				out = append(out, name)
			}
		}
	}
	return out
}

// BuildSavePlan compares the draft's staged rows with the confirmed roster.
func BuildSavePlan(confirmed *roster.MonthRoster, d *state.Draft) *SavePlan {
	plan := NewSavePlan(d.Operation, d.Month, d.ID)
	for _, day := range d.Touched() {
		before := confirmed.Row(day)
		after := d.Days[day]
		if sameRow(before, after) {
			continue
		}

		kind := ChangeReplace
		switch {
		case before.IsEmpty():
			kind = ChangeFill
		case after.IsEmpty():
			kind = ChangeClear
		}
		plan.AddChange(Change{
			Day:    day,
			Kind:   kind,
			Before: before.Clone(),
			After:  after.Clone(),
		})
	}
	return plan
}

func sameRow(a, b roster.Row) bool {
	if len(a) != len(b) {
		return a.IsEmpty() && b.IsEmpty()
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
