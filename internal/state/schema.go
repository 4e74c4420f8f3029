package state

import (
	"time"

	"github.com/danieljhkim/escala/internal/roster"
	"github.com/google/uuid"
)

// monthDocument is the on-disk form of a confirmed month roster.
type monthDocument struct {
	Operation roster.Operation   `json:"operation"`
	Month     roster.Month       `json:"month"`
	SavedAt   time.Time          `json:"savedAt"`
	Days      map[int]roster.Row `json:"days"`
}

// Draft is a set of locally staged edits for one (operation, month).
type Draft struct {
	// ID identifies the editing session.
	ID string `json:"id"`

	Operation roster.Operation `json:"operation"`
	Month     roster.Month     `json:"month"`

	// BaseChecksum is the hash of the confirmed file when the draft started.
	// Empty when no confirmed file existed.
	BaseChecksum string `json:"baseChecksum"`

	StartedAt time.Time `json:"startedAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Days holds the full replacement row of every touched day.
	Days map[int]roster.Row `json:"days"`
}

// NewDraft starts an empty draft.
func NewDraft(op roster.Operation, month roster.Month, baseChecksum string, now time.Time) *Draft {
	return &Draft{
		ID:           uuid.NewString(),
		Operation:    op,
		Month:        month,
		BaseChecksum: baseChecksum,
		StartedAt:    now,
		UpdatedAt:    now,
		Days:         make(map[int]roster.Row),
	}
}

// Stage records row as the new content of day.
func (d *Draft) Stage(day int, row roster.Row, now time.Time) {
	if d.Days == nil {
		d.Days = make(map[int]roster.Row)
	}
	d.Days[day] = row.Clone()
	d.UpdatedAt = now
}

// Touched returns the staged days, ascending.
func (d *Draft) Touched() []int {
	if d == nil {
		return nil
	}
	return (&roster.MonthRoster{Days: d.Days}).SortedDays()
}

// Apply returns confirmed with every staged day replaced. confirmed is not
// modified. A nil draft returns a copy of confirmed.
func (d *Draft) Apply(confirmed *roster.MonthRoster) *roster.MonthRoster {
	merged := confirmed.Clone()
	if d == nil {
		return merged
	}
	for day, row := range d.Days {
		if row.IsEmpty() {
			delete(merged.Days, day)
			continue
		}
		merged.SetRow(day, row)
	}
	return merged
}

// Additions returns a roster holding only the occupants that staged days add
// relative to confirmed. A name already present on that confirmed day is not
// an addition, so nobody is counted twice.
func (d *Draft) Additions(confirmed *roster.MonthRoster) *roster.MonthRoster {
	out := roster.NewMonthRoster(confirmed.Operation, confirmed.Month)
	if d == nil {
		return out
	}
	for day, staged := range d.Days {
		base := confirmed.Row(day)
		remaining := make(map[string]int)
		for _, name := range base.Occupants() {
			remaining[name]++
		}

		added := roster.NewRow(confirmed.Operation)
		found := false
		for slot, name := range staged {
			if name == "" || slot >= len(added) {
				continue
			}
			if remaining[name] > 0 {
				remaining[name]--
				continue
			}
			added[slot] = name
			found = true
		}
		if found {
			out.Days[day] = added
		}
	}
	return out
}

// Empty reports whether nothing is staged.
func (d *Draft) Empty() bool {
	return d == nil || len(d.Days) == 0
}
