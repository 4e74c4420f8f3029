package roster

import (
	"fmt"
	"sort"
)

// MonthRoster maps day-of-month to the Row of one operation.
type MonthRoster struct {
	Operation Operation   `json:"operation"`
	Month     Month       `json:"month"`
	Days      map[int]Row `json:"days"`
}

// NewMonthRoster creates an empty roster.
func NewMonthRoster(op Operation, month Month) *MonthRoster {
	return &MonthRoster{
		Operation: op,
		Month:     month,
		Days:      make(map[int]Row),
	}
}

// Row returns the row for day, or an empty row when the day has no entry.
// The result is always exactly Operation.Width() slots long.
func (m *MonthRoster) Row(day int) Row {
	row := NewRow(m.Operation)
	copy(row, m.Days[day])
	return row
}

// Set replaces one whole slot. An empty name clears the slot.
func (m *MonthRoster) Set(day, slot int, name string) error {
	if !m.Month.Contains(day) {
		return fmt.Errorf("day %d is outside %s", day, m.Month)
	}
	row, err := m.Row(day).With(slot, name)
	if err != nil {
		return err
	}
	if m.Days == nil {
		m.Days = make(map[int]Row)
	}
	m.Days[day] = row
	return nil
}

// SetRow replaces the whole row for day.
func (m *MonthRoster) SetRow(day int, row Row) {
	if m.Days == nil {
		m.Days = make(map[int]Row)
	}
	m.Days[day] = row.Clone()
}

// Without returns a copy that excludes day.
func (m *MonthRoster) Without(day int) *MonthRoster {
	out := m.Clone()
	delete(out.Days, day)
	return out
}

// Clone returns a deep copy.
func (m *MonthRoster) Clone() *MonthRoster {
	out := NewMonthRoster(m.Operation, m.Month)
	for day, row := range m.Days {
		out.Days[day] = row.Clone()
	}
	return out
}

// SortedDays returns the days that carry a row, ascending.
func (m *MonthRoster) SortedDays() []int {
	days := make([]int, 0, len(m.Days))
	for day := range m.Days {
		days = append(days, day)
	}
	sort.Ints(days)
	return days
}

// Occurrences returns how many slots name occupies across the month.
func (m *MonthRoster) Occurrences(name string) int {
	if m == nil {
		return 0
	}
	n := 0
	for _, row := range m.Days {
		n += row.CountOf(name)
	}
	return n
}

// Filled returns the number of occupied slots across the month.
func (m *MonthRoster) Filled() int {
	n := 0
	for _, row := range m.Days {
		n += len(row.Occupants())
	}
	return n
}

// Capacity returns the total number of slots in the month.
func (m *MonthRoster) Capacity() int {
	return m.Month.Days() * m.Operation.Width()
}

// OperationSet groups the rosters of every operation for one month.
type OperationSet map[Operation]*MonthRoster

// RowsForDay returns each operation's row for day.
func (s OperationSet) RowsForDay(day int) map[Operation]Row {
	out := make(map[Operation]Row, len(s))
	for op, r := range s {
		if r == nil {
			continue
		}
		out[op] = r.Row(day)
	}
	return out
}

// Rosters returns the rosters in canonical operation order.
func (s OperationSet) Rosters() []*MonthRoster {
	out := make([]*MonthRoster, 0, len(s))
	for _, op := range Operations() {
		if r, ok := s[op]; ok && r != nil {
			out = append(out, r)
		}
	}
	return out
}
