package roster

import (
	"encoding/json"
	"fmt"
)

// Row is one day's slot assignments for one operation. An empty string marks
// an empty slot. On the wire empty slots are encoded as null.
type Row []string

// NewRow returns an empty row sized for op.
func NewRow(op Operation) Row {
	return make(Row, op.Width())
}

// Occupants returns the non-empty slot values in slot order.
func (r Row) Occupants() []string {
	out := make([]string, 0, len(r))
	for _, name := range r {
		if name != "" {
			out = append(out, name)
		}
	}
	return out
}

// Contains reports whether name occupies any slot.
func (r Row) Contains(name string) bool {
	return r.CountOf(name) > 0
}

// CountOf returns how many slots name occupies.
func (r Row) CountOf(name string) int {
	if name == "" {
		return 0
	}
	n := 0
	for _, occupant := range r {
		if occupant == name {
			n++
		}
	}
	return n
}

// IsEmpty reports whether every slot is empty.
func (r Row) IsEmpty() bool {
	for _, name := range r {
		if name != "" {
			return false
		}
	}
	return true
}

// Clone returns an independent copy.
func (r Row) Clone() Row {
	if r == nil {
		return nil
	}
	out := make(Row, len(r))
	copy(out, r)
	return out
}

// With returns a copy of r with slot replaced by name.
func (r Row) With(slot int, name string) (Row, error) {
	if slot < 0 || slot >= len(r) {
		return nil, fmt.Errorf("slot %d out of range (row has %d slots)", slot+1, len(r))
	}
	out := r.Clone()
	out[slot] = name
	return out, nil
}

// MarshalJSON encodes empty slots as null.
func (r Row) MarshalJSON() ([]byte, error) {
	wire := make([]*string, len(r))
	for i := range r {
		if r[i] != "" {
			name := r[i]
			wire[i] = &name
		}
	}
	return json.Marshal(wire)
}

// UnmarshalJSON decodes null slots as empty.
func (r *Row) UnmarshalJSON(data []byte) error {
	var wire []*string
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	out := make(Row, len(wire))
	for i, name := range wire {
		if name != nil {
			out[i] = *name
		}
	}
	*r = out
	return nil
}
