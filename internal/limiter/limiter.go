package limiter

import (
	"errors"
	"fmt"

	"github.com/danieljhkim/escala/internal/roster"
)

// Cap is the maximum number of monthly slot occurrences per person.
const Cap = 12

// ErrLimitExceeded indicates a placement was rejected by the monthly cap.
var ErrLimitExceeded = errors.New("monthly limit reached")

// LimitExceededError carries the count that triggered a rejection.
type LimitExceededError struct {
	Person string
	Count  int
	Cap    int
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("%s already has %d of %d services this month", e.Person, e.Count, e.Cap)
}

// Unwrap allows errors.Is(err, ErrLimitExceeded).
func (e *LimitExceededError) Unwrap() error {
	return ErrLimitExceeded
}

// Placement describes a proposed single-slot assignment.
type Placement struct {
	// Person is the candidate. Empty means the slot is being cleared.
	Person string

	// Day is the day being edited.
	Day int

	// Month scopes the count.
	Month roster.Month

	// Confirmed are the saved rosters. They never have Day excluded because
	// they do not contain the edit under way.
	Confirmed []*roster.MonthRoster

	// Pending are locally staged edits not yet saved. Day is excluded from
	// each of them before counting.
	Pending []*roster.MonthRoster
}

// Decision is the outcome of Authorize.
type Decision struct {
	Allowed bool `json:"allowed"`
	Count   int  `json:"count"`
	Cap     int  `json:"cap"`

	person string
}

// Err converts a rejection into a *LimitExceededError. It returns nil when
// the placement is allowed.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return &LimitExceededError{Person: d.person, Count: d.Count, Cap: d.Cap}
}

// CountOccurrences sums the slots occupied by person across every source
// that belongs to month and to a capped operation. Nil sources are skipped.
// The result does not depend on the order of sources.
func CountOccurrences(person string, month roster.Month, sources ...*roster.MonthRoster) int {
	if person == "" {
		return 0
	}
	total := 0
	for _, src := range sources {
		if !counts(src, month) {
			continue
		}
		total += src.Occurrences(person)
	}
	return total
}

// Authorize decides whether p may be committed. Clearing a slot is always
// allowed and skips counting entirely.
func Authorize(p Placement) Decision {
	if p.Person == "" {
		return Decision{Allowed: true, Cap: Cap}
	}

	sources := make([]*roster.MonthRoster, 0, len(p.Confirmed)+len(p.Pending))
	sources = append(sources, p.Confirmed...)
	for _, pending := range p.Pending {
		if pending == nil {
			continue
		}
		sources = append(sources, pending.Without(p.Day))
	}

	count := CountOccurrences(p.Person, p.Month, sources...)
	return Decision{
		Allowed: count < Cap,
		Count:   count,
		Cap:     Cap,
		person:  p.Person,
	}
}

// Verify re-checks a committed result. It fails when person holds more than
// Cap occurrences across sources, which can happen when edits authorized
// separately are merged.
func Verify(person string, month roster.Month, sources ...*roster.MonthRoster) error {
	if n := CountOccurrences(person, month, sources...); n > Cap {
		return &LimitExceededError{Person: person, Count: n, Cap: Cap}
	}
	return nil
}

// Counts returns the occurrence count of each person over sources.
func Counts(persons []string, month roster.Month, sources ...*roster.MonthRoster) map[string]int {
	out := make(map[string]int, len(persons))
	for _, person := range persons {
		out[person] = CountOccurrences(person, month, sources...)
	}
	return out
}

// LimitReached returns every person whose count is at or above Cap. No day
// is excluded: this feeds proactive disabling in selection lists.
func LimitReached(persons []string, month roster.Month, sources ...*roster.MonthRoster) roster.NameSet {
	out := roster.NewNameSet()
	for person, n := range Counts(persons, month, sources...) {
		if n >= Cap {
			out.Add(person)
		}
	}
	return out
}

// DuplicateInDay returns everyone already on any slot of any operation on day,
// except the names selected in own (the row being edited) so they stay
// removable.
func DuplicateInDay(day int, set roster.OperationSet, own roster.Row) roster.NameSet {
	out := roster.NewNameSet()
	for _, row := range set.RowsForDay(day) {
		for _, name := range row.Occupants() {
			out.Add(name)
		}
	}
	for _, name := range own.Occupants() {
		out.Remove(name)
	}
	return out
}

// Blocked is the union of LimitReached and DuplicateInDay, minus own.
func Blocked(persons []string, month roster.Month, day int, set roster.OperationSet, own roster.Row, sources ...*roster.MonthRoster) roster.NameSet {
	out := LimitReached(persons, month, sources...)
	out.Union(DuplicateInDay(day, set, own))
	for _, name := range own.Occupants() {
		out.Remove(name)
	}
	return out
}

func counts(src *roster.MonthRoster, month roster.Month) bool {
	return src != nil && src.Month == month && src.Operation.Capped()
}
