package conflict

import (
	"errors"
	"fmt"
	"sort"

	"github.com/danieljhkim/escala/internal/roster"
)

// ErrDataUnavailable indicates a required input could not be supplied, so
// no trustworthy report can be produced.
var ErrDataUnavailable = errors.New("data unavailable")

// Conflict records a person on ordinary duty and on an extraordinary roster
// on the same day.
type Conflict struct {
	Day       int              `json:"day"`
	Person    string           `json:"person"`
	Group     roster.Group     `json:"group"`
	Operation roster.Operation `json:"operation"`
}

// String renders the conflict for logs.
func (c Conflict) String() string {
	return fmt.Sprintf("day %d: %s (%s) on %s", c.Day, c.Person, c.Group, c.Operation.Label())
}

// Input bundles everything a scan needs.
type Input struct {
	// Calendar is the ordinary-duty calendar of the month being checked.
	Calendar *roster.OrdinaryCalendar

	// Groups maps each ordinary group to its members.
	Groups roster.GroupRoster

	// Rosters are the extraordinary rosters of the same month.
	Rosters []*roster.MonthRoster
}

// Report is the outcome of a successful scan.
type Report struct {
	Month     roster.Month `json:"month"`
	Conflicts []Conflict   `json:"conflicts"`

	// DaysChecked counts calendar days that had a known group.
	DaysChecked int `json:"daysChecked"`
}

// Empty reports whether the scan found no conflicts.
func (r *Report) Empty() bool {
	return len(r.Conflicts) == 0
}

// ByDay groups conflicts by day, preserving report order.
func (r *Report) ByDay() map[int][]Conflict {
	out := make(map[int][]Conflict)
	for _, c := range r.Conflicts {
		out[c.Day] = append(out[c.Day], c)
	}
	return out
}

// Scanner produces conflict reports.
type Scanner struct{}

// NewScanner creates a new Scanner.
func NewScanner() *Scanner {
	return &Scanner{}
}

// Scan runs a scan with a default Scanner.
func Scan(in Input) (*Report, error) {
	return NewScanner().Scan(in)
}

// Scan checks every calendar day against every roster in the input.
func (s *Scanner) Scan(in Input) (*Report, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	report := &Report{
		Month:     in.Calendar.Month,
		Conflicts: []Conflict{},
	}
	seen := make(map[Conflict]bool)

	for _, day := range in.Calendar.SortedDays() {
		group, ok := in.Calendar.GroupOn(day)
		if !ok {
			continue
		}
		report.DaysChecked++

		members := in.Groups.MemberSet(group)
		if len(members) == 0 {
			continue
		}

		for _, r := range in.Rosters {
			for _, person := range r.Row(day).Occupants() {
				if !members.Has(person) {
					continue
				}
				c := Conflict{Day: day, Person: person, Group: group, Operation: r.Operation}
				if seen[c] {
					continue
				}
				seen[c] = true
				report.Conflicts = append(report.Conflicts, c)
			}
		}
	}

	sortConflicts(report.Conflicts)
	return report, nil
}

func validate(in Input) error {
	if in.Calendar == nil {
		return fmt.Errorf("%w: ordinary-duty calendar missing", ErrDataUnavailable)
	}
	if in.Groups == nil {
		return fmt.Errorf("%w: group roster missing", ErrDataUnavailable)
	}
	if len(in.Rosters) == 0 {
		return fmt.Errorf("%w: no extraordinary rosters supplied", ErrDataUnavailable)
	}
	for i, r := range in.Rosters {
		if r == nil {
			return fmt.Errorf("%w: roster %d missing", ErrDataUnavailable, i)
		}
		if r.Month != in.Calendar.Month {
			return fmt.Errorf("%w: %s roster is for %s, calendar is for %s",
				ErrDataUnavailable, r.Operation, r.Month, in.Calendar.Month)
		}
	}
	return nil
}

func sortConflicts(conflicts []Conflict) {
	sort.SliceStable(conflicts, func(i, j int) bool {
		a, b := conflicts[i], conflicts[j]
		if a.Day != b.Day {
			return a.Day < b.Day
		}
		if a.Operation.Order() != b.Operation.Order() {
			return a.Operation.Order() < b.Operation.Order()
		}
		return a.Person < b.Person
	})
}
