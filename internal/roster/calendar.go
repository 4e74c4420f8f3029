package roster

import "sort"

// OrdinaryCalendar assigns one ordinary-duty group to each day of a month.
// Days without an entry have no known group.
type OrdinaryCalendar struct {
	Month Month         `json:"month"`
	Days  map[int]Group `json:"days"`
}

// NewOrdinaryCalendar creates an empty calendar for month.
func NewOrdinaryCalendar(month Month) *OrdinaryCalendar {
	return &OrdinaryCalendar{Month: month, Days: make(map[int]Group)}
}

// GroupOn returns the group on duty on day.
func (c *OrdinaryCalendar) GroupOn(day int) (Group, bool) {
	if c == nil {
		return "", false
	}
	g, ok := c.Days[day]
	if !ok || g == "" {
		return "", false
	}
	return g, true
}

// SortedDays returns the scheduled days ascending.
func (c *OrdinaryCalendar) SortedDays() []int {
	days := make([]int, 0, len(c.Days))
	for day := range c.Days {
		days = append(days, day)
	}
	sort.Ints(days)
	return days
}

// GroupRoster maps a group to its member names.
type GroupRoster map[Group][]string

// Members returns the member names of g.
func (r GroupRoster) Members(g Group) []string {
	return r[g]
}

// IsMember reports whether name belongs to g.
func (r GroupRoster) IsMember(g Group, name string) bool {
	for _, member := range r[g] {
		if member == name {
			return true
		}
	}
	return false
}

// MemberSet returns the members of g as a set.
func (r GroupRoster) MemberSet(g Group) NameSet {
	return NewNameSet(r[g]...)
}
