package roster

import (
	"fmt"
	"sort"
)

// Group is an organizational group. Ordinary duty rotates between ALFA,
// BRAVO and CHARLIE; EXPEDIENTE works office hours; OUTROS means "no group".
type Group string

const (
	GroupExpediente Group = "EXPEDIENTE"
	GroupAlfa       Group = "ALFA"
	GroupBravo      Group = "BRAVO"
	GroupCharlie    Group = "CHARLIE"
	GroupOutros     Group = "OUTROS"
)

// Groups returns every group in display order.
func Groups() []Group {
	return []Group{GroupExpediente, GroupAlfa, GroupBravo, GroupCharlie, GroupOutros}
}

// ParseGroup converts a name into a Group.
func ParseGroup(s string) (Group, error) {
	for _, g := range Groups() {
		if string(g) == s {
			return g, nil
		}
	}
	return "", fmt.Errorf("unknown group %q", s)
}

// Order returns the display position of the group.
func (g Group) Order() int {
	for i, known := range Groups() {
		if known == g {
			return i
		}
	}
	return len(Groups())
}

// Rank is a rank token such as "1º SGT" or "SD".
type Rank string

// ranks lists rank tokens from most to least senior.
var ranks = []Rank{"CAP", "1º TEN", "2º TEN", "SUB TEN", "1º SGT", "2º SGT", "3º SGT", "CB", "SD"}

// Ranks returns the known rank tokens in precedence order.
func Ranks() []Rank {
	out := make([]Rank, len(ranks))
	copy(out, ranks)
	return out
}

// Order returns the precedence of r. Unknown ranks sort last.
func (r Rank) Order() int {
	for i, known := range ranks {
		if known == r {
			return i
		}
	}
	return len(ranks)
}

// Known reports whether r is a recognised rank token.
func (r Rank) Known() bool {
	return r.Order() < len(ranks)
}

// IsOfficer reports whether r is a commissioned rank.
func (r Rank) IsOfficer() bool {
	switch r {
	case "CAP", "1º TEN", "2º TEN":
		return true
	}
	return false
}

// Person is one member of the personnel directory.
type Person struct {
	Name  string `json:"name" yaml:"name"`
	Rank  Rank   `json:"rank" yaml:"rank"`
	Group Group  `json:"group" yaml:"group"`
}

// Directory is the explicit Person -> {rank, group} lookup table.
type Directory struct {
	people    map[string]Person
	ambiguous NameSet
	order     []string
}

// NewDirectory indexes people by name. A name listed more than once with
// different groups is kept but resolves to GroupOutros.
func NewDirectory(people []Person) *Directory {
	d := &Directory{
		people:    make(map[string]Person, len(people)),
		ambiguous: NewNameSet(),
	}
	for _, p := range people {
		if p.Name == "" {
			continue
		}
		prev, seen := d.people[p.Name]
		if !seen {
			d.people[p.Name] = p
			d.order = append(d.order, p.Name)
			continue
		}
		if prev.Group != p.Group {
			d.ambiguous.Add(p.Name)
		}
	}
	return d
}

// Lookup returns the directory entry for name.
func (d *Directory) Lookup(name string) (Person, bool) {
	if d == nil {
		return Person{}, false
	}
	p, ok := d.people[name]
	if ok && d.ambiguous.Has(name) {
		p.Group = GroupOutros
	}
	return p, ok
}

// GroupOf returns the group of name, or GroupOutros when unknown or ambiguous.
func (d *Directory) GroupOf(name string) Group {
	p, ok := d.Lookup(name)
	if !ok || p.Group == "" {
		return GroupOutros
	}
	return p.Group
}

// RankOf returns the rank of name, or "" when unknown.
func (d *Directory) RankOf(name string) Rank {
	p, _ := d.Lookup(name)
	return p.Rank
}

// Names returns every directory name in insertion order.
func (d *Directory) Names() []string {
	if d == nil {
		return nil
	}
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// Len returns the number of distinct names.
func (d *Directory) Len() int {
	if d == nil {
		return 0
	}
	return len(d.order)
}

// GroupRoster derives group membership. Ambiguous and ungrouped names are
// left out.
func (d *Directory) GroupRoster() GroupRoster {
	out := make(GroupRoster)
	for _, name := range d.Names() {
		g := d.GroupOf(name)
		if g == GroupOutros {
			continue
		}
		out[g] = append(out[g], name)
	}
	return out
}

// SortByRank orders names by rank precedence, then alphabetically.
func (d *Directory) SortByRank(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		ri, rj := d.RankOf(names[i]).Order(), d.RankOf(names[j]).Order()
		if ri != rj {
			return ri < rj
		}
		return names[i] < names[j]
	})
}
