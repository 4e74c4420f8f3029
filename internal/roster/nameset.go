package roster

import "sort"

// NameSet is a set of person names.
type NameSet map[string]struct{}

// NewNameSet builds a set from names, ignoring empty strings.
func NewNameSet(names ...string) NameSet {
	s := make(NameSet, len(names))
	for _, name := range names {
		s.Add(name)
	}
	return s
}

// Add inserts name. Empty names are ignored.
func (s NameSet) Add(name string) {
	if name == "" {
		return
	}
	s[name] = struct{}{}
}

// Has reports whether name is in the set.
func (s NameSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Remove deletes name from the set.
func (s NameSet) Remove(name string) {
	delete(s, name)
}

// Union adds every member of other.
func (s NameSet) Union(other NameSet) {
	for name := range other {
		s[name] = struct{}{}
	}
}

// Sorted returns the members in lexical order.
func (s NameSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for name := range s {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
