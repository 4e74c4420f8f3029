package report

import (
	"sort"

	"github.com/danieljhkim/escala/internal/roster"
)

// DayEntry lists who from a group serves on one day.
type DayEntry struct {
	Day   int      `json:"day"`
	Names []string `json:"names"`
}

// GroupTally summarizes a group's extraordinary services in a month.
type GroupTally struct {
	Group  roster.Group `json:"group"`
	Total  int          `json:"total"`
	People int          `json:"people"`
	Days   []DayEntry   `json:"days"`
}

// ByGroup tallies slots per directory group. Names unknown to dir count
// under OUTROS. Groups without entries are left out unless includeEmpty is
// set. The result is sorted by total descending, then group order.
func ByGroup(dir *roster.Directory, includeEmpty bool, rosters ...*roster.MonthRoster) []GroupTally {
	totals := make(map[roster.Group]int)
	perDay := make(map[roster.Group]map[int]roster.NameSet)

	for _, r := range rosters {
		if r == nil {
			continue
		}
		for day, row := range r.Days {
			for _, name := range row.Occupants() {
				g := dir.GroupOf(name)
				totals[g]++
				if perDay[g] == nil {
					perDay[g] = make(map[int]roster.NameSet)
				}
				if perDay[g][day] == nil {
					perDay[g][day] = roster.NewNameSet()
				}
				perDay[g][day].Add(name)
			}
		}
	}

	var out []GroupTally
	for _, g := range roster.Groups() {
		if totals[g] == 0 && !includeEmpty {
			continue
		}
		tally := GroupTally{Group: g, Total: totals[g], Days: []DayEntry{}}
		people := roster.NewNameSet()
		for day, names := range perDay[g] {
			sorted := names.Sorted()
			dir.SortByRank(sorted)
			tally.Days = append(tally.Days, DayEntry{Day: day, Names: sorted})
			people.Union(names)
		}
		sort.Slice(tally.Days, func(i, j int) bool { return tally.Days[i].Day < tally.Days[j].Day })
		tally.People = len(people)
		out = append(out, tally)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total > out[j].Total
	})
	return out
}
