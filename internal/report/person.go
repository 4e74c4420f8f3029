package report

import (
	"sort"

	"github.com/danieljhkim/escala/internal/limiter"
	"github.com/danieljhkim/escala/internal/roster"
)

// NearLimitFrom is the first count flagged as close to the monthly cap.
const NearLimitFrom = limiter.Cap - 2

// PersonTally summarizes one person's extraordinary services in a month.
type PersonTally struct {
	Name         string                   `json:"name"`
	Rank         roster.Rank              `json:"rank,omitempty"`
	Group        roster.Group             `json:"group"`
	PerOperation map[roster.Operation]int `json:"perOperation"`
	Total        int                      `json:"total"`
	Days         []int                    `json:"days"`
	NearLimit    bool                     `json:"nearLimit"`
	AtLimit      bool                     `json:"atLimit"`
}

// DistinctDays returns the number of different days served.
func (p PersonTally) DistinctDays() int {
	return len(p.Days)
}

// ByPerson tallies everyone who occupies at least one slot in rosters,
// sorted by total descending then name. dir may be nil.
func ByPerson(dir *roster.Directory, rosters ...*roster.MonthRoster) []PersonTally {
	tallies := make(map[string]*PersonTally)
	days := make(map[string]map[int]struct{})

	for _, r := range rosters {
		if r == nil {
			continue
		}
		for day, row := range r.Days {
			for _, name := range row.Occupants() {
				t, ok := tallies[name]
				if !ok {
					t = &PersonTally{
						Name:         name,
						Rank:         dir.RankOf(name),
						Group:        dir.GroupOf(name),
						PerOperation: make(map[roster.Operation]int),
					}
					tallies[name] = t
					days[name] = make(map[int]struct{})
				}
				t.PerOperation[r.Operation]++
				t.Total++
				days[name][day] = struct{}{}
			}
		}
	}

	out := make([]PersonTally, 0, len(tallies))
	for name, t := range tallies {
		for day := range days[name] {
			t.Days = append(t.Days, day)
		}
		sort.Ints(t.Days)
		t.AtLimit = t.Total >= limiter.Cap
		t.NearLimit = !t.AtLimit && t.Total >= NearLimitFrom
		out = append(out, *t)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Name < out[j].Name
	})
	return out
}
