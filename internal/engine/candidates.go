package engine

import (
	"context"
	"fmt"

	"github.com/danieljhkim/escala/internal/limiter"
	"github.com/danieljhkim/escala/internal/roster"
)

// Candidates builds the selection list for one day's row: every directory
// member grouped by group and sorted by rank, each marked with their monthly
// count and whether they can be chosen.
//
// A person is blocked when their count has reached the cap or when they
// already serve that day in any operation. People already in the row are
// never blocked so they stay removable.
func (e *Engine) Candidates(ctx context.Context, req *CandidatesRequest) (*CandidatesResult, error) {
	if err := validateKey(req.Operation, req.Month); err != nil {
		return nil, err
	}
	if !req.Month.Contains(req.Day) {
		return nil, fmt.Errorf("%w: day %d is outside %s", ErrValidation, req.Day, req.Month)
	}

	data, err := e.loadReference()
	if err != nil {
		return nil, err
	}
	dir := data.Directory()

	ms, err := e.loadMonth(req.Month)
	if err != nil {
		return nil, err
	}
	merged := ms.merged()
	own := merged[req.Operation].Row(req.Day)

	sources := append(ms.confirmedSources(), ms.pendingSources()...)
	names := dir.Names()
	counts := limiter.Counts(names, req.Month, sources...)
	limitReached := limiter.LimitReached(names, req.Month, sources...)
	sameDay := limiter.DuplicateInDay(req.Day, merged, own)
	blocked := limiter.Blocked(names, req.Month, req.Day, merged, own, sources...)

	byGroup := make(map[roster.Group][]string)
	for _, name := range names {
		g := dir.GroupOf(name)
		byGroup[g] = append(byGroup[g], name)
	}

	result := &CandidatesResult{
		Operation: req.Operation,
		Month:     req.Month,
		Day:       req.Day,
		Row:       own,
		Groups:    []CandidateGroup{},
	}
	for _, g := range roster.Groups() {
		members := byGroup[g]
		if len(members) == 0 {
			continue
		}
		dir.SortByRank(members)

		group := CandidateGroup{Group: g}
		for _, name := range members {
			group.Candidates = append(group.Candidates, Candidate{
				Name:         name,
				Rank:         dir.RankOf(name),
				Group:        g,
				Count:        counts[name],
				LimitReached: limitReached.Has(name),
				SameDay:      sameDay.Has(name),
				Selected:     own.Contains(name),
				Blocked:      blocked.Has(name),
			})
		}
		result.Groups = append(result.Groups, group)
	}
	return result, nil
}
