package engine

import (
	"context"
	"fmt"

	"github.com/danieljhkim/escala/internal/report"
	"github.com/danieljhkim/escala/internal/roster"
)

// Summary computes the per-person, per-group and occupancy summaries of a
// month. A missing reference file only degrades group and rank resolution.
func (e *Engine) Summary(ctx context.Context, req *SummaryRequest) (*SummaryResult, error) {
	ops, err := operationsOrAll(req.Operation)
	if err != nil {
		return nil, err
	}
	if req.Month.IsZero() {
		return nil, fmt.Errorf("%w: month is required", ErrValidation)
	}

	ms, err := e.loadMonth(req.Month)
	if err != nil {
		return nil, err
	}
	rosters := monthRosters(ms, ops, req.IncludeDrafts)

	var dir *roster.Directory
	data, err := e.loadReference()
	if err != nil {
		e.log.Warn("summary without personnel directory", "error", err)
	} else {
		dir = data.Directory()
	}

	return &SummaryResult{
		Month:           req.Month,
		People:          report.ByPerson(dir, rosters...),
		Groups:          report.ByGroup(dir, req.IncludeEmptyGroups, rosters...),
		Occupancy:       report.Occupancy(rosters...),
		DirectoryLoaded: dir != nil,
	}, nil
}
