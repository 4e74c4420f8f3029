package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/danieljhkim/escala/internal/conflict"
	"github.com/danieljhkim/escala/internal/roster"
)

// Conflicts scans a month for people scheduled in an extraordinary operation
// on a day their group is on ordinary duty.
//
// Any failure to load the reference data, the month's calendar or the
// rosters is reported as ErrDataUnavailable; an empty report always means
// the scan ran and found nothing.
func (e *Engine) Conflicts(ctx context.Context, req *ConflictsRequest) (*ConflictsResult, error) {
	if req.Month.IsZero() {
		return nil, fmt.Errorf("%w: month is required", ErrValidation)
	}

	data, err := e.loadReference()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	cal, err := data.Calendar(req.Month)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	ms, err := e.loadMonth(req.Month)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	rep, err := conflict.Scan(conflict.Input{
		Calendar: cal,
		Groups:   data.Directory().GroupRoster(),
		Rosters:  monthRosters(ms, roster.Operations(), req.IncludeDrafts),
	})
	if err != nil {
		if !errors.Is(err, ErrDataUnavailable) {
			err = fmt.Errorf("%w: %v", ErrDataUnavailable, err)
		}
		return nil, err
	}

	e.log.Info("conflict scan", "month", req.Month, "drafts", req.IncludeDrafts,
		"days", rep.DaysChecked, "conflicts", len(rep.Conflicts))
	return &ConflictsResult{Report: rep, IncludesDrafts: req.IncludeDrafts}, nil
}

// monthRosters returns the rosters of ops, with drafts applied if requested.
func monthRosters(ms *monthState, ops []roster.Operation, includeDrafts bool) []*roster.MonthRoster {
	set := ms.confirmed
	if includeDrafts {
		set = ms.merged()
	}
	out := make([]*roster.MonthRoster, 0, len(ops))
	for _, op := range ops {
		out = append(out, set[op])
	}
	return out
}
