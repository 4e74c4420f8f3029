package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/danieljhkim/escala/internal/limiter"
	"github.com/danieljhkim/escala/internal/planner"
	"github.com/danieljhkim/escala/internal/roster"
	"github.com/danieljhkim/escala/internal/state"
)

// Save persists the pending drafts of a month, replacing each confirmed
// roster wholesale, then deletes the drafts.
//
// A SavePlan is built for every draft before anything is written. A stale
// draft leaves all rosters untouched unless Force is set, and DryRun returns
// the plans without writing. Force never bypasses the monthly cap or the
// one-operation-per-day rule: both are checked again on the merged result.
// Either every requested roster is written or none is.
func (e *Engine) Save(ctx context.Context, req *SaveRequest) (*SaveResult, error) {
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

	var drafts []*state.Draft
	for _, op := range ops {
		if d, ok := ms.drafts[op]; ok {
			drafts = append(drafts, d)
		}
	}
	if len(drafts) == 0 {
		return nil, fmt.Errorf("%w for %s", ErrNoDraft, req.Month)
	}

	result := &SaveResult{Saved: []SavedMonth{}, Plans: []*planner.SavePlan{}, DryRun: req.DryRun}
	for _, d := range drafts {
		plan := planner.BuildSavePlan(ms.confirmed[d.Operation], d)
		plan.Stale, err = e.isStale(d)
		if err != nil {
			return nil, err
		}
		result.Plans = append(result.Plans, plan)
	}

	if req.DryRun {
		return result, nil
	}
	if !req.Force {
		for _, plan := range result.Plans {
			if plan.Stale {
				return nil, fmt.Errorf("%w: %s %s (use --force to overwrite)", ErrStale, plan.Operation.Label(), plan.Month)
			}
		}
	}

	merged := ms.merged()
	if err := verifyCommit(ms.month, merged, result.Plans); err != nil {
		e.log.Info("save rejected", "month", ms.month, "forced", req.Force, "error", err)
		return nil, err
	}

	now := e.clock.Now()
	if err := e.writeRosters(drafts, merged, now); err != nil {
		return nil, err
	}
	for _, d := range drafts {
		if err := e.store.DeleteDraft(d.Operation, d.Month); err != nil {
			return nil, err
		}

		result.Saved = append(result.Saved, SavedMonth{
			Operation: d.Operation,
			Month:     d.Month,
			Days:      d.Touched(),
			Filled:    merged[d.Operation].Filled(),
			SavedAt:   now,
		})
		e.log.Info("roster saved",
			"operation", d.Operation, "month", d.Month, "draft", d.ID,
			"days", len(d.Days), "forced", req.Force)
	}
	return result, nil
}

// verifyCommit re-checks every new placement against the rosters that would
// be on disk after the save, with the other operations' drafts applied.
func verifyCommit(month roster.Month, merged roster.OperationSet, plans []*planner.SavePlan) error {
	sources := merged.Rosters()
	for _, plan := range plans {
		for _, c := range plan.Changes {
			for op, row := range merged.RowsForDay(c.Day) {
				if op == plan.Operation {
					continue
				}
				for _, name := range c.After.Occupants() {
					if !c.Before.Contains(name) && row.Contains(name) {
						return fmt.Errorf("%w: %s serves in %s and %s on day %d",
							ErrAlreadyOnDay, name, op.Label(), plan.Operation.Label(), c.Day)
					}
				}
			}
		}
		for _, name := range plan.Placed() {
			if err := limiter.Verify(name, month, sources...); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeRosters writes the merged roster of every draft. When a write fails,
// the files already written are restored byte for byte.
func (e *Engine) writeRosters(drafts []*state.Draft, merged roster.OperationSet, now time.Time) error {
	type snapshot struct {
		path    string
		data    []byte
		existed bool
	}
	var written []snapshot

	for _, d := range drafts {
		path := e.store.MonthPath(d.Operation, d.Month)
		data, err := e.fs.ReadFile(path)
		existed := err == nil
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to read %s roster: %w", d.Operation, err)
		}

		if err := e.store.SaveMonth(merged[d.Operation], now); err != nil {
			for i := len(written) - 1; i >= 0; i-- {
				prev := written[i]
				var rerr error
				if prev.existed {
					rerr = e.fs.AtomicWrite(prev.path, prev.data, 0644)
				} else {
					rerr = e.fs.Remove(prev.path)
				}
				if rerr != nil {
					e.log.Error("failed to restore roster", "path", prev.path, "error", rerr)
				}
			}
			return fmt.Errorf("failed to save %s roster: %w", d.Operation, err)
		}
		written = append(written, snapshot{path: path, data: data, existed: existed})
	}
	return nil
}

// Discard deletes the pending drafts of a month.
func (e *Engine) Discard(ctx context.Context, req *DiscardRequest) (*DiscardResult, error) {
	ops, err := operationsOrAll(req.Operation)
	if err != nil {
		return nil, err
	}
	if req.Month.IsZero() {
		return nil, fmt.Errorf("%w: month is required", ErrValidation)
	}

	result := &DiscardResult{Discarded: []roster.Operation{}}
	for _, op := range ops {
		d, err := e.store.LoadDraft(op, req.Month)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		id := ""
		if err != nil {
			e.log.Warn("discarding unreadable draft", "operation", op, "month", req.Month, "error", err)
		} else {
			id = d.ID
		}
		if err := e.store.DeleteDraft(op, req.Month); err != nil {
			return nil, err
		}
		result.Discarded = append(result.Discarded, op)
		e.log.Info("draft discarded", "operation", op, "month", req.Month, "draft", id)
	}
	if len(result.Discarded) == 0 {
		return nil, fmt.Errorf("%w for %s", ErrNoDraft, req.Month)
	}
	return result, nil
}
