package engine

import (
	"context"
	"fmt"

	"github.com/danieljhkim/escala/internal/limiter"
	"github.com/danieljhkim/escala/internal/roster"
)

// Assign places a person in one slot of a day and stages the edit in the
// operation's draft. An empty person clears the slot.
//
// The placement is checked in order: row duplicate, same-day duplicate in
// another operation, directory membership, then the monthly cap. A rejected
// placement leaves the draft unchanged.
func (e *Engine) Assign(ctx context.Context, req *AssignRequest) (*AssignResult, error) {
	person := normalizeName(req.Person)
	if person == "" {
		return e.Clear(ctx, &ClearRequest{
			Operation: req.Operation,
			Month:     req.Month,
			Day:       req.Day,
			Slot:      req.Slot,
		})
	}
	if err := validateSlot(req.Operation, req.Month, req.Day, req.Slot); err != nil {
		return nil, err
	}

	ms, err := e.loadMonth(req.Month)
	if err != nil {
		return nil, err
	}
	merged := ms.merged()
	row := merged[req.Operation].Row(req.Day)

	result := &AssignResult{
		Operation: req.Operation,
		Month:     req.Month,
		Day:       req.Day,
		Slot:      req.Slot,
		Person:    person,
		Previous:  row[req.Slot],
		Row:       row,
	}

	if row[req.Slot] == person {
		result.Decision = limiter.Decision{Allowed: true, Cap: limiter.Cap}
		return result, nil
	}

	for slot, name := range row {
		if slot != req.Slot && name == person {
			return nil, fmt.Errorf("%w: %s holds slot %d of %s day %d",
				ErrDuplicateInRow, person, slot+1, req.Operation.Label(), req.Day)
		}
	}

	for op, other := range merged.RowsForDay(req.Day) {
		if op != req.Operation && other.Contains(person) {
			return nil, fmt.Errorf("%w: %s serves in %s on day %d",
				ErrAlreadyOnDay, person, op.Label(), req.Day)
		}
	}

	if !req.AllowUnknown {
		data, err := e.loadReference()
		if err != nil {
			return nil, fmt.Errorf("cannot verify %s: %w", person, err)
		}
		if _, ok := data.Directory().Lookup(person); !ok {
			return nil, fmt.Errorf("%w: %s is not in the personnel directory", ErrNotFound, person)
		}
	}

	decision := limiter.Authorize(limiter.Placement{
		Person:    person,
		Day:       req.Day,
		Month:     req.Month,
		Confirmed: ms.confirmedSources(),
		Pending:   ms.pendingSources(),
	})
	result.Decision = decision
	if !decision.Allowed {
		e.log.Info("placement rejected",
			"operation", req.Operation, "month", req.Month, "day", req.Day,
			"person", person, "count", decision.Count, "cap", decision.Cap)
		return result, decision.Err()
	}

	newRow, err := row.With(req.Slot, person)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := e.stage(ms, req.Operation, req.Day, newRow); err != nil {
		return nil, err
	}

	result.Row = newRow
	result.Changed = true
	result.DraftID = ms.drafts[req.Operation].ID
	e.log.Info("placement staged",
		"operation", req.Operation, "month", req.Month, "day", req.Day,
		"slot", req.Slot+1, "person", person, "count", decision.Count)
	return result, nil
}

// Clear empties one slot. Removal is always allowed and is never counted
// against the cap; clearing an empty slot is a no-op.
func (e *Engine) Clear(ctx context.Context, req *ClearRequest) (*AssignResult, error) {
	if err := validateSlot(req.Operation, req.Month, req.Day, req.Slot); err != nil {
		return nil, err
	}

	ms, err := e.loadMonth(req.Month)
	if err != nil {
		return nil, err
	}
	row := ms.merged()[req.Operation].Row(req.Day)

	result := &AssignResult{
		Operation: req.Operation,
		Month:     req.Month,
		Day:       req.Day,
		Slot:      req.Slot,
		Previous:  row[req.Slot],
		Row:       row,
		Decision:  limiter.Authorize(limiter.Placement{Day: req.Day, Month: req.Month}),
	}
	if row[req.Slot] == "" {
		return result, nil
	}

	newRow, err := row.With(req.Slot, "")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := e.stage(ms, req.Operation, req.Day, newRow); err != nil {
		return nil, err
	}

	result.Row = newRow
	result.Changed = true
	result.DraftID = ms.drafts[req.Operation].ID
	e.log.Info("slot cleared",
		"operation", req.Operation, "month", req.Month, "day", req.Day,
		"slot", req.Slot+1, "person", result.Previous)
	return result, nil
}

// stage writes row into op's draft and persists it.
func (e *Engine) stage(ms *monthState, op roster.Operation, day int, row roster.Row) error {
	d, err := e.draftFor(ms, op)
	if err != nil {
		return err
	}
	d.Stage(day, row, e.clock.Now())
	if err := e.store.SaveDraft(d); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}
