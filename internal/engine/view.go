package engine

import (
	"context"
	"fmt"

	"github.com/danieljhkim/escala/internal/roster"
)

// View returns the confirmed and merged roster of one operation's month.
func (e *Engine) View(ctx context.Context, req *ViewRequest) (*ViewResult, error) {
	if err := validateKey(req.Operation, req.Month); err != nil {
		return nil, err
	}

	ms, err := e.loadMonth(req.Month)
	if err != nil {
		return nil, err
	}

	confirmed := ms.confirmed[req.Operation]
	draft := ms.drafts[req.Operation]

	result := &ViewResult{
		Operation: req.Operation,
		Month:     req.Month,
		Confirmed: confirmed,
		Merged:    draft.Apply(confirmed),
		Pending:   []int{},
	}
	if draft != nil {
		result.Pending = draft.Touched()
		result.DraftID = draft.ID
		stale, err := e.isStale(draft)
		if err != nil {
			return nil, err
		}
		result.Stale = stale
	}
	return result, nil
}

// Months lists every month with a saved roster, per operation.
func (e *Engine) Months(ctx context.Context) (*MonthsResult, error) {
	result := &MonthsResult{Months: []SavedMonthInfo{}}
	for _, op := range roster.Operations() {
		months, err := e.store.ListMonths(op)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s months: %w", op, err)
		}
		for _, month := range months {
			r, err := e.store.LoadMonth(op, month)
			if err != nil {
				return nil, err
			}
			_, err = e.store.LoadDraft(op, month)
			result.Months = append(result.Months, SavedMonthInfo{
				Operation: op,
				Month:     month,
				Filled:    r.Filled(),
				Capacity:  r.Capacity(),
				Pending:   err == nil,
			})
		}
	}
	return result, nil
}
