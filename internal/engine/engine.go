// Package engine provides the core business logic for escala operations.
//
// The engine package is the orchestration layer between CLI commands and the
// pure domain packages. It loads confirmed rosters, pending drafts and
// reference data, asks the limiter and the conflict scanner for decisions,
// and persists the outcome.
//
// Key components:
//   - Engine: main orchestrator, the API surface called by the CLI
//   - View/Assign/Clear: month editing staged into a draft
//   - Save/Discard: committing or dropping a draft
//   - Candidates/Conflicts/Summary: read-only checks and reports
package engine

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/danieljhkim/escala/internal/clock"
	"github.com/danieljhkim/escala/internal/fsops"
	"github.com/danieljhkim/escala/internal/hash"
	"github.com/danieljhkim/escala/internal/logging"
	"github.com/danieljhkim/escala/internal/reference"
	"github.com/danieljhkim/escala/internal/roster"
	"github.com/danieljhkim/escala/internal/state"
)

// Engine orchestrates all escala operations.
// It is the main API surface called by the CLI.
type Engine struct {
	store         state.ScheduleStore
	fs            fsops.FS
	hasher        hash.Hasher
	clock         clock.Clock
	log           *logging.Logger
	referencePath string
}

// New creates a new Engine with the given dependencies.
func New(
	store state.ScheduleStore,
	fs fsops.FS,
	hasher hash.Hasher,
	clk clock.Clock,
	log *logging.Logger,
	referencePath string,
) *Engine {
	if log == nil {
		log = logging.Nop()
	}
	return &Engine{
		store:         store,
		fs:            fs,
		hasher:        hasher,
		clock:         clk,
		log:           log,
		referencePath: referencePath,
	}
}

// CurrentMonth returns the month the clock is in.
func (e *Engine) CurrentMonth() roster.Month {
	return roster.MonthOf(e.clock.Now())
}

// monthState is everything loaded for one month across operations.
type monthState struct {
	month     roster.Month
	confirmed roster.OperationSet
	drafts    map[roster.Operation]*state.Draft
}

// loadMonth loads the confirmed roster and draft of every operation.
func (e *Engine) loadMonth(month roster.Month) (*monthState, error) {
	ms := &monthState{
		month:     month,
		confirmed: make(roster.OperationSet),
		drafts:    make(map[roster.Operation]*state.Draft),
	}
	for _, op := range roster.Operations() {
		r, err := e.store.LoadMonth(op, month)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s roster: %w", op, err)
		}
		ms.confirmed[op] = r

		d, err := e.store.LoadDraft(op, month)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to load %s draft: %w", op, err)
		}
		ms.drafts[op] = d
	}
	return ms, nil
}

// merged returns every operation with its draft applied.
func (ms *monthState) merged() roster.OperationSet {
	out := make(roster.OperationSet, len(ms.confirmed))
	for op, r := range ms.confirmed {
		out[op] = ms.drafts[op].Apply(r)
	}
	return out
}

// confirmedSources returns the saved rosters in operation order.
func (ms *monthState) confirmedSources() []*roster.MonthRoster {
	return ms.confirmed.Rosters()
}

// pendingSources returns what each draft adds on top of its confirmed roster.
func (ms *monthState) pendingSources() []*roster.MonthRoster {
	var out []*roster.MonthRoster
	for _, op := range roster.Operations() {
		d, ok := ms.drafts[op]
		if !ok {
			continue
		}
		out = append(out, d.Additions(ms.confirmed[op]))
	}
	return out
}

// draftFor returns the existing draft for op or starts one based on the
// current confirmed file.
func (e *Engine) draftFor(ms *monthState, op roster.Operation) (*state.Draft, error) {
	if d, ok := ms.drafts[op]; ok {
		return d, nil
	}
	sum, err := e.hasher.HashFile(e.store.MonthPath(op, ms.month))
	if err != nil {
		return nil, fmt.Errorf("failed to hash %s roster: %w", op, err)
	}
	d := state.NewDraft(op, ms.month, sum, e.clock.Now())
	ms.drafts[op] = d
	e.log.Debug("draft started", "operation", op, "month", ms.month, "draft", d.ID)
	return d, nil
}

// isStale reports whether the confirmed file changed since d was started.
func (e *Engine) isStale(d *state.Draft) (bool, error) {
	sum, err := e.hasher.HashFile(e.store.MonthPath(d.Operation, d.Month))
	if err != nil {
		return false, fmt.Errorf("failed to hash %s roster: %w", d.Operation, err)
	}
	return sum != d.BaseChecksum, nil
}

// loadReference reads the reference file.
func (e *Engine) loadReference() (*reference.Data, error) {
	data, err := reference.Load(e.fs, e.referencePath)
	if err != nil {
		if errors.Is(err, reference.ErrNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
		}
		return nil, err
	}
	return data, nil
}

// validateKey checks operation and month.
func validateKey(op roster.Operation, month roster.Month) error {
	if !op.Valid() {
		return fmt.Errorf("%w: unknown operation %q", ErrValidation, op)
	}
	if month.IsZero() {
		return fmt.Errorf("%w: month is required", ErrValidation)
	}
	return nil
}

// validateSlot checks day and slot against the operation's shape.
func validateSlot(op roster.Operation, month roster.Month, day, slot int) error {
	if err := validateKey(op, month); err != nil {
		return err
	}
	if !month.Contains(day) {
		return fmt.Errorf("%w: day %d is outside %s (1-%d)", ErrValidation, day, month, month.Days())
	}
	if slot < 0 || slot >= op.Width() {
		return fmt.Errorf("%w: slot %d out of range for %s (1-%d)", ErrValidation, slot+1, op.Label(), op.Width())
	}
	return nil
}

// normalizeName trims and collapses inner whitespace.
func normalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// operationsOrAll expands an empty operation to every operation.
func operationsOrAll(op roster.Operation) ([]roster.Operation, error) {
	if op == "" {
		return roster.Operations(), nil
	}
	if !op.Valid() {
		return nil, fmt.Errorf("%w: unknown operation %q", ErrValidation, op)
	}
	return []roster.Operation{op}, nil
}
