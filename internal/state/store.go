package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/danieljhkim/escala/internal/fsops"
	"github.com/danieljhkim/escala/internal/roster"
)

// ErrMalformed indicates a roster or draft file holds rows that do not fit
// the operation.
var ErrMalformed = errors.New("malformed roster file")

// ScheduleStore provides an interface for persisting month rosters and drafts.
type ScheduleStore interface {
	// LoadMonth loads the confirmed roster. A month never saved yields an
	// empty roster, not an error.
	LoadMonth(op roster.Operation, month roster.Month) (*roster.MonthRoster, error)

	// SaveMonth replaces the confirmed roster wholesale.
	SaveMonth(r *roster.MonthRoster, savedAt time.Time) error

	// MonthPath returns the file backing the confirmed roster.
	MonthPath(op roster.Operation, month roster.Month) string

	// ListMonths returns the months with a confirmed roster for op, ascending.
	ListMonths(op roster.Operation) ([]roster.Month, error)

	// LoadDraft loads the pending draft.
	// Returns os.ErrNotExist if there is none.
	LoadDraft(op roster.Operation, month roster.Month) (*Draft, error)

	// SaveDraft saves the draft atomically.
	SaveDraft(d *Draft) error

	// DeleteDraft deletes the draft file. Deleting a missing draft is not an error.
	DeleteDraft(op roster.Operation, month roster.Month) error
}

// FileScheduleStore implements ScheduleStore using JSON files on disk.
type FileScheduleStore struct {
	fs           fsops.FS
	schedulesDir string
	draftsDir    string
}

// NewFileScheduleStore creates a new FileScheduleStore.
func NewFileScheduleStore(fs fsops.FS, schedulesDir, draftsDir string) *FileScheduleStore {
	return &FileScheduleStore{
		fs:           fs,
		schedulesDir: schedulesDir,
		draftsDir:    draftsDir,
	}
}

// MonthPath returns the file backing the confirmed roster.
func (s *FileScheduleStore) MonthPath(op roster.Operation, month roster.Month) string {
	return filepath.Join(s.schedulesDir, string(op), month.String()+".json")
}

func (s *FileScheduleStore) draftPath(op roster.Operation, month roster.Month) string {
	return filepath.Join(s.draftsDir, string(op), month.String()+".json")
}

func (s *FileScheduleStore) checkKey(op roster.Operation, month roster.Month) error {
	if !op.Valid() {
		return fmt.Errorf("unknown operation %q", op)
	}
	if month.IsZero() {
		return fmt.Errorf("month is required")
	}
	if err := s.fs.ValidateIdentifier(string(op)); err != nil {
		return err
	}
	return s.fs.ValidateIdentifier(month.String())
}

// LoadMonth loads the confirmed roster for (op, month).
func (s *FileScheduleStore) LoadMonth(op roster.Operation, month roster.Month) (*roster.MonthRoster, error) {
	if err := s.checkKey(op, month); err != nil {
		return nil, err
	}

	data, err := s.fs.ReadFile(s.MonthPath(op, month))
	if err != nil {
		if os.IsNotExist(err) {
			return roster.NewMonthRoster(op, month), nil
		}
		return nil, fmt.Errorf("failed to read %s roster for %s: %w", op, month, err)
	}

	var doc monthDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s roster for %s: %w", op, month, err)
	}
	if doc.Operation != op || doc.Month != month {
		return nil, fmt.Errorf("roster file %s holds %s %s", s.MonthPath(op, month), doc.Operation, doc.Month)
	}

	if err := checkRows(op, doc.Days); err != nil {
		return nil, fmt.Errorf("%s: %w", s.MonthPath(op, month), err)
	}

	r := roster.NewMonthRoster(op, month)
	for day, row := range doc.Days {
		if !month.Contains(day) || row.IsEmpty() {
			continue
		}
		r.SetRow(day, row)
	}
	return r, nil
}

// checkRows rejects rows wider than the operation allows. Extra occupants
// would be counted by the limiter but hidden from every view.
func checkRows(op roster.Operation, days map[int]roster.Row) error {
	for day, row := range days {
		if len(row) > op.Width() {
			return fmt.Errorf("%w: day %d has %d slots, %s allows %d",
				ErrMalformed, day, len(row), op.Label(), op.Width())
		}
	}
	return nil
}

// SaveMonth persists r atomically. Empty rows are not written.
func (s *FileScheduleStore) SaveMonth(r *roster.MonthRoster, savedAt time.Time) error {
	if err := s.checkKey(r.Operation, r.Month); err != nil {
		return err
	}

	doc := monthDocument{
		Operation: r.Operation,
		Month:     r.Month,
		SavedAt:   savedAt.UTC(),
		Days:      make(map[int]roster.Row, len(r.Days)),
	}
	for day, row := range r.Days {
		if row.IsEmpty() {
			continue
		}
		doc.Days[day] = row
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s roster: %w", r.Operation, err)
	}
	if err := s.fs.AtomicWrite(s.MonthPath(r.Operation, r.Month), data, 0644); err != nil {
		return fmt.Errorf("failed to write %s roster: %w", r.Operation, err)
	}
	return nil
}

// ListMonths returns the months with a confirmed roster for op.
func (s *FileScheduleStore) ListMonths(op roster.Operation) ([]roster.Month, error) {
	if err := s.fs.ValidateIdentifier(string(op)); err != nil {
		return nil, err
	}
	names, err := s.fs.ListFiles(filepath.Join(s.schedulesDir, string(op)), ".json")
	if err != nil {
		return nil, err
	}

	months := []roster.Month{}
	for _, name := range names {
		m, err := roster.ParseMonth(strings.TrimSuffix(name, ".json"))
		if err != nil {
			continue
		}
		months = append(months, m)
	}
	return months, nil
}

// LoadDraft loads the pending draft for (op, month).
func (s *FileScheduleStore) LoadDraft(op roster.Operation, month roster.Month) (*Draft, error) {
	if err := s.checkKey(op, month); err != nil {
		return nil, err
	}

	data, err := s.fs.ReadFile(s.draftPath(op, month))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, os.ErrNotExist
		}
		return nil, fmt.Errorf("failed to read draft: %w", err)
	}

	var d Draft
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}
	if err := checkRows(op, d.Days); err != nil {
		return nil, fmt.Errorf("%s: %w", s.draftPath(op, month), err)
	}
	if d.Days == nil {
		d.Days = make(map[int]roster.Row)
	}
	return &d, nil
}

// SaveDraft saves the draft atomically.
func (s *FileScheduleStore) SaveDraft(d *Draft) error {
	if err := s.checkKey(d.Operation, d.Month); err != nil {
		return err
	}

	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}
	if err := s.fs.AtomicWrite(s.draftPath(d.Operation, d.Month), data, 0644); err != nil {
		return fmt.Errorf("failed to write draft: %w", err)
	}
	return nil
}

// DeleteDraft deletes the draft file.
func (s *FileScheduleStore) DeleteDraft(op roster.Operation, month roster.Month) error {
	if err := s.checkKey(op, month); err != nil {
		return err
	}
	if err := s.fs.Remove(s.draftPath(op, month)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	return nil
}
