package state

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/danieljhkim/escala/internal/fsops"
	"github.com/danieljhkim/escala/internal/roster"
)

func newTestStore(t *testing.T) (*FileScheduleStore, string) {
	t.Helper()
	root := t.TempDir()
	return NewFileScheduleStore(fsops.NewRealFS(), filepath.Join(root, "schedules"), filepath.Join(root, "drafts")), root
}

func TestFileScheduleStore_LoadMonthMissing(t *testing.T) {
	store, _ := newTestStore(t)

	r, err := store.LoadMonth(roster.OpEscolaSegura, april)
	if err != nil {
		t.Fatalf("LoadMonth failed: %v", err)
	}
	if r.Operation != roster.OpEscolaSegura || r.Month != april || len(r.Days) != 0 {
		t.Errorf("expected empty roster, got %+v", r)
	}
}

func TestFileScheduleStore_SaveLoadMonth(t *testing.T) {
	store, root := newTestStore(t)

	r := roster.NewMonthRoster(roster.OpPMF, april)
	r.SetRow(7, roster.Row{"1º SGT PM OLIMAR", "", ""})
	r.SetRow(8, roster.Row{"", "", ""})

	if err := store.SaveMonth(r, time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("SaveMonth failed: %v", err)
	}

	want := filepath.Join(root, "schedules", "pmf", "2025-04.json")
	if store.MonthPath(roster.OpPMF, april) != want {
		t.Errorf("MonthPath = %s, want %s", store.MonthPath(roster.OpPMF, april), want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("roster file not written: %v", err)
	}

	loaded, err := store.LoadMonth(roster.OpPMF, april)
	if err != nil {
		t.Fatalf("LoadMonth failed: %v", err)
	}
	if len(loaded.Days) != 1 {
		t.Errorf("empty rows should not persist, got days %v", loaded.SortedDays())
	}
	if !reflect.DeepEqual(loaded.Row(7), roster.Row{"1º SGT PM OLIMAR", "", ""}) {
		t.Errorf("day 7 = %v", loaded.Row(7))
	}

	months, err := store.ListMonths(roster.OpPMF)
	if err != nil {
		t.Fatalf("ListMonths failed: %v", err)
	}
	if len(months) != 1 || months[0] != april {
		t.Errorf("ListMonths = %v, want [2025-04]", months)
	}
}

func TestFileScheduleStore_LoadMonthRejectsMismatchedFile(t *testing.T) {
	store, _ := newTestStore(t)

	path := store.MonthPath(roster.OpPMF, april)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	body := `{"operation":"escolaSegura","month":"2025-04","days":{}}`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := store.LoadMonth(roster.OpPMF, april); err == nil {
		t.Error("expected error for roster file of another operation")
	}

	if err := os.WriteFile(path, []byte("{broken"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := store.LoadMonth(roster.OpPMF, april); err == nil {
		t.Error("expected error for corrupt roster file")
	}
}

func TestFileScheduleStore_RejectsOverwideRows(t *testing.T) {
	store, _ := newTestStore(t)

	tests := []struct {
		name string
		path string
		body string
		load func() error
	}{
		{
			name: "roster",
			path: store.MonthPath(roster.OpEscolaSegura, april),
			body: `{"operation":"escolaSegura","month":"2025-04","days":{"3":["A","B","C"]}}`,
			load: func() error {
				_, err := store.LoadMonth(roster.OpEscolaSegura, april)
				return err
			},
		},
		{
			name: "draft",
			path: store.draftPath(roster.OpEscolaSegura, april),
			body: `{"id":"d1","operation":"escolaSegura","month":"2025-04","days":{"3":["A","B","C"]}}`,
			load: func() error {
				_, err := store.LoadDraft(roster.OpEscolaSegura, april)
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := os.MkdirAll(filepath.Dir(tt.path), 0755); err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile(tt.path, []byte(tt.body), 0644); err != nil {
				t.Fatal(err)
			}
			if err := tt.load(); !errors.Is(err, ErrMalformed) {
				t.Errorf("load error = %v, want ErrMalformed", err)
			}
		})
	}
}

func TestFileScheduleStore_Drafts(t *testing.T) {
	store, _ := newTestStore(t)
	now := time.Date(2025, 4, 3, 10, 0, 0, 0, time.UTC)

	if _, err := store.LoadDraft(roster.OpPMF, april); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("LoadDraft(missing) error = %v, want os.ErrNotExist", err)
	}

	d := NewDraft(roster.OpPMF, april, "base", now)
	d.Stage(12, roster.Row{"SD PM NAVARRO", "", ""}, now)
	if err := store.SaveDraft(d); err != nil {
		t.Fatalf("SaveDraft failed: %v", err)
	}

	loaded, err := store.LoadDraft(roster.OpPMF, april)
	if err != nil {
		t.Fatalf("LoadDraft failed: %v", err)
	}
	if loaded.ID != d.ID || loaded.BaseChecksum != "base" {
		t.Errorf("loaded draft header = %+v", loaded)
	}
	if !reflect.DeepEqual(loaded.Days[12], roster.Row{"SD PM NAVARRO", "", ""}) {
		t.Errorf("loaded draft day 12 = %v", loaded.Days[12])
	}

	if err := store.DeleteDraft(roster.OpPMF, april); err != nil {
		t.Fatalf("DeleteDraft failed: %v", err)
	}
	if err := store.DeleteDraft(roster.OpPMF, april); err != nil {
		t.Errorf("DeleteDraft should be idempotent, got %v", err)
	}
	if _, err := store.LoadDraft(roster.OpPMF, april); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("draft should be gone, got %v", err)
	}
}

func TestFileScheduleStore_RejectsBadKeys(t *testing.T) {
	store, _ := newTestStore(t)

	if _, err := store.LoadMonth(roster.Operation("../etc"), april); err == nil {
		t.Error("expected error for unknown operation")
	}
	if _, err := store.LoadMonth(roster.OpPMF, roster.Month{}); err == nil {
		t.Error("expected error for zero month")
	}
}
