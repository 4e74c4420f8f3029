package engine

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/danieljhkim/escala/internal/clock"
	"github.com/danieljhkim/escala/internal/fsops"
	"github.com/danieljhkim/escala/internal/hash"
	"github.com/danieljhkim/escala/internal/logging"
	"github.com/danieljhkim/escala/internal/roster"
	"github.com/danieljhkim/escala/internal/state"
)

var april = roster.NewMonth(2025, time.April)

const (
	silva  = "SD PM A. SILVA"
	olimar = "1º SGT PM OLIMAR"
	luan   = "SD PM LUAN"
)

type testEnv struct {
	eng   *Engine
	store *state.FileScheduleStore
	clock *clock.FakeClock
	root  string
}

// newTestEnv wires an Engine over a temp directory and the April 2025
// reference fixture.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithReference(t, filepath.Join("..", "reference", "testdata", "april-2025.yaml"))
}

func newTestEnvWithReference(t *testing.T, referencePath string) *testEnv {
	t.Helper()
	root := t.TempDir()
	fs := fsops.NewRealFS()
	store := state.NewFileScheduleStore(fs, filepath.Join(root, "schedules"), filepath.Join(root, "drafts"))
	clk := clock.NewFakeClock(time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC))

	return &testEnv{
		eng:   New(store, fs, hash.NewSHA256Hasher(), clk, logging.Nop(), referencePath),
		store: store,
		clock: clk,
		root:  root,
	}
}

// saveConfirmed writes a confirmed roster placing name in slot 0 of days.
func (env *testEnv) saveConfirmed(t *testing.T, op roster.Operation, name string, days ...int) {
	t.Helper()
	r, err := env.store.LoadMonth(op, april)
	if err != nil {
		t.Fatalf("LoadMonth failed: %v", err)
	}
	for _, day := range days {
		if err := r.Set(day, 0, name); err != nil {
			t.Fatalf("Set(%d) failed: %v", day, err)
		}
	}
	if err := env.store.SaveMonth(r, env.clock.Now()); err != nil {
		t.Fatalf("SaveMonth failed: %v", err)
	}
}

func dayRange(from, to int) []int {
	var out []int
	for d := from; d <= to; d++ {
		out = append(out, d)
	}
	return out
}

func TestNew_DefaultsLogger(t *testing.T) {
	eng := New(nil, nil, nil, clock.NewFakeClock(time.Date(2025, 4, 9, 0, 0, 0, 0, time.UTC)), nil, "")
	if eng.log == nil {
		t.Fatal("New should default to a no-op logger")
	}
	if got := eng.CurrentMonth(); got != april {
		t.Errorf("CurrentMonth() = %s, want %s", got, april)
	}
}
