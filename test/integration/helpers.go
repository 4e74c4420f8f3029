package integration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/danieljhkim/escala/internal/clock"
	"github.com/danieljhkim/escala/internal/config"
	"github.com/danieljhkim/escala/internal/engine"
	"github.com/danieljhkim/escala/internal/fsops"
	"github.com/danieljhkim/escala/internal/hash"
	"github.com/danieljhkim/escala/internal/logging"
	"github.com/danieljhkim/escala/internal/roster"
	"github.com/danieljhkim/escala/internal/state"
)

var april = roster.NewMonth(2025, time.April)

const (
	olimar = "1º SGT PM OLIMAR"
	luan   = "SD PM LUAN"
	silva  = "SD PM A. SILVA"
)

// testFS is a filesystem implementation that tracks files in memory for testing
type testFS struct {
	files map[string][]byte
	dirs  map[string]bool

	// failWrites makes AtomicWrite fail for the listed paths.
	failWrites map[string]bool
}

func newTestFS() *testFS {
	return &testFS{
		files:      make(map[string][]byte),
		dirs:       make(map[string]bool),
		failWrites: make(map[string]bool),
	}
}

func (fs *testFS) Exists(path string) (bool, error) {
	_, hasFile := fs.files[path]
	return hasFile || fs.dirs[path], nil
}

func (fs *testFS) MkdirAll(path string, perm os.FileMode) error {
	for p := path; p != "/" && p != "."; p = filepath.Dir(p) {
		fs.dirs[p] = true
	}
	return nil
}

func (fs *testFS) Remove(path string) error {
	if _, ok := fs.files[path]; !ok {
		return os.ErrNotExist
	}
	delete(fs.files, path)
	return nil
}

func (fs *testFS) AtomicWrite(path string, data []byte, perm os.FileMode) error {
	if fs.failWrites[path] {
		return fmt.Errorf("write %s: %w", path, os.ErrPermission)
	}
	_ = fs.MkdirAll(filepath.Dir(path), 0755)
	fs.files[path] = append([]byte(nil), data...)
	return nil
}

func (fs *testFS) ReadFile(path string) ([]byte, error) {
	if content, ok := fs.files[path]; ok {
		return append([]byte(nil), content...), nil
	}
	return nil, os.ErrNotExist
}

func (fs *testFS) ListFiles(dir, ext string) ([]string, error) {
	prefix := dir + string(filepath.Separator)
	names := []string{}
	for p := range fs.files {
		if !strings.HasPrefix(p, prefix) {
			continue
		}
		name := strings.TrimPrefix(p, prefix)
		if strings.Contains(name, string(filepath.Separator)) {
			continue
		}
		if ext != "" && filepath.Ext(name) != ext {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (fs *testFS) ValidateIdentifier(id string) error {
	return fsops.NewRealFS().ValidateIdentifier(id)
}

// contentHasher hashes the in-memory file contents so staleness checks see
// writes made through testFS.
type contentHasher struct {
	fs     *testFS
	hasher *hash.SHA256Hasher
}

func (h *contentHasher) HashFile(path string) (string, error) {
	content, ok := h.fs.files[path]
	if !ok {
		return "", nil
	}
	return h.hasher.HashBytes(content), nil
}

func (h *contentHasher) HashBytes(data []byte) string {
	return h.hasher.HashBytes(data)
}

type testSetup struct {
	eng   *engine.Engine
	fs    *testFS
	store *state.FileScheduleStore
	clock *clock.FakeClock
	paths *config.Paths
}

// setupTestEngine wires an engine over an in-memory filesystem seeded with
// the April 2025 reference file.
func setupTestEngine(t *testing.T) *testSetup {
	t.Helper()

	fixture, err := os.ReadFile(filepath.Join("..", "..", "internal", "reference", "testdata", "april-2025.yaml"))
	if err != nil {
		t.Fatalf("read reference fixture: %v", err)
	}

	fs := newTestFS()
	paths := config.PathsAt("/test")
	fs.files[paths.Reference] = fixture

	setup := &testSetup{
		fs:    fs,
		store: state.NewFileScheduleStore(fs, paths.Schedules, paths.Drafts),
		clock: clock.NewFakeClock(time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)),
		paths: paths,
	}
	setup.eng = setup.restart()
	return setup
}

// restart builds a fresh engine over the same filesystem, as a new CLI
// invocation would.
func (s *testSetup) restart() *engine.Engine {
	hasher := &contentHasher{fs: s.fs, hasher: hash.NewSHA256Hasher()}
	return engine.New(s.store, s.fs, hasher, s.clock, logging.Nop(), s.paths.Reference)
}

func assign(t *testing.T, eng *engine.Engine, op roster.Operation, day, slot int, name string) *engine.AssignResult {
	t.Helper()
	result, err := eng.Assign(context.Background(), &engine.AssignRequest{
		Operation: op,
		Month:     april,
		Day:       day,
		Slot:      slot,
		Person:    name,
	})
	if err != nil {
		t.Fatalf("Assign(%s day %d slot %d %s) error = %v", op, day, slot, name, err)
	}
	return result
}
