package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/danieljhkim/escala/internal/clock"
	"github.com/danieljhkim/escala/internal/config"
	"github.com/danieljhkim/escala/internal/engine"
	"github.com/danieljhkim/escala/internal/fsops"
	"github.com/danieljhkim/escala/internal/hash"
	"github.com/danieljhkim/escala/internal/logging"
	"github.com/danieljhkim/escala/internal/roster"
	"github.com/danieljhkim/escala/internal/state"
)

// newEngine creates a new engine with real implementations of all dependencies.
// The returned func closes the log file.
func newEngine() (*engine.Engine, func(), error) {
	paths, err := config.DefaultPaths()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get config paths: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, nil, fmt.Errorf("failed to ensure directories: %w", err)
	}

	settings, err := config.LoadSettings(paths)
	if err != nil {
		return nil, nil, err
	}

	logFile, err := logging.OpenFile(paths.LogFile())
	if err != nil {
		return nil, nil, err
	}
	log := logging.NewLogger(logging.LogConfig{
		Level:  settings.LogLevel,
		Format: settings.LogFormat,
		Output: logFile,
	})

	fs := fsops.NewRealFS()
	store := state.NewFileScheduleStore(fs, paths.Schedules, paths.Drafts)
	eng := engine.New(store, fs, hash.NewSHA256Hasher(), &clock.RealClock{}, log, settings.Reference)

	return eng, func() { _ = logFile.Close() }, nil
}

// parseOperation resolves an --op value. Common spellings are accepted.
func parseOperation(s string) (roster.Operation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pmf":
		return roster.OpPMF, nil
	case "escolasegura", "escola-segura", "es":
		return roster.OpEscolaSegura, nil
	}
	return roster.ParseOperation(s)
}

// parseOptionalOperation is parseOperation with "" meaning all operations.
func parseOptionalOperation(s string) (roster.Operation, error) {
	if strings.TrimSpace(s) == "" {
		return "", nil
	}
	return parseOperation(s)
}

// parseMonth resolves a --month value, defaulting to the current month.
func parseMonth(eng *engine.Engine, s string) (roster.Month, error) {
	if strings.TrimSpace(s) == "" {
		return eng.CurrentMonth(), nil
	}
	return roster.ParseMonth(strings.TrimSpace(s))
}

// outputJSON writes a value as indented JSON.
func outputJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
