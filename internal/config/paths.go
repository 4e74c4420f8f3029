// Package config manages escala configuration and filesystem paths.
//
// All escala data lives under a single root directory (default ~/.escala)
// that holds saved schedules, drafts, logs, the reference file and an
// optional config.yaml. The root can be moved with ESCALA_ROOT.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// RootEnv is the environment variable that overrides the data root.
const RootEnv = "ESCALA_ROOT"

// Paths contains all the filesystem paths used by escala.
type Paths struct {
	// Root is the base directory for all escala data (default: ~/.escala)
	Root string

	// Schedules holds confirmed month rosters, one directory per operation
	Schedules string

	// Drafts holds locally pending edits, one directory per operation
	Drafts string

	// Logs holds escala.log
	Logs string

	// Config is the path to the optional config file
	Config string

	// Reference is the default path of the personnel/calendar reference file
	Reference string
}

// DefaultPaths returns the default paths for escala.
// The root can be overridden with ESCALA_ROOT.
func DefaultPaths() (*Paths, error) {
	root := os.Getenv(RootEnv)
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		root = filepath.Join(home, ".escala")
	}
	return PathsAt(root), nil
}

// PathsAt returns the paths rooted at root.
func PathsAt(root string) *Paths {
	return &Paths{
		Root:      root,
		Schedules: filepath.Join(root, "schedules"),
		Drafts:    filepath.Join(root, "drafts"),
		Logs:      filepath.Join(root, "logs"),
		Config:    filepath.Join(root, "config.yaml"),
		Reference: filepath.Join(root, "reference.yaml"),
	}
}

// LogFile returns the path of the log file.
func (p *Paths) LogFile() string {
	return filepath.Join(p.Logs, "escala.log")
}

// EnsureDirectories creates all necessary directories if they don't exist.
func (p *Paths) EnsureDirectories() error {
	dirs := []string{
		p.Root,
		p.Schedules,
		p.Drafts,
		p.Logs,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}
