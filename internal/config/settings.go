package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Settings are the user-tunable options read from config.yaml and ESCALA_* variables.
type Settings struct {
	// Reference is the absolute path of the reference file.
	Reference string

	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// LogFormat is text or json.
	LogFormat string
}

// LoadSettings reads <root>/config.yaml when present and applies ESCALA_*
// environment overrides (ESCALA_REFERENCE, ESCALA_LOG_LEVEL, ESCALA_LOG_FORMAT).
// A relative reference path is resolved against the data root.
func LoadSettings(paths *Paths) (*Settings, error) {
	v := viper.New()
	v.SetConfigFile(paths.Config)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("ESCALA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("reference", paths.Reference)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	if _, err := os.Stat(paths.Config); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", paths.Config, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat config %s: %w", paths.Config, err)
	}

	ref := v.GetString("reference")
	if ref != "" && !filepath.IsAbs(ref) {
		ref = filepath.Join(paths.Root, ref)
	}

	format := strings.ToLower(v.GetString("log.format"))
	if format != "text" && format != "json" {
		return nil, fmt.Errorf("invalid log.format %q: must be text or json", format)
	}

	return &Settings{
		Reference: ref,
		LogLevel:  strings.ToLower(v.GetString("log.level")),
		LogFormat: format,
	}, nil
}
