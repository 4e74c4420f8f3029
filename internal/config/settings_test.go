package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearSettingsEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ESCALA_REFERENCE", "")
	t.Setenv("ESCALA_LOG_LEVEL", "")
	t.Setenv("ESCALA_LOG_FORMAT", "")
	os.Unsetenv("ESCALA_REFERENCE")
	os.Unsetenv("ESCALA_LOG_LEVEL")
	os.Unsetenv("ESCALA_LOG_FORMAT")
}

func TestLoadSettings(t *testing.T) {
	tests := []struct {
		name       string
		configYAML string
		env        map[string]string
		want       func(p *Paths) Settings
		wantErr    bool
	}{
		{
			name: "defaults without config file",
			want: func(p *Paths) Settings {
				return Settings{Reference: p.Reference, LogLevel: "info", LogFormat: "text"}
			},
		},
		{
			name:       "config file values",
			configYAML: "reference: data/people.yaml\nlog:\n  level: debug\n  format: json\n",
			want: func(p *Paths) Settings {
				return Settings{Reference: filepath.Join(p.Root, "data", "people.yaml"), LogLevel: "debug", LogFormat: "json"}
			},
		},
		{
			name:       "environment overrides config file",
			configYAML: "log:\n  level: debug\n",
			env:        map[string]string{"ESCALA_LOG_LEVEL": "WARN", "ESCALA_REFERENCE": "/srv/ref.yaml"},
			want: func(p *Paths) Settings {
				return Settings{Reference: "/srv/ref.yaml", LogLevel: "warn", LogFormat: "text"}
			},
		},
		{
			name:       "invalid format",
			configYAML: "log:\n  format: xml\n",
			wantErr:    true,
		},
		{
			name:       "malformed config file",
			configYAML: "log: [unterminated\n",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearSettingsEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			paths := PathsAt(t.TempDir())
			if tt.configYAML != "" {
				if err := os.WriteFile(paths.Config, []byte(tt.configYAML), 0644); err != nil {
					t.Fatalf("failed to write config: %v", err)
				}
			}

			got, err := LoadSettings(paths)
			if tt.wantErr {
				if err == nil {
					t.Fatal("LoadSettings() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadSettings() failed: %v", err)
			}
			if want := tt.want(paths); *got != want {
				t.Errorf("LoadSettings() = %+v, want %+v", *got, want)
			}
		})
	}
}
