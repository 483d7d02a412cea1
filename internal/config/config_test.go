package config

import (
	"testing"
)

func TestConfig_GetTestPath(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected string
	}{
		{
			name: "default path",
			config: &Config{
				ProjectPath: ".",
				TestPath:    ".",
				Flags:       Flags{},
			},
			expected: ".",
		},
		{
			name: "with test path flag",
			config: &Config{
				ProjectPath: "/project",
				TestPath:    ".",
				Flags: Flags{
					TestPath: "tests",
				},
			},
			expected: "/project/tests",
		},
		{
			name: "absolute test path",
			config: &Config{
				ProjectPath: "/project",
				TestPath:    ".",
				Flags: Flags{
					TestPath: "/absolute/path",
				},
			},
			expected: "/absolute/path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.config.GetTestPath()
			if result != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, result)
			}
		})
	}
}

func TestConfig_GetDatabaseName(t *testing.T) {
	cfg := New()

	t.Run("default prefix", func(t *testing.T) {
		t.Setenv("DB_DATABASE_PREFIX", "")
		if name := cfg.GetDatabaseName(1); name != "testing_1" {
			t.Errorf("expected testing_1, got %s", name)
		}
	})

	t.Run("prefix from environment", func(t *testing.T) {
		t.Setenv("DB_DATABASE_PREFIX", "acme")
		if name := cfg.GetDatabaseName(3); name != "acme_3" {
			t.Errorf("expected acme_3, got %s", name)
		}
	})
}

func TestConfig_ApplyFlags(t *testing.T) {
	t.Run("processors override", func(t *testing.T) {
		cfg := New()
		cfg.ApplyFlags(Flags{Processors: 8})
		if cfg.Processors != 8 {
			t.Errorf("expected 8 processors, got %d", cfg.Processors)
		}
	})

	t.Run("zero processors keeps default", func(t *testing.T) {
		cfg := New()
		cfg.ApplyFlags(Flags{})
		if cfg.Processors != DefaultProcessors {
			t.Errorf("expected %d processors, got %d", DefaultProcessors, cfg.Processors)
		}
	})

	t.Run("deferred flag disables pre-enumeration", func(t *testing.T) {
		cfg := New()
		if !cfg.PreEnumerate {
			t.Fatal("pre-enumeration must default to on")
		}
		cfg.ApplyFlags(Flags{Deferred: true})
		if cfg.PreEnumerate {
			t.Error("deferred flag must disable pre-enumeration")
		}
	})
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.ProjectPath != DefaultProjectPath {
		t.Errorf("expected ProjectPath %s, got %s", DefaultProjectPath, cfg.ProjectPath)
	}

	if cfg.Processors != DefaultProcessors {
		t.Errorf("expected Processors %d, got %d", DefaultProcessors, cfg.Processors)
	}

	if len(cfg.PathsToIgnore) != len(DefaultPathsToIgnore) {
		t.Errorf("expected %d paths to ignore, got %d", len(DefaultPathsToIgnore), len(cfg.PathsToIgnore))
	}
}
