package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

type testSection struct {
	Level   string            `koanf:"level"`
	Format  string            `koanf:"format"`
	Tick    Duration          `koanf:"tick"`
	Fields  map[string]string `koanf:"fields"`
	Enabled bool              `koanf:"enabled"`
}

type testConfig struct {
	Prefix  string      `koanf:"prefix"`
	Backend testSection `koanf:"backend"`
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "logtree.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	return path
}

// TestLoad_ValidYAML tests loading configuration from a valid YAML file.
func TestLoad_ValidYAML(t *testing.T) {
	path := writeConfig(t, `prefix: billing
backend:
  level: debug
  format: console
  tick: 250ms
  fields:
    service: invoices
`)

	var cfg testConfig
	if err := Load(path, &cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Prefix != "billing" {
		t.Errorf("Prefix = %q, want billing", cfg.Prefix)
	}
	if cfg.Backend.Level != "debug" {
		t.Errorf("Backend.Level = %q, want debug", cfg.Backend.Level)
	}
	if cfg.Backend.Tick.Duration() != 250*time.Millisecond {
		t.Errorf("Backend.Tick = %v, want 250ms", cfg.Backend.Tick.Duration())
	}
	if cfg.Backend.Fields["service"] != "invoices" {
		t.Errorf("Backend.Fields[service] = %q, want invoices", cfg.Backend.Fields["service"])
	}
}

// TestLoad_KeepsDefaults tests that keys missing from every source keep their preset values.
func TestLoad_KeepsDefaults(t *testing.T) {
	path := writeConfig(t, "backend:\n  level: warn\n")

	cfg := testConfig{
		Prefix:  "logtree",
		Backend: testSection{Format: "json", Enabled: true},
	}
	if err := Load(path, &cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Prefix != "logtree" {
		t.Errorf("Prefix = %q, want default logtree", cfg.Prefix)
	}
	if cfg.Backend.Format != "json" {
		t.Errorf("Backend.Format = %q, want default json", cfg.Backend.Format)
	}
	if !cfg.Backend.Enabled {
		t.Error("Backend.Enabled lost its default")
	}
	if cfg.Backend.Level != "warn" {
		t.Errorf("Backend.Level = %q, want warn", cfg.Backend.Level)
	}
}

// TestLoad_EnvironmentOverride tests that LOGTREE_* variables win over the file.
func TestLoad_EnvironmentOverride(t *testing.T) {
	path := writeConfig(t, "prefix: billing\nbackend:\n  format: console\n")
	t.Setenv("LOGTREE_PREFIX", "payments")
	t.Setenv("LOGTREE_BACKEND_FORMAT", "json")

	var cfg testConfig
	if err := Load(path, &cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Prefix != "payments" {
		t.Errorf("Prefix = %q, want payments (from env)", cfg.Prefix)
	}
	if cfg.Backend.Format != "json" {
		t.Errorf("Backend.Format = %q, want json (from env)", cfg.Backend.Format)
	}
}

// TestLoad_MissingFile tests that a missing file falls back to env and defaults.
func TestLoad_MissingFile(t *testing.T) {
	cfg := testConfig{Prefix: "logtree"}
	if err := Load(filepath.Join(t.TempDir(), "absent.yaml"), &cfg); err != nil {
		t.Fatalf("Load() should ignore missing file, got error: %v", err)
	}
	if cfg.Prefix != "logtree" {
		t.Errorf("Prefix = %q, want logtree", cfg.Prefix)
	}
}

// TestLoad_EmptyPath tests that an empty path skips the file layer entirely.
func TestLoad_EmptyPath(t *testing.T) {
	t.Setenv("LOGTREE_BACKEND_LEVEL", "error")

	var cfg testConfig
	if err := Load("", &cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Backend.Level != "error" {
		t.Errorf("Backend.Level = %q, want error", cfg.Backend.Level)
	}
}

// TestLoad_InvalidYAML tests that malformed YAML is reported.
func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "backend: [unterminated\n")

	var cfg testConfig
	if err := Load(path, &cfg); err == nil {
		t.Error("Expected error for invalid YAML, got nil")
	}
}

// TestLoad_InvalidDuration tests that text unmarshaling errors surface.
func TestLoad_InvalidDuration(t *testing.T) {
	path := writeConfig(t, "backend:\n  tick: soon\n")

	var cfg testConfig
	if err := Load(path, &cfg); err == nil {
		t.Error("Expected error for invalid duration, got nil")
	}
}

// TestLoad_FileTooLarge tests file size limit enforcement.
func TestLoad_FileTooLarge(t *testing.T) {
	// 2MB file exceeds the 1MB limit
	path := writeConfig(t, string(bytes.Repeat([]byte("# comment line\n"), 150000)))

	var cfg testConfig
	err := Load(path, &cfg)
	if !errors.Is(err, ErrConfigTooLarge) {
		t.Errorf("Expected ErrConfigTooLarge, got: %v", err)
	}
}

// TestLoad_Directory tests that a directory path is rejected.
func TestLoad_Directory(t *testing.T) {
	var cfg testConfig
	err := Load(t.TempDir(), &cfg)
	if !errors.Is(err, ErrNotRegularFile) {
		t.Errorf("Expected ErrNotRegularFile, got: %v", err)
	}
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"LOGTREE_PREFIX":             "prefix",
		"LOGTREE_BACKEND_LEVEL":      "backend.level",
		"LOGTREE_BACKEND_FATAL_EXIT": "backend.fatal_exit",
	}
	for in, want := range tests {
		if got := envKey(in); got != want {
			t.Errorf("envKey(%q) = %q, want %q", in, got, want)
		}
	}
}
