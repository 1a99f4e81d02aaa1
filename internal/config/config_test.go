package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadProjectConfigDefaultsWhenMissing(t *testing.T) {
	projectDir := t.TempDir()
	cfg, err := NewConfig(projectDir)
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	if cfg.Project.Version != 1 {
		t.Fatalf("expected default version == 1, got %d", cfg.Project.Version)
	}
	if cfg.Title() != defaultTitle {
		t.Fatalf("expected default title %q, got %q", defaultTitle, cfg.Title())
	}
	if !cfg.AltScreen() || !cfg.LogEnabled() {
		t.Fatalf("expected alt screen and logging on by default")
	}
	if string(cfg.AccentColor()) != defaultAccentColor {
		t.Fatalf("unexpected accent %q", cfg.AccentColor())
	}
}

func TestInitDirWritesLoadableDefaults(t *testing.T) {
	projectDir := t.TempDir()
	if err := InitDir(projectDir); err != nil {
		t.Fatalf("InitDir: %v", err)
	}
	if _, err := os.Stat(filepath.Join(projectDir, StateDir, "logs")); err != nil {
		t.Fatalf("expected logs dir: %v", err)
	}
	cfg, err := NewConfig(projectDir)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	if cfg.Title() != defaultTitle || !cfg.AltScreen() {
		t.Fatalf("default config round trip mismatch: %+v", cfg.Project)
	}

	custom := []byte("version: 1\ntitle: Custom\n")
	if err := os.WriteFile(cfg.ProjectConfigPath(), custom, 0644); err != nil {
		t.Fatal(err)
	}
	if err := InitDir(projectDir); err != nil {
		t.Fatalf("second InitDir: %v", err)
	}
	data, err := os.ReadFile(cfg.ProjectConfigPath())
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != string(custom) {
		t.Fatalf("InitDir overwrote an existing config")
	}
}

func TestLoadProjectConfigParsesYaml(t *testing.T) {
	projectDir := t.TempDir()
	stateDir := filepath.Join(projectDir, StateDir)
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		t.Fatal(err)
	}
	configYAML := strings.TrimSpace(`
version: 1
title: "  Checkout  "
alt_screen: false
theme:
  accent: "#7D56F4"
  error: "9"
log:
  enabled: false
`)
	if err := os.WriteFile(filepath.Join(stateDir, "config.yaml"), []byte(configYAML), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := NewConfig(projectDir)
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	if cfg.Title() != "Checkout" {
		t.Fatalf("expected trimmed title, got %q", cfg.Title())
	}
	if cfg.AltScreen() {
		t.Fatalf("expected alt screen disabled")
	}
	if cfg.LogEnabled() {
		t.Fatalf("expected logging disabled")
	}
	if string(cfg.AccentColor()) != "#7D56F4" || string(cfg.ErrorColor()) != "9" {
		t.Fatalf("unexpected theme %+v", cfg.Project.Theme)
	}
}

func TestLoadProjectConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{name: "negative-version", yaml: "version: -1\n", want: "version"},
		{name: "bad-hex", yaml: "theme:\n  accent: \"#12\"\n", want: "theme.accent"},
		{name: "ansi-out-of-range", yaml: "theme:\n  error: \"300\"\n", want: "theme.error"},
		{name: "named-colour", yaml: "theme:\n  error: red\n", want: "theme.error"},
		{name: "malformed", yaml: "title: [unterminated\n", want: "parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			projectDir := t.TempDir()
			stateDir := filepath.Join(projectDir, StateDir)
			if err := os.MkdirAll(stateDir, 0755); err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile(filepath.Join(stateDir, "config.yaml"), []byte(tt.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := NewConfig(projectDir)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestNilConfigFallsBackToDefaults(t *testing.T) {
	var cfg *Config
	if cfg.Title() != defaultTitle || !cfg.AltScreen() || !cfg.LogEnabled() {
		t.Fatalf("nil config should report defaults")
	}
	if Default().Title() != defaultTitle {
		t.Fatalf("Default() title mismatch")
	}
}
