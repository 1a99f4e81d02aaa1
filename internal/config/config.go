// internal/config/config.go
//
// This package handles configuration and the .multistep directory structure.
// Running the form in a directory creates a .multistep/ folder there holding
// the config file and the session log.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

const (
	// StateDir is the name of the directory we create in each project
	StateDir = ".multistep"

	defaultTitle       = "Multi-Step Form"
	defaultAccentColor = "63"
	defaultErrorColor  = "196"
)

const defaultProjectConfigYAML = `# multistep configuration
version: 1

# Heading shown above every step and the summary.
title: Multi-Step Form

# Run in the terminal's alternate screen buffer.
alt_screen: true

# Colours accept ANSI numbers ("63") or hex ("#7D56F4").
theme:
  accent: "63"
  error: "196"

# Session log under .multistep/logs/session.log. Field values are never logged.
log:
  enabled: true
`

// ThemeConfig holds the colours used by the TUI.
type ThemeConfig struct {
	Accent string `yaml:"accent"`
	Error  string `yaml:"error"`
}

// LogConfig toggles the session log.
type LogConfig struct {
	Enabled *bool `yaml:"enabled,omitempty"`
}

// ProjectConfig models .multistep/config.yaml.
type ProjectConfig struct {
	Version   int         `yaml:"version"`
	Title     string      `yaml:"title"`
	AltScreen *bool       `yaml:"alt_screen,omitempty"`
	Theme     ThemeConfig `yaml:"theme"`
	Log       LogConfig   `yaml:"log"`
}

// Config holds the runtime configuration.
type Config struct {
	// ProjectDir is the directory the form was launched from
	ProjectDir string

	// StateProjectDir is ProjectDir/.multistep
	StateProjectDir string

	Project ProjectConfig
}

// InitDir creates the .multistep directory structure in the given project
// directory and writes a default config.yaml if none exists.
//
// Structure created:
// .multistep/
// ├── config.yaml
// └── logs/
func InitDir(projectDir string) error {
	stateDir := filepath.Join(projectDir, StateDir)
	if err := os.MkdirAll(filepath.Join(stateDir, "logs"), 0o755); err != nil {
		return fmt.Errorf("config: create %s: %w", stateDir, err)
	}
	return ensureProjectConfig(filepath.Join(stateDir, "config.yaml"))
}

// NewConfig creates a new Config instance populated with project settings.
// A missing config.yaml yields the defaults.
func NewConfig(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir:      projectDir,
		StateProjectDir: filepath.Join(projectDir, StateDir),
		Project:         defaultProjectConfig(),
	}
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns a config that never touches disk. Useful for tests and
// headless callers.
func Default() *Config {
	return &Config{Project: defaultProjectConfig()}
}

// LogsDir returns the path to the logs directory
func (c *Config) LogsDir() string {
	return filepath.Join(c.StateProjectDir, "logs")
}

// LogPath returns the session log file.
func (c *Config) LogPath() string {
	return filepath.Join(c.LogsDir(), "session.log")
}

// ProjectConfigPath returns the on-disk location for the project config file.
func (c *Config) ProjectConfigPath() string {
	return filepath.Join(c.StateProjectDir, "config.yaml")
}

// Title returns the form heading.
func (c *Config) Title() string {
	if c == nil {
		return defaultTitle
	}
	return c.Project.Title
}

// AltScreen reports whether the TUI should take over the alternate screen.
func (c *Config) AltScreen() bool {
	if c == nil || c.Project.AltScreen == nil {
		return true
	}
	return *c.Project.AltScreen
}

// LogEnabled reports whether the session log should be written.
func (c *Config) LogEnabled() bool {
	if c == nil || c.Project.Log.Enabled == nil {
		return true
	}
	return *c.Project.Log.Enabled
}

// AccentColor returns the lipgloss colour for titles and focus.
func (c *Config) AccentColor() lipgloss.Color {
	if c == nil {
		return lipgloss.Color(defaultAccentColor)
	}
	return lipgloss.Color(c.Project.Theme.Accent)
}

// ErrorColor returns the lipgloss colour for inline errors.
func (c *Config) ErrorColor() lipgloss.Color {
	if c == nil {
		return lipgloss.Color(defaultErrorColor)
	}
	return lipgloss.Color(c.Project.Theme.Error)
}

func (c *Config) loadProjectConfig() error {
	path := c.ProjectConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed ProjectConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	parsed.normalize()
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Project = parsed
	return nil
}

func defaultProjectConfig() ProjectConfig {
	pc := ProjectConfig{Version: 1}
	pc.applyDefaults()
	return pc
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
	if strings.TrimSpace(pc.Title) == "" {
		pc.Title = defaultTitle
	}
	if strings.TrimSpace(pc.Theme.Accent) == "" {
		pc.Theme.Accent = defaultAccentColor
	}
	if strings.TrimSpace(pc.Theme.Error) == "" {
		pc.Theme.Error = defaultErrorColor
	}
}

func (pc *ProjectConfig) normalize() {
	pc.Title = strings.TrimSpace(pc.Title)
	pc.Theme.Accent = strings.TrimSpace(pc.Theme.Accent)
	pc.Theme.Error = strings.TrimSpace(pc.Theme.Error)
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	if err := validateColor(pc.Theme.Accent); err != nil {
		return fmt.Errorf("theme.accent: %w", err)
	}
	if err := validateColor(pc.Theme.Error); err != nil {
		return fmt.Errorf("theme.error: %w", err)
	}
	return nil
}

// validateColor accepts ANSI indexes (0-255) and #rgb/#rrggbb hex values.
func validateColor(value string) error {
	if strings.HasPrefix(value, "#") {
		hex := value[1:]
		if len(hex) != 3 && len(hex) != 6 {
			return fmt.Errorf("hex colour %q must have 3 or 6 digits", value)
		}
		for _, r := range hex {
			if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
				return fmt.Errorf("hex colour %q has invalid digit %q", value, r)
			}
		}
		return nil
	}
	n := 0
	for _, r := range value {
		if r < '0' || r > '9' {
			return fmt.Errorf("colour %q must be an ANSI number or #hex", value)
		}
		n = n*10 + int(r-'0')
		if n > 255 {
			return fmt.Errorf("ANSI colour %q out of range", value)
		}
	}
	if value == "" {
		return fmt.Errorf("colour is required")
	}
	return nil
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultProjectConfigYAML), 0644)
}
