// Package config handles loading the tasklist configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable that points at a config file.
const EnvPath = "TASKLIST_CONFIG"

// Config represents the application configuration.
type Config struct {
	UI    UIConfig    `yaml:"ui"`
	Theme ThemeConfig `yaml:"theme"`
	Log   LogConfig   `yaml:"log"`
}

// UIConfig holds labels and input limits.
type UIConfig struct {
	Header          string `yaml:"header"`
	AddPlaceholder  string `yaml:"add_placeholder"`
	EditPlaceholder string `yaml:"edit_placeholder"`
	// CharLimit caps both inputs; 0 means unlimited.
	CharLimit int `yaml:"char_limit"`
}

// ThemeConfig holds the colors used by the view. Values are anything
// lipgloss.Color accepts (hex or ANSI index).
type ThemeConfig struct {
	Accent         string `yaml:"accent"`
	DoneBackground string `yaml:"done_background"`
	DueBackground  string `yaml:"due_background"`
	RowForeground  string `yaml:"row_foreground"`
	Danger         string `yaml:"danger"`
	Muted          string `yaml:"muted"`
}

// LogConfig controls the debug log file.
type LogConfig struct {
	File  string `yaml:"file,omitempty"`
	Level string `yaml:"level"`
}

// DefaultConfig returns a new Config with default values.
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			Header:          "ToDo List",
			AddPlaceholder:  "Enter task title",
			EditPlaceholder: "New Task Title",
		},
		Theme: ThemeConfig{
			Accent:         "#6A5ACD",
			DoneBackground: "#DFF2BF",
			DueBackground:  "#FFD2D2",
			RowForeground:  "#1A1A1A",
			Danger:         "#FF0000",
			Muted:          "244",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns the config path from $TASKLIST_CONFIG or the user config dir.
func DefaultPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvPath)); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(dir, "tasklist", "config.yaml"), nil
}

// Load reads the configuration at path.
// If the file doesn't exist, returns a default configuration.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.fillDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that cannot be repaired by defaults.
func (c *Config) Validate() error {
	if c.UI.CharLimit < 0 {
		return fmt.Errorf("ui.char_limit must not be negative, got %d", c.UI.CharLimit)
	}
	if _, err := c.Log.ParsedLevel(); err != nil {
		return err
	}
	return nil
}

// ParsedLevel converts the configured level for charmbracelet/log.
func (l LogConfig) ParsedLevel() (log.Level, error) {
	level, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(l.Level)))
	if err != nil {
		return log.InfoLevel, fmt.Errorf("invalid log level %q: %w", l.Level, err)
	}
	return level, nil
}

// fillDefaults restores fields a partial file left blank.
func (c *Config) fillDefaults() {
	def := DefaultConfig()
	setIfEmpty(&c.UI.Header, def.UI.Header)
	setIfEmpty(&c.UI.AddPlaceholder, def.UI.AddPlaceholder)
	setIfEmpty(&c.UI.EditPlaceholder, def.UI.EditPlaceholder)
	setIfEmpty(&c.Theme.Accent, def.Theme.Accent)
	setIfEmpty(&c.Theme.DoneBackground, def.Theme.DoneBackground)
	setIfEmpty(&c.Theme.DueBackground, def.Theme.DueBackground)
	setIfEmpty(&c.Theme.RowForeground, def.Theme.RowForeground)
	setIfEmpty(&c.Theme.Danger, def.Theme.Danger)
	setIfEmpty(&c.Theme.Muted, def.Theme.Muted)
	setIfEmpty(&c.Log.Level, def.Log.Level)
}

func setIfEmpty(field *string, fallback string) {
	if strings.TrimSpace(*field) == "" {
		*field = fallback
	}
}
