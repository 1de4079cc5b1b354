// Package config loads and saves lk's settings and sets up its log file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Mode selects what a bare `lk` does.
type Mode string

const (
	ModeList  Mode = "list"
	ModeFuzzy Mode = "fuzzy"
)

// ErrUnknownMode is returned for a mode other than list or fuzzy.
var ErrUnknownMode = errors.New("unknown mode")

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeList, ModeFuzzy:
		return m, nil
	}
	return "", fmt.Errorf("%w %q: use %q or %q", ErrUnknownMode, s, ModeFuzzy, ModeList)
}

// Config is the contents of lk.yaml.
type Config struct {
	DefaultMode   Mode          `yaml:"default_mode"`
	Rows          int           `yaml:"rows"`
	EscapeTimeout time.Duration `yaml:"escape_timeout"`
	Ignore        []string      `yaml:"ignore"`
}

// Default returns the settings used when lk.yaml is missing or leaves a
// field out.
func Default() *Config {
	return &Config{
		DefaultMode:   ModeList,
		Rows:          7,
		EscapeTimeout: 25 * time.Millisecond,
		Ignore:        []string{"target", ".github", ".vscode", ".git", "node_modules"},
	}
}

// Load reads the config file at path, creating it with defaults first if
// it does not exist.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg := Default()
		if err := cfg.Save(path); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if _, err := ParseMode(string(cfg.DefaultMode)); err != nil {
		return nil, fmt.Errorf("config %s: default_mode: %w", path, err)
	}
	if cfg.Rows < 1 {
		return nil, fmt.Errorf("config %s: rows must be at least 1, got %d", path, cfg.Rows)
	}
	if cfg.EscapeTimeout <= 0 {
		cfg.EscapeTimeout = Default().EscapeTimeout
	}
	return cfg, nil
}

// Save writes the config to path.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// SetDefaultMode validates and stores the default mode. It does not save.
func (c *Config) SetDefaultMode(mode string) error {
	m, err := ParseMode(mode)
	if err != nil {
		return err
	}
	c.DefaultMode = m
	return nil
}
