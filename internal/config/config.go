// Package config loads the settings of the vlistdemo binary from a YAML file
// and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables overriding file settings.
const (
	EnvRows      = "VLIST_ROWS"
	EnvRowHeight = "VLIST_ROW_HEIGHT"
	EnvLogLevel  = "VLIST_LOG_LEVEL"
	EnvLogFile   = "VLIST_LOG_FILE"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the demo configuration.
type Config struct {
	// Rows is the number of generated rows when no input file is given.
	Rows       int    `yaml:"rows"`
	RowHeight  int    `yaml:"row_height"`
	ScrollStep int    `yaml:"scroll_step"`
	Border     string `yaml:"border"`
	Title      string `yaml:"title"`
	// Footer shows the range of rows on screen in the bottom border.
	Footer bool `yaml:"footer"`

	ScrollBar bool `yaml:"scrollbar"`
	// ScrollBarGlyphs is one of minimal, legacy or unicode.
	ScrollBarGlyphs string `yaml:"scrollbar_glyphs"`
	ScrollBarArrows bool   `yaml:"scrollbar_arrows"`
	// ScrollBarClick is what a track click does: page or jump.
	ScrollBarClick string `yaml:"scrollbar_click"`

	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures the demo logger.
type LoggingConfig struct {
	Level string `yaml:"level"`
	// File receives the log. Interactive sessions discard logs when empty.
	File string `yaml:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Rows:       10000,
		RowHeight:  1,
		ScrollStep: 3,
		Border:     "round",
		Title:      "vlist",
		Footer:     true,

		ScrollBar:       true,
		ScrollBarGlyphs: "minimal",
		ScrollBarClick:  "page",
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads path on top of the defaults, applies environment overrides
// found through lookup and validates the result. An empty path skips the
// file. A nil lookup uses the process environment.
func Load(path string, lookup func(string) (string, bool)) (*Config, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides settings from the environment through lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvRows); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRows, err)
		}
		c.Rows = n
	}
	if v, ok := lookup(EnvRowHeight); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRowHeight, err)
		}
		c.RowHeight = n
	}
	if v, ok := lookup(EnvLogLevel); ok {
		c.Logging.Level = v
	}
	if v, ok := lookup(EnvLogFile); ok {
		c.Logging.File = v
	}
	return nil
}

// Validate checks the configuration for values the demo cannot run with.
func (c *Config) Validate() error {
	if c.Rows < 0 {
		return fmt.Errorf("%w: rows must not be negative, got %d", ErrInvalidConfig, c.Rows)
	}
	if c.RowHeight < 1 {
		return fmt.Errorf("%w: row_height must be at least 1, got %d", ErrInvalidConfig, c.RowHeight)
	}
	if c.ScrollStep < 1 {
		return fmt.Errorf("%w: scroll_step must be at least 1, got %d", ErrInvalidConfig, c.ScrollStep)
	}
	switch strings.ToLower(c.Border) {
	case "none", "plain", "round", "thick", "double", "hidden":
	default:
		return fmt.Errorf("%w: unknown border %q", ErrInvalidConfig, c.Border)
	}
	switch strings.ToLower(c.ScrollBarGlyphs) {
	case "minimal", "legacy", "unicode":
	default:
		return fmt.Errorf("%w: unknown scrollbar_glyphs %q", ErrInvalidConfig, c.ScrollBarGlyphs)
	}
	switch strings.ToLower(c.ScrollBarClick) {
	case "page", "jump":
	default:
		return fmt.Errorf("%w: unknown scrollbar_click %q", ErrInvalidConfig, c.ScrollBarClick)
	}
	return nil
}
