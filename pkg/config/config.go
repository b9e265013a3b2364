// Package config loads pagehand's YAML configuration. The config file is
// optional; zero values fall back to usable defaults so the server runs
// without any configuration at all.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all server settings.
type Config struct {
	// Headless controls whether the browser runs without a visible window.
	Headless *bool `yaml:"headless"`

	// ViewportWidth and ViewportHeight set the initial page viewport.
	ViewportWidth  int `yaml:"viewport_width"`
	ViewportHeight int `yaml:"viewport_height"`

	// TimeoutMS is the default timeout for page operations, in milliseconds.
	TimeoutMS float64 `yaml:"timeout_ms"`

	// SnapshotWarnBytes is the serialized snapshot size above which the
	// server logs a warning. Oversized snapshots still succeed.
	SnapshotWarnBytes int `yaml:"snapshot_warn_bytes"`

	// ConsoleLogLimit caps the number of retained console messages.
	ConsoleLogLimit int `yaml:"console_log_limit"`
}

// Default values applied by Load and Normalize.
const (
	DefaultViewportWidth     = 1280
	DefaultViewportHeight    = 720
	DefaultTimeoutMS         = 30000.0
	DefaultSnapshotWarnBytes = 20000
	DefaultConsoleLogLimit   = 1000
)

// Default returns a fully populated configuration.
func Default() Config {
	headless := true
	return Config{
		Headless:          &headless,
		ViewportWidth:     DefaultViewportWidth,
		ViewportHeight:    DefaultViewportHeight,
		TimeoutMS:         DefaultTimeoutMS,
		SnapshotWarnBytes: DefaultSnapshotWarnBytes,
		ConsoleLogLimit:   DefaultConsoleLogLimit,
	}
}

// Load reads a YAML config file and fills unset fields with defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Normalize fills unset fields with defaults.
func (c *Config) Normalize() {
	if c.Headless == nil {
		headless := true
		c.Headless = &headless
	}
	if c.ViewportWidth == 0 {
		c.ViewportWidth = DefaultViewportWidth
	}
	if c.ViewportHeight == 0 {
		c.ViewportHeight = DefaultViewportHeight
	}
	if c.TimeoutMS == 0 {
		c.TimeoutMS = DefaultTimeoutMS
	}
	if c.SnapshotWarnBytes == 0 {
		c.SnapshotWarnBytes = DefaultSnapshotWarnBytes
	}
	if c.ConsoleLogLimit == 0 {
		c.ConsoleLogLimit = DefaultConsoleLogLimit
	}
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	if c.ViewportWidth < 0 || c.ViewportHeight < 0 {
		return fmt.Errorf("viewport dimensions must be positive, got %dx%d", c.ViewportWidth, c.ViewportHeight)
	}
	if c.TimeoutMS < 0 {
		return fmt.Errorf("timeout_ms must be positive, got %v", c.TimeoutMS)
	}
	if c.SnapshotWarnBytes < 0 {
		return fmt.Errorf("snapshot_warn_bytes must be positive, got %d", c.SnapshotWarnBytes)
	}
	return nil
}
