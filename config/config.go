// Package config loads and saves the demo settings stored at
// <profileDir>/virtual.json.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds persistent demo settings.
type Config struct {
	Theme             string  `json:"theme,omitempty"`
	OverscanX         int     `json:"overscan_x"`
	OverscanY         int     `json:"overscan_y"`
	ScrollingDelayMS  int     `json:"scrolling_delay_ms"`
	FPS               int     `json:"fps"`
	Rows              int     `json:"rows"`
	Columns           int     `json:"columns"`
	EstimateRowHeight float64 `json:"estimate_row_height"`
	ColumnWidth       int     `json:"column_width"`
	LogLevel          string  `json:"log_level,omitempty"`
}

const filename = "virtual.json"

// Path returns the config file location under profileDir.
func Path(profileDir string) string { return filepath.Join(profileDir, filename) }

// Load reads <profileDir>/virtual.json over the defaults. A missing file
// yields the defaults; a malformed one is an error.
func Load(profileDir string) (Config, error) {
	cfg := Defaults()
	path := Path(profileDir)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Defaults(), fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg.normalize(), nil
}

// Save writes cfg to <profileDir>/virtual.json, creating the directory if needed.
func Save(profileDir string, cfg Config) error {
	if err := os.MkdirAll(profileDir, 0o755); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return os.WriteFile(Path(profileDir), data, 0o644)
}

// Defaults returns the built-in settings. The theme is left empty so the
// terminal background decides.
func Defaults() Config {
	return Config{
		OverscanX:         3,
		OverscanY:         3,
		ScrollingDelayMS:  150,
		FPS:               60,
		Rows:              1000,
		Columns:           50,
		EstimateRowHeight: 3,
		ColumnWidth:       14,
		LogLevel:          "info",
	}
}

// ScrollingDelay returns ScrollingDelayMS as a duration.
func (c Config) ScrollingDelay() time.Duration {
	return time.Duration(c.ScrollingDelayMS) * time.Millisecond
}

// Level parses LogLevel; unknown values mean info.
func (c Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return slog.LevelInfo
	}
	return l
}

// normalize replaces out-of-range values with their defaults.
func (c Config) normalize() Config {
	d := Defaults()
	if c.OverscanX < 0 {
		c.OverscanX = d.OverscanX
	}
	if c.OverscanY < 0 {
		c.OverscanY = d.OverscanY
	}
	if c.ScrollingDelayMS <= 0 {
		c.ScrollingDelayMS = d.ScrollingDelayMS
	}
	if c.FPS <= 0 {
		c.FPS = d.FPS
	}
	if c.Rows < 0 {
		c.Rows = 0
	}
	if c.Columns < 0 {
		c.Columns = 0
	}
	if c.EstimateRowHeight <= 0 {
		c.EstimateRowHeight = d.EstimateRowHeight
	}
	if c.ColumnWidth <= 0 {
		c.ColumnWidth = d.ColumnWidth
	}
	return c
}
