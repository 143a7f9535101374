package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("want no error, got %v", err)
	}
	if cfg != Defaults() {
		t.Errorf("want defaults, got %+v", cfg)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	want := Defaults()
	want.Theme = "catppuccin"
	want.Rows = 42
	want.OverscanY = 0
	if err := Save(dir, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != want {
		t.Errorf("want %+v, got %+v", want, got)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(Path(dir), []byte(`{"rows": 7, "fps": -1}`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Rows != 7 {
		t.Errorf("want rows=7, got %d", cfg.Rows)
	}
	if cfg.FPS != 60 {
		t.Errorf("want invalid fps replaced by 60, got %d", cfg.FPS)
	}
	if cfg.ColumnWidth != 14 {
		t.Errorf("want default column width, got %d", cfg.ColumnWidth)
	}
}

func TestLoad_MalformedFileIsAnError(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(Path(dir), []byte(`{rows:`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(dir)
	if err == nil {
		t.Fatal("want parse error")
	}
	if cfg != Defaults() {
		t.Errorf("want defaults alongside the error, got %+v", cfg)
	}
}

func TestConfig_Derived(t *testing.T) {
	c := Defaults()
	if c.ScrollingDelay() != 150*time.Millisecond {
		t.Errorf("want 150ms, got %v", c.ScrollingDelay())
	}
	c.LogLevel = "debug"
	if c.Level() != slog.LevelDebug {
		t.Errorf("want debug, got %v", c.Level())
	}
	c.LogLevel = "loud"
	if c.Level() != slog.LevelInfo {
		t.Errorf("want info fallback, got %v", c.Level())
	}
}
