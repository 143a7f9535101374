package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/miosa/osa-virtual/app"
	"github.com/miosa/osa-virtual/config"
	"github.com/miosa/osa-virtual/style"
	"github.com/miosa/osa-virtual/ui/virtual"
)

var version = "dev"

func main() {
	demoFlag := flag.String("demo", "list", "Demo to start with: list or grid")
	rowsFlag := flag.Int("rows", 0, "Number of rows (overrides config)")
	colsFlag := flag.Int("cols", 0, "Number of grid columns (overrides config)")
	overscanFlag := flag.Int("overscan", -1, "Items rendered beyond each viewport edge (overrides config)")
	delayFlag := flag.Int("delay", 0, "Scrolling indicator delay in ms (overrides config)")
	profileFlag := flag.String("profile", "", "Named profile for config isolation (~/.osa/profiles/<name>)")
	logFlag := flag.String("log", "", "Write debug logs to this file")
	noColor := flag.Bool("no-color", false, "Disable ANSI colors")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.BoolVar(showVersion, "V", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("osa-virtual %s\n", version)
		os.Exit(0)
	}

	kind, err := app.ParseDemo(*demoFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "osa-virtual: %v\n", err)
		os.Exit(2)
	}

	home, _ := os.UserHomeDir()
	profileDir := filepath.Join(home, ".osa")
	if *profileFlag != "" {
		profileDir = filepath.Join(home, ".osa", "profiles", *profileFlag)
		if err := os.MkdirAll(profileDir, 0755); err != nil {
			fmt.Fprintf(os.Stderr, "osa-virtual: profile: %v\n", err)
			os.Exit(1)
		}
	}

	cfg, cfgErr := config.Load(profileDir)
	if *rowsFlag > 0 {
		cfg.Rows = *rowsFlag
	}
	if *colsFlag > 0 {
		cfg.Columns = *colsFlag
	}
	if *overscanFlag >= 0 {
		cfg.OverscanX, cfg.OverscanY = *overscanFlag, *overscanFlag
	}
	if *delayFlag > 0 {
		cfg.ScrollingDelayMS = *delayFlag
	}

	logger, closeLog, err := openLogger(*logFlag, cfg.Level())
	if err != nil {
		fmt.Fprintf(os.Stderr, "osa-virtual: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()
	slog.SetDefault(logger)
	virtual.SetLogger(logger)
	if cfgErr != nil {
		slog.Warn("config ignored", "path", config.Path(profileDir), "err", cfgErr)
	}

	// Resolve the theme before any rendering.
	switch {
	case *noColor || os.Getenv("NO_COLOR") != "":
		style.SetTheme("mono")
	case cfg.Theme != "" && style.SetTheme(cfg.Theme):
	case lipgloss.HasDarkBackground(os.Stdin, os.Stdout):
		style.SetTheme("dark")
	default:
		style.SetTheme("light")
	}

	m := app.New(cfg, kind, version)
	if err := m.Err(); err != nil {
		m.Close()
		fmt.Fprintf(os.Stderr, "osa-virtual: %v\n", err)
		os.Exit(1)
	}
	slog.Info("starting", "demo", kind, "rows", cfg.Rows, "columns", cfg.Columns, "theme", style.CurrentThemeName)

	// AltScreen and mouse mode are set on the View, not as program options.
	p := tea.NewProgram(m)
	final, err := p.Run()
	// Update hands out model copies; only the returned one owns the live demo.
	if fm, ok := final.(app.Model); ok {
		fm.Close()
	}
	if err != nil {
		closeLog()
		fmt.Fprintf(os.Stderr, "osa-virtual: %v\n", err)
		os.Exit(1)
	}
}

// openLogger returns a text logger writing to path, or a discarding logger
// when path is empty.
func openLogger(path string, level slog.Level) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	h := slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})
	return slog.New(h), func() { f.Close() }, nil
}
