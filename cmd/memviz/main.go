package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/memsim/memsim/cmd/memviz/logger"
	"github.com/memsim/memsim/mem"
	"github.com/memsim/memsim/mem/sim"
)

var (
	version = "dev"
)

func main() {
	var (
		capacity    = flag.Int("capacity", 100, "total address-space size")
		interval    = flag.Duration("interval", 500*time.Millisecond, "time between simulation steps")
		seed        = flag.Int64("seed", 0, "random seed (0 seeds from the clock)")
		preset      = flag.String("preset", "default", "workload preset (default, calm, thrash)")
		debugMode   = flag.Bool("debug", false, "write debug logs to ~/.memviz/logs")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("memviz %s\n", version)
		os.Exit(0)
	}

	// Initialize logger (must be before any logging calls)
	if err := logger.Init(logger.Options{
		Enabled: *debugMode,
		Level:   slog.LevelDebug,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to init logging: %v\n", err)
	}
	// Route allocator diagnostics (unknown-strategy fallbacks) to the same sink.
	mem.SetLogger(logger.L)

	cfg, ok := sim.Presets[*preset]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown preset %q (want default, calm, or thrash)\n", *preset)
		os.Exit(1)
	}
	cfg.Seed = *seed

	tracker, err := mem.New(*capacity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger.Info("starting memviz", "capacity", *capacity, "preset", cfg.Name, "interval", *interval)

	m := NewModel(sim.New(tracker, cfg), *interval)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("program error", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
