package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/memsim/memsim/internal/trace"
	"github.com/memsim/memsim/mem"
	"github.com/memsim/memsim/mem/sim"
)

var (
	runCapacity int
	runTicks    int
	runSeed     int64
	runPreset   string
	runTrace    string
)

func init() {
	cmd := newRunCmd()
	cmd.Flags().IntVar(&runCapacity, "capacity", 100, "Total address-space size")
	cmd.Flags().IntVar(&runTicks, "ticks", 200, "Number of simulation steps")
	cmd.Flags().Int64Var(&runSeed, "seed", 0, "Random seed (0 seeds from the clock)")
	cmd.Flags().StringVar(&runPreset, "preset", "default", "Workload preset (default, calm, thrash)")
	cmd.Flags().StringVar(&runTrace, "trace", "", "Record the operation trace to this file")
	rootCmd.AddCommand(cmd)
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a headless randomized simulation",
		Long: `The run command drives a fresh tracker with randomized allocate and
deallocate traffic and reports final placement and fragmentation statistics.

Example:
  memctl run --capacity 100 --ticks 500
  memctl run --preset thrash --seed 42 --json
  memctl run --trace ops.jsonl`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation()
		},
	}
	return cmd
}

// RunSummary is the stats block printed after a simulation.
type RunSummary struct {
	Capacity int    `json:"capacity"`
	Ticks    int    `json:"ticks"`
	Preset   string `json:"preset"`

	AllocAttempts  int `json:"alloc_attempts"`
	AllocSuccesses int `json:"alloc_successes"`
	Frees          int `json:"frees"`

	// Per-strategy attempt/success counts, keyed by strategy name.
	Strategies map[string]*StrategyCount `json:"strategies"`

	FreeBytes       int     `json:"free_bytes"`
	AllocatedBytes  int     `json:"allocated_bytes"`
	Fragmentation   float64 `json:"fragmentation_percent"`
	FreeBlocks      int     `json:"free_blocks"`
	LiveAllocations int     `json:"live_allocations"`
}

// StrategyCount tallies allocation outcomes for one placement strategy.
type StrategyCount struct {
	Attempts  int `json:"attempts"`
	Successes int `json:"successes"`
}

func newRunSummary(preset string, ticks int, tracker *mem.Tracker) *RunSummary {
	s := &RunSummary{
		Capacity:   tracker.Capacity(),
		Ticks:      ticks,
		Preset:     preset,
		Strategies: make(map[string]*StrategyCount, len(mem.Strategies)),
	}
	for _, strat := range mem.Strategies {
		s.Strategies[strat.String()] = &StrategyCount{}
	}
	return s
}

// record tallies one driver event.
func (s *RunSummary) record(ev sim.Event) {
	switch ev.Kind {
	case sim.KindAlloc:
		s.AllocAttempts++
		count := s.Strategies[ev.Strategy.String()]
		count.Attempts++
		if ev.OK() {
			s.AllocSuccesses++
			count.Successes++
		}
	case sim.KindFree:
		if ev.OK() {
			s.Frees++
		}
	}
}

// finish captures the tracker's final state.
func (s *RunSummary) finish(tracker *mem.Tracker) {
	s.FreeBytes = tracker.FreeBytes()
	s.AllocatedBytes = tracker.AllocatedBytes()
	s.Fragmentation = tracker.FragmentationPercent()
	s.FreeBlocks = tracker.FreeBlockCount()
	for _, b := range tracker.Snapshot() {
		if b.Status == mem.Allocated {
			s.LiveAllocations++
		}
	}
}

func runSimulation() error {
	cfg, ok := sim.Presets[runPreset]
	if !ok {
		return fmt.Errorf("unknown preset %q (want default, calm, or thrash)", runPreset)
	}
	cfg.Seed = runSeed

	if verbose {
		mem.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	}

	tracker, err := mem.New(runCapacity)
	if err != nil {
		return fmt.Errorf("failed to create tracker: %w", err)
	}
	driver := sim.New(tracker, cfg)

	var tw *trace.Writer
	if runTrace != "" {
		f, createErr := os.Create(runTrace)
		if createErr != nil {
			return fmt.Errorf("failed to create trace file: %w", createErr)
		}
		defer f.Close()
		tw = trace.NewWriter(f)
	}

	summary := newRunSummary(runPreset, runTicks, tracker)
	for tick := 0; tick < runTicks; tick++ {
		for _, ev := range driver.Step() {
			summary.record(ev)
			printVerbose("tick %d: %s\n", tick, ev)
			if tw != nil {
				if err := tw.Append(trace.FromEvent(ev)); err != nil {
					return err
				}
			}
		}
	}
	summary.finish(tracker)

	if jsonOut {
		return printJSON(summary)
	}
	printSummary(summary)
	return nil
}

func printSummary(s *RunSummary) {
	printInfo("\nSimulation Summary:\n")
	printInfo("  Capacity: %d\n", s.Capacity)
	printInfo("  Ticks: %d (preset %s)\n", s.Ticks, s.Preset)
	printInfo("  Allocations: %d/%d succeeded\n", s.AllocSuccesses, s.AllocAttempts)
	printInfo("  Frees: %d\n", s.Frees)
	for _, strat := range mem.Strategies {
		count := s.Strategies[strat.String()]
		printInfo("    %-10s %d/%d\n", strat.String()+":", count.Successes, count.Attempts)
	}
	printInfo("\nFinal State:\n")
	printInfo("  Free Memory: %d\n", s.FreeBytes)
	printInfo("  Allocated Memory: %d\n", s.AllocatedBytes)
	printInfo("  Fragmentation: %.2f%%\n", s.Fragmentation)
	printInfo("  Free Blocks: %d\n", s.FreeBlocks)
	printInfo("  Live Allocations: %d\n", s.LiveAllocations)
}
