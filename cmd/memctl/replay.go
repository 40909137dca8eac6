package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/memsim/memsim/internal/trace"
	"github.com/memsim/memsim/mem"
)

var replayCapacity int

func init() {
	cmd := newReplayCmd()
	cmd.Flags().IntVar(&replayCapacity, "capacity", 100, "Address-space size of the replay tracker")
	rootCmd.AddCommand(cmd)
}

func newReplayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay <trace>",
		Short: "Replay a recorded operation trace",
		Long: `The replay command re-applies a recorded trace to a fresh tracker and
reports how many operations applied cleanly and whether any outcome diverged
from the recording. Use the same capacity the trace was recorded with to get
a divergence-free replay.

Example:
  memctl replay ops.jsonl
  memctl replay ops.jsonl --capacity 100 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(args)
		},
	}
	return cmd
}

// ReplayReport is the replay stats block plus the final tracker state.
type ReplayReport struct {
	Trace string            `json:"trace"`
	Stats trace.ReplayStats `json:"stats"`

	FreeBytes      int     `json:"free_bytes"`
	AllocatedBytes int     `json:"allocated_bytes"`
	Fragmentation  float64 `json:"fragmentation_percent"`
	FreeBlocks     int     `json:"free_blocks"`
}

func runReplay(args []string) error {
	tracePath := args[0]
	printVerbose("Replaying trace: %s\n", tracePath)

	f, err := os.Open(tracePath)
	if err != nil {
		return fmt.Errorf("failed to open trace: %w", err)
	}
	defer f.Close()

	tracker, err := mem.New(replayCapacity)
	if err != nil {
		return fmt.Errorf("failed to create tracker: %w", err)
	}

	stats, err := trace.Replay(trace.NewReader(f), tracker)
	if err != nil {
		return fmt.Errorf("replay failed: %w", err)
	}

	report := ReplayReport{
		Trace:          tracePath,
		Stats:          stats,
		FreeBytes:      tracker.FreeBytes(),
		AllocatedBytes: tracker.AllocatedBytes(),
		Fragmentation:  tracker.FragmentationPercent(),
		FreeBlocks:     tracker.FreeBlockCount(),
	}
	if jsonOut {
		return printJSON(report)
	}

	printInfo("\nReplay Report:\n")
	printInfo("  Trace: %s\n", report.Trace)
	printInfo("  Operations: %d (%d applied, %d failed)\n",
		stats.Ops, stats.Applied, stats.Failed)
	printInfo("  Divergences: %d\n", stats.Diverged)
	printInfo("\nFinal State:\n")
	printInfo("  Free Memory: %d\n", report.FreeBytes)
	printInfo("  Allocated Memory: %d\n", report.AllocatedBytes)
	printInfo("  Fragmentation: %.2f%%\n", report.Fragmentation)
	printInfo("  Free Blocks: %d\n", report.FreeBlocks)
	return nil
}
