// Package mem implements a contiguous memory allocation simulator with
// first-fit, best-fit, and worst-fit placement.
//
// # Overview
//
// A Tracker owns an ordered sequence of blocks that partitions a fixed
// address space [0, capacity) with no gaps or overlaps. Allocation carves an
// allocated block out of a free one, splitting it when the sizes differ.
// Deallocation flips a block back to free and coalesces it with adjacent
// free neighbours, so no two adjacent blocks are ever both free.
//
// # Usage Example
//
//	t, err := mem.New(100)
//	if err != nil {
//	    return err
//	}
//
//	addr, err := t.Allocate(30, mem.FirstFit)
//	if err != nil {
//	    return err
//	}
//
//	// Later, release the allocation
//	err = t.Deallocate(addr)
//
// # Placement Strategies
//
// Allocate scans the free blocks that are large enough and picks one:
//
//   - FirstFit: the lowest-addressed candidate
//   - BestFit: the smallest candidate (earliest wins a tie)
//   - WorstFit: the largest candidate (earliest wins a tie)
//
// # Fragmentation Metric
//
// FragmentationPercent reports the share of total capacity that is free.
// It deliberately ignores contiguity: one large hole and many scattered
// holes of the same total size report the same percentage.
//
// # Thread Safety
//
// Tracker instances are not thread-safe. Callers must synchronize access
// externally; the bundled simulation driver invokes the tracker from a
// single goroutine.
//
// # Related Packages
//
//   - github.com/memsim/memsim/mem/sim: randomized allocate/free workload driver
//   - github.com/memsim/memsim/internal/trace: operation trace record and replay
package mem
