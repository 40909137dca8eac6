package mem

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// newTracker is a test constructor that fails the test instead of returning
// an error.
func newTracker(t testing.TB, capacity int) *Tracker {
	t.Helper()
	tr, err := New(capacity)
	require.NoError(t, err)
	return tr
}

// newTrackerWithLayout builds a tracker whose space is fully covered by
// first-fit allocations of the given sizes, then frees the allocations at
// the listed indices. The sizes must sum to the capacity so the resulting
// free blocks sit exactly where the freed segments were.
func newTrackerWithLayout(t testing.TB, capacity int, sizes []int, freeIdx ...int) *Tracker {
	t.Helper()

	total := 0
	for _, sz := range sizes {
		total += sz
	}
	require.Equal(t, capacity, total, "layout sizes must cover the capacity exactly")

	tr := newTracker(t, capacity)
	addrs := make([]int, len(sizes))
	for i, sz := range sizes {
		addr, err := tr.Allocate(sz, FirstFit)
		require.NoError(t, err)
		addrs[i] = addr
	}
	for _, i := range freeIdx {
		require.NoError(t, tr.Deallocate(addrs[i]))
	}
	return tr
}

// assertInvariants checks the structural invariants that must hold after
// every public operation: the blocks partition [0, capacity) in order with
// positive sizes, no two adjacent blocks are both free, owner ids are set
// exactly on allocated blocks, and free + allocated bytes equal capacity.
func assertInvariants(t testing.TB, tr *Tracker) {
	t.Helper()

	blocks := tr.Snapshot()
	require.NotEmpty(t, blocks, "block sequence must never be empty")

	next := 0
	for i, b := range blocks {
		require.Positive(t, b.Size, "block %d has non-positive size", i)
		require.Equal(t, next, b.Start, "block %d leaves a gap or overlap", i)
		next = b.End()

		switch b.Status {
		case Allocated:
			require.Positive(t, b.Owner, "allocated block %d has no owner", i)
		case Free:
			require.Zero(t, b.Owner, "free block %d still has an owner", i)
			if i > 0 {
				require.NotEqual(t, Free, blocks[i-1].Status,
					"blocks %d and %d are adjacent and both free", i-1, i)
			}
		}
	}
	require.Equal(t, tr.Capacity(), next, "last block must end at capacity")
	require.Equal(t, tr.Capacity(), tr.FreeBytes()+tr.AllocatedBytes(),
		"free + allocated must equal capacity")
}

// freeSizes returns the sizes of the free blocks in address order.
func freeSizes(tr *Tracker) []int {
	var sizes []int
	for _, b := range tr.Snapshot() {
		if b.Status == Free {
			sizes = append(sizes, b.Size)
		}
	}
	return sizes
}
