package mem

// Tracker owns the ordered block sequence covering [0, capacity).
//
// The sequence is kept sorted by start address and partitions the space
// exactly: the first block starts at 0, each block starts where the previous
// one ends, and the last block ends at capacity. After every operation no
// two adjacent blocks are both free. Owner ids increase monotonically and
// are never reused, even after the owning block is freed.
type Tracker struct {
	capacity int
	blocks   []Block
	lastID   int // last issued owner id
}

// New creates a tracker whose address space starts as a single free block.
func New(capacity int) (*Tracker, error) {
	if capacity <= 0 {
		return nil, ErrBadCapacity
	}
	return &Tracker{
		capacity: capacity,
		blocks:   []Block{{Start: 0, Size: capacity, Status: Free}},
	}, nil
}

// Allocate carves a block of the given size out of the free block the
// strategy selects and returns its start address. The sequence is left
// unchanged when the request cannot be satisfied.
func (t *Tracker) Allocate(size int, s Strategy) (int, error) {
	if size <= 0 {
		return 0, ErrBadSize
	}
	idx := t.findCandidate(size, s)
	if idx < 0 {
		return 0, ErrNoSpace
	}
	return t.splitAndAllocate(idx, size), nil
}

// findCandidate returns the index of the free block the strategy selects,
// or -1 when no free block is large enough. Best/worst fit keep the first
// extreme seen, so ties resolve to the earliest candidate in scan order.
func (t *Tracker) findCandidate(size int, s Strategy) int {
	switch s {
	case BestFit:
		best := -1
		for i, b := range t.blocks {
			if b.Status != Free || b.Size < size {
				continue
			}
			if best < 0 || b.Size < t.blocks[best].Size {
				best = i
			}
		}
		return best
	case WorstFit:
		worst := -1
		for i, b := range t.blocks {
			if b.Status != Free || b.Size < size {
				continue
			}
			if worst < 0 || b.Size > t.blocks[worst].Size {
				worst = i
			}
		}
		return worst
	case FirstFit:
		for i, b := range t.blocks {
			if b.Status == Free && b.Size >= size {
				return i
			}
		}
		return -1
	default:
		logger.Warn("unknown allocation strategy, using first-fit", "strategy", s)
		return t.findCandidate(size, FirstFit)
	}
}

// splitAndAllocate assigns a fresh owner id to the block at idx. An exact
// fit flips the block in place; otherwise the free block is split into an
// allocated head and a free remainder.
func (t *Tracker) splitAndAllocate(idx, size int) int {
	t.lastID++
	b := t.blocks[idx]
	if b.Size == size {
		t.blocks[idx].Status = Allocated
		t.blocks[idx].Owner = t.lastID
		return b.Start
	}

	head := Block{Start: b.Start, Size: size, Status: Allocated, Owner: t.lastID}
	rest := Block{Start: b.Start + size, Size: b.Size - size, Status: Free}

	t.blocks = append(t.blocks, Block{})
	copy(t.blocks[idx+2:], t.blocks[idx+1:])
	t.blocks[idx] = head
	t.blocks[idx+1] = rest
	return head.Start
}

// Deallocate frees the allocated block starting exactly at addr and merges
// it with any free neighbours. Addresses inside a block, or addresses of
// blocks that are already free, are rejected without mutation.
func (t *Tracker) Deallocate(addr int) error {
	for i := range t.blocks {
		b := &t.blocks[i]
		if b.Start == addr && b.Status == Allocated {
			b.Status = Free
			b.Owner = 0
			t.mergeFreeBlocks()
			return nil
		}
	}
	return ErrBadAddress
}

// mergeFreeBlocks collapses every run of adjacent free blocks into one
// block in a single forward scan. Re-running it on an already merged
// sequence is a no-op.
func (t *Tracker) mergeFreeBlocks() {
	i := 0
	for i < len(t.blocks)-1 {
		if t.blocks[i].Status == Free && t.blocks[i+1].Status == Free {
			t.blocks[i].Size += t.blocks[i+1].Size
			t.blocks = append(t.blocks[:i+1], t.blocks[i+2:]...)
		} else {
			i++
		}
	}
}

// Snapshot returns a copy of the block sequence in address order.
func (t *Tracker) Snapshot() []Block {
	out := make([]Block, len(t.blocks))
	copy(out, t.blocks)
	return out
}

// Capacity returns the total size of the address space.
func (t *Tracker) Capacity() int { return t.capacity }

// FreeBytes returns the total size of all free blocks.
func (t *Tracker) FreeBytes() int {
	var n int
	for _, b := range t.blocks {
		if b.Status == Free {
			n += b.Size
		}
	}
	return n
}

// AllocatedBytes returns the total size of all allocated blocks.
func (t *Tracker) AllocatedBytes() int {
	var n int
	for _, b := range t.blocks {
		if b.Status == Allocated {
			n += b.Size
		}
	}
	return n
}

// FragmentationPercent reports the share of total capacity that is free,
// as a percentage. Contiguity of the free space is deliberately ignored.
func (t *Tracker) FragmentationPercent() float64 {
	if t.capacity == 0 {
		return 0
	}
	return float64(t.FreeBytes()) / float64(t.capacity) * 100
}

// FreeBlockCount returns the number of free blocks.
func (t *Tracker) FreeBlockCount() int {
	var n int
	for _, b := range t.blocks {
		if b.Status == Free {
			n++
		}
	}
	return n
}
