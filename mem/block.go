package mem

import "fmt"

// Status describes whether a block is free or owned by a simulated process.
type Status uint8

const (
	// Free marks a block available for allocation.
	Free Status = iota

	// Allocated marks a block assigned to an allocation request.
	Allocated
)

func (s Status) String() string {
	switch s {
	case Free:
		return "free"
	case Allocated:
		return "allocated"
	default:
		return fmt.Sprintf("status(%d)", uint8(s))
	}
}

// Block is one contiguous span of the simulated address space.
//
// Owner is the positive id of the allocation request that produced the block
// when Status is Allocated, and zero when the block is Free. Size is always
// positive.
type Block struct {
	Start  int
	Size   int
	Status Status
	Owner  int
}

// End returns the first address past the block.
func (b Block) End() int { return b.Start + b.Size }

func (b Block) String() string {
	if b.Status == Allocated {
		return fmt.Sprintf("[%d-%d) pid=%d", b.Start, b.End(), b.Owner)
	}
	return fmt.Sprintf("[%d-%d) free", b.Start, b.End())
}
