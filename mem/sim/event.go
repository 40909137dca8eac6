package sim

import (
	"fmt"

	"github.com/memsim/memsim/mem"
)

// EventKind distinguishes the two operations the driver issues.
type EventKind uint8

const (
	// KindAlloc is an allocation attempt.
	KindAlloc EventKind = iota

	// KindFree is a deallocation.
	KindFree
)

func (k EventKind) String() string {
	switch k {
	case KindAlloc:
		return "alloc"
	case KindFree:
		return "free"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Event records one operation the driver issued and its outcome. Err is nil
// on success; a failed allocation (no space) is an ordinary event, not an
// abort.
type Event struct {
	Kind     EventKind
	Size     int          // request size, allocation events only
	Strategy mem.Strategy // placement strategy, allocation events only
	Addr     int          // start address; meaningless when an allocation failed
	Err      error
}

// OK reports whether the operation succeeded.
func (e Event) OK() bool { return e.Err == nil }

func (e Event) String() string {
	switch {
	case e.Kind == KindFree && e.Err != nil:
		return fmt.Sprintf("free %d failed: %v", e.Addr, e.Err)
	case e.Kind == KindFree:
		return fmt.Sprintf("freed %d", e.Addr)
	case e.Err != nil:
		return fmt.Sprintf("alloc %d (%s) failed: %v", e.Size, e.Strategy, e.Err)
	default:
		return fmt.Sprintf("allocated %d at %d (%s)", e.Size, e.Addr, e.Strategy)
	}
}
