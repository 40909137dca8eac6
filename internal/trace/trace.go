// Package trace records allocator operations as a JSON-lines stream and
// replays them against a fresh tracker. The trace persists operations, not
// allocator state: replaying a trace reconstructs the state.
package trace

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/memsim/memsim/mem"
	"github.com/memsim/memsim/mem/sim"
)

// Op is one recorded allocator operation.
type Op struct {
	Seq      int    `json:"seq"`
	Kind     string `json:"kind"` // "alloc" or "free"
	Size     int    `json:"size,omitempty"`
	Strategy string `json:"strategy,omitempty"`
	Addr     int    `json:"addr"`
	OK       bool   `json:"ok"`
}

// FromEvent converts a driver event into a trace record. Seq is stamped by
// the Writer.
func FromEvent(ev sim.Event) Op {
	op := Op{
		Kind: ev.Kind.String(),
		Addr: ev.Addr,
		OK:   ev.OK(),
	}
	if ev.Kind == sim.KindAlloc {
		op.Size = ev.Size
		op.Strategy = ev.Strategy.String()
	}
	return op
}

// Writer appends operations to a JSON-lines stream, stamping sequence
// numbers in the order they are appended.
type Writer struct {
	enc *json.Encoder
	seq int
}

// NewWriter creates a trace writer over w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{enc: json.NewEncoder(w)}
}

// Append writes one operation, assigning it the next sequence number.
func (w *Writer) Append(op Op) error {
	w.seq++
	op.Seq = w.seq
	if err := w.enc.Encode(op); err != nil {
		return fmt.Errorf("trace: append op %d: %w", op.Seq, err)
	}
	return nil
}

// Reader decodes operations from a JSON-lines stream.
type Reader struct {
	dec *json.Decoder
}

// NewReader creates a trace reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{dec: json.NewDecoder(r)}
}

// Next returns the next operation, or io.EOF when the stream ends.
func (r *Reader) Next() (Op, error) {
	var op Op
	if err := r.dec.Decode(&op); err != nil {
		if errors.Is(err, io.EOF) {
			return Op{}, io.EOF
		}
		return Op{}, fmt.Errorf("trace: decode op: %w", err)
	}
	return op, nil
}

// ReplayStats summarizes a replay run.
type ReplayStats struct {
	Ops      int `json:"ops"`      // operations read from the trace
	Applied  int `json:"applied"`  // operations that succeeded live
	Failed   int `json:"failed"`   // operations that failed live
	Diverged int `json:"diverged"` // live outcome differed from the recording
}

// Replay re-applies every recorded operation to the tracker in sequence.
// Individual failures are counted, not fatal: the tracker must tolerate
// arbitrary valid inputs in any order. An operation whose live outcome
// differs from the recorded one (success where the recording failed, a
// different address, or vice versa) counts as a divergence.
func Replay(r *Reader, tracker *mem.Tracker) (ReplayStats, error) {
	var stats ReplayStats
	for {
		op, err := r.Next()
		if errors.Is(err, io.EOF) {
			return stats, nil
		}
		if err != nil {
			return stats, err
		}
		stats.Ops++

		switch op.Kind {
		case "alloc":
			addr, allocErr := tracker.Allocate(op.Size, mem.ParseStrategy(op.Strategy))
			ok := allocErr == nil
			if ok {
				stats.Applied++
			} else {
				stats.Failed++
			}
			if ok != op.OK || (ok && addr != op.Addr) {
				stats.Diverged++
			}
		case "free":
			freeErr := tracker.Deallocate(op.Addr)
			ok := freeErr == nil
			if ok {
				stats.Applied++
			} else {
				stats.Failed++
			}
			if ok != op.OK {
				stats.Diverged++
			}
		default:
			return stats, fmt.Errorf("trace: op %d has unknown kind %q", op.Seq, op.Kind)
		}
	}
}
