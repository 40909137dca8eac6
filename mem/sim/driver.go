// Package sim drives randomized allocate/deallocate traffic against a
// memory tracker, one animation frame at a time. The driver is a stateless
// consumer of the tracker's query surface: it holds no allocator invariants
// of its own.
package sim

import (
	"math/rand"
	"time"

	"github.com/memsim/memsim/mem"
)

// Config controls the random workload the driver generates.
type Config struct {
	// Name for this configuration (for CLI presets and reporting).
	Name string

	// AllocChance is the per-step probability of attempting an allocation.
	AllocChance float64

	// FreeChance is the per-step probability of freeing a random live
	// allocation.
	FreeChance float64

	// MaxAllocDiv bounds request sizes: a request is uniform in
	// [1, capacity/MaxAllocDiv].
	MaxAllocDiv int

	// Seed for the random source. Zero seeds from the wall clock.
	Seed int64
}

// Predefined workload configurations.
var (
	// ConfigDefault matches the original simulation: 30% allocation chance,
	// 10% free chance, requests up to a fifth of the space.
	ConfigDefault = Config{
		Name:        "default",
		AllocChance: 0.3,
		FreeChance:  0.1,
		MaxAllocDiv: 5,
	}

	// ConfigCalm allocates rarely and frees often, keeping the space mostly
	// empty.
	ConfigCalm = Config{
		Name:        "calm",
		AllocChance: 0.15,
		FreeChance:  0.25,
		MaxAllocDiv: 10,
	}

	// ConfigThrash allocates and frees aggressively with large requests,
	// fragmenting the space quickly.
	ConfigThrash = Config{
		Name:        "thrash",
		AllocChance: 0.6,
		FreeChance:  0.3,
		MaxAllocDiv: 3,
	}
)

// Presets maps preset names to their configurations.
var Presets = map[string]Config{
	ConfigDefault.Name: ConfigDefault,
	ConfigCalm.Name:    ConfigCalm,
	ConfigThrash.Name:  ConfigThrash,
}

// Driver feeds randomized traffic to a tracker.
type Driver struct {
	tracker *mem.Tracker
	cfg     Config
	rng     *rand.Rand
}

// New creates a driver over the given tracker. A zero-seed config is seeded
// from the wall clock, so two drivers built from the same preset diverge.
func New(tracker *mem.Tracker, cfg Config) *Driver {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Driver{
		tracker: tracker,
		cfg:     cfg,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// Tracker returns the tracker the driver operates on.
func (d *Driver) Tracker() *mem.Tracker { return d.tracker }

// Config returns the workload configuration.
func (d *Driver) Config() Config { return d.cfg }

// Step performs one simulation frame: at most one allocation attempt with a
// random size and strategy, and at most one deallocation of a random live
// block. It returns the events describing what happened, failures included.
func (d *Driver) Step() []Event {
	var events []Event

	if d.rng.Float64() < d.cfg.AllocChance {
		events = append(events, d.allocate())
	}
	if d.rng.Float64() < d.cfg.FreeChance {
		if ev, ok := d.free(); ok {
			events = append(events, ev)
		}
	}
	return events
}

// Allocate issues one allocation of a random size using the given strategy.
// Used by the visualizer's manual-allocation key.
func (d *Driver) Allocate(s mem.Strategy) Event {
	size := d.randomSize()
	addr, err := d.tracker.Allocate(size, s)
	return Event{Kind: KindAlloc, Size: size, Strategy: s, Addr: addr, Err: err}
}

// FreeRandom frees one randomly chosen live allocation. The second return
// is false when nothing is allocated.
func (d *Driver) FreeRandom() (Event, bool) {
	return d.free()
}

func (d *Driver) allocate() Event {
	strategy := mem.Strategies[d.rng.Intn(len(mem.Strategies))]
	return d.Allocate(strategy)
}

func (d *Driver) free() (Event, bool) {
	var starts []int
	for _, b := range d.tracker.Snapshot() {
		if b.Status == mem.Allocated {
			starts = append(starts, b.Start)
		}
	}
	if len(starts) == 0 {
		return Event{}, false
	}
	addr := starts[d.rng.Intn(len(starts))]
	err := d.tracker.Deallocate(addr)
	return Event{Kind: KindFree, Addr: addr, Err: err}, true
}

func (d *Driver) randomSize() int {
	div := d.cfg.MaxAllocDiv
	if div < 1 {
		div = 1
	}
	max := d.tracker.Capacity() / div
	if max < 1 {
		max = 1
	}
	return 1 + d.rng.Intn(max)
}
