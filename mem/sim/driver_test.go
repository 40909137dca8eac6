package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memsim/memsim/mem"
)

func newDriver(t *testing.T, capacity int, cfg Config) *Driver {
	t.Helper()
	tr, err := mem.New(capacity)
	require.NoError(t, err)
	return New(tr, cfg)
}

func TestDriver_Deterministic(t *testing.T) {
	cfg := ConfigDefault
	cfg.Seed = 1234

	a := newDriver(t, 200, cfg)
	b := newDriver(t, 200, cfg)

	for _i := 0; _i < 100; _i++ {
		a.Step()
		b.Step()
	}
	assert.Equal(t, a.Tracker().Snapshot(), b.Tracker().Snapshot(),
		"same seed must reproduce the same block sequence")
}

func TestDriver_StepPreservesConservation(t *testing.T) {
	d := newDriver(t, 500, Config{
		Name:        "test",
		AllocChance: 0.8,
		FreeChance:  0.4,
		MaxAllocDiv: 4,
		Seed:        99,
	})

	for i := 0; i < 300; i++ {
		for _, ev := range d.Step() {
			if ev.Err != nil {
				// The only expected failure in driver traffic is exhaustion:
				// frees always target a live block.
				require.ErrorIs(t, ev.Err, mem.ErrNoSpace, "step %d: %s", i, ev)
			}
		}
		tr := d.Tracker()
		require.Equal(t, tr.Capacity(), tr.FreeBytes()+tr.AllocatedBytes(), "step %d", i)
	}
}

func TestDriver_RequestSizesStayInRange(t *testing.T) {
	cfg := ConfigDefault
	cfg.Seed = 5
	cfg.AllocChance = 1.0
	cfg.FreeChance = 1.0
	d := newDriver(t, 100, cfg)

	for _i := 0; _i < 200; _i++ {
		for _, ev := range d.Step() {
			if ev.Kind != KindAlloc {
				continue
			}
			assert.GreaterOrEqual(t, ev.Size, 1)
			assert.LessOrEqual(t, ev.Size, 100/cfg.MaxAllocDiv)
		}
	}
}

func TestDriver_FreeRandomOnEmptySpace(t *testing.T) {
	d := newDriver(t, 100, ConfigDefault)

	_, ok := d.FreeRandom()
	assert.False(t, ok, "nothing to free on a fresh tracker")
}

func TestDriver_ManualAllocate(t *testing.T) {
	cfg := ConfigDefault
	cfg.Seed = 11
	d := newDriver(t, 100, cfg)

	ev := d.Allocate(mem.BestFit)
	require.NoError(t, ev.Err)
	assert.Equal(t, KindAlloc, ev.Kind)
	assert.Equal(t, mem.BestFit, ev.Strategy)
	assert.Equal(t, ev.Size, d.Tracker().AllocatedBytes())
}

func TestPresets_Complete(t *testing.T) {
	for name, cfg := range Presets {
		assert.Equal(t, name, cfg.Name)
		assert.Positive(t, cfg.AllocChance)
		assert.Positive(t, cfg.FreeChance)
		assert.Positive(t, cfg.MaxAllocDiv)
	}
}

func TestEvent_String(t *testing.T) {
	ev := Event{Kind: KindAlloc, Size: 12, Strategy: mem.WorstFit, Addr: 40}
	assert.Equal(t, "allocated 12 at 40 (worst-fit)", ev.String())

	ev = Event{Kind: KindAlloc, Size: 300, Strategy: mem.FirstFit, Err: mem.ErrNoSpace}
	assert.Contains(t, ev.String(), "failed")

	ev = Event{Kind: KindFree, Addr: 40}
	assert.Equal(t, "freed 40", ev.String())
}
