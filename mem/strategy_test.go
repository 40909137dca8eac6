package mem

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStrategy(t *testing.T) {
	assert.Equal(t, FirstFit, ParseStrategy("first-fit"))
	assert.Equal(t, BestFit, ParseStrategy("best-fit"))
	assert.Equal(t, WorstFit, ParseStrategy("worst-fit"))

	// The original simulation used underscored names.
	assert.Equal(t, FirstFit, ParseStrategy("first_fit"))
	assert.Equal(t, BestFit, ParseStrategy("best_fit"))
	assert.Equal(t, WorstFit, ParseStrategy("worst_fit"))
}

// TestParseStrategy_UnknownFallsBack verifies that an unknown name falls
// back to first-fit and leaves a diagnostic instead of failing the call.
func TestParseStrategy_UnknownFallsBack(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer SetLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	assert.Equal(t, FirstFit, ParseStrategy("buddy"))
	assert.Contains(t, buf.String(), "unknown allocation strategy")
	assert.Contains(t, buf.String(), "buddy")
}

// TestAllocate_UnknownStrategyBehavesAsFirstFit covers the typed side of
// the fallback: an out-of-range Strategy value still allocates, first-fit.
func TestAllocate_UnknownStrategyBehavesAsFirstFit(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer SetLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	tr := newHolePattern(t)
	addr, err := tr.Allocate(12, Strategy(9))
	require.NoError(t, err)
	assert.Equal(t, 15, addr, "fallback must place like first-fit")
	assert.Contains(t, buf.String(), "unknown allocation strategy")
}

func TestStrategy_String(t *testing.T) {
	assert.Equal(t, "first-fit", FirstFit.String())
	assert.Equal(t, "best-fit", BestFit.String())
	assert.Equal(t, "worst-fit", WorstFit.String())
	assert.Equal(t, "strategy(9)", Strategy(9).String())
}

// newHolePattern builds free holes of sizes 10, 40, 15 (in address order)
// separated and terminated by allocated blocks, the fixed layout used by
// the best-fit and worst-fit selection tests.
func newHolePattern(t testing.TB) *Tracker {
	t.Helper()
	return newTrackerWithLayout(t, 100, []int{10, 5, 40, 5, 15, 25}, 0, 2, 4)
}

func TestBestFit_PicksSmallestHole(t *testing.T) {
	tr := newHolePattern(t)
	require.Equal(t, []int{10, 40, 15}, freeSizes(tr))

	// Of the holes that fit 12 bytes ({40, 15}), best-fit takes the 15.
	addr, err := tr.Allocate(12, BestFit)
	require.NoError(t, err)
	assert.Equal(t, 60, addr, "best-fit must carve from the 15-byte hole at 60")
	assert.Equal(t, []int{10, 40, 3}, freeSizes(tr))
	assertInvariants(t, tr)
}

func TestWorstFit_PicksLargestHole(t *testing.T) {
	tr := newHolePattern(t)
	require.Equal(t, []int{10, 40, 15}, freeSizes(tr))

	addr, err := tr.Allocate(12, WorstFit)
	require.NoError(t, err)
	assert.Equal(t, 15, addr, "worst-fit must carve from the 40-byte hole at 15")
	assert.Equal(t, []int{10, 28, 15}, freeSizes(tr))
	assertInvariants(t, tr)
}

// TestFit_TieBreaksToEarliestHole pins the tie-break: when several holes
// share the extreme size, the earliest one in address order wins.
func TestFit_TieBreaksToEarliestHole(t *testing.T) {
	// Two 20-byte holes at 0 and 25, allocated separators between them.
	build := func() *Tracker {
		return newTrackerWithLayout(t, 100, []int{20, 5, 20, 55}, 0, 2)
	}

	tr := build()
	addr, err := tr.Allocate(8, BestFit)
	require.NoError(t, err)
	assert.Equal(t, 0, addr, "best-fit tie must go to the earliest hole")

	tr = build()
	addr, err = tr.Allocate(8, WorstFit)
	require.NoError(t, err)
	assert.Equal(t, 0, addr, "worst-fit tie must go to the earliest hole")
}

func TestFirstFit_SkipsHolesThatAreTooSmall(t *testing.T) {
	tr := newHolePattern(t)

	// 12 does not fit the 10-byte hole at 0; first-fit lands in the 40-byte
	// hole at 15 even though the 15-byte hole would waste less.
	addr, err := tr.Allocate(12, FirstFit)
	require.NoError(t, err)
	assert.Equal(t, 15, addr)
	assertInvariants(t, tr)
}
