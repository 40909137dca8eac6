package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memsim/memsim/mem"
)

func TestBarSegments_ProportionalAndExact(t *testing.T) {
	blocks := []mem.Block{
		{Start: 0, Size: 50, Status: mem.Allocated, Owner: 1},
		{Start: 50, Size: 50, Status: mem.Free},
	}

	segs := barSegments(blocks, 100, 80)
	require.Len(t, segs, 2)
	assert.Equal(t, 40, segs[0].cells)
	assert.Equal(t, 40, segs[1].cells)
}

func TestBarSegments_TinyBlocksStayVisible(t *testing.T) {
	blocks := []mem.Block{
		{Start: 0, Size: 1, Status: mem.Allocated, Owner: 1},
		{Start: 1, Size: 98, Status: mem.Free},
		{Start: 99, Size: 1, Status: mem.Allocated, Owner: 2},
	}

	segs := barSegments(blocks, 100, 60)
	total := 0
	for _, s := range segs {
		assert.GreaterOrEqual(t, s.cells, 1, "every block needs at least one cell")
		total += s.cells
	}
	assert.Equal(t, 60, total, "segments must fill the bar exactly")
}

func TestBarSegments_MoreBlocksThanCells(t *testing.T) {
	var blocks []mem.Block
	for i := 0; i < 20; i++ {
		blocks = append(blocks, mem.Block{Start: i * 5, Size: 5, Status: mem.Free})
	}

	segs := barSegments(blocks, 100, 10)
	require.Len(t, segs, 20)
	for _, s := range segs {
		assert.Equal(t, 1, s.cells)
	}
}

func TestSegLabel(t *testing.T) {
	seg := segment{block: mem.Block{Status: mem.Allocated, Owner: 3}, cells: 8}
	assert.Equal(t, "   P3   ", segLabel(seg, "P3"))

	seg.cells = 2
	assert.Equal(t, "  ", segLabel(seg, "P3"), "labels that do not fit collapse to fill")

	free := segment{block: mem.Block{Status: mem.Free}, cells: 3}
	assert.Equal(t, "···", segLabel(free, "free"))
}

func TestNextStrategy_Cycles(t *testing.T) {
	assert.Equal(t, mem.BestFit, nextStrategy(mem.FirstFit))
	assert.Equal(t, mem.WorstFit, nextStrategy(mem.BestFit))
	assert.Equal(t, mem.FirstFit, nextStrategy(mem.WorstFit))
}
