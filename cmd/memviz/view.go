package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/memsim/memsim/mem"
)

func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}
	tracker := m.driver.Tracker()

	header := m.renderHeader()
	bar := m.renderBar(tracker)
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderInfo(tracker),
		paneStyle.Render(m.eventLog.View()),
	)
	help := helpStyle.Render(
		"space pause · a alloc · f free · s strategy · +/- speed · ↑/↓ log · q quit")

	return lipgloss.JoinVertical(lipgloss.Left, header, bar, body, help)
}

func (m Model) renderHeader() string {
	title := headerStyle.Render("memviz — contiguous allocation simulator")
	status := statusStyle.Render(fmt.Sprintf("preset %s · step %s · manual alloc %s",
		m.driver.Config().Name, m.interval, m.manualStrategy))
	if m.paused {
		status += pausedStyle.Render("PAUSED")
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, title, status)
}

// renderBar draws the address space as one horizontal bar: allocated blocks
// carry their owner id on a per-owner color, free blocks are green dots.
// An address ruler sits underneath.
func (m Model) renderBar(tracker *mem.Tracker) string {
	width := m.width - 4
	if width < 10 {
		width = 10
	}

	var b strings.Builder
	for _, seg := range barSegments(tracker.Snapshot(), tracker.Capacity(), width) {
		if seg.block.Status == mem.Allocated {
			b.WriteString(ownerStyle(seg.block.Owner).Render(segLabel(seg, fmt.Sprintf("P%d", seg.block.Owner))))
		} else {
			b.WriteString(freeBlockStyle.Render(segLabel(seg, "free")))
		}
	}

	ruler := rulerStyle.Render(fmt.Sprintf("0%*d", width-1, tracker.Capacity()))
	return lipgloss.NewStyle().Padding(0, 2).Render(b.String() + "\n" + ruler)
}

func (m Model) renderInfo(tracker *mem.Tracker) string {
	rows := []struct {
		label string
		value string
	}{
		{"Total Memory", fmt.Sprintf("%d", tracker.Capacity())},
		{"Free Memory", fmt.Sprintf("%d", tracker.FreeBytes())},
		{"Allocated", fmt.Sprintf("%d", tracker.AllocatedBytes())},
		{"Fragmentation", fmt.Sprintf("%.2f%%", tracker.FragmentationPercent())},
		{"Free Blocks", fmt.Sprintf("%d", tracker.FreeBlockCount())},
		{"Ticks", fmt.Sprintf("%d", m.ticks)},
	}

	var lines []string
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("%s %s",
			infoLabelStyle.Width(14).Render(r.label),
			infoValueStyle.Render(r.value)))
	}
	return paneStyle.Width(infoPanelWidth).Height(m.logHeight()).Render(joinLines(lines))
}

// segment is one block's share of the memory bar.
type segment struct {
	block mem.Block
	cells int
}

// barSegments distributes width cells across the blocks proportionally to
// their sizes. Every block gets at least one cell so tiny blocks stay
// visible; the largest segment absorbs the rounding drift.
func barSegments(blocks []mem.Block, capacity, width int) []segment {
	if len(blocks) == 0 {
		return nil
	}
	if width < len(blocks) {
		width = len(blocks)
	}

	segs := make([]segment, len(blocks))
	total := 0
	for i, b := range blocks {
		cells := b.Size * width / capacity
		if cells < 1 {
			cells = 1
		}
		segs[i] = segment{block: b, cells: cells}
		total += cells
	}

	for total != width {
		li := 0
		for i, s := range segs {
			if s.cells > segs[li].cells {
				li = i
			}
		}
		if total > width {
			if segs[li].cells <= 1 {
				break
			}
			segs[li].cells--
			total--
		} else {
			segs[li].cells++
			total++
		}
	}
	return segs
}

// segLabel centers the label inside the segment when it fits, otherwise
// fills the segment with its fallback texture.
func segLabel(seg segment, label string) string {
	if seg.cells >= len(label)+2 {
		pad := seg.cells - len(label)
		left := pad / 2
		return strings.Repeat(" ", left) + label + strings.Repeat(" ", pad-left)
	}
	if seg.block.Status == mem.Allocated {
		return strings.Repeat(" ", seg.cells)
	}
	return strings.Repeat("·", seg.cells)
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}
