package main

import (
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/memsim/memsim/mem"
	"github.com/memsim/memsim/mem/sim"
)

// Layout constants
const (
	infoPanelWidth = 28 // Width reserved for the stats panel
	barHeight      = 3  // Height of the memory bar (bar + address ruler)
	maxLogLines    = 200
)

// tickMsg advances the simulation by one frame.
type tickMsg time.Time

// Model is the main application model
type Model struct {
	driver *sim.Driver
	keys   KeyMap

	eventLog viewport.Model
	events   []string

	width  int
	height int
	ready  bool

	paused   bool
	interval time.Duration
	ticks    int

	// Strategy used by the manual-allocation key; 's' cycles it.
	manualStrategy mem.Strategy
}

// NewModel creates the application model around a configured driver.
func NewModel(driver *sim.Driver, interval time.Duration) Model {
	return Model{
		driver:         driver,
		keys:           DefaultKeyMap(),
		interval:       interval,
		manualStrategy: mem.FirstFit,
	}
}

// Init starts the simulation clock.
func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
