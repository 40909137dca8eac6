package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/memsim/memsim/cmd/memviz/logger"
	"github.com/memsim/memsim/mem"
	"github.com/memsim/memsim/mem/sim"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		logHeight := m.logHeight()
		if !m.ready {
			m.eventLog = viewport.New(msg.Width-infoPanelWidth-6, logHeight)
			m.ready = true
		} else {
			m.eventLog.Width = msg.Width - infoPanelWidth - 6
			m.eventLog.Height = logHeight
		}
		m.refreshLog()
		return m, nil

	case tickMsg:
		if !m.paused {
			m.ticks++
			for _, ev := range m.driver.Step() {
				m.logEvent(ev)
			}
		}
		return m, m.tick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused
		return m, nil

	case key.Matches(msg, m.keys.Alloc):
		m.logEvent(m.driver.Allocate(m.manualStrategy))
		return m, nil

	case key.Matches(msg, m.keys.Free):
		if ev, ok := m.driver.FreeRandom(); ok {
			m.logEvent(ev)
		}
		return m, nil

	case key.Matches(msg, m.keys.Strategy):
		m.manualStrategy = nextStrategy(m.manualStrategy)
		return m, nil

	case key.Matches(msg, m.keys.Faster):
		if m.interval > 100*time.Millisecond {
			m.interval -= 100 * time.Millisecond
		}
		return m, nil

	case key.Matches(msg, m.keys.Slower):
		if m.interval < 3*time.Second {
			m.interval += 100 * time.Millisecond
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.eventLog.LineUp(1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.eventLog.LineDown(1)
		return m, nil
	}
	return m, nil
}

// nextStrategy cycles first-fit -> best-fit -> worst-fit -> first-fit.
func nextStrategy(s mem.Strategy) mem.Strategy {
	for i, cur := range mem.Strategies {
		if cur == s {
			return mem.Strategies[(i+1)%len(mem.Strategies)]
		}
	}
	return mem.FirstFit
}

func (m *Model) logEvent(ev sim.Event) {
	logger.Debug("event", "desc", ev.String())
	line := fmt.Sprintf("t%04d  %s", m.ticks, ev)
	if ev.Err != nil {
		line = errTextStyle.Render(line)
	}
	m.events = append(m.events, line)
	if len(m.events) > maxLogLines {
		m.events = m.events[len(m.events)-maxLogLines:]
	}
	m.refreshLog()
}

func (m *Model) refreshLog() {
	if !m.ready {
		return
	}
	m.eventLog.SetContent(joinLines(m.events))
	m.eventLog.GotoBottom()
}

// logHeight is the vertical space left for the event log after the header,
// memory bar, and help line are laid out.
func (m Model) logHeight() int {
	h := m.height - barHeight - 7
	if h < 3 {
		h = 3
	}
	return h
}
