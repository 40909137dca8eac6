package main

import "github.com/charmbracelet/lipgloss"

var (
	// Color palette
	primaryColor = lipgloss.Color("#7D56F4")
	freeColor    = lipgloss.Color("#04B575")
	errorColor   = lipgloss.Color("#FF4B4B")
	mutedColor   = lipgloss.Color("#666666")
	borderColor  = lipgloss.Color("#383838")

	// ownerPalette colors allocated blocks by owner id, cycling through a
	// viridis-like ramp so neighbouring processes stay distinguishable.
	ownerPalette = []lipgloss.Color{
		"#440154", "#46327E", "#365C8D", "#277F8E",
		"#1FA187", "#4AC16D", "#A0DA39", "#FDE725",
	}

	// Header styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Padding(0, 1)

	pausedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(errorColor).
			Padding(0, 1)

	// Memory bar styles
	freeBlockStyle = lipgloss.NewStyle().
			Foreground(freeColor)

	rulerStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	// Pane styles
	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)

	infoLabelStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	infoValueStyle = lipgloss.NewStyle().
			Bold(true)

	errTextStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Padding(0, 1)
)

// ownerStyle returns the bar style for the given owner id. Ids cycle
// through the palette; the text stays readable on every ramp color.
func ownerStyle(owner int) lipgloss.Style {
	color := ownerPalette[owner%len(ownerPalette)]
	return lipgloss.NewStyle().
		Background(color).
		Foreground(lipgloss.Color("#FFFFFF"))
}
