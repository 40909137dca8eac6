package main

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts
type KeyMap struct {
	Pause    key.Binding
	Alloc    key.Binding
	Free     key.Binding
	Strategy key.Binding
	Faster   key.Binding
	Slower   key.Binding
	Up       key.Binding
	Down     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Pause: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space", "pause/resume"),
		),
		Alloc: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "allocate now"),
		),
		Free: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "free random"),
		),
		Strategy: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "cycle strategy"),
		),
		Faster: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "faster"),
		),
		Slower: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "slower"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll log up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll log down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
