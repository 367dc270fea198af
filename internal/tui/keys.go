package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	ToggleMode key.Binding
	Audio      key.Binding
	Journal    key.Binding
	Done       key.Binding
	Refresh    key.Binding
	Quit       key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	ToggleMode: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "switch mode"),
	),
	Audio: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "soundscape on/off"),
	),
	Journal: key.NewBinding(
		key.WithKeys("w"),
		key.WithHelp("w", "write journal"),
	),
	Done: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "mark done"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
