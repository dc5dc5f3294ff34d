package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the table viewer.
type keyMap struct {
	up    key.Binding
	down  key.Binding
	rank  key.Binding
	stats key.Binding
	reset key.Binding
	help  key.Binding
	quit  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		rank:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "rank by next column")),
		stats: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "statistics")),
		reset: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "input order")),
		help:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.rank, k.stats, k.reset, k.help, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down},
		{k.rank, k.stats, k.reset},
		{k.help, k.quit},
	}
}
