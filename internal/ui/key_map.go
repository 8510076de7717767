package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the [key.Binding] set shown in the per-view help lines.
// Song-list navigation keys come from the bubbles list component itself.
type keyMap struct {
	confirm key.Binding
	yes     key.Binding
	no      key.Binding
	restart key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "transfer")),
		yes:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "start")),
		no:      key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n/esc", "back")),
		restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry")),
		quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.confirm, k.yes, k.no},
		{k.restart, k.quit},
	}
}
