package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Prev    key.Binding
	Next    key.Binding
	Focus   key.Binding
	Open    key.Binding
	Close   key.Binding
	Quit    key.Binding
	Dismiss key.Binding
}

var defaultKeys = keyMap{
	Prev: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "previous"),
	),
	Next: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "next"),
	),
	Focus: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "carousel/table"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "details"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Dismiss: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("any key", "dismiss"),
	),
}

func (k keyMap) browseHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Focus, k.Open, k.Quit}
}

func (k keyMap) modalHelp() []key.Binding {
	return []key.Binding{k.Open, k.Close}
}
