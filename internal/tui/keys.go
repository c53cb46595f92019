package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit      key.Binding
	Commit    key.Binding
	Cancel    key.Binding
	Left      key.Binding
	Right     key.Binding
	Backspace key.Binding
	Space     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Commit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "commit")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Left:      key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "drag left")),
		Right:     key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "drag right")),
		Backspace: key.NewBinding(key.WithKeys("backspace", "delete")),
		Space:     key.NewBinding(key.WithKeys(" ")),
	}
}
