package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// globalKeys are handled by the model before the menu sees a key press.
type globalKeys struct {
	Quit       key.Binding
	Open       key.Binding
	QuitClosed key.Binding
}

func newGlobalKeys() globalKeys {
	return globalKeys{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter", " ", "m"),
			key.WithHelp("enter", "open"),
		),
		QuitClosed: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// footerKeys lists the global bindings shown next to the menu's own.
func (k globalKeys) footerKeys(open bool) []key.Binding {
	if open {
		return []key.Binding{k.Quit}
	}
	return []key.Binding{k.Open, k.QuitClosed}
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if key.Matches(keyMsg, m.keys.Quit) {
		return tea.Quit
	}
	if !m.tree.IsOpen() {
		switch {
		case key.Matches(keyMsg, m.keys.Open):
			m.tree.Toggle()
		case key.Matches(keyMsg, m.keys.QuitClosed):
			return tea.Quit
		}
		return nil
	}
	_, cmd := m.tree.HandleKey(keyMsg)
	return cmd
}
