package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// handleMouseMsg turns pointer motion into hover and left presses into an
// outside-press check followed by a click on whatever lies underneath.
func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok || !m.mouse {
		return nil
	}
	hit := m.computeLayout().hit(ev.X, ev.Y)
	switch ev.Action {
	case tea.MouseActionMotion:
		return m.tree.PointerMove(hit)
	case tea.MouseActionPress:
		if ev.Button != tea.MouseButtonLeft {
			return nil
		}
		if m.tree.IsOpen() {
			m.tree.PointerDown(hit)
		}
		return m.tree.Click(hit)
	}
	return nil
}
