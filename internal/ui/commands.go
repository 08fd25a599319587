package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/popupkit/internal/logging/events"
	"github.com/atomicstack/popupkit/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
)

// selectedMsg reports an activated menu entry.
type selectedMsg struct {
	id   string
	info string
	quit bool
}

func (m *Model) selectHandler(entry menu.EntryDef) menu.SelectHandler {
	return func(sel *menu.Selection) tea.Cmd {
		msg := selectedMsg{
			id:   sel.Item.ID(),
			info: entry.Info,
			quit: entry.Quit,
		}
		if msg.info == "" {
			msg.info = fmt.Sprintf("Selected %s", sel.Item.Label())
		}
		return func() tea.Msg { return msg }
	}
}

func (m *Model) choiceChanged(def menu.ChoiceDef, value []string) {
	label := def.Label
	if label == "" {
		label = "choice"
	}
	selected := strings.Join(value, ", ")
	if selected == "" {
		selected = "none"
	}
	m.setInfo(fmt.Sprintf("%s: %s", label, selected))
}

func (m *Model) handleSelectedMsg(msg tea.Msg) tea.Cmd {
	selected, ok := msg.(selectedMsg)
	if !ok {
		return nil
	}
	events.Action.Success(selected.info)
	m.setInfo(selected.info)
	if selected.quit {
		return tea.Quit
	}
	return nil
}
