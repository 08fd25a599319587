package ui

import (
	"time"

	"github.com/atomicstack/popupkit/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

// frameMsg drives animations and deferred presence work.
type frameMsg struct{}

// scheduleFrame requests the next frame while anything is animating or
// waiting on the tick queue. Only one frame is ever in flight.
func (m *Model) scheduleFrame() tea.Cmd {
	if m.framePending || !m.animating() {
		return nil
	}
	m.framePending = true
	return tea.Tick(m.frameInterval, func(time.Time) tea.Msg {
		return frameMsg{}
	})
}

func (m *Model) animating() bool {
	if m.ticks.Len() > 0 {
		return true
	}
	for _, c := range m.tree.Contents() {
		if a := animatorFor(c); a != nil && a.Running() {
			return true
		}
	}
	return false
}

func (m *Model) handleFrameMsg(tea.Msg) tea.Cmd {
	m.framePending = false
	m.stepFrame()
	return nil
}

// stepFrame advances every running animation by one frame and then flushes
// the work deferred during the previous frame.
func (m *Model) stepFrame() {
	active := 0
	for _, c := range m.tree.Contents() {
		a := animatorFor(c)
		if a == nil {
			continue
		}
		if a.Step() {
			active++
		}
	}
	deferred := m.ticks.Flush()
	events.UI.Frame(active, deferred)
}
