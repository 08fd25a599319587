package ui

import (
	"testing"
	"time"

	"github.com/atomicstack/popupkit/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func click(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone}
}

// newTestModel builds the default menu without animation unless opts
// says otherwise.
func newTestModel(t *testing.T, opts Options) *Model {
	t.Helper()
	if opts.Frames == 0 {
		opts.Frames = -1
	}
	if opts.FrameInterval == 0 {
		opts.FrameInterval = time.Millisecond
	}
	if opts.TypeAheadTimeout == 0 {
		opts.TypeAheadTimeout = time.Millisecond
	}
	m, err := NewModel(opts)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	return m
}

func findItem(t *testing.T, m *Model, label string) *menu.Item {
	t.Helper()
	for _, c := range m.Tree().Contents() {
		for _, item := range c.Items() {
			if item.Label() == label {
				return item
			}
		}
	}
	t.Fatalf("no item labelled %q", label)
	return nil
}

func boxFor(t *testing.T, l layout, c *menu.Content) box {
	t.Helper()
	for _, b := range l.boxes {
		if b.content == c {
			return b
		}
	}
	t.Fatalf("content %s has no box", c.ID())
	return box{}
}

// rowY is the screen row of item inside its box. Labels and disabled rows
// are drawn too, so the row comes from the box, not the focus order.
func rowY(t *testing.T, l layout, item *menu.Item) int {
	t.Helper()
	b := boxFor(t, l, item.Content())
	for i, row := range b.rows {
		if row == item {
			return b.y + 1 + i
		}
	}
	t.Fatalf("item %s is not drawn in its box", item.Label())
	return 0
}
