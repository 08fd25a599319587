package menu

import (
	"github.com/atomicstack/popupkit/internal/keys"
	"github.com/atomicstack/popupkit/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

var (
	defaultDown  = []string{"down"}
	defaultUp    = []string{"up"}
	enterKeys    = []string{"enter"}
	spaceKeys    = []string{" ", "space"}
	escapeKeys   = []string{"esc"}
	forwardLTR   = []string{"right"}
	forwardRTL   = []string{"left"}
	directionKey = map[Dir][2][]string{
		LTR: {forwardLTR, forwardRTL},
		RTL: {forwardRTL, forwardLTR},
	}
)

// bind registers the content's key handlers under its own scope. Handlers
// read the rows when they fire, so rows added after mounting take part.
func (c *Content) bind() {
	reg := c.tree.keys
	opts := keys.Options{Scope: c.keyScope, PreventDefault: true}
	forward, back := directionKey[c.dir][0], directionKey[c.dir][1]

	reg.Register(keys.Binding(keys.Merge(defaultDown, c.navDown), "↓", "next"), func(tea.KeyMsg) tea.Cmd {
		c.move(1)
		return nil
	}, opts)
	reg.Register(keys.Binding(keys.Merge(defaultUp, c.navUp), "↑", "prev"), func(tea.KeyMsg) tea.Cmd {
		c.move(-1)
		return nil
	}, opts)
	reg.Register(keys.Binding(forward, arrow(forward), "open"), func(tea.KeyMsg) tea.Cmd {
		return c.tree.entrance()
	}, opts)
	if c.sub != nil {
		reg.Register(keys.Binding(back, arrow(back), "back"), func(tea.KeyMsg) tea.Cmd {
			c.back()
			return nil
		}, opts)
		reg.Register(keys.Binding(escapeKeys, "esc", "back"), func(msg tea.KeyMsg) tea.Cmd {
			c.escapeSubmenu(msg)
			return nil
		}, opts)
	} else {
		reg.Register(keys.Binding(escapeKeys, "esc", "close"), func(msg tea.KeyMsg) tea.Cmd {
			c.escapeRoot(msg)
			return nil
		}, opts)
	}
	reg.Register(keys.Binding(enterKeys, "enter", "select"), func(tea.KeyMsg) tea.Cmd {
		return c.enter()
	}, opts)
	reg.Register(keys.Binding(spaceKeys, "", ""), func(tea.KeyMsg) tea.Cmd {
		focused := c.tree.focused
		if focused == nil || focused.content != c || focused.role != RoleOption {
			return nil
		}
		return c.tree.Select(focused)
	}, opts)
}

// move shifts focus among the focusable rows. With no focused row, down
// lands on the first row and up on the last.
func (c *Content) move(delta int) {
	items := c.Focusable()
	n := len(items)
	if n == 0 {
		return
	}
	current := -1
	if f := c.tree.focused; f != nil && f.content == c {
		current = indexOf(items, f)
	}
	var next int
	switch {
	case delta > 0:
		switch {
		case current < n-1:
			next = current + 1
		case c.loop:
			next = 0
		default:
			next = current
		}
	default:
		if current == -1 {
			next = n - 1
			break
		}
		next = (current - 1 + n) % n
		if !c.loop && next == n-1 {
			return
		}
	}
	c.tree.Focus(items[next])
}

// enter performs submenu entrance when a trigger is focused and otherwise
// activates the focused row.
func (c *Content) enter() tea.Cmd {
	focused := c.tree.focused
	if focused == nil || focused.content != c {
		return nil
	}
	if focused.submenu != nil {
		return c.tree.entrance()
	}
	return c.tree.Select(focused)
}

// back closes this submenu and returns focus to its trigger.
func (c *Content) back() {
	c.closeSubmenu()
}

func (c *Content) escapeSubmenu(msg tea.KeyMsg) {
	d := &Directive{LastActive: c.sub.trigger}
	if c.onEscape != nil {
		c.onEscape(msg, d)
	}
	closing := d.ShouldClose(true)
	events.Menu.Dismiss(c.id, "escape", closing)
	if closing {
		c.closeSubmenu()
	}
}

func (c *Content) escapeRoot(msg tea.KeyMsg) {
	d := &Directive{LastActive: c.tree.focused}
	if c.onEscape != nil {
		c.onEscape(msg, d)
	}
	closing := d.ShouldClose(true)
	events.Menu.Dismiss(c.id, "escape", closing)
	if closing {
		c.menu.SetOpen(false)
	}
}

// closeSubmenu closes the submenu through its stack entry when that entry
// is on top, directly otherwise, and focuses its trigger.
func (c *Content) closeSubmenu() {
	sub := c.sub
	if top, ok := c.tree.registry.Peek(); ok && top == sub.trigger {
		c.tree.registry.PopAndClose()
	} else {
		sub.SetOpen(false)
	}
	c.tree.Focus(sub.trigger)
}

// outside handles a pointer-down that landed outside the content.
func (c *Content) outside(hit Hit) {
	if !c.closeOnOutside || !c.menu.IsOpen() {
		return
	}
	d := &Directive{LastActive: c.tree.focused}
	if c.sub != nil {
		d.LastActive = c.sub.trigger
	}
	if c.onOutside != nil {
		c.onOutside(hit, d)
	}
	closing := d.ShouldClose(true)
	events.Menu.Dismiss(c.id, "outside", closing)
	if closing {
		c.menu.SetOpen(false)
	}
}

func indexOf(items []*Item, item *Item) int {
	for i, it := range items {
		if it == item {
			return i
		}
	}
	return -1
}

func arrow(names []string) string {
	switch names[0] {
	case "right":
		return "→"
	case "left":
		return "←"
	default:
		return names[0]
	}
}
