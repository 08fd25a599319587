package menu

import (
	"github.com/atomicstack/popupkit/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

// Hit is what lies under the pointer. A zero Hit is empty space.
type Hit struct {
	X, Y    int
	Content *Content
	Item    *Item
	// Trigger marks the root menu's trigger.
	Trigger bool
}

func (h Hit) ids() (string, string) {
	var content, item string
	if h.Content != nil {
		content = h.Content.id
	}
	if h.Item != nil {
		item = h.Item.id
	}
	return content, item
}

// PointerMove tracks hover. Leaving a hover-strategy trigger closes its
// submenu, entering one starts its open timer, and entering or leaving a
// submenu's content opens or closes that submenu.
func (t *Tree) PointerMove(hit Hit) tea.Cmd {
	content, item := hit.ids()
	events.UI.Pointer("move", hit.X, hit.Y, content, item)
	var cmd tea.Cmd
	if hit.Item != t.hoverItem {
		if prev := t.hoverItem; prev != nil && prev.submenu != nil {
			prev.submenu.hoverLeave()
		}
		t.hoverItem = hit.Item
		if next := hit.Item; next != nil && next.role != RoleLabel {
			t.collapseSibling(next)
			t.Blur()
			t.active = next.content
			if next.submenu != nil {
				cmd = next.submenu.hoverEnter()
			}
		}
	}
	if hit.Content != t.hoverContent {
		if prev := t.hoverContent; prev != nil && prev.sub != nil && prev.mounted && !prev.encloses(hit.Content) {
			prev.sub.request(false)
		}
		t.hoverContent = hit.Content
		if next := hit.Content; next != nil && next.sub != nil {
			next.sub.request(true)
		}
	}
	t.Sync()
	return cmd
}

// encloses reports whether other is nested inside c.
func (c *Content) encloses(other *Content) bool {
	for o := other; o != nil && o.sub != nil; o = o.sub.parent {
		if o.sub.parent == c {
			return true
		}
	}
	return false
}

// collapseSibling closes a keyboard-opened submenu when the pointer moves
// onto another row of the content that holds its trigger.
func (t *Tree) collapseSibling(hovered *Item) {
	top, ok := t.registry.Peek()
	if !ok || top == hovered || top.content != hovered.content {
		return
	}
	t.registry.CloseLast()
}

// PointerDown dismisses every open content the press landed outside of.
func (t *Tree) PointerDown(hit Hit) {
	content, item := hit.ids()
	events.UI.Pointer("down", hit.X, hit.Y, content, item)
	for i := len(t.contents) - 1; i >= 0; i-- {
		c := t.contents[i]
		if !c.mounted || c.Contains(hit) {
			continue
		}
		c.outside(hit)
	}
	t.Sync()
}

// Click activates the row under the pointer and focuses it.
func (t *Tree) Click(hit Hit) tea.Cmd {
	content, item := hit.ids()
	events.UI.Pointer("click", hit.X, hit.Y, content, item)
	if hit.Trigger {
		t.Toggle()
		return nil
	}
	if hit.Item == nil || hit.Item.content.tree != t || !hit.Item.content.mounted {
		return nil
	}
	if hit.Item.Focusable() {
		t.Focus(hit.Item)
	}
	return t.Select(hit.Item)
}
