package menu

import (
	"testing"

	"github.com/atomicstack/popupkit/internal/presence"
	tea "github.com/charmbracelet/bubbletea"
)

func keyMsg(name string) tea.KeyMsg {
	switch name {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)}
	}
}

// press sends keys to the tree and feeds any immediate follow-up message
// back, the way the program loop does on the next frame.
func press(t *testing.T, tree *Tree, names ...string) {
	t.Helper()
	for _, name := range names {
		_, cmd := tree.HandleKey(keyMsg(name))
		if cmd == nil {
			continue
		}
		if msg, ok := cmd().(EntranceMsg); ok {
			tree.Update(msg)
		}
	}
}

func buildFlat(t *testing.T, opts TreeOptions, content ContentOptions, labels ...string) (*Tree, *Content, []*Item) {
	t.Helper()
	tree := NewTree(opts)
	root, err := NewContent(tree.Scope(), content)
	if err != nil {
		t.Fatalf("new content: %v", err)
	}
	items := make([]*Item, 0, len(labels))
	for _, label := range labels {
		items = append(items, root.AddItem(ItemOptions{ID: label, Label: label}))
	}
	return tree, root, items
}

type nested struct {
	tree    *Tree
	root    *Content
	first   *Item
	sub     *Submenu
	content *Content
	inner   []*Item
}

func buildNested(t *testing.T, opts TreeOptions, subOpts SubmenuOptions, contentOpts ContentOptions) nested {
	t.Helper()
	tree := NewTree(opts)
	root, err := NewContent(tree.Scope(), ContentOptions{})
	if err != nil {
		t.Fatalf("root content: %v", err)
	}
	first := root.AddItem(ItemOptions{ID: "first", Label: "First"})
	if subOpts.Label == "" {
		subOpts.Label = "More"
	}
	sub, err := root.AddSubmenu(subOpts)
	if err != nil {
		t.Fatalf("submenu: %v", err)
	}
	root.AddItem(ItemOptions{ID: "last", Label: "Last"})
	content, err := NewContent(sub.Scope(), contentOpts)
	if err != nil {
		t.Fatalf("submenu content: %v", err)
	}
	inner := []*Item{
		content.AddItem(ItemOptions{ID: "x", Label: "X"}),
		content.AddItem(ItemOptions{ID: "y", Label: "Y"}),
	}
	return nested{tree: tree, root: root, first: first, sub: sub, content: content, inner: inner}
}

// fakeNode plays named animations on demand.
type fakeNode struct {
	name string
	fill string
	subs map[int]func(presence.AnimationEvent)
	next int
}

func newFakeNode() *fakeNode {
	return &fakeNode{name: presence.AnimationNone, subs: make(map[int]func(presence.AnimationEvent))}
}

func (n *fakeNode) ComputedStyle() presence.Style {
	return presence.Style{AnimationName: n.name}
}

func (n *fakeNode) Subscribe(fn func(presence.AnimationEvent)) func() {
	n.next++
	id := n.next
	n.subs[id] = fn
	return func() { delete(n.subs, id) }
}

func (n *fakeNode) SetFillMode(mode string) {
	n.fill = mode
}

func (n *fakeNode) SetOpen(open bool) {
	if open {
		n.name = "expand"
		return
	}
	n.name = "collapse"
}

func (n *fakeNode) emit(typ presence.AnimationEventType, name string) {
	fns := make([]func(presence.AnimationEvent), 0, len(n.subs))
	for _, fn := range n.subs {
		fns = append(fns, fn)
	}
	for _, fn := range fns {
		fn(presence.AnimationEvent{Type: typ, Name: name, Target: n})
	}
}

// addDeeper nests a hover submenu with a single item "z" inside n.content.
func addDeeper(t *testing.T, n nested, contentOpts ContentOptions) (*Submenu, *Content, *Item) {
	t.Helper()
	sub, err := n.content.AddSubmenu(SubmenuOptions{ID: "deeper", Label: "Deeper", Strategy: OpenOnHover, Delay: -1})
	if err != nil {
		t.Fatalf("deeper submenu: %v", err)
	}
	content, err := NewContent(sub.Scope(), contentOpts)
	if err != nil {
		t.Fatalf("deeper content: %v", err)
	}
	return sub, content, content.AddItem(ItemOptions{ID: "z", Label: "Z"})
}
