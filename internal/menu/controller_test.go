package menu

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestDownMovesFocusModuloItemCount(t *testing.T) {
	labels := []string{"a", "b", "c", "d"}
	for n := 0; n < 10; n++ {
		tree, root, items := buildFlat(t, TreeOptions{}, ContentOptions{}, labels...)
		tree.SetOpen(true)
		if !tree.Focus(items[0]) {
			t.Fatalf("expected first item to take focus")
		}
		for i := 0; i < n; i++ {
			press(t, tree, "down")
		}
		if got := root.Index(tree.Focused()); got != n%len(labels) {
			t.Fatalf("after %d downs expected index %d, got %d", n, n%len(labels), got)
		}
	}
}

func TestUpWrapsOrClamps(t *testing.T) {
	tests := []struct {
		name string
		loop bool
		want int
	}{
		{name: "loop", loop: true, want: 2},
		{name: "clamp", loop: false, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loop := tt.loop
			tree, root, items := buildFlat(t, TreeOptions{}, ContentOptions{Loop: &loop}, "a", "b", "c")
			tree.SetOpen(true)
			tree.Focus(items[0])
			press(t, tree, "up")
			if got := root.Index(tree.Focused()); got != tt.want {
				t.Fatalf("expected index %d, got %d", tt.want, got)
			}
		})
	}
}

func TestDownClampsAtEndWithoutLoop(t *testing.T) {
	loop := false
	tree, root, items := buildFlat(t, TreeOptions{}, ContentOptions{Loop: &loop}, "a", "b")
	tree.SetOpen(true)
	tree.Focus(items[1])
	press(t, tree, "down")
	if got := root.Index(tree.Focused()); got != 1 {
		t.Fatalf("expected focus to stay on last item, got %d", got)
	}
}

func TestNavigationWithoutFocus(t *testing.T) {
	tree, _, items := buildFlat(t, TreeOptions{}, ContentOptions{}, "a", "b", "c")
	tree.SetOpen(true)
	press(t, tree, "down")
	if tree.Focused() != items[0] {
		t.Fatalf("down without focus should land on first item")
	}
	tree.Blur()
	press(t, tree, "up")
	if tree.Focused() != items[2] {
		t.Fatalf("up without focus should land on last item")
	}
}

func TestNavigationSkipsDisabledAndLabels(t *testing.T) {
	tree := NewTree(TreeOptions{})
	root, err := NewContent(tree.Scope(), ContentOptions{})
	if err != nil {
		t.Fatalf("content: %v", err)
	}
	group := root.AddGroup()
	if _, err := group.AddLabel("Edit"); err != nil {
		t.Fatalf("label: %v", err)
	}
	a := group.AddItem(ItemOptions{Label: "a"})
	root.AddItem(ItemOptions{Label: "b", Disabled: true})
	c := root.AddItem(ItemOptions{Label: "c"})
	tree.SetOpen(true)
	press(t, tree, "down")
	if tree.Focused() != a {
		t.Fatalf("expected label to be skipped")
	}
	press(t, tree, "down")
	if tree.Focused() != c {
		t.Fatalf("expected disabled item to be skipped")
	}
}

func TestExtraNavigationKeysMergeWithDefaults(t *testing.T) {
	tree, _, items := buildFlat(t, TreeOptions{}, ContentOptions{
		NavigationDown: []string{"j"},
		NavigationUp:   []string{"k"},
	}, "a", "b")
	tree.SetOpen(true)
	tree.Focus(items[0])
	press(t, tree, "j")
	if tree.Focused() != items[1] {
		t.Fatalf("expected j to move down")
	}
	press(t, tree, "k")
	if tree.Focused() != items[0] {
		t.Fatalf("expected k to move up")
	}
	press(t, tree, "down")
	if tree.Focused() != items[1] {
		t.Fatalf("expected arrow default to remain bound")
	}
}

func TestEntranceThenBackRestoresTrigger(t *testing.T) {
	n := buildNested(t, TreeOptions{}, SubmenuOptions{}, ContentOptions{})
	n.tree.SetOpen(true)
	trigger := n.sub.Trigger()
	n.tree.Focus(trigger)
	before := n.tree.Focused()

	press(t, n.tree, "right")
	if !n.sub.IsOpen() || !n.content.Mounted() {
		t.Fatalf("expected submenu to open on entrance")
	}
	if n.tree.Focused() != n.inner[0] {
		t.Fatalf("expected focus on first submenu item, got %v", n.tree.Focused())
	}
	if n.tree.Registry().Len() != 1 {
		t.Fatalf("expected one registry entry, got %d", n.tree.Registry().Len())
	}
	scope := n.content.KeyScope()

	press(t, n.tree, "left")
	if n.sub.IsOpen() || n.content.Mounted() {
		t.Fatalf("expected submenu to close")
	}
	if n.tree.Focused() != before {
		t.Fatalf("expected focus to return to the trigger")
	}
	if n.tree.Registry().Len() != 0 {
		t.Fatalf("expected registry to be empty, got %d", n.tree.Registry().Len())
	}
	if n.tree.Keys().Has(scope) {
		t.Fatalf("expected submenu key scope to be dropped")
	}
}

func TestRightOnPlainItemDoesNothing(t *testing.T) {
	n := buildNested(t, TreeOptions{}, SubmenuOptions{}, ContentOptions{})
	n.tree.SetOpen(true)
	n.tree.Focus(n.first)
	handled, cmd := n.tree.HandleKey(keyMsg("right"))
	if !handled || cmd != nil {
		t.Fatalf("expected right to be swallowed without effect")
	}
	if n.sub.IsOpen() {
		t.Fatalf("submenu must stay closed")
	}
}

func TestLeftIsUnboundAtTopLevel(t *testing.T) {
	tree, _, items := buildFlat(t, TreeOptions{}, ContentOptions{}, "a")
	tree.SetOpen(true)
	tree.Focus(items[0])
	if handled, _ := tree.HandleKey(keyMsg("left")); handled {
		t.Fatalf("left must be unbound in a top-level menu")
	}
}

func TestRTLSwapsEntranceDirection(t *testing.T) {
	n := buildNested(t, TreeOptions{Dir: RTL}, SubmenuOptions{}, ContentOptions{})
	n.tree.SetOpen(true)
	n.tree.Focus(n.sub.Trigger())
	press(t, n.tree, "left")
	if !n.sub.IsOpen() || n.tree.Focused() != n.inner[0] {
		t.Fatalf("expected left to enter the submenu in rtl")
	}
	press(t, n.tree, "right")
	if n.sub.IsOpen() || n.tree.Focused() != n.sub.Trigger() {
		t.Fatalf("expected right to leave the submenu in rtl")
	}
}

func TestEnterOnTriggerPerformsEntrance(t *testing.T) {
	n := buildNested(t, TreeOptions{}, SubmenuOptions{}, ContentOptions{})
	n.tree.SetOpen(true)
	n.tree.Focus(n.sub.Trigger())
	press(t, n.tree, "enter")
	if !n.sub.IsOpen() || n.tree.Focused() != n.inner[0] {
		t.Fatalf("expected enter on a trigger to enter the submenu")
	}
}

func TestEscapeInSubmenu(t *testing.T) {
	tests := []struct {
		name      string
		intercept func(d *Directive)
		closed    bool
	}{
		{name: "default", closed: true},
		{name: "prevented", intercept: func(d *Directive) { d.PreventClose() }, closed: false},
		{name: "kept", intercept: func(d *Directive) { d.RequestClose(false) }, closed: false},
		{name: "prevented then forced", intercept: func(d *Directive) {
			d.PreventClose()
			d.RequestClose(true)
		}, closed: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var lastActive *Item
			opts := ContentOptions{OnEscape: func(_ tea.KeyMsg, d *Directive) {
				lastActive = d.LastActive
				if tt.intercept != nil {
					tt.intercept(d)
				}
			}}
			n := buildNested(t, TreeOptions{}, SubmenuOptions{}, opts)
			n.tree.SetOpen(true)
			n.tree.Focus(n.sub.Trigger())
			press(t, n.tree, "right", "esc")
			if lastActive != n.sub.Trigger() {
				t.Fatalf("expected the trigger as last active item")
			}
			if n.sub.IsOpen() == tt.closed {
				t.Fatalf("expected closed=%v, submenu open=%v", tt.closed, n.sub.IsOpen())
			}
			if !n.tree.IsOpen() {
				t.Fatalf("escape in a submenu must not close the root")
			}
			if tt.closed && n.tree.Focused() != n.sub.Trigger() {
				t.Fatalf("expected focus back on the trigger")
			}
		})
	}
}

func TestEscapeInHoverOpenedSubmenuReportsOwnTrigger(t *testing.T) {
	var lastActive *Item
	n := buildNested(t, TreeOptions{}, SubmenuOptions{}, ContentOptions{})
	deeper, content, z := addDeeper(t, n, ContentOptions{OnEscape: func(_ tea.KeyMsg, d *Directive) {
		lastActive = d.LastActive
	}})
	n.tree.SetOpen(true)
	n.tree.Focus(n.sub.Trigger())
	press(t, n.tree, "right")
	n.tree.PointerMove(Hit{Content: n.content, Item: deeper.Trigger()})
	if !deeper.IsOpen() || !content.Mounted() {
		t.Fatalf("expected hover to open the nested submenu")
	}
	if n.tree.Registry().Len() != 1 {
		t.Fatalf("hover must not record a registry entry, got %d", n.tree.Registry().Len())
	}
	n.tree.Focus(z)
	press(t, n.tree, "esc")
	if lastActive != deeper.Trigger() {
		t.Fatalf("expected the nested trigger as last active item, got %v", lastActive)
	}
	if deeper.IsOpen() || !n.sub.IsOpen() {
		t.Fatalf("expected only the nested submenu to close")
	}
	if n.tree.Focused() != deeper.Trigger() {
		t.Fatalf("expected focus back on the nested trigger")
	}
	if top, ok := n.tree.Registry().Peek(); !ok || top != n.sub.Trigger() {
		t.Fatalf("expected the keyboard entry to stay on the stack")
	}
}

func TestEscapeAtRoot(t *testing.T) {
	tree, _, items := buildFlat(t, TreeOptions{}, ContentOptions{}, "a")
	tree.SetOpen(true)
	tree.Focus(items[0])
	press(t, tree, "esc")
	if tree.IsOpen() {
		t.Fatalf("expected escape to close the menu")
	}
	if tree.Focused() != nil || tree.Active() != nil {
		t.Fatalf("expected focus to clear once closed")
	}

	tree, _, _ = buildFlat(t, TreeOptions{}, ContentOptions{
		OnEscape: func(_ tea.KeyMsg, d *Directive) { d.RequestClose(false) },
	}, "a")
	tree.SetOpen(true)
	press(t, tree, "esc")
	if !tree.IsOpen() {
		t.Fatalf("expected intercepted escape to keep the menu open")
	}
}

func TestEnterSelectsAndCloses(t *testing.T) {
	var selected []string
	handler := func(sel *Selection) tea.Cmd {
		selected = append(selected, sel.Item.Label())
		return nil
	}
	keep := false
	tree := NewTree(TreeOptions{})
	root, _ := NewContent(tree.Scope(), ContentOptions{})
	closes := root.AddItem(ItemOptions{Label: "closes", OnSelect: handler})
	stays := root.AddItem(ItemOptions{Label: "stays", OnSelect: handler, CloseOnSelect: &keep})
	vetoed := root.AddItem(ItemOptions{Label: "vetoed", OnSelect: func(sel *Selection) tea.Cmd {
		sel.PreventClose()
		return handler(sel)
	}})

	tree.SetOpen(true)
	tree.Focus(stays)
	press(t, tree, "enter")
	tree.Focus(vetoed)
	press(t, tree, "enter")
	if !tree.IsOpen() {
		t.Fatalf("expected menu to stay open")
	}
	tree.Focus(closes)
	press(t, tree, "enter")
	if tree.IsOpen() {
		t.Fatalf("expected menu to close after selection")
	}
	want := []string{"stays", "vetoed", "closes"}
	if len(selected) != len(want) {
		t.Fatalf("expected %v, got %v", want, selected)
	}
	for i := range want {
		if selected[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, selected)
		}
	}
}

func TestSelectInSubmenuClosesNearestMenu(t *testing.T) {
	n := buildNested(t, TreeOptions{}, SubmenuOptions{}, ContentOptions{})
	tree := n.tree
	whole := n.content.AddItem(ItemOptions{Label: "whole", CloseTree: true})
	tree.SetOpen(true)
	tree.Focus(n.sub.Trigger())
	press(t, tree, "right", "enter")
	if n.sub.IsOpen() || !tree.IsOpen() {
		t.Fatalf("expected only the submenu to close")
	}
	if tree.Focused() != n.sub.Trigger() {
		t.Fatalf("expected focus to fall back to the trigger")
	}
	press(t, tree, "right")
	tree.Focus(whole)
	press(t, tree, "enter")
	if tree.IsOpen() {
		t.Fatalf("expected close-tree item to close the root")
	}
}

func TestSpaceOnlyActivatesOptions(t *testing.T) {
	tree := NewTree(TreeOptions{})
	root, _ := NewContent(tree.Scope(), ContentOptions{})
	fired := false
	plain := root.AddItem(ItemOptions{Label: "plain", OnSelect: func(*Selection) tea.Cmd {
		fired = true
		return nil
	}})
	choice := root.AddChoice(ChoiceOptions{Mode: Multiple})
	opt := choice.AddOption("wrap", ItemOptions{Label: "Wrap"})
	tree.SetOpen(true)

	tree.Focus(plain)
	handled, _ := tree.HandleKey(keyMsg("space"))
	if !handled || fired {
		t.Fatalf("space must be swallowed without activating a plain item")
	}
	tree.Focus(opt)
	press(t, tree, "space")
	if !choice.IsSelected("wrap") {
		t.Fatalf("expected space to toggle the option")
	}
	if !tree.IsOpen() {
		t.Fatalf("choosing an option keeps the menu open")
	}
}

func TestUnmountDropsKeyScope(t *testing.T) {
	tree, root, _ := buildFlat(t, TreeOptions{}, ContentOptions{}, "a")
	tree.SetOpen(true)
	scope := root.KeyScope()
	if !tree.Keys().Has(scope) {
		t.Fatalf("expected bindings while mounted")
	}
	tree.SetOpen(false)
	if tree.Keys().Has(scope) {
		t.Fatalf("expected bindings to be torn down")
	}
	tree.SetOpen(true)
	if root.KeyScope() == scope {
		t.Fatalf("expected a fresh key scope per mount")
	}
}
