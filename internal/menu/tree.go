package menu

import (
	"time"

	"github.com/atomicstack/popupkit/internal/controllable"
	"github.com/atomicstack/popupkit/internal/keys"
	"github.com/atomicstack/popupkit/internal/logging/events"
	"github.com/atomicstack/popupkit/internal/presence"
	"github.com/atomicstack/popupkit/internal/scope"
	"github.com/atomicstack/popupkit/internal/submenu"
	tea "github.com/charmbracelet/bubbletea"
)

// TreeOptions configures a Tree. Zero values select working defaults.
type TreeOptions struct {
	ID string
	// Scope is the bag the tree's providers are layered on.
	Scope *scope.Bag
	// Registry is the submenu stack for this tree. Trees never share one
	// unless the caller passes the same registry to both.
	Registry *submenu.Registry[*Item]
	Keys     *keys.Registry
	// Scheduler receives presence fill-mode resets. A private TickQueue,
	// drained by Flush, is used when nil.
	Scheduler presence.Scheduler

	Open         *bool
	DefaultOpen  bool
	OnOpenChange func(bool)

	Dir        Dir
	Strategy   Strategy
	HoverDelay time.Duration

	// Attach supplies the visual node a content is tracked through once it
	// mounts. Contents without a node unmount without waiting.
	Attach func(*Content) presence.Node
	// OnSelect runs after every item activation that is not a submenu
	// trigger.
	OnSelect func(item *Item, closing bool) tea.Cmd
	// TypeAheadTimeout clears the type-ahead buffer. Defaults to one second.
	TypeAheadTimeout time.Duration
}

// Tree is one independent menu: its open state, contents, focus, key scopes
// and submenu stack.
type Tree struct {
	id        string
	bag       *scope.Bag
	open      *controllable.State[bool]
	registry  *submenu.Registry[*Item]
	keys      *keys.Registry
	scheduler presence.Scheduler
	ticks     *presence.TickQueue

	dir        Dir
	strategy   Strategy
	hoverDelay time.Duration
	attach     func(*Content) presence.Node
	onSelect   func(*Item, bool) tea.Cmd

	contents     []*Content
	active       *Content
	focused      *Item
	hoverItem    *Item
	hoverContent *Content

	syncing bool
	resync  bool

	typeahead typeAhead
}

// EntranceMsg completes a keyboard submenu entrance once the submenu's
// content has had a frame to mount.
type EntranceMsg struct {
	tree    *Tree
	Trigger *Item
}

// NewTree builds a closed (unless DefaultOpen) menu tree.
func NewTree(opts TreeOptions) *Tree {
	t := &Tree{
		id:         opts.ID,
		registry:   opts.Registry,
		keys:       opts.Keys,
		scheduler:  opts.Scheduler,
		dir:        opts.Dir,
		strategy:   opts.Strategy,
		hoverDelay: opts.HoverDelay,
		attach:     opts.Attach,
		onSelect:   opts.OnSelect,
	}
	if t.id == "" {
		t.id = NewID("menu")
	}
	if t.registry == nil {
		t.registry = submenu.New[*Item]()
	}
	if t.keys == nil {
		t.keys = keys.NewRegistry()
	}
	if t.scheduler == nil {
		t.ticks = presence.NewTickQueue()
		t.scheduler = t.ticks
	}
	if t.dir == "" {
		t.dir = LTR
	}
	if t.strategy == "" {
		t.strategy = OpenOnBoth
	}
	t.typeahead.timeout = opts.TypeAheadTimeout
	if t.typeahead.timeout <= 0 {
		t.typeahead.timeout = time.Second
	}
	t.open = controllable.New(controllable.Options[bool]{
		Value:    opts.Open,
		Default:  opts.DefaultOpen,
		OnChange: opts.OnOpenChange,
	})
	bag := DirectionScope.Provide(opts.Scope, t.id, t.dir)
	bag = TreeScope.Provide(bag, t.id, t)
	t.bag = MenuScope.Provide(bag, t.id, &MenuContext{IsOpen: t.IsOpen, SetOpen: t.SetOpen})
	return t
}

func (t *Tree) ID() string                         { return t.id }
func (t *Tree) Dir() Dir                           { return t.dir }
func (t *Tree) Keys() *keys.Registry               { return t.keys }
func (t *Tree) Registry() *submenu.Registry[*Item] { return t.registry }

// Scope is the bag root contents are created from.
func (t *Tree) Scope() *scope.Bag {
	return t.bag
}

// IsOpen reports the logical open state of the root menu.
func (t *Tree) IsOpen() bool {
	return t.open.Value()
}

// State is the trigger state, "opened" or "closed".
func (t *Tree) State() string {
	return openState(t.IsOpen())
}

// SetOpen requests a new root open state and reconciles the tree.
func (t *Tree) SetOpen(open bool) {
	events.Menu.Open(t.id, open)
	t.open.Set(open)
	t.Sync()
}

// Toggle flips the root open state, as a trigger press does.
func (t *Tree) Toggle() {
	events.UI.Trigger(!t.IsOpen())
	t.SetOpen(!t.IsOpen())
}

// Observe feeds the externally owned open state, nil for uncontrolled.
func (t *Tree) Observe(open *bool) {
	t.open.Observe(open)
	t.Sync()
}

// Contents lists every content in creation order.
func (t *Tree) Contents() []*Content {
	return append([]*Content(nil), t.contents...)
}

// Root returns the first top-level content.
func (t *Tree) Root() *Content {
	for _, c := range t.contents {
		if c.sub == nil {
			return c
		}
	}
	return nil
}

// Visible lists the contents a renderer should draw, parents first.
func (t *Tree) Visible() []*Content {
	out := make([]*Content, 0, len(t.contents))
	for _, c := range t.contents {
		if c.Present() {
			out = append(out, c)
		}
	}
	return out
}

// Active returns the content key presses are routed to.
func (t *Tree) Active() *Content {
	return t.active
}

// Focused returns the focused item, if any.
func (t *Tree) Focused() *Item {
	return t.focused
}

// Focus moves focus to item. Labels and items of unmounted contents cannot
// take focus.
func (t *Tree) Focus(item *Item) bool {
	if item == nil || item.role == RoleLabel || item.content.tree != t || !item.content.mounted {
		return false
	}
	t.focused = item
	t.active = item.content
	events.Menu.Focus(item.content.id, item.id, item.content.Index(item))
	return true
}

// FocusContent makes c active with no item focused.
func (t *Tree) FocusContent(c *Content) bool {
	if c == nil || c.tree != t || !c.mounted {
		return false
	}
	t.active = c
	t.focused = nil
	events.Menu.Focus(c.id, "", -1)
	return true
}

// Blur drops item focus but keeps the active content.
func (t *Tree) Blur() {
	if t.focused != nil {
		t.active = t.focused.content
	}
	t.focused = nil
}

// Flush runs the fill-mode resets queued on the tree's own scheduler.
func (t *Tree) Flush() int {
	if t.ticks == nil {
		return 0
	}
	return t.ticks.Flush()
}

// Sync reconciles every content's presence with the open states. It is
// called after each state change and is safe to call at any time.
func (t *Tree) Sync() {
	if t.syncing {
		t.resync = true
		return
	}
	t.syncing = true
	defer func() { t.syncing = false }()
	for pass := 0; pass < 8; pass++ {
		t.resync = false
		for _, c := range t.contents {
			want := c.wantPresent()
			if sn, ok := c.node.(StateNode); ok {
				sn.SetOpen(want)
			}
			c.presence.SetPresent(want)
		}
		t.refocus()
		if !t.resync {
			return
		}
	}
}

// HandleKey routes a key press to the active content. handled reports
// whether a binding consumed the key.
func (t *Tree) HandleKey(msg tea.KeyMsg) (handled bool, cmd tea.Cmd) {
	c := t.active
	if c == nil || !c.mounted {
		return false, nil
	}
	consumed, cmd := t.keys.Dispatch(c.keyScope, msg)
	if consumed {
		return true, cmd
	}
	if ok, taCmd := t.typeAhead(c, msg); ok {
		return true, tea.Batch(cmd, taCmd)
	}
	return false, cmd
}

// Update completes deferred work: submenu entrance, hover-open timers and
// type-ahead expiry. Messages for other trees are ignored.
func (t *Tree) Update(msg tea.Msg) tea.Cmd {
	switch m := msg.(type) {
	case EntranceMsg:
		if m.tree == t {
			t.completeEntrance(m.Trigger)
		}
	case hoverOpenMsg:
		if m.submenu.tree == t && m.submenu.hoverFired(m.seq) {
			t.Sync()
		}
	case typeAheadExpiredMsg:
		if m.tree == t {
			t.typeahead.expire(m.seq)
		}
	}
	return nil
}

// Select activates item the way a click or Enter does.
func (t *Tree) Select(item *Item) tea.Cmd {
	if item == nil || item.content.tree != t || item.disabled || item.role == RoleLabel {
		return nil
	}
	if item.submenu != nil {
		item.submenu.click()
		t.Sync()
		return nil
	}
	sel := &Selection{Item: item}
	if item.choice != nil {
		sel.PreventClose()
		item.choice.toggle(item.option)
	}
	var cmd tea.Cmd
	if item.onSelect != nil {
		cmd = item.onSelect(sel)
	}
	closing := sel.ShouldClose(item.closeOnSelect)
	events.Menu.Select(item.id, item.label, closing)
	if closing {
		if item.closeTree {
			t.SetOpen(false)
		} else {
			item.content.menu.SetOpen(false)
		}
	}
	t.Sync()
	if t.onSelect != nil {
		cmd = tea.Batch(cmd, t.onSelect(item, closing))
	}
	return cmd
}

// entrance opens the focused submenu trigger's submenu and schedules focus
// to move into it on the next frame.
func (t *Tree) entrance() tea.Cmd {
	trigger := t.focused
	if trigger == nil || trigger.submenu == nil || trigger.disabled {
		return nil
	}
	trigger.submenu.request(true)
	t.Sync()
	msg := EntranceMsg{tree: t, Trigger: trigger}
	return func() tea.Msg { return msg }
}

func (t *Tree) completeEntrance(trigger *Item) {
	if trigger == nil || trigger.submenu == nil {
		return
	}
	sub := trigger.submenu
	c := sub.content
	if c == nil || !c.mounted {
		events.Menu.Entrance(trigger.id, false)
		return
	}
	t.registry.Store(trigger, func() { sub.SetOpen(false) })
	events.Menu.Entrance(trigger.id, true)
	if first := c.Focusable(); len(first) > 0 {
		t.Focus(first[0])
		return
	}
	t.FocusContent(c)
}

func (t *Tree) adopt(c *Content) {
	t.contents = append(t.contents, c)
	t.Sync()
}

func (t *Tree) forget(c *Content) {
	if (t.focused != nil && t.focused.content == c) || t.active == c {
		t.active, t.focused = fallback(c)
	}
	if t.hoverContent == c {
		t.hoverContent = nil
	}
	if t.hoverItem != nil && t.hoverItem.content == c {
		t.hoverItem = nil
	}
}

// refocus moves focus out of contents whose menu has been asked to close,
// onto the trigger that opened them.
func (t *Tree) refocus() {
	if t.active == nil && t.focused == nil {
		if root := t.Root(); root != nil && live(root) {
			t.active = root
		}
		return
	}
	c := t.active
	if t.focused != nil {
		c = t.focused.content
	}
	if c == nil || live(c) {
		return
	}
	t.active, t.focused = fallback(c)
}

// fallback finds the nearest live ancestor of c and the trigger inside it
// that leads back towards c.
func fallback(c *Content) (*Content, *Item) {
	var trigger *Item
	for c != nil && !live(c) {
		if c.sub != nil {
			trigger = c.sub.trigger
		}
		c = c.Parent()
	}
	if c == nil {
		return nil, nil
	}
	return c, trigger
}

func live(c *Content) bool {
	return c.mounted && c.presence.Present()
}
