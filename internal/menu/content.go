package menu

import (
	"fmt"

	"github.com/atomicstack/popupkit/internal/logging/events"
	"github.com/atomicstack/popupkit/internal/presence"
	"github.com/atomicstack/popupkit/internal/scope"
	tea "github.com/charmbracelet/bubbletea"
)

// EscapeHandler intercepts Escape before the content closes.
type EscapeHandler func(msg tea.KeyMsg, d *Directive)

// OutsideHandler intercepts a pointer-down outside the content.
type OutsideHandler func(hit Hit, d *Directive)

// ContentOptions configures a Content.
type ContentOptions struct {
	ID string
	// Loop wraps keyboard navigation at the ends. Defaults to true.
	Loop *bool
	// NavigationUp and NavigationDown add key names to the arrow defaults.
	NavigationUp   []string
	NavigationDown []string
	OnEscape       EscapeHandler
	OnOutside      OutsideHandler
	// CloseOnOutside defaults to true.
	CloseOnOutside *bool
	// Dir overrides the ambient direction.
	Dir Dir
}

// Content is the list of rows a menu or submenu shows while open.
type Content struct {
	section

	id             string
	tree           *Tree
	menu           *MenuContext
	menuID         string
	sub            *Submenu
	dir            Dir
	loop           bool
	closeOnOutside bool
	navUp          []string
	navDown        []string
	onEscape       EscapeHandler
	onOutside      OutsideHandler

	items    []*Item
	presence *presence.Machine
	node     presence.Node
	mounted  bool
	keyScope string
}

// NewContent creates the content of the nearest menu in bag. The bag must
// descend from a Tree; a bag from Submenu.Scope makes a submenu content.
func NewContent(bag *scope.Bag, opts ContentOptions) (*Content, error) {
	tree, err := TreeScope.Use(bag, nil)
	if err != nil {
		return nil, fmt.Errorf("menu content: %w", err)
	}
	menu, err := MenuScope.Use(bag, nil)
	if err != nil {
		return nil, fmt.Errorf("menu content: %w", err)
	}
	dir := opts.Dir
	if dir == "" {
		if dir, err = UseDirection(bag); err != nil {
			return nil, fmt.Errorf("menu content: %w", err)
		}
	}
	var sub *Submenu
	if bag.Has(SubMenuScope.Name()) {
		scoped := SubMenuScope.MustUse(bag, nil)
		if scoped.ScopeID == menu.ScopeID {
			sub = scoped.Value.Submenu
		}
	}
	if sub != nil && sub.content != nil {
		return nil, fmt.Errorf("menu content: submenu %s already has content", sub.id)
	}
	id := opts.ID
	if id == "" {
		id = NewID("content")
	}
	c := &Content{
		id:             id,
		tree:           tree.Value,
		menu:           menu.Value,
		menuID:         menu.ScopeID,
		sub:            sub,
		dir:            dir,
		loop:           boolOr(opts.Loop, true),
		closeOnOutside: boolOr(opts.CloseOnOutside, true),
		navUp:          opts.NavigationUp,
		navDown:        opts.NavigationDown,
		onEscape:       opts.OnEscape,
		onOutside:      opts.OnOutside,
	}
	c.section = section{content: c, bag: bag}
	c.presence = presence.New(false,
		presence.WithName(id),
		presence.WithScheduler(c.tree.scheduler),
		presence.WithOnChange(func(_, _ presence.State) { c.reconcile() }),
	)
	if sub != nil {
		sub.content = c
	}
	c.tree.adopt(c)
	return c, nil
}

func (c *Content) ID() string          { return c.id }
func (c *Content) Tree() *Tree         { return c.tree }
func (c *Content) Dir() Dir            { return c.dir }
func (c *Content) Loop() bool          { return c.loop }
func (c *Content) Mounted() bool       { return c.mounted }
func (c *Content) KeyScope() string    { return c.keyScope }
func (c *Content) Submenu() *Submenu   { return c.sub }
func (c *Content) IsSubmenu() bool     { return c.sub != nil }
func (c *Content) Node() presence.Node { return c.node }

// Items returns the rows in display order.
func (c *Content) Items() []*Item {
	return append([]*Item(nil), c.items...)
}

// Present reports whether the content should be drawn, including while it
// plays its exit animation.
func (c *Content) Present() bool {
	return c.presence.IsPresent()
}

// Presence exposes the content's presence machine.
func (c *Content) Presence() *presence.Machine {
	return c.presence
}

// Open reports the logical open state of the content's menu.
func (c *Content) Open() bool {
	return c.menu.IsOpen()
}

// Parent returns the content holding this content's submenu trigger.
func (c *Content) Parent() *Content {
	if c.sub == nil {
		return nil
	}
	return c.sub.parent
}

// Depth is 0 for the root content and grows by one per submenu level.
func (c *Content) Depth() int {
	depth := 0
	for p := c.Parent(); p != nil; p = p.Parent() {
		depth++
	}
	return depth
}

// Focusable returns the rows keyboard navigation visits, in order.
func (c *Content) Focusable() []*Item {
	out := make([]*Item, 0, len(c.items))
	for _, item := range c.items {
		if item.Focusable() {
			out = append(out, item)
		}
	}
	return out
}

// Index returns the position of item among the focusable rows, or -1.
func (c *Content) Index(item *Item) int {
	for i, it := range c.Focusable() {
		if it == item {
			return i
		}
	}
	return -1
}

// Contains reports whether hit lands on this content, one of its open
// descendant submenu contents, or this content's own submenu trigger.
func (c *Content) Contains(hit Hit) bool {
	if c.sub != nil && hit.Item != nil && hit.Item == c.sub.trigger {
		return true
	}
	if hit.Trigger && c.sub == nil {
		return true
	}
	for cur := hit.Content; cur != nil; cur = cur.Parent() {
		if cur == c {
			return true
		}
	}
	return false
}

func (c *Content) wantPresent() bool {
	if c.sub == nil {
		return c.tree.IsOpen()
	}
	return c.sub.IsOpen() && c.sub.parent.presence.Present()
}

func (c *Content) append(item *Item) *Item {
	c.items = append(c.items, item)
	return item
}

func (c *Content) reconcile() {
	present := c.presence.IsPresent()
	switch {
	case present && !c.mounted:
		c.mount()
	case !present && c.mounted:
		c.unmount()
	}
}

func (c *Content) mount() {
	c.mounted = true
	c.keyScope = NewID("kbd")
	c.bind()
	events.Menu.Mount(c.id, c.sub != nil)
	if c.tree.attach != nil {
		if node := c.tree.attach(c); node != nil {
			c.node = node
			if sn, ok := node.(StateNode); ok {
				sn.SetOpen(c.presence.Present())
			}
			c.presence.Attach(node)
		}
	}
	if c.sub == nil && c.tree.active == nil {
		c.tree.active = c
	}
}

func (c *Content) unmount() {
	c.mounted = false
	c.tree.keys.DropScope(c.keyScope)
	if c.sub == nil {
		c.tree.registry.Clear()
	} else {
		c.tree.registry.Discard(c.sub.trigger)
	}
	for _, item := range c.items {
		if item.submenu != nil {
			item.submenu.reset()
		}
	}
	c.presence.Close()
	c.node = nil
	c.tree.forget(c)
	events.Menu.Unmount(c.id, c.sub != nil)
	c.tree.Sync()
}

// StateNode is implemented by nodes that restyle when their menu opens or
// closes, such as a node that starts its exit animation on close.
type StateNode interface {
	SetOpen(open bool)
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
