package menu

import (
	"fmt"
	"time"

	"github.com/atomicstack/popupkit/internal/controllable"
	"github.com/atomicstack/popupkit/internal/logging/events"
	"github.com/atomicstack/popupkit/internal/scope"
	tea "github.com/charmbracelet/bubbletea"
)

// Strategy selects which pointer gestures open a submenu.
type Strategy string

const (
	OpenOnHover Strategy = "hover"
	OpenOnClick Strategy = "click"
	OpenOnBoth  Strategy = "both"
)

// ParseStrategy validates a strategy name. Empty selects OpenOnBoth.
func ParseStrategy(value string) (Strategy, error) {
	switch Strategy(value) {
	case "", OpenOnBoth:
		return OpenOnBoth, nil
	case OpenOnHover:
		return OpenOnHover, nil
	case OpenOnClick:
		return OpenOnClick, nil
	default:
		return "", fmt.Errorf("invalid open strategy %q", value)
	}
}

func (s Strategy) hover() bool { return s == OpenOnHover || s == OpenOnBoth }
func (s Strategy) click() bool { return s == OpenOnClick || s == OpenOnBoth }

// SubmenuOptions configures a submenu and its trigger row.
type SubmenuOptions struct {
	ID           string
	Label        string
	Disabled     bool
	Open         *bool
	DefaultOpen  bool
	OnOpenChange func(bool)
	// Strategy defaults to the tree's strategy.
	Strategy Strategy
	// Delay before a hovered trigger opens. Zero uses the tree default and a
	// negative delay opens immediately.
	Delay time.Duration
}

// Submenu is a nested menu opened from a trigger row.
type Submenu struct {
	id       string
	tree     *Tree
	parent   *Content
	trigger  *Item
	content  *Content
	open     *controllable.State[bool]
	strategy Strategy
	delay    time.Duration
	bag      *scope.Bag
	hoverSeq int
}

type hoverOpenMsg struct {
	submenu *Submenu
	seq     int
}

func newSubmenu(s section, opts SubmenuOptions) (*Submenu, error) {
	tree := s.content.tree
	id := opts.ID
	if id == "" {
		id = NewID("sub")
	}
	strategy := opts.Strategy
	if strategy == "" {
		strategy = tree.strategy
	}
	if _, err := ParseStrategy(string(strategy)); err != nil {
		return nil, fmt.Errorf("submenu %s: %w", id, err)
	}
	delay := opts.Delay
	switch {
	case delay == 0:
		delay = tree.hoverDelay
	case delay < 0:
		delay = 0
	}
	sub := &Submenu{
		id:       id,
		tree:     tree,
		parent:   s.content,
		strategy: strategy,
		delay:    delay,
	}
	sub.open = controllable.New(controllable.Options[bool]{
		Value:    opts.Open,
		Default:  opts.DefaultOpen,
		OnChange: opts.OnOpenChange,
	})
	sub.trigger = newItem(s.content, s.bag, RoleItem, ItemOptions{
		ID:       id + "-trigger",
		Label:    opts.Label,
		Disabled: opts.Disabled,
	})
	sub.trigger.submenu = sub
	s.content.append(sub.trigger)

	bag := MenuScope.Provide(s.bag, id, &MenuContext{IsOpen: sub.IsOpen, SetOpen: sub.SetOpen})
	sub.bag = SubMenuScope.Provide(bag, id, &SubMenuContext{Submenu: sub})
	return sub, nil
}

func (s *Submenu) ID() string           { return s.id }
func (s *Submenu) Trigger() *Item       { return s.trigger }
func (s *Submenu) Content() *Content    { return s.content }
func (s *Submenu) Parent() *Content     { return s.parent }
func (s *Submenu) Strategy() Strategy   { return s.strategy }
func (s *Submenu) Delay() time.Duration { return s.delay }

// Scope is the bag the submenu's content is created from.
func (s *Submenu) Scope() *scope.Bag {
	return s.bag
}

// IsOpen reports the logical open state.
func (s *Submenu) IsOpen() bool {
	return s.open.Value()
}

// SetOpen requests a new open state and reconciles the tree.
func (s *Submenu) SetOpen(open bool) {
	s.request(open)
	s.tree.Sync()
}

// Observe feeds the externally owned open state, nil for uncontrolled.
func (s *Submenu) Observe(open *bool) {
	s.open.Observe(open)
	s.tree.Sync()
}

func (s *Submenu) request(open bool) {
	if !open {
		s.hoverSeq++
	}
	events.Menu.Open(s.id, open)
	s.open.Set(open)
}

// click applies a trigger activation.
func (s *Submenu) click() {
	s.hoverSeq++
	if s.strategy.click() {
		s.request(!s.IsOpen())
		return
	}
	s.request(true)
}

// hoverEnter starts the open timer for hover strategies.
func (s *Submenu) hoverEnter() tea.Cmd {
	if !s.strategy.hover() || s.trigger.disabled {
		return nil
	}
	s.hoverSeq++
	if s.delay <= 0 {
		s.request(true)
		return nil
	}
	msg := hoverOpenMsg{submenu: s, seq: s.hoverSeq}
	return tea.Tick(s.delay, func(time.Time) tea.Msg { return msg })
}

func (s *Submenu) hoverLeave() {
	if !s.strategy.hover() {
		return
	}
	s.request(false)
}

func (s *Submenu) hoverFired(seq int) bool {
	if seq != s.hoverSeq {
		return false
	}
	s.request(true)
	return true
}

// reset returns uncontrolled state to the default and cancels timers; the
// submenu's parent content has gone away.
func (s *Submenu) reset() {
	s.hoverSeq++
	s.open.Reset()
}
