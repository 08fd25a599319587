// Package presence sequences mount, exit animation and unmount for a visual
// subtree that must outlive its logical removal while it animates out.
package presence

import (
	"strings"

	"github.com/atomicstack/popupkit/internal/logging/events"
)

// State is a presence phase.
type State int

const (
	Mounted State = iota
	UnmountSuspended
	Unmounted
)

func (s State) String() string {
	switch s {
	case Mounted:
		return "mounted"
	case UnmountSuspended:
		return "unmountSuspended"
	case Unmounted:
		return "unmounted"
	default:
		return "unknown"
	}
}

// Event drives presence transitions.
type Event int

const (
	Mount Event = iota
	Unmount
	AnimationOut
	AnimationEnd
)

func (e Event) String() string {
	switch e {
	case Mount:
		return "MOUNT"
	case Unmount:
		return "UNMOUNT"
	case AnimationOut:
		return "ANIMATION_OUT"
	case AnimationEnd:
		return "ANIMATION_END"
	default:
		return "UNKNOWN"
	}
}

func transitions() Table[State, Event] {
	return Table[State, Event]{
		Mounted:          {Unmount: Unmounted, AnimationOut: UnmountSuspended},
		UnmountSuspended: {Mount: Mounted, AnimationEnd: Unmounted},
		Unmounted:        {Mount: Mounted},
	}
}

// Option configures a Machine.
type Option func(*Machine)

// WithScheduler sets where the post-exit fill-mode reset is deferred to.
func WithScheduler(s Scheduler) Option {
	return func(m *Machine) {
		if s != nil {
			m.scheduler = s
		}
	}
}

// WithName labels the machine in trace output.
func WithName(name string) Option {
	return func(m *Machine) {
		m.name = name
	}
}

// WithOnChange registers a callback for every accepted transition.
func WithOnChange(fn func(from, to State)) Option {
	return func(m *Machine) {
		m.onChange = fn
	}
}

// Machine tracks presence for one visual subtree.
type Machine struct {
	name      string
	flow      *Flow[State, Event]
	present   bool
	prevName  string
	node      Node
	unsub     func()
	cancelFx  func()
	scheduler Scheduler
	ticks     *TickQueue
	onChange  func(from, to State)
}

// New builds a machine. The initial state is Mounted when present is true.
func New(present bool, opts ...Option) *Machine {
	initial := Unmounted
	if present {
		initial = Mounted
	}
	m := &Machine{
		flow:     NewFlow(initial, transitions()),
		present:  present,
		prevName: AnimationNone,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	if m.scheduler == nil {
		m.ticks = NewTickQueue()
		m.scheduler = m.ticks
	}
	m.flow.OnTransition(func(from State, event Event, to State) {
		events.Presence.Transition(m.name, from.String(), event.String(), to.String())
		if m.onChange != nil {
			m.onChange(from, to)
		}
	})
	return m
}

// State returns the current phase.
func (m *Machine) State() State {
	return m.flow.State()
}

// IsPresent reports whether the subtree should stay instantiated.
func (m *Machine) IsPresent() bool {
	s := m.flow.State()
	return s == Mounted || s == UnmountSuspended
}

// Present returns the last requested presence.
func (m *Machine) Present() bool {
	return m.present
}

// Node returns the tracked node, if any.
func (m *Machine) Node() Node {
	return m.node
}

// SetPresent requests presence. Only a change of the requested value emits
// an event. Leaving waits only for a distinct exit animation in flight.
func (m *Machine) SetPresent(present bool) {
	if present == m.present {
		return
	}
	m.present = present
	if present {
		m.send(Mount)
		return
	}
	style := m.style()
	current := animationName(style)
	switch {
	case current == AnimationNone || style.DisplayNone:
		m.send(Unmount)
	case current != m.prevName:
		m.send(AnimationOut)
	default:
		m.send(Unmount)
	}
}

// Attach tracks node, replacing any previous node. Attaching nil releases
// the current node and completes a pending exit immediately, since there is
// nothing left to wait for.
func (m *Machine) Attach(node Node) {
	if node != nil && node == m.node {
		return
	}
	m.release()
	if node == nil {
		events.Presence.Attach(m.name, false)
		m.send(AnimationEnd)
		return
	}
	m.node = node
	events.Presence.Attach(m.name, true)
	m.unsub = node.Subscribe(func(evt AnimationEvent) {
		m.handleAnimation(node, evt)
	})
}

// Close releases the tracked node without emitting events.
func (m *Machine) Close() {
	m.release()
}

// Tick flushes work deferred on the built-in scheduler. Machines configured
// with an external scheduler rely on its owner instead.
func (m *Machine) Tick() {
	if m.ticks != nil {
		m.ticks.Flush()
	}
}

func (m *Machine) release() {
	if m.cancelFx != nil {
		m.cancelFx()
		m.cancelFx = nil
	}
	if m.unsub != nil {
		m.unsub()
		m.unsub = nil
	}
	m.node = nil
}

func (m *Machine) handleAnimation(node Node, evt AnimationEvent) {
	if node != m.node || evt.Target != node {
		return
	}
	events.Presence.Animation(m.name, evt.Type.String(), evt.Name)
	switch evt.Type {
	case AnimationStart:
		m.prevName = animationName(node.ComputedStyle())
	case AnimationEnded, AnimationCancel:
		current := animationName(node.ComputedStyle())
		if !strings.Contains(current, evt.Name) {
			return
		}
		m.send(AnimationEnd)
		if !m.present {
			node.SetFillMode(FillForwards)
			if m.cancelFx != nil {
				m.cancelFx()
			}
			m.cancelFx = m.scheduler.Defer(func() {
				m.cancelFx = nil
				node.SetFillMode("")
			})
		}
	}
}

func (m *Machine) style() Style {
	if m.node == nil {
		return Style{AnimationName: AnimationNone}
	}
	return m.node.ComputedStyle()
}

func (m *Machine) send(event Event) {
	m.flow.Send(event)
}

func animationName(style Style) string {
	if strings.TrimSpace(style.AnimationName) == "" {
		return AnimationNone
	}
	return style.AnimationName
}
