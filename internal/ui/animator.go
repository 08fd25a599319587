package ui

import (
	"github.com/atomicstack/popupkit/internal/presence"
)

const (
	animationExpand   = "expand"
	animationCollapse = "collapse"
)

// animator is the visual node behind one mounted menu content. Opening plays
// an expand animation and closing a collapse animation, each a fixed number
// of frames long; zero frames disables animation entirely.
type animator struct {
	frames   int
	open     bool
	name     string
	progress int
	running  bool
	started  bool
	fill     string

	nextSub int
	subs    map[int]func(presence.AnimationEvent)
}

func newAnimator(frames int) *animator {
	if frames < 0 {
		frames = 0
	}
	return &animator{
		frames: frames,
		name:   presence.AnimationNone,
		subs:   make(map[int]func(presence.AnimationEvent)),
	}
}

// ComputedStyle implements presence.Node.
func (a *animator) ComputedStyle() presence.Style {
	return presence.Style{AnimationName: a.name}
}

// Subscribe implements presence.Node.
func (a *animator) Subscribe(fn func(presence.AnimationEvent)) func() {
	if fn == nil {
		return func() {}
	}
	a.nextSub++
	id := a.nextSub
	a.subs[id] = fn
	return func() { delete(a.subs, id) }
}

// SetFillMode implements presence.Node.
func (a *animator) SetFillMode(mode string) {
	a.fill = mode
}

// SetOpen switches between the expand and collapse animations. Repeating
// the current state is a no-op.
func (a *animator) SetOpen(open bool) {
	if a.name != presence.AnimationNone && open == a.open {
		return
	}
	if a.name == presence.AnimationNone && a.frames == 0 {
		a.open = open
		return
	}
	previous := a.name
	wasRunning := a.running
	a.open = open
	a.name = animationCollapse
	if open {
		a.name = animationExpand
	}
	a.running = true
	a.started = false
	if wasRunning && previous != presence.AnimationNone {
		a.emit(presence.AnimationCancel, previous)
	}
}

// Step advances the running animation by one frame and reports whether it
// is still running afterwards.
func (a *animator) Step() bool {
	if !a.running {
		return false
	}
	if !a.started {
		a.started = true
		a.emit(presence.AnimationStart, a.name)
	}
	target := 0
	if a.open {
		target = a.frames
	}
	switch {
	case a.progress < target:
		a.progress++
	case a.progress > target:
		a.progress--
	}
	if a.progress == target {
		a.running = false
		a.emit(presence.AnimationEnded, a.name)
	}
	return a.running
}

// Running reports whether an animation is in flight.
func (a *animator) Running() bool {
	return a.running
}

// visibleRows is how many of total rows the current frame shows.
func (a *animator) visibleRows(total int) int {
	if a.frames == 0 {
		if a.open {
			return total
		}
		return 0
	}
	if a.progress >= a.frames {
		return total
	}
	rows := (total*a.progress + a.frames - 1) / a.frames
	if rows > total {
		return total
	}
	return rows
}

func (a *animator) emit(kind presence.AnimationEventType, name string) {
	subs := make([]func(presence.AnimationEvent), 0, len(a.subs))
	for id := 1; id <= a.nextSub; id++ {
		if fn, ok := a.subs[id]; ok {
			subs = append(subs, fn)
		}
	}
	evt := presence.AnimationEvent{Type: kind, Name: name, Target: a}
	for _, fn := range subs {
		fn(evt)
	}
}
