// Package submenu keeps the stack of keyboard-opened nested popups so they
// can be closed in reverse opening order and focus handed back to the anchor
// that opened each one.
package submenu

import (
	"fmt"

	"github.com/atomicstack/popupkit/internal/logging/events"
)

type entry[A comparable] struct {
	anchor  A
	closeFn func()
}

// Registry is a LIFO stack of open nested popups. Each independent menu tree
// owns its own registry.
type Registry[A comparable] struct {
	stack []entry[A]
}

// New returns an empty registry.
func New[A comparable]() *Registry[A] {
	return &Registry[A]{}
}

// Store records an opened popup and the anchor that opened it.
func (r *Registry[A]) Store(anchor A, closeFn func()) {
	r.stack = append(r.stack, entry[A]{anchor: anchor, closeFn: closeFn})
	events.Submenu.Store(label(anchor), len(r.stack))
}

// Pop removes the most recent entry and returns its anchor. Its close
// function is not called.
func (r *Registry[A]) Pop() (A, bool) {
	var zero A
	if len(r.stack) == 0 {
		return zero, false
	}
	last := r.stack[len(r.stack)-1]
	r.stack[len(r.stack)-1] = entry[A]{}
	r.stack = r.stack[:len(r.stack)-1]
	events.Submenu.Pop(label(last.anchor), len(r.stack))
	return last.anchor, true
}

// PopAndClose removes the most recent entry and closes its popup.
func (r *Registry[A]) PopAndClose() (A, bool) {
	var zero A
	if len(r.stack) == 0 {
		return zero, false
	}
	closeFn := r.stack[len(r.stack)-1].closeFn
	anchor, _ := r.Pop()
	if closeFn != nil {
		closeFn()
	}
	return anchor, true
}

// Peek returns the most recent anchor without removing it.
func (r *Registry[A]) Peek() (A, bool) {
	var zero A
	if len(r.stack) == 0 {
		return zero, false
	}
	return r.stack[len(r.stack)-1].anchor, true
}

// CloseLast closes the most recent popup but leaves its entry in place; the
// owner discards it once the popup is gone.
func (r *Registry[A]) CloseLast() {
	if len(r.stack) == 0 {
		return
	}
	last := r.stack[len(r.stack)-1]
	events.Submenu.CloseLast(label(last.anchor))
	if last.closeFn != nil {
		last.closeFn()
	}
}

// Discard removes the entry for anchor and every entry stored after it.
func (r *Registry[A]) Discard(anchor A) bool {
	for i := len(r.stack) - 1; i >= 0; i-- {
		if r.stack[i].anchor != anchor {
			continue
		}
		removed := len(r.stack) - i
		for j := i; j < len(r.stack); j++ {
			r.stack[j] = entry[A]{}
		}
		r.stack = r.stack[:i]
		events.Submenu.Discard(label(anchor), removed)
		return true
	}
	return false
}

// Clear drops every entry without closing anything.
func (r *Registry[A]) Clear() {
	if len(r.stack) == 0 {
		return
	}
	events.Submenu.Clear(len(r.stack))
	r.stack = nil
}

// Len returns the stack depth.
func (r *Registry[A]) Len() int {
	return len(r.stack)
}

func label(anchor any) string {
	if s, ok := anchor.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%v", anchor)
}
