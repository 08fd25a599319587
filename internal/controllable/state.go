// Package controllable unifies externally owned values and internally owned
// values behind one read/request interface.
package controllable

import "reflect"

// Options configures a State.
type Options[T any] struct {
	// Value makes the state controlled when non-nil. The pointed-to value is
	// copied; later changes are picked up by Observe.
	Value *T
	// Default seeds internal storage.
	Default T
	// OnChange receives every requested value, controlled or not.
	OnChange func(T)
	// Equal decides whether an observed external value differs from the
	// mirror. reflect.DeepEqual is used when nil.
	Equal func(a, b T) bool
}

// State holds either a controlled snapshot or internal storage.
type State[T any] struct {
	internal   T
	fallback   T
	external   T
	controlled bool
	onChange   func(T)
	equal      func(a, b T) bool
}

// New builds a State from opts.
func New[T any](opts Options[T]) *State[T] {
	s := &State[T]{
		internal: opts.Default,
		fallback: opts.Default,
		onChange: opts.OnChange,
		equal:    opts.Equal,
	}
	if s.equal == nil {
		s.equal = func(a, b T) bool { return reflect.DeepEqual(a, b) }
	}
	s.Observe(opts.Value)
	return s
}

// Observe records the external value for the current pass. A nil pointer
// hands ownership back to internal storage. While controlled, the internal
// mirror follows the external value so a later switch to uncontrolled
// resumes from the last value the owner supplied.
func (s *State[T]) Observe(external *T) {
	if external == nil {
		s.controlled = false
		return
	}
	s.controlled = true
	s.external = *external
	if !s.equal(s.internal, s.external) {
		s.internal = s.external
	}
}

// Controlled reports whether an external owner supplies the value.
func (s *State[T]) Controlled() bool {
	return s.controlled
}

// Value returns the current value.
func (s *State[T]) Value() T {
	if s.controlled {
		return s.external
	}
	return s.internal
}

// Set requests next as the new value.
func (s *State[T]) Set(next T) {
	if !s.controlled {
		s.internal = next
	}
	if s.onChange != nil {
		s.onChange(next)
	}
}

// Update requests the value computed from the current one.
func (s *State[T]) Update(fn func(prev T) T) {
	if fn == nil {
		return
	}
	s.Set(fn(s.Value()))
}

// SetOnChange replaces the change callback.
func (s *State[T]) SetOnChange(fn func(T)) {
	s.onChange = fn
}

// Reset returns internal storage to the default without notifying. It models
// the owner being torn down and rebuilt.
func (s *State[T]) Reset() {
	s.internal = s.fallback
}
