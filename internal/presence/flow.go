package presence

// Table maps a state to the events it accepts and their target states.
type Table[S comparable, E comparable] map[S]map[E]S

// Flow is a transition-table state machine. Events a state does not list are
// ignored.
type Flow[S comparable, E comparable] struct {
	state        S
	table        Table[S, E]
	onTransition func(from S, event E, to S)
}

// NewFlow starts a flow in initial.
func NewFlow[S comparable, E comparable](initial S, table Table[S, E]) *Flow[S, E] {
	return &Flow[S, E]{state: initial, table: table}
}

// OnTransition registers a callback invoked after each accepted event.
func (f *Flow[S, E]) OnTransition(fn func(from S, event E, to S)) {
	f.onTransition = fn
}

// State returns the current state.
func (f *Flow[S, E]) State() S {
	return f.state
}

// Send applies event and returns the resulting state.
func (f *Flow[S, E]) Send(event E) S {
	next, ok := f.table[f.state][event]
	if !ok {
		return f.state
	}
	from := f.state
	f.state = next
	if f.onTransition != nil {
		f.onTransition(from, event, next)
	}
	return f.state
}
