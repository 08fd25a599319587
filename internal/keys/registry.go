// Package keys provides scoped key bindings: handlers are registered under a
// scope id, dispatched only for that scope, and torn down with it.
package keys

import (
	"github.com/atomicstack/popupkit/internal/logging/events"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Handler reacts to a matched key press.
type Handler func(tea.KeyMsg) tea.Cmd

// Options qualifies a registration.
type Options struct {
	Scope string
	// PreventDefault marks the key as consumed so callers stop routing it.
	PreventDefault bool
}

type registration struct {
	binding        key.Binding
	handler        Handler
	preventDefault bool
}

// Registry holds bindings grouped by scope, in scope creation order.
type Registry struct {
	order  []string
	scopes map[string][]registration
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{scopes: make(map[string][]registration)}
}

// Register adds binding under opts.Scope, creating the scope on first use.
func (r *Registry) Register(binding key.Binding, handler Handler, opts Options) {
	if handler == nil {
		return
	}
	if _, ok := r.scopes[opts.Scope]; !ok {
		r.order = append(r.order, opts.Scope)
	}
	r.scopes[opts.Scope] = append(r.scopes[opts.Scope], registration{
		binding:        binding,
		handler:        handler,
		preventDefault: opts.PreventDefault,
	})
	events.Keys.Register(opts.Scope, binding.Keys())
}

// Dispatch runs the first binding in scope matching msg. consumed is true
// when a matching binding asked for its key to be swallowed.
func (r *Registry) Dispatch(scope string, msg tea.KeyMsg) (consumed bool, cmd tea.Cmd) {
	for _, reg := range r.scopes[scope] {
		if !reg.binding.Enabled() || !key.Matches(msg, reg.binding) {
			continue
		}
		events.Keys.Fire(scope, msg.String())
		return reg.preventDefault, reg.handler(msg)
	}
	return false, nil
}

// DropScope removes scope and all its bindings, returning how many were
// removed.
func (r *Registry) DropScope(scope string) int {
	regs, ok := r.scopes[scope]
	if !ok {
		return 0
	}
	delete(r.scopes, scope)
	for i, s := range r.order {
		if s == scope {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	events.Keys.Drop(scope, len(regs))
	return len(regs)
}

// Active returns the most recently created scope.
func (r *Registry) Active() string {
	if len(r.order) == 0 {
		return ""
	}
	return r.order[len(r.order)-1]
}

// Has reports whether scope holds bindings.
func (r *Registry) Has(scope string) bool {
	_, ok := r.scopes[scope]
	return ok
}

// Scopes lists scopes in creation order.
func (r *Registry) Scopes() []string {
	return append([]string(nil), r.order...)
}

// Bindings returns the bindings registered under scope that carry help text.
func (r *Registry) Bindings(scope string) []key.Binding {
	regs := r.scopes[scope]
	out := make([]key.Binding, 0, len(regs))
	for _, reg := range regs {
		if reg.binding.Help().Key == "" {
			continue
		}
		out = append(out, reg.binding)
	}
	return out
}

// HelpMap adapts one scope to help.KeyMap.
type HelpMap struct {
	Registry *Registry
	Scope    string
	Extra    []key.Binding
}

// ShortHelp implements help.KeyMap.
func (h HelpMap) ShortHelp() []key.Binding {
	var out []key.Binding
	if h.Registry != nil {
		out = h.Registry.Bindings(h.Scope)
	}
	return append(out, h.Extra...)
}

// FullHelp implements help.KeyMap.
func (h HelpMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}
