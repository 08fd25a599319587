package scope

import (
	"fmt"

	"github.com/atomicstack/popupkit/internal/logging/events"
)

// Scoped is a resolved family value together with the id of the provider
// that supplied it.
type Scoped[T any] struct {
	ScopeID string
	Value   T
}

// Composer copies family entries from one bag onto a base bag.
type Composer func(from, base *Bag) *Bag

// Family is a named scope slot carrying values of type T.
type Family[T any] struct {
	name string
}

// NewFamily declares a scope family. Names must be unique across the
// families sharing a bag.
func NewFamily[T any](name string) *Family[T] {
	return &Family[T]{name: name}
}

// Name returns the family name.
func (f *Family[T]) Name() string {
	return f.name
}

// Provide returns a bag in which this family resolves to value.
func (f *Family[T]) Provide(parent *Bag, id string, value T) *Bag {
	return parent.With(f.name, Entry{ID: id, Value: value})
}

// Use resolves the family from explicit first, then from ancestors.
func (f *Family[T]) Use(ancestors, explicit *Bag) (Scoped[T], error) {
	entry, ok := explicit.Lookup(f.name)
	if !ok {
		entry, ok = ancestors.Lookup(f.name)
	}
	if !ok {
		events.Scope.Missing(f.name)
		return Scoped[T]{}, &MissingProviderError{Family: f.name}
	}
	value, ok := entry.Value.(T)
	if !ok && entry.Value != nil {
		return Scoped[T]{}, fmt.Errorf("scope %s: provider %s holds %T", f.name, entry.ID, entry.Value)
	}
	return Scoped[T]{ScopeID: entry.ID, Value: value}, nil
}

// MustUse is Use for callers that treat a missing provider as fatal.
func (f *Family[T]) MustUse(ancestors, explicit *Bag) Scoped[T] {
	scoped, err := f.Use(ancestors, explicit)
	if err != nil {
		panic(err)
	}
	return scoped
}

// Composer returns a Composer that carries this family's entry from the
// source bag, followed by whatever each child composer contributes.
func (f *Family[T]) Composer(children ...Composer) Composer {
	return func(from, base *Bag) *Bag {
		out := base
		if entry, ok := from.Lookup(f.name); ok {
			out = out.With(f.name, entry)
		}
		for _, child := range children {
			if child == nil {
				continue
			}
			out = out.Merge(child(from, nil))
		}
		return out
	}
}

// Compose joins several composers into one.
func Compose(composers ...Composer) Composer {
	return func(from, base *Bag) *Bag {
		out := base
		for _, c := range composers {
			if c == nil {
				continue
			}
			out = out.Merge(c(from, nil))
		}
		return out
	}
}
