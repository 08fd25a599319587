package scope

// Provider memoises the bag produced for one provider position. Render
// returns the previous bag while the parent, id and value stay identical, so
// consumers comparing bags by pointer see no change.
type Provider[T any] struct {
	family *Family[T]
	parent *Bag
	id     string
	value  T
	bag    *Bag
}

// NewProvider binds a provider position to a family.
func NewProvider[T any](family *Family[T]) *Provider[T] {
	return &Provider[T]{family: family}
}

// Render provides value under id on top of parent.
func (p *Provider[T]) Render(parent *Bag, id string, value T) *Bag {
	if p.bag != nil && p.parent == parent && p.id == id && identical(p.value, value) {
		return p.bag
	}
	p.parent = parent
	p.id = id
	p.value = value
	p.bag = p.family.Provide(parent, id, value)
	return p.bag
}

// identical compares by ==, treating uncomparable values as changed.
func identical(a, b any) (same bool) {
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return a == b
}
