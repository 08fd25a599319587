package scope

import "sort"

// Entry is the value one provider contributed for a scope name.
type Entry struct {
	ID    string
	Value any
}

// Bag is an immutable scope mapping. The nil *Bag is the empty mapping.
type Bag struct {
	parent *Bag
	name   string
	entry  Entry
	depth  int
}

// With returns a bag where name resolves to entry. The receiver is unchanged.
func (b *Bag) With(name string, entry Entry) *Bag {
	depth := 1
	if b != nil {
		depth = b.depth + 1
	}
	return &Bag{parent: b, name: name, entry: entry, depth: depth}
}

// Lookup resolves name against the nearest provider.
func (b *Bag) Lookup(name string) (Entry, bool) {
	for cur := b; cur != nil; cur = cur.parent {
		if cur.name == name {
			return cur.entry, true
		}
	}
	return Entry{}, false
}

// Has reports whether any provider in the chain supplied name.
func (b *Bag) Has(name string) bool {
	_, ok := b.Lookup(name)
	return ok
}

// Names lists every resolvable scope name in sorted order.
func (b *Bag) Names() []string {
	seen := make(map[string]struct{})
	for cur := b; cur != nil; cur = cur.parent {
		seen[cur.name] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Entries flattens the bag into the entries that currently win.
func (b *Bag) Entries() map[string]Entry {
	out := make(map[string]Entry)
	for cur := b; cur != nil; cur = cur.parent {
		if _, ok := out[cur.name]; ok {
			continue
		}
		out[cur.name] = cur.entry
	}
	return out
}

// Merge layers the winning entries of other on top of b.
func (b *Bag) Merge(other *Bag) *Bag {
	if other == nil {
		return b
	}
	if b == nil {
		return other
	}
	out := b
	for _, name := range other.Names() {
		entry, _ := other.Lookup(name)
		out = out.With(name, entry)
	}
	return out
}

// Len returns the number of distinct names the bag resolves.
func (b *Bag) Len() int {
	return len(b.Names())
}
