package submenu

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPopReturnsMostRecentWithoutClosingOthers(t *testing.T) {
	r := New[string]()
	var closed []string
	r.Store("A", func() { closed = append(closed, "A") })
	r.Store("B", func() { closed = append(closed, "B") })

	got, ok := r.Pop()
	if !ok || got != "B" {
		t.Fatalf("expected B, got %q (%v)", got, ok)
	}
	if len(closed) != 0 {
		t.Fatalf("pop must not close anything, closed %v", closed)
	}
	if r.Len() != 1 {
		t.Fatalf("expected depth 1, got %d", r.Len())
	}
}

func TestCloseLastKeepsEntry(t *testing.T) {
	r := New[string]()
	calls := 0
	r.Store("A", func() { calls++ })
	r.CloseLast()
	if calls != 1 {
		t.Fatalf("expected close to run once, got %d", calls)
	}
	if got, ok := r.Peek(); !ok || got != "A" {
		t.Fatalf("expected A to remain on the stack, got %q", got)
	}
}

func TestEmptyRegistryIsInert(t *testing.T) {
	r := New[*int]()
	if v, ok := r.Pop(); ok || v != nil {
		t.Fatalf("expected empty pop")
	}
	if _, ok := r.Peek(); ok {
		t.Fatalf("expected empty peek")
	}
	if _, ok := r.PopAndClose(); ok {
		t.Fatalf("expected empty pop-and-close")
	}
	r.CloseLast()
	r.Clear()
	if r.Discard(nil) {
		t.Fatalf("nothing to discard")
	}
}

func TestPopAndCloseIsAtomic(t *testing.T) {
	r := New[string]()
	var depthAtClose int
	r.Store("A", nil)
	r.Store("B", func() { depthAtClose = r.Len() })
	got, ok := r.PopAndClose()
	if !ok || got != "B" {
		t.Fatalf("expected B, got %q", got)
	}
	if depthAtClose != 1 {
		t.Fatalf("entry must be gone before close runs, depth was %d", depthAtClose)
	}
	if got, ok := r.PopAndClose(); !ok || got != "A" {
		t.Fatalf("expected nil close to be tolerated, got %q", got)
	}
}

func TestDiscardDropsEntryAndDescendants(t *testing.T) {
	r := New[string]()
	for _, a := range []string{"A", "B", "C"} {
		r.Store(a, nil)
	}
	if !r.Discard("B") {
		t.Fatalf("expected B to be discarded")
	}
	if top, ok := r.Peek(); !ok || top != "A" || r.Len() != 1 {
		t.Fatalf("expected only A to remain, got len %d", r.Len())
	}
	if r.Discard("Z") {
		t.Fatalf("unknown anchor must not be discarded")
	}
}

func TestClearEmptiesStack(t *testing.T) {
	r := New[string]()
	r.Store("A", nil)
	r.Store("B", nil)
	r.Clear()
	if r.Len() != 0 {
		t.Fatalf("expected empty stack")
	}
}

func TestLIFOOrdering(t *testing.T) {
	r := New[int]()
	for i := 1; i <= 4; i++ {
		r.Store(i, nil)
	}
	var order []int
	for {
		v, ok := r.Pop()
		if !ok {
			break
		}
		order = append(order, v)
	}
	if diff := cmp.Diff([]int{4, 3, 2, 1}, order); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
}
