package keys

import (
	"testing"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"
)

var _ help.KeyMap = HelpMap{}

type firedMsg string

func TestDispatchIsScoped(t *testing.T) {
	r := NewRegistry()
	var fired []string
	r.Register(Binding([]string{"down"}, "↓", "next"), func(tea.KeyMsg) tea.Cmd {
		fired = append(fired, "a-down")
		return func() tea.Msg { return firedMsg("a") }
	}, Options{Scope: "a", PreventDefault: true})
	r.Register(Binding([]string{"down"}, "", ""), func(tea.KeyMsg) tea.Cmd {
		fired = append(fired, "b-down")
		return nil
	}, Options{Scope: "b"})

	consumed, cmd := r.Dispatch("a", tea.KeyMsg{Type: tea.KeyDown})
	if !consumed || cmd == nil {
		t.Fatalf("expected consumed key with command")
	}
	if msg := cmd(); msg != firedMsg("a") {
		t.Fatalf("unexpected message %v", msg)
	}
	consumed, _ = r.Dispatch("b", tea.KeyMsg{Type: tea.KeyDown})
	if consumed {
		t.Fatalf("binding without PreventDefault must not consume")
	}
	if consumed, _ := r.Dispatch("c", tea.KeyMsg{Type: tea.KeyDown}); consumed {
		t.Fatalf("unknown scope must be inert")
	}
	if diff := cmp.Diff([]string{"a-down", "b-down"}, fired); diff != "" {
		t.Fatalf("unexpected handlers (-want +got):\n%s", diff)
	}
}

func TestDispatchMatchesAlternatives(t *testing.T) {
	r := NewRegistry()
	hits := 0
	r.Register(Binding(Merge([]string{"up"}, []string{"k", "w"}), "↑", "prev"), func(tea.KeyMsg) tea.Cmd {
		hits++
		return nil
	}, Options{Scope: "s", PreventDefault: true})
	r.Dispatch("s", tea.KeyMsg{Type: tea.KeyUp})
	r.Dispatch("s", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})
	r.Dispatch("s", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("w")})
	r.Dispatch("s", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if hits != 3 {
		t.Fatalf("expected 3 matches, got %d", hits)
	}
}

func TestDropScope(t *testing.T) {
	r := NewRegistry()
	noop := func(tea.KeyMsg) tea.Cmd { return nil }
	r.Register(Binding([]string{"esc"}, "esc", "close"), noop, Options{Scope: "root"})
	r.Register(Binding([]string{"enter"}, "", ""), noop, Options{Scope: "root"})
	r.Register(Binding([]string{"left"}, "←", "back"), noop, Options{Scope: "sub"})
	r.Register(Binding([]string{"x"}, "", ""), nil, Options{Scope: "ignored"})

	if diff := cmp.Diff([]string{"root", "sub"}, r.Scopes()); diff != "" {
		t.Fatalf("unexpected scopes (-want +got):\n%s", diff)
	}
	if r.Active() != "sub" {
		t.Fatalf("expected sub active, got %q", r.Active())
	}
	if got := len(r.Bindings("root")); got != 1 {
		t.Fatalf("expected only bindings with help, got %d", got)
	}
	if n := r.DropScope("root"); n != 2 {
		t.Fatalf("expected 2 bindings dropped, got %d", n)
	}
	if r.DropScope("root") != 0 {
		t.Fatalf("second drop must be a no-op")
	}
	if r.Active() != "sub" || r.Has("root") {
		t.Fatalf("expected only sub left, got scopes %v", r.Scopes())
	}
	r.DropScope("sub")
	if r.Active() != "" || r.Has("sub") {
		t.Fatalf("expected empty registry")
	}
}

func TestMergeDedupes(t *testing.T) {
	got := Merge([]string{"down", ""}, []string{"j", "down"}, nil, []string{"s"})
	if diff := cmp.Diff([]string{"down", "j", "s"}, got); diff != "" {
		t.Fatalf("unexpected merge (-want +got):\n%s", diff)
	}
}

func TestHelpMapIncludesExtra(t *testing.T) {
	r := NewRegistry()
	r.Register(Binding([]string{"down"}, "↓", "next"), func(tea.KeyMsg) tea.Cmd { return nil }, Options{Scope: "s"})
	h := HelpMap{Registry: r, Scope: "s", Extra: []key.Binding{Binding([]string{"ctrl+c"}, "ctrl+c", "quit")}}
	if got := len(h.FullHelp()[0]); got != 2 {
		t.Fatalf("expected 2 help bindings, got %d", got)
	}
}
