package keys

import "github.com/charmbracelet/bubbles/key"

// Merge joins default key names with caller supplied alternatives, dropping
// blanks and duplicates while keeping first-seen order.
func Merge(defaults []string, extra ...[]string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, len(defaults))
	add := func(names []string) {
		for _, name := range names {
			if name == "" {
				continue
			}
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	add(defaults)
	for _, e := range extra {
		add(e)
	}
	return out
}

// Binding builds a key binding; help text is optional.
func Binding(names []string, helpKey, helpDesc string) key.Binding {
	opts := []key.BindingOpt{key.WithKeys(names...)}
	if helpKey != "" {
		opts = append(opts, key.WithHelp(helpKey, helpDesc))
	}
	return key.NewBinding(opts...)
}
