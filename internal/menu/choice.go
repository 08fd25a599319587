package menu

import (
	"fmt"
	"slices"

	"github.com/atomicstack/popupkit/internal/controllable"
	"github.com/atomicstack/popupkit/internal/scope"
)

// ChoiceMode selects between radio and checkbox behaviour.
type ChoiceMode string

const (
	Single   ChoiceMode = "single"
	Multiple ChoiceMode = "multiple"
)

// ParseChoiceMode validates a mode name. Empty selects Single.
func ParseChoiceMode(value string) (ChoiceMode, error) {
	switch ChoiceMode(value) {
	case "", Single:
		return Single, nil
	case Multiple:
		return Multiple, nil
	default:
		return "", fmt.Errorf("invalid choice mode %q", value)
	}
}

// ChoiceOptions configures a Choice. The value is always a slice; single
// mode keeps at most one element.
type ChoiceOptions struct {
	Mode         ChoiceMode
	Value        *[]string
	DefaultValue []string
	OnChange     func([]string)
}

// Choice is a group of option rows sharing a selection.
type Choice struct {
	section
	id    string
	mode  ChoiceMode
	value *controllable.State[[]string]
	group GroupContext
}

func newChoice(s section, opts ChoiceOptions) *Choice {
	mode := opts.Mode
	if mode == "" {
		mode = Single
	}
	c := &Choice{
		id:    NewID("choice"),
		mode:  mode,
		group: GroupContext{GroupID: NewID("group"), LabelID: NewID("label")},
	}
	c.value = controllable.New(controllable.Options[[]string]{
		Value:    opts.Value,
		Default:  append([]string(nil), opts.DefaultValue...),
		OnChange: opts.OnChange,
		Equal:    func(a, b []string) bool { return slices.Equal(a, b) },
	})
	bag := GroupScope.Provide(s.bag, NewID(""), c.group)
	bag = ChoiceScope.Provide(bag, c.id, c)
	c.section = section{content: s.content, bag: bag}
	return c
}

func (c *Choice) ID() string       { return c.id }
func (c *Choice) Mode() ChoiceMode { return c.mode }

// Selected returns the selected values.
func (c *Choice) Selected() []string {
	return append([]string(nil), c.value.Value()...)
}

// IsSelected reports whether value is selected.
func (c *Choice) IsSelected(value string) bool {
	return slices.Contains(c.value.Value(), value)
}

// Observe feeds the externally owned selection, nil for uncontrolled.
func (c *Choice) Observe(value *[]string) {
	c.value.Observe(value)
}

// AddOption appends an option row for value. Activating it updates the
// selection and keeps the menu open unless the handler asks otherwise.
func (c *Choice) AddOption(value string, opts ItemOptions) *Item {
	if opts.ID == "" {
		opts.ID = NewID("option")
	}
	if opts.Label == "" {
		opts.Label = value
	}
	bag := ChoiceItemScope.Provide(c.bag, opts.ID, func() ChoiceItemContext {
		return ChoiceItemContext{Value: value, Selected: c.IsSelected(value)}
	})
	item := newItem(c.content, bag, RoleOption, opts)
	item.choice = c
	item.option = value
	return c.content.append(item)
}

func (c *Choice) toggle(value string) {
	current := c.value.Value()
	switch c.mode {
	case Single:
		if len(current) == 1 && current[0] == value {
			return
		}
		c.value.Set([]string{value})
	default:
		if slices.Contains(current, value) {
			c.value.Set(slices.DeleteFunc(slices.Clone(current), func(v string) bool { return v == value }))
		} else {
			c.value.Set(append(slices.Clone(current), value))
		}
	}
}

// UseChoice resolves the nearest choice group.
func UseChoice(bag *scope.Bag) (*Choice, error) {
	scoped, err := ChoiceScope.Use(bag, nil)
	if err != nil {
		return nil, err
	}
	return scoped.Value, nil
}
