package menu

import (
	"github.com/atomicstack/popupkit/internal/scope"
	tea "github.com/charmbracelet/bubbletea"
)

// Role classifies an item row.
type Role int

const (
	RoleItem Role = iota
	RoleOption
	RoleLabel
)

func (r Role) String() string {
	switch r {
	case RoleItem:
		return "menuitem"
	case RoleOption:
		return "option"
	case RoleLabel:
		return "label"
	default:
		return "unknown"
	}
}

// SelectHandler runs when an item is activated. It may steer whether the
// menu closes through sel.
type SelectHandler func(sel *Selection) tea.Cmd

// ItemOptions describes an item.
type ItemOptions struct {
	ID       string
	Label    string
	Disabled bool
	// CloseOnSelect defaults to true.
	CloseOnSelect *bool
	// CloseTree closes the whole tree rather than the nearest menu.
	CloseTree bool
	OnSelect  SelectHandler
	// Value is opaque data for the owner.
	Value any
}

// Item is one row of a Content.
type Item struct {
	id            string
	label         string
	role          Role
	disabled      bool
	closeOnSelect bool
	closeTree     bool
	onSelect      SelectHandler
	value         any

	content *Content
	bag     *scope.Bag
	submenu *Submenu
	choice  *Choice
	option  string
}

func newItem(content *Content, bag *scope.Bag, role Role, opts ItemOptions) *Item {
	id := opts.ID
	if id == "" {
		id = NewID("item")
	}
	closeOnSelect := true
	if opts.CloseOnSelect != nil {
		closeOnSelect = *opts.CloseOnSelect
	}
	return &Item{
		id:            id,
		label:         opts.Label,
		role:          role,
		disabled:      opts.Disabled,
		closeOnSelect: closeOnSelect,
		closeTree:     opts.CloseTree,
		onSelect:      opts.OnSelect,
		value:         opts.Value,
		content:       content,
		bag:           bag,
	}
}

func (i *Item) ID() string          { return i.id }
func (i *Item) Label() string       { return i.label }
func (i *Item) Role() Role          { return i.role }
func (i *Item) Disabled() bool      { return i.disabled }
func (i *Item) Value() any          { return i.value }
func (i *Item) Content() *Content   { return i.content }
func (i *Item) Submenu() *Submenu   { return i.submenu }
func (i *Item) Scope() *scope.Bag   { return i.bag }
func (i *Item) CloseOnSelect() bool { return i.closeOnSelect }

func (i *Item) String() string { return i.id }

// SetDisabled toggles whether navigation and activation skip the item.
func (i *Item) SetDisabled(disabled bool) {
	i.disabled = disabled
}

// Focusable reports whether keyboard navigation can land on the item.
func (i *Item) Focusable() bool {
	return i.role != RoleLabel && !i.disabled
}

// Focused reports whether the item holds focus in its tree.
func (i *Item) Focused() bool {
	return i.content.tree.focused == i
}

// Highlighted reports whether the pointer rests on the item.
func (i *Item) Highlighted() bool {
	return i.content.tree.hoverItem == i
}

// State is the trigger state of a submenu trigger ("opened"/"closed") and
// the selection state of an option ("selected"/"unselected"). Other items
// report "".
func (i *Item) State() string {
	switch {
	case i.submenu != nil:
		return openState(i.submenu.IsOpen())
	case i.choice != nil:
		if i.choice.IsSelected(i.option) {
			return "selected"
		}
		return "unselected"
	default:
		return ""
	}
}

// Indicator resolves the choice indicator state for the item. Items that
// are not options have no provider and fail.
func (i *Item) Indicator() (ChoiceItemContext, error) {
	scoped, err := ChoiceItemScope.Use(i.bag, nil)
	if err != nil {
		return ChoiceItemContext{}, err
	}
	return scoped.Value(), nil
}

func openState(open bool) string {
	if open {
		return "opened"
	}
	return "closed"
}
