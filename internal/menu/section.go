package menu

import (
	"fmt"

	"github.com/atomicstack/popupkit/internal/scope"
)

// section appends rows to a content under a particular scope bag. Content,
// Group and Choice all embed one.
type section struct {
	content *Content
	bag     *scope.Bag
}

// Scope returns the bag rows added here resolve against.
func (s section) Scope() *scope.Bag {
	return s.bag
}

// AddItem appends a plain menu item.
func (s section) AddItem(opts ItemOptions) *Item {
	return s.content.append(newItem(s.content, s.bag, RoleItem, opts))
}

// AddLabel appends a non-focusable label for the enclosing group. It fails
// outside a group.
func (s section) AddLabel(text string) (*Item, error) {
	group, err := GroupScope.Use(s.bag, nil)
	if err != nil {
		return nil, fmt.Errorf("menu label %q: %w", text, err)
	}
	return s.content.append(newItem(s.content, s.bag, RoleLabel, ItemOptions{
		ID:    group.Value.LabelID,
		Label: text,
	})), nil
}

// AddGroup opens a group whose rows share a label.
func (s section) AddGroup() *Group {
	ctx := GroupContext{GroupID: NewID("group"), LabelID: NewID("label")}
	return &Group{
		section: section{content: s.content, bag: GroupScope.Provide(s.bag, NewID(""), ctx)},
		ctx:     ctx,
	}
}

// AddSubmenu appends a submenu trigger and returns the submenu. Its content
// is created separately from Submenu.Scope.
func (s section) AddSubmenu(opts SubmenuOptions) (*Submenu, error) {
	return newSubmenu(s, opts)
}

// AddChoice opens a single or multiple choice group.
func (s section) AddChoice(opts ChoiceOptions) *Choice {
	return newChoice(s, opts)
}

// Group is a labelled run of rows.
type Group struct {
	section
	ctx GroupContext
}

func (g *Group) ID() string      { return g.ctx.GroupID }
func (g *Group) LabelID() string { return g.ctx.LabelID }
