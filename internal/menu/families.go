package menu

import (
	"fmt"

	"github.com/atomicstack/popupkit/internal/scope"
	"github.com/google/uuid"
)

// Dir is the reading direction of a menu.
type Dir string

const (
	LTR Dir = "ltr"
	RTL Dir = "rtl"
)

// ParseDir validates a direction name. Empty selects LTR.
func ParseDir(value string) (Dir, error) {
	switch Dir(value) {
	case "", LTR:
		return LTR, nil
	case RTL:
		return RTL, nil
	default:
		return "", fmt.Errorf("invalid direction %q", value)
	}
}

// MenuContext is what the nearest menu (root or submenu) exposes to the
// contents and items beneath it.
type MenuContext struct {
	IsOpen  func() bool
	SetOpen func(bool)
}

// SubMenuContext marks a bag as belonging to a submenu.
type SubMenuContext struct {
	Submenu *Submenu
}

// GroupContext carries the ids that tie a label to its group.
type GroupContext struct {
	GroupID string
	LabelID string
}

// ChoiceItemContext is what an option row exposes to its indicator.
type ChoiceItemContext struct {
	Value    string
	Selected bool
}

var (
	MenuScope       = scope.NewFamily[*MenuContext]("Menu")
	SubMenuScope    = scope.NewFamily[*SubMenuContext]("SubMenu")
	DirectionScope  = scope.NewFamily[Dir]("Direction")
	TreeScope       = scope.NewFamily[*Tree]("MenuTree")
	ChoiceScope     = scope.NewFamily[*Choice]("MenuChoice")
	ChoiceItemScope = scope.NewFamily[func() ChoiceItemContext]("MenuChoiceItem")
	GroupScope      = scope.NewFamily[GroupContext]("Group")
)

// ComposeMenuScope carries everything a menu content needs from one bag to
// another.
var ComposeMenuScope = MenuScope.Composer(
	TreeScope.Composer(),
	DirectionScope.Composer(),
)

// UseDirection resolves the ambient direction.
func UseDirection(bag *scope.Bag) (Dir, error) {
	scoped, err := DirectionScope.Use(bag, nil)
	if err != nil {
		return "", err
	}
	return scoped.Value, nil
}

// NewID returns a unique id carrying prefix.
func NewID(prefix string) string {
	id := uuid.NewString()
	if prefix == "" {
		return id
	}
	return prefix + "-" + id
}
