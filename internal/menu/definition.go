package menu

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultDefinition []byte

// Definition describes a whole menu in YAML.
type Definition struct {
	Title    string     `yaml:"title"`
	Dir      string     `yaml:"dir"`
	Loop     *bool      `yaml:"loop"`
	Strategy string     `yaml:"strategy"`
	Items    []EntryDef `yaml:"items"`
}

// EntryDef is one row. Exactly one of Group, Submenu and Choice may be set;
// with none set the entry is a plain item.
type EntryDef struct {
	ID        string      `yaml:"id"`
	Label     string      `yaml:"label"`
	Disabled  bool        `yaml:"disabled"`
	Keep      bool        `yaml:"keep"`
	CloseTree bool        `yaml:"close_tree"`
	Quit      bool        `yaml:"quit"`
	Info      string      `yaml:"info"`
	Group     *GroupDef   `yaml:"group"`
	Submenu   *SubmenuDef `yaml:"submenu"`
	Choice    *ChoiceDef  `yaml:"choice"`
}

// GroupDef is a labelled run of entries.
type GroupDef struct {
	Label string     `yaml:"label"`
	Items []EntryDef `yaml:"items"`
}

// SubmenuDef is a nested menu.
type SubmenuDef struct {
	ID       string     `yaml:"id"`
	Label    string     `yaml:"label"`
	Disabled bool       `yaml:"disabled"`
	Strategy string     `yaml:"strategy"`
	Delay    string     `yaml:"delay"`
	Loop     *bool      `yaml:"loop"`
	Items    []EntryDef `yaml:"items"`
}

// ChoiceDef is a group of options.
type ChoiceDef struct {
	Label   string      `yaml:"label"`
	Mode    string      `yaml:"mode"`
	Default []string    `yaml:"default"`
	Options []OptionDef `yaml:"options"`
}

// OptionDef is one option of a choice.
type OptionDef struct {
	Value    string `yaml:"value"`
	Label    string `yaml:"label"`
	Disabled bool   `yaml:"disabled"`
}

// LoadDefinition reads and validates a definition file.
func LoadDefinition(path string) (*Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load menu definition: %w", err)
	}
	defer f.Close()
	def, err := DecodeDefinition(f)
	if err != nil {
		return nil, fmt.Errorf("load menu definition %s: %w", path, err)
	}
	return def, nil
}

// DefaultDefinition returns the built-in demo menu.
func DefaultDefinition() *Definition {
	def, err := DecodeDefinition(bytes.NewReader(defaultDefinition))
	if err != nil {
		panic(fmt.Sprintf("built-in menu definition: %v", err))
	}
	return def
}

// DecodeDefinition parses YAML, rejecting unknown fields.
func DecodeDefinition(r io.Reader) (*Definition, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var def Definition
	if err := dec.Decode(&def); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty menu definition")
		}
		return nil, err
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// Validate checks the definition for structural mistakes.
func (d *Definition) Validate() error {
	if _, err := ParseDir(d.Dir); err != nil {
		return err
	}
	if _, err := ParseStrategy(d.Strategy); err != nil {
		return err
	}
	if len(d.Items) == 0 {
		return errors.New("menu definition has no items")
	}
	return validateEntries("items", d.Items)
}

func validateEntries(path string, entries []EntryDef) error {
	for i, e := range entries {
		where := fmt.Sprintf("%s[%d]", path, i)
		kinds := 0
		if e.Group != nil {
			kinds++
			if len(e.Group.Items) == 0 {
				return fmt.Errorf("%s: group has no items", where)
			}
			if err := validateEntries(where+".group.items", e.Group.Items); err != nil {
				return err
			}
		}
		if e.Submenu != nil {
			kinds++
			if e.Submenu.Label == "" && e.Label == "" {
				return fmt.Errorf("%s: submenu needs a label", where)
			}
			if _, err := ParseStrategy(e.Submenu.Strategy); err != nil {
				return fmt.Errorf("%s: %w", where, err)
			}
			if e.Submenu.Delay != "" {
				if _, err := time.ParseDuration(e.Submenu.Delay); err != nil {
					return fmt.Errorf("%s: invalid delay: %w", where, err)
				}
			}
			if len(e.Submenu.Items) == 0 {
				return fmt.Errorf("%s: submenu has no items", where)
			}
			if err := validateEntries(where+".submenu.items", e.Submenu.Items); err != nil {
				return err
			}
		}
		if e.Choice != nil {
			kinds++
			if _, err := ParseChoiceMode(e.Choice.Mode); err != nil {
				return fmt.Errorf("%s: %w", where, err)
			}
			if len(e.Choice.Options) == 0 {
				return fmt.Errorf("%s: choice has no options", where)
			}
			for j, opt := range e.Choice.Options {
				if opt.Value == "" {
					return fmt.Errorf("%s.choice.options[%d]: missing value", where, j)
				}
			}
		}
		if kinds > 1 {
			return fmt.Errorf("%s: group, submenu and choice are exclusive", where)
		}
		if kinds == 0 && e.Label == "" {
			return fmt.Errorf("%s: item needs a label", where)
		}
	}
	return nil
}

// BuildOptions hooks behaviour into built items.
type BuildOptions struct {
	// OnSelect makes the handler for a plain item, nil for none.
	OnSelect func(EntryDef) SelectHandler
	// OnChoice observes choice changes.
	OnChoice func(def ChoiceDef, value []string)
}

// Build creates the root content of tree from def and every submenu
// content beneath it.
func Build(tree *Tree, def *Definition, opts BuildOptions) (*Content, error) {
	root, err := NewContent(tree.Scope(), ContentOptions{Loop: def.Loop})
	if err != nil {
		return nil, err
	}
	if err := buildEntries(root.section, def.Items, opts); err != nil {
		return nil, err
	}
	return root, nil
}

func buildEntries(s section, entries []EntryDef, opts BuildOptions) error {
	for _, e := range entries {
		switch {
		case e.Group != nil:
			g := s.AddGroup()
			if e.Group.Label != "" {
				if _, err := g.AddLabel(e.Group.Label); err != nil {
					return err
				}
			}
			if err := buildEntries(g.section, e.Group.Items, opts); err != nil {
				return err
			}
		case e.Submenu != nil:
			if err := buildSubmenu(s, e.Label, e.Submenu, opts); err != nil {
				return err
			}
		case e.Choice != nil:
			buildChoice(s, *e.Choice, opts)
		default:
			item := ItemOptions{
				ID:        e.ID,
				Label:     e.Label,
				Disabled:  e.Disabled,
				CloseTree: e.CloseTree || e.Quit,
				Value:     e,
			}
			if e.Keep {
				keep := false
				item.CloseOnSelect = &keep
			}
			if opts.OnSelect != nil {
				item.OnSelect = opts.OnSelect(e)
			}
			s.AddItem(item)
		}
	}
	return nil
}

func buildSubmenu(s section, label string, def *SubmenuDef, opts BuildOptions) error {
	if def.Label != "" {
		label = def.Label
	}
	var delay time.Duration
	if def.Delay != "" {
		delay, _ = time.ParseDuration(def.Delay)
		if delay == 0 {
			delay = -1
		}
	}
	sub, err := s.AddSubmenu(SubmenuOptions{
		ID:       def.ID,
		Label:    label,
		Disabled: def.Disabled,
		Strategy: Strategy(def.Strategy),
		Delay:    delay,
	})
	if err != nil {
		return err
	}
	content, err := NewContent(sub.Scope(), ContentOptions{Loop: def.Loop})
	if err != nil {
		return err
	}
	return buildEntries(content.section, def.Items, opts)
}

func buildChoice(s section, def ChoiceDef, opts BuildOptions) {
	mode, _ := ParseChoiceMode(def.Mode)
	choiceOpts := ChoiceOptions{Mode: mode, DefaultValue: def.Default}
	if opts.OnChoice != nil {
		choiceOpts.OnChange = func(value []string) { opts.OnChoice(def, value) }
	}
	choice := s.AddChoice(choiceOpts)
	if def.Label != "" {
		// Choices always provide a group, so the label cannot fail.
		_, _ = choice.AddLabel(def.Label)
	}
	for _, opt := range def.Options {
		choice.AddOption(opt.Value, ItemOptions{Label: opt.Label, Disabled: opt.Disabled, Value: opt})
	}
}
