package ui

import (
	"fmt"
	"reflect"
	"time"

	"github.com/atomicstack/popupkit/internal/keys"
	"github.com/atomicstack/popupkit/internal/menu"
	"github.com/atomicstack/popupkit/internal/presence"
	"github.com/atomicstack/popupkit/internal/theme"
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	defaultTitle         = "menu"
	defaultFrames        = 4
	defaultFrameInterval = 16 * time.Millisecond
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options configures the model. Zero values fall back to the definition and
// then to built-in defaults.
type Options struct {
	Definition *menu.Definition
	Width      int
	Height     int
	ShowFooter bool
	// Loop overrides the definition's loop setting for the root content.
	Loop *bool
	// Dir and Strategy override the definition when set.
	Dir        menu.Dir
	Strategy   menu.Strategy
	HoverDelay time.Duration
	// Frames is the length of the open and close animations. Negative
	// disables animation; zero selects the default.
	Frames           int
	FrameInterval    time.Duration
	TypeAheadTimeout time.Duration
	Mouse            bool
	// Open starts the program with the menu already open.
	Open bool
}

// Model implements the Bubble Tea model for the popup menu demo.
type Model struct {
	tree  *menu.Tree
	root  *menu.Content
	title string

	ticks         *presence.TickQueue
	frames        int
	frameInterval time.Duration
	framePending  bool

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	mouse       bool

	infoMsg    string
	infoExpire time.Time

	keys globalKeys
	help help.Model

	handlers map[reflect.Type]msgHandler
}

// NewModel builds the menu tree described by opts.Definition.
func NewModel(opts Options) (*Model, error) {
	def := opts.Definition
	if def == nil {
		def = menu.DefaultDefinition()
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	dir := opts.Dir
	if dir == "" {
		parsed, err := menu.ParseDir(def.Dir)
		if err != nil {
			return nil, fmt.Errorf("menu definition: %w", err)
		}
		dir = parsed
	}
	strategy := opts.Strategy
	if strategy == "" && def.Strategy != "" {
		parsed, err := menu.ParseStrategy(def.Strategy)
		if err != nil {
			return nil, fmt.Errorf("menu definition: %w", err)
		}
		strategy = parsed
	}
	if opts.Loop != nil {
		copied := *def
		copied.Loop = opts.Loop
		def = &copied
	}

	m := &Model{
		title:         def.Title,
		ticks:         presence.NewTickQueue(),
		frames:        opts.Frames,
		frameInterval: opts.FrameInterval,
		showFooter:    opts.ShowFooter,
		mouse:         opts.Mouse,
		keys:          newGlobalKeys(),
		help:          help.New(),
	}
	if m.title == "" {
		m.title = defaultTitle
	}
	switch {
	case m.frames == 0:
		m.frames = defaultFrames
	case m.frames < 0:
		m.frames = 0
	}
	if m.frameInterval <= 0 {
		m.frameInterval = defaultFrameInterval
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.help.Styles.ShortKey = *styles.FooterKey
	m.help.Styles.ShortDesc = *styles.Footer
	m.help.Styles.ShortSeparator = *styles.Footer

	m.tree = menu.NewTree(menu.TreeOptions{
		ID:               "popup",
		Keys:             keys.NewRegistry(),
		Scheduler:        m.ticks,
		Dir:              dir,
		Strategy:         strategy,
		HoverDelay:       opts.HoverDelay,
		Attach:           m.attach,
		TypeAheadTimeout: opts.TypeAheadTimeout,
	})
	root, err := menu.Build(m.tree, def, menu.BuildOptions{
		OnSelect: m.selectHandler,
		OnChoice: m.choiceChanged,
	})
	if err != nil {
		return nil, err
	}
	m.root = root
	if opts.Open {
		m.tree.SetOpen(true)
	}
	m.registerHandlers()
	return m, nil
}

// Tree exposes the menu tree the model drives.
func (m *Model) Tree() *menu.Tree {
	return m.tree
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	return m.scheduleFrame()
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 2)
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, m.finishUpdate(cmds)
	}
	// Hover timers and type-ahead expiry belong to the tree.
	if cmd := m.tree.Update(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(frameMsg{}):          m.handleFrameMsg,
		reflect.TypeOf(selectedMsg{}):       m.handleSelectedMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if cmd := m.scheduleFrame(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// attach hands every mounting content a fresh animator.
func (m *Model) attach(*menu.Content) presence.Node {
	return newAnimator(m.frames)
}

func animatorFor(c *menu.Content) *animator {
	if c == nil || !c.Mounted() {
		return nil
	}
	a, _ := c.Node().(*animator)
	return a
}
