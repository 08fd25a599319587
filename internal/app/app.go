package app

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/atomicstack/popupkit/internal/logging/events"
	"github.com/atomicstack/popupkit/internal/menu"
	"github.com/atomicstack/popupkit/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
	MenuFile   string
	Width      int
	Height     int
	ShowFooter bool
	// Loop is "true", "false" or "" to keep the definition's setting.
	Loop          string
	Dir           string
	Strategy      string
	Frames        int
	FrameInterval time.Duration
	HoverDelay    time.Duration
	Mouse         bool
	Open          bool
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	opts, err := Options(cfg)
	if err != nil {
		return err
	}
	model, err := ui.NewModel(opts)
	if err != nil {
		return fmt.Errorf("build menu: %w", err)
	}
	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.Mouse {
		programOpts = append(programOpts, tea.WithMouseAllMotion())
	}
	program := tea.NewProgram(model, programOpts...)
	_, err = program.Run()
	events.App.Exit(err)
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// Options resolves cfg into model options, loading the menu definition
// from cfg.MenuFile or falling back to the built-in one.
func Options(cfg Config) (ui.Options, error) {
	def := menu.DefaultDefinition()
	if cfg.MenuFile != "" {
		loaded, err := menu.LoadDefinition(cfg.MenuFile)
		if err != nil {
			return ui.Options{}, err
		}
		def = loaded
	}
	opts := ui.Options{
		Definition:    def,
		Width:         cfg.Width,
		Height:        cfg.Height,
		ShowFooter:    cfg.ShowFooter,
		Frames:        cfg.Frames,
		FrameInterval: cfg.FrameInterval,
		HoverDelay:    cfg.HoverDelay,
		Mouse:         cfg.Mouse,
		Open:          cfg.Open,
	}
	if cfg.Frames == 0 {
		opts.Frames = -1
	}
	if cfg.Loop != "" {
		loop, err := strconv.ParseBool(cfg.Loop)
		if err != nil {
			return ui.Options{}, fmt.Errorf("invalid loop setting %q", cfg.Loop)
		}
		opts.Loop = &loop
	}
	if cfg.Dir != "" {
		dir, err := menu.ParseDir(cfg.Dir)
		if err != nil {
			return ui.Options{}, err
		}
		opts.Dir = dir
	}
	if cfg.Strategy != "" {
		strategy, err := menu.ParseStrategy(cfg.Strategy)
		if err != nil {
			return ui.Options{}, err
		}
		opts.Strategy = strategy
	}
	return opts, nil
}
