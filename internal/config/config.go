package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/popupkit/internal/app"
	"github.com/atomicstack/popupkit/internal/menu"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envMenuFile      = "POPUPKIT_MENU"
	envWidth         = "POPUPKIT_WIDTH"
	envHeight        = "POPUPKIT_HEIGHT"
	envShowFooter    = "POPUPKIT_FOOTER"
	envLoop          = "POPUPKIT_LOOP"
	envDir           = "POPUPKIT_DIR"
	envStrategy      = "POPUPKIT_STRATEGY"
	envFrames        = "POPUPKIT_FRAMES"
	envFrameInterval = "POPUPKIT_FRAME_INTERVAL"
	envHoverDelay    = "POPUPKIT_HOVER_DELAY"
	envMouse         = "POPUPKIT_MOUSE"
	envOpen          = "POPUPKIT_OPEN"
	envTrace         = "POPUPKIT_TRACE"
	envLogFile       = "POPUPKIT_LOG_FILE"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("popupkit", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	menuFile := fs.String("menu", envOrDefault(env, envMenuFile, ""), "path to a YAML menu definition (built-in demo menu when empty)")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer hint row (disabled by default)")
	loop := fs.String("loop", envOrDefault(env, envLoop, ""), "wrap keyboard navigation: true, false, or empty to follow the menu definition")
	dir := fs.String("dir", envOrDefault(env, envDir, ""), "reading direction: ltr or rtl (empty follows the menu definition)")
	strategy := fs.String("strategy", envOrDefault(env, envStrategy, ""), "default submenu open strategy: hover, click or both")
	frames := fs.Int("frames", envOrInt(env, envFrames, 4), "length of the open/close animation in frames (0 disables animation)")
	frameInterval := fs.Duration("frame-interval", envOrDuration(env, envFrameInterval, 16*time.Millisecond), "time between animation frames")
	hoverDelay := fs.Duration("hover-delay", envOrDuration(env, envHoverDelay, 100*time.Millisecond), "default delay before a hovered submenu opens")
	mouse := fs.Bool("mouse", envOrBool(env, envMouse, true), "enable mouse hover and clicks")
	open := fs.Bool("open", envOrBool(env, envOpen, false), "start with the menu open")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}

	cfg := Config{
		App: app.Config{
			MenuFile:      *menuFile,
			Width:         *width,
			Height:        *height,
			ShowFooter:    *footer,
			Loop:          *loop,
			Dir:           *dir,
			Strategy:      *strategy,
			Frames:        *frames,
			FrameInterval: *frameInterval,
			HoverDelay:    *hoverDelay,
			Mouse:         *mouse,
			Open:          *open,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"menu":          *menuFile,
			"width":         strconv.Itoa(*width),
			"height":        strconv.Itoa(*height),
			"footer":        strconv.FormatBool(*footer),
			"loop":          *loop,
			"dir":           *dir,
			"strategy":      *strategy,
			"frames":        strconv.Itoa(*frames),
			"frameInterval": frameInterval.String(),
			"hoverDelay":    hoverDelay.String(),
			"mouse":         strconv.FormatBool(*mouse),
			"open":          strconv.FormatBool(*open),
			"trace":         strconv.FormatBool(*trace),
			"logFile":       *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate rejects option values the menu cannot use.
func Validate(cfg Config) error {
	if cfg.App.Loop != "" {
		if _, err := strconv.ParseBool(cfg.App.Loop); err != nil {
			return fmt.Errorf("loop must be true or false (got %q)", cfg.App.Loop)
		}
	}
	if cfg.App.Dir != "" {
		if _, err := menu.ParseDir(cfg.App.Dir); err != nil {
			return err
		}
	}
	if cfg.App.Strategy != "" {
		if _, err := menu.ParseStrategy(cfg.App.Strategy); err != nil {
			return err
		}
	}
	if cfg.App.Frames < 0 {
		return fmt.Errorf("frames must be >= 0 (got %d)", cfg.App.Frames)
	}
	if cfg.App.FrameInterval <= 0 {
		return fmt.Errorf("frame interval must be positive (got %s)", cfg.App.FrameInterval)
	}
	if cfg.App.HoverDelay < 0 {
		return fmt.Errorf("hover delay must be >= 0 (got %s)", cfg.App.HoverDelay)
	}
	return nil
}
