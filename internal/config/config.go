package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/tabdeck/internal/app"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	Flags    map[string]string
	Args     []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose bool
}

const (
	envLayout        = "TABDECK_LAYOUT"
	envWidth         = "TABDECK_WIDTH"
	envHeight        = "TABDECK_HEIGHT"
	envShowFooter    = "TABDECK_FOOTER"
	envVerbose       = "TABDECK_VERBOSE"
	envTrace         = "TABDECK_TRACE"
	envLogFile       = "TABDECK_LOG_FILE"
	envWatchInterval = "TABDECK_WATCH_INTERVAL"

	defaultWatchInterval = time.Second
	minWatchInterval     = 100 * time.Millisecond
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("tabdeck", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	layout := fs.String("layout", envOrDefault(env, envLayout, ""), "path to a YAML file describing the initial panels and tabs")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer hint row (disabled by default)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, false), "report every layout change in the status line")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")
	watch := fs.Duration("watch-interval", envOrDuration(env, envWatchInterval, defaultWatchInterval), "poll interval for file-backed tabs (0 disables polling)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}
	if *watch < 0 {
		return Config{}, fmt.Errorf("watch-interval must be >= 0 (got %s)", *watch)
	}

	cfg := Config{
		App: app.Config{
			LayoutPath:    *layout,
			Width:         *width,
			Height:        *height,
			ShowFooter:    *footer,
			Verbose:       *verbose,
			WatchInterval: *watch,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Features: Features{
			Verbose: *verbose,
		},
		Flags: map[string]string{
			"layout":        *layout,
			"width":         strconv.Itoa(*width),
			"height":        strconv.Itoa(*height),
			"footer":        strconv.FormatBool(*footer),
			"trace":         strconv.FormatBool(*trace),
			"verbose":       strconv.FormatBool(*verbose),
			"logFile":       *logFile,
			"watchInterval": watch.String(),
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
		key, value, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		values[key] = value
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
	parsed, err := time.ParseDuration(strings.TrimSpace(v))
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

// Validate checks settings that need the filesystem or cross-field rules.
func Validate(cfg Config) error {
	if iv := cfg.App.WatchInterval; iv > 0 && iv < minWatchInterval {
		return fmt.Errorf("watch-interval must be 0 or at least %s (got %s)", minWatchInterval, iv)
	}
	if path := strings.TrimSpace(cfg.App.LayoutPath); path != "" {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("layout file: %w", err)
		}
		if info.IsDir() {
			return fmt.Errorf("layout file %s is a directory", path)
		}
	}
	return nil
}
