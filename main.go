package main

import (
	"fmt"
	"os"

	"github.com/atomicstack/tabdeck/internal/app"
	"github.com/atomicstack/tabdeck/internal/config"
	"github.com/atomicstack/tabdeck/internal/logging"
	"github.com/atomicstack/tabdeck/internal/logging/events"
	"golang.org/x/term"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.MustLoad()
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		return 2
	}
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)
	logging.SetVerbose(cfg.Features.Verbose)

	seed, err := config.LoadLayout(cfg.App.LayoutPath)
	if err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Layout error: %v\n", err)
		return 2
	}
	events.App.Start(startupTracePayload(cfg, seed))
	logging.Info("layout loaded from %s", seed.Source)

	if err := app.Run(cfg.App, seed); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// startupTracePayload records what the process was started with: flags,
// the seed layout, and the terminal it is attached to.
func startupTracePayload(cfg config.Config, seed app.Seed) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags)+2)
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath

	tabs := 0
	for _, p := range seed.Panels {
		tabs += len(p.Tabs)
	}
	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": cfg,
		"layout": map[string]interface{}{
			"source":  seed.Source,
			"panels":  len(seed.Panels),
			"tabs":    tabs,
			"sources": len(seed.Sources),
		},
		"tty": probeTerminals(),
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	}
	return payload
}

// terminalProbe describes one standard descriptor.
type terminalProbe struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// probeTerminals checks stdin, stdout and stderr in that order.
func probeTerminals() []terminalProbe {
	files := []*os.File{os.Stdin, os.Stdout, os.Stderr}
	names := []string{"stdin", "stdout", "stderr"}
	probes := make([]terminalProbe, len(files))
	for i, f := range files {
		probe := terminalProbe{Name: names[i]}
		fd := int(f.Fd())
		if term.IsTerminal(fd) {
			probe.IsTerminal = true
			if w, h, err := term.GetSize(fd); err != nil {
				probe.Error = err.Error()
			} else {
				probe.Width, probe.Height = w, h
			}
		}
		probes[i] = probe
	}
	return probes
}
