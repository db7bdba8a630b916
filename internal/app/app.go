package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atomicstack/tabdeck/internal/backend"
	"github.com/atomicstack/tabdeck/internal/content"
	"github.com/atomicstack/tabdeck/internal/data/dispatcher"
	"github.com/atomicstack/tabdeck/internal/logging/events"
	"github.com/atomicstack/tabdeck/internal/state"
	"github.com/atomicstack/tabdeck/internal/tabview"
	"github.com/atomicstack/tabdeck/internal/ui"
	"github.com/atomicstack/tabdeck/internal/workspace"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
	LayoutPath    string
	Width         int
	Height        int
	ShowFooter    bool
	Verbose       bool
	WatchInterval time.Duration
}

// Seed is the initial workspace: panels in display order plus the content
// behind each tab.
type Seed struct {
	Source  string
	Panels  []workspace.PanelSpec
	Sources map[string]content.Source
}

// Build assembles the model for seed without starting a program.
func Build(cfg Config, seed Seed) (*ui.Model, error) {
	ws, err := workspace.New(seed.Panels...)
	if err != nil {
		return nil, fmt.Errorf("seed workspace: %w", err)
	}
	events.App.LayoutLoaded(seed.Source, ws.PanelCount(), ws.TabCount())

	registry := content.NewRegistry()
	for id, src := range seed.Sources {
		registry.SetSource(id, src)
	}
	store := state.NewWorkspaceStore(ws)
	controller := tabview.New(dispatcher.New(store, workspace.NewEngine()))

	var watcher *backend.Watcher
	if cfg.WatchInterval > 0 && len(registry.Paths()) > 0 {
		watcher = backend.NewWatcher(registry.Paths, cfg.WatchInterval)
	}
	return ui.NewModel(ui.Options{
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
		Verbose:    cfg.Verbose,
		Controller: controller,
		Registry:   registry,
		Watcher:    watcher,
	}), nil
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config, seed Seed) error {
	model, err := Build(cfg, seed)
	if err != nil {
		return err
	}
	defer model.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	model.SetContext(ctx)

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err = program.Run()
	events.App.Exit(err)
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
