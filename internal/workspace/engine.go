package workspace

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// Engine applies layout operations to workspace snapshots. Every operation is
// pure: on success it returns a new Workspace, on failure it returns the input
// unchanged together with an error.
type Engine struct {
	newID func() string
}

// Option configures an Engine.
type Option func(*Engine)

// WithIDSource overrides the generator used for new panel ids.
func WithIDSource(fn func() string) Option {
	return func(e *Engine) {
		if fn != nil {
			e.newID = fn
		}
	}
}

// NewEngine constructs an Engine. Panel ids default to random UUIDs.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{newID: uuid.NewString}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ActivateTab makes tabID the active tab of panelID.
func (e *Engine) ActivateTab(ws Workspace, panelID, tabID string) (Workspace, error) {
	panel, ok := ws.panels[panelID]
	if !ok {
		return ws, fmt.Errorf("%w: panel %q", ErrNotFound, panelID)
	}
	if panel.IndexOf(tabID) < 0 {
		return ws, fmt.Errorf("%w: tab %q in panel %q", ErrNotFound, tabID, panelID)
	}
	if panel.ActiveTabID == tabID {
		return ws, nil
	}
	next := ws.clone()
	panel.ActiveTabID = tabID
	next.panels[panelID] = panel
	next.owner = ws.owner
	return next, nil
}

// CloseTab removes tabID from panelID. When the closed tab was active, the tab
// that slides into its index becomes active, falling back to the new last tab.
// A panel left empty is removed from the workspace.
func (e *Engine) CloseTab(ws Workspace, panelID, tabID string) (Workspace, error) {
	panel, ok := ws.panels[panelID]
	if !ok {
		return ws, fmt.Errorf("%w: panel %q", ErrNotFound, panelID)
	}
	idx := panel.IndexOf(tabID)
	if idx < 0 {
		return ws, fmt.Errorf("%w: tab %q in panel %q", ErrNotFound, tabID, panelID)
	}
	next := ws.clone()
	next.placeWithout(panel, idx)
	delete(next.tabs, tabID)
	next.reindex()
	return next, nil
}

// ReorderTab moves the tab at from to position to within the same panel. The
// active tab does not change.
func (e *Engine) ReorderTab(ws Workspace, panelID string, from, to int) (Workspace, error) {
	panel, ok := ws.panels[panelID]
	if !ok {
		return ws, fmt.Errorf("%w: panel %q", ErrNotFound, panelID)
	}
	n := len(panel.Tabs)
	if from < 0 || from >= n || to < 0 || to >= n {
		return ws, fmt.Errorf("%w: move %d -> %d in panel %q of %d tabs", ErrIndexOutOfRange, from, to, panelID, n)
	}
	if from == to {
		return ws, nil
	}
	tabs := make([]string, 0, n)
	moved := panel.Tabs[from]
	for i, id := range panel.Tabs {
		if i != from {
			tabs = append(tabs, id)
		}
	}
	tabs = insertAt(tabs, to, moved)
	next := ws.clone()
	panel.Tabs = tabs
	next.panels[panelID] = panel
	next.owner = ws.owner
	return next, nil
}

// MoveTabAcrossPanels moves tabID from sourcePanelID into targetPanelID at
// index, clamped to the target's bounds. The moved tab becomes the target's
// active tab; the source repairs its active tab like a close and is removed
// when left empty.
func (e *Engine) MoveTabAcrossPanels(ws Workspace, tabID, sourcePanelID, targetPanelID string, index int) (Workspace, error) {
	if sourcePanelID == targetPanelID {
		return ws, fmt.Errorf("%w: source and target are both %q", ErrInvalidPanel, sourcePanelID)
	}
	source, ok := ws.panels[sourcePanelID]
	if !ok {
		return ws, fmt.Errorf("%w: panel %q", ErrNotFound, sourcePanelID)
	}
	idx := source.IndexOf(tabID)
	if idx < 0 {
		return ws, fmt.Errorf("%w: tab %q in panel %q", ErrNotFound, tabID, sourcePanelID)
	}
	target, ok := ws.panels[targetPanelID]
	if !ok {
		return ws, fmt.Errorf("%w: target %q", ErrInvalidPanel, targetPanelID)
	}
	index = clamp(index, 0, len(target.Tabs))

	next := ws.clone()
	next.placeWithout(source, idx)
	target.Tabs = insertAt(cloneIDs(target.Tabs), index, tabID)
	target.ActiveTabID = tabID
	next.panels[targetPanelID] = target
	next.reindex()
	return next, nil
}

// CreatePanelForMove moves tabID out of sourcePanelID into a new panel
// appended after every existing panel. It returns the new workspace and the
// id of the created panel.
func (e *Engine) CreatePanelForMove(ws Workspace, tabID, sourcePanelID string) (Workspace, string, error) {
	source, ok := ws.panels[sourcePanelID]
	if !ok {
		return ws, "", fmt.Errorf("%w: panel %q", ErrNotFound, sourcePanelID)
	}
	idx := source.IndexOf(tabID)
	if idx < 0 {
		return ws, "", fmt.Errorf("%w: tab %q in panel %q", ErrNotFound, tabID, sourcePanelID)
	}
	next := ws.clone()
	next.placeWithout(source, idx)
	id := e.panelID(next)
	next.panels[id] = Panel{ID: id, Tabs: []string{tabID}, ActiveTabID: tabID}
	next.order = append(next.order, id)
	next.reindex()
	return next, id, nil
}

// OpenTab appends a new tab to panelID and activates it. An empty panelID
// opens the tab in a new panel at the end of the workspace. It returns the id
// of the panel holding the tab.
func (e *Engine) OpenTab(ws Workspace, panelID string, spec TabSpec) (Workspace, string, error) {
	if spec.ID == "" {
		return ws, "", fmt.Errorf("%w: tab id is required", ErrInvalidLayout)
	}
	if _, exists := ws.tabs[spec.ID]; exists {
		return ws, "", fmt.Errorf("%w: %q", ErrDuplicateTab, spec.ID)
	}
	next := ws.clone()
	var panel Panel
	if panelID == "" {
		panelID = e.panelID(next)
		panel = Panel{ID: panelID}
		next.order = append(next.order, panelID)
	} else {
		existing, ok := ws.panels[panelID]
		if !ok {
			return ws, "", fmt.Errorf("%w: panel %q", ErrNotFound, panelID)
		}
		panel = existing
	}
	panel.Tabs = append(cloneIDs(panel.Tabs), spec.ID)
	panel.ActiveTabID = spec.ID
	next.panels[panelID] = panel
	next.tabs[spec.ID] = newTabMeta(spec)
	next.reindex()
	return next, panelID, nil
}

// placeWithout stores panel minus the tab at idx, repairing its active tab, or
// removes the panel when nothing is left.
func (w *Workspace) placeWithout(panel Panel, idx int) {
	removed := panel.Tabs[idx]
	tabs := make([]string, 0, len(panel.Tabs)-1)
	tabs = append(tabs, panel.Tabs[:idx]...)
	tabs = append(tabs, panel.Tabs[idx+1:]...)
	if len(tabs) == 0 {
		w.dropPanel(panel.ID)
		return
	}
	panel.Tabs = tabs
	if panel.ActiveTabID == removed {
		panel.ActiveTabID = successor(tabs, idx)
	}
	w.panels[panel.ID] = panel
}

// successor picks the tab that now sits at idx, else the last tab.
func successor(tabs []string, idx int) string {
	switch {
	case len(tabs) == 0:
		return ""
	case idx < len(tabs):
		return tabs[idx]
	default:
		return tabs[len(tabs)-1]
	}
}

func (e *Engine) panelID(ws Workspace) string {
	base := e.newID()
	if base == "" {
		base = "panel"
	}
	id := base
	for n := 2; ; n++ {
		if _, taken := ws.panels[id]; !taken {
			return id
		}
		id = base + "-" + strconv.Itoa(n)
	}
}

func insertAt(ids []string, index int, id string) []string {
	ids = append(ids, "")
	copy(ids[index+1:], ids[index:])
	ids[index] = id
	return ids
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
