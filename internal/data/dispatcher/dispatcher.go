package dispatcher

import (
	"errors"
	"fmt"

	"github.com/atomicstack/tabdeck/internal/dnd"
	"github.com/atomicstack/tabdeck/internal/logging/events"
	"github.com/atomicstack/tabdeck/internal/state"
	"github.com/atomicstack/tabdeck/internal/workspace"
)

// Op names the engine operation a request resolved to.
type Op string

const (
	OpNone     Op = ""
	OpActivate Op = "activate"
	OpClose    Op = "close"
	OpReorder  Op = "reorder"
	OpMove     Op = "move"
	OpNewPanel Op = "new-panel"
	OpOpen     Op = "open"
)

// Result describes what a request did to the store.
type Result struct {
	Op      Op
	Applied bool
	PanelID string
	TabID   string
	Err     error
}

// Dispatcher routes user intents and decoded drops to exactly one engine
// operation and applies it through the store. Errors that the layout can
// absorb are recovered here and reported in Result.Err.
type Dispatcher struct {
	store  state.WorkspaceStore
	engine *workspace.Engine
}

func New(store state.WorkspaceStore, engine *workspace.Engine) *Dispatcher {
	if engine == nil {
		engine = workspace.NewEngine()
	}
	return &Dispatcher{store: store, engine: engine}
}

func (d *Dispatcher) Store() state.WorkspaceStore {
	return d.store
}

func (d *Dispatcher) Activate(panelID, tabID string) Result {
	return d.apply(OpActivate, panelID, tabID, func(ws workspace.Workspace) (workspace.Workspace, error) {
		return d.engine.ActivateTab(ws, panelID, tabID)
	})
}

func (d *Dispatcher) Close(panelID, tabID string) Result {
	return d.apply(OpClose, panelID, tabID, func(ws workspace.Workspace) (workspace.Workspace, error) {
		return d.engine.CloseTab(ws, panelID, tabID)
	})
}

// Reorder applies a direct reorder request. Out-of-range indices are rejected.
func (d *Dispatcher) Reorder(panelID string, from, to int) Result {
	return d.apply(OpReorder, panelID, "", func(ws workspace.Workspace) (workspace.Workspace, error) {
		return d.engine.ReorderTab(ws, panelID, from, to)
	})
}

// Open adds a tab to panelID, or to a new panel when panelID is empty.
func (d *Dispatcher) Open(panelID string, spec workspace.TabSpec) Result {
	var opened string
	res := d.apply(OpOpen, panelID, spec.ID, func(ws workspace.Workspace) (workspace.Workspace, error) {
		next, id, err := d.engine.OpenTab(ws, panelID, spec)
		opened = id
		return next, err
	})
	if res.Err == nil {
		res.PanelID = opened
	}
	return res
}

// Handle commits a drop. Same-panel drops reorder, clamping the target index
// into range; drops on other panels move the tab; drops on empty workspace
// space, or on a panel that no longer exists, open a new panel.
func (d *Dispatcher) Handle(drop dnd.Drop) Result {
	ws := d.store.Snapshot()
	msg := drop.Message
	source := msg.SourcePanelID
	tabID := msg.TabID
	if tabID == "" && source != "" {
		if panel, ok := ws.Panel(source); ok && msg.SourceIndex >= 0 && msg.SourceIndex < panel.Len() {
			tabID = panel.Tabs[msg.SourceIndex]
		}
	}
	if owner, ok := ws.PanelOf(tabID); ok {
		source = owner
	} else {
		err := notFound(tabID)
		events.Layout.Reject(string(opFor(drop)), err)
		return Result{Op: opFor(drop), TabID: tabID, Err: err}
	}

	target := drop.Target
	switch {
	case target.Workspace():
		return d.newPanel(tabID, source)
	case target.PanelID == source:
		return d.reorderDrop(ws, source, tabID, target.Index)
	default:
		res := d.apply(OpMove, target.PanelID, tabID, func(ws workspace.Workspace) (workspace.Workspace, error) {
			index := target.Index
			if index < 0 {
				if panel, ok := ws.Panel(target.PanelID); ok {
					index = panel.Len()
				}
			}
			return d.engine.MoveTabAcrossPanels(ws, tabID, source, target.PanelID, index)
		})
		if errors.Is(res.Err, workspace.ErrInvalidPanel) {
			events.Layout.Fallback(string(OpMove), string(OpNewPanel), res.Err)
			return d.newPanel(tabID, source)
		}
		return res
	}
}

func (d *Dispatcher) reorderDrop(ws workspace.Workspace, panelID, tabID string, to int) Result {
	panel, _ := ws.Panel(panelID)
	from := panel.IndexOf(tabID)
	last := panel.Len() - 1
	if to < 0 || to > last {
		to = last
	}
	return d.apply(OpReorder, panelID, tabID, func(ws workspace.Workspace) (workspace.Workspace, error) {
		return d.engine.ReorderTab(ws, panelID, from, to)
	})
}

func (d *Dispatcher) newPanel(tabID, source string) Result {
	var created string
	res := d.apply(OpNewPanel, source, tabID, func(ws workspace.Workspace) (workspace.Workspace, error) {
		next, id, err := d.engine.CreatePanelForMove(ws, tabID, source)
		created = id
		return next, err
	})
	if res.Err == nil {
		res.PanelID = created
	}
	return res
}

func (d *Dispatcher) apply(op Op, panelID, tabID string, fn state.Mutation) Result {
	changed, err := d.store.Apply(fn)
	res := Result{Op: op, Applied: changed, PanelID: panelID, TabID: tabID, Err: err}
	switch {
	case err != nil:
		events.Layout.Reject(string(op), err)
	case changed:
		events.Layout.Apply(string(op), panelID, tabID, d.store.Version())
	default:
		events.Layout.Noop(string(op), panelID, tabID)
	}
	return res
}

func opFor(drop dnd.Drop) Op {
	if drop.Message.Kind == dnd.KindReorder {
		return OpReorder
	}
	return OpMove
}

func notFound(tabID string) error {
	return fmt.Errorf("%w: tab %q", workspace.ErrNotFound, tabID)
}
