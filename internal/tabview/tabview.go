// Package tabview is the surface a presentation layer drives. Views translate
// raw input into these callbacks and render from Snapshot; every decision
// about the layout happens behind them.
package tabview

import (
	"errors"
	"fmt"

	"github.com/atomicstack/tabdeck/internal/data/dispatcher"
	"github.com/atomicstack/tabdeck/internal/dnd"
	"github.com/atomicstack/tabdeck/internal/logging/events"
	"github.com/atomicstack/tabdeck/internal/workspace"
)

// Contract is what a tab view may call.
type Contract interface {
	OnActivate(tabID, panelID string)
	OnClose(tabID, panelID string)
	OnDragStart(tabID, panelID string, index int)
	// OnDragEnterCandidate reports the slot under the pointer. An empty panelID
	// is empty workspace space, a negative index is the panel background.
	OnDragEnterCandidate(index int, panelID string) bool
	OnDrop(index int, panelID string)
	OnDragEnd()
	Snapshot() workspace.Workspace
}

// Controller implements Contract on top of a dispatcher and a drag
// controller.
type Controller struct {
	dispatch *dispatcher.Dispatcher
	drag     *dnd.Controller
	last     dispatcher.Result
	fresh    bool
}

var _ Contract = (*Controller)(nil)

// New wires a controller around d. Extra drag options are passed through to
// the drag controller.
func New(d *dispatcher.Dispatcher, opts ...dnd.ControllerOption) *Controller {
	c := &Controller{dispatch: d}
	opts = append([]dnd.ControllerOption{dnd.WithObserver(traceTransition)}, opts...)
	c.drag = dnd.NewController(c, opts...)
	return c
}

func (c *Controller) Snapshot() workspace.Workspace {
	return c.dispatch.Store().Snapshot()
}

// Version is the store version, bumped on every committed change.
func (c *Controller) Version() uint64 {
	return c.dispatch.Store().Version()
}

// Session returns the in-flight drag session.
func (c *Controller) Session() dnd.Session {
	return c.drag.Session()
}

// LastResult returns the outcome of the most recent layout request.
func (c *Controller) LastResult() dispatcher.Result {
	return c.last
}

// TakeResult returns the most recent result once. The second value is false
// when no request has completed since the previous call.
func (c *Controller) TakeResult() (dispatcher.Result, bool) {
	fresh := c.fresh
	c.fresh = false
	return c.last, fresh
}

func (c *Controller) record(res dispatcher.Result) {
	c.last = res
	c.fresh = true
}

func (c *Controller) OnActivate(tabID, panelID string) {
	c.record(c.dispatch.Activate(panelID, tabID))
}

func (c *Controller) OnClose(tabID, panelID string) {
	c.record(c.dispatch.Close(panelID, tabID))
}

// Open adds a tab to panelID, or to a new panel when panelID is empty.
func (c *Controller) Open(panelID string, spec workspace.TabSpec) dispatcher.Result {
	c.record(c.dispatch.Open(panelID, spec))
	return c.last
}

// Reorder moves the tab at from to to within panelID. Out-of-range indices
// are rejected rather than clamped.
func (c *Controller) Reorder(panelID string, from, to int) dispatcher.Result {
	c.record(c.dispatch.Reorder(panelID, from, to))
	return c.last
}

func (c *Controller) OnDragStart(tabID, panelID string, index int) {
	tab, ok := c.Snapshot().Tab(tabID)
	if !ok {
		c.record(dispatcher.Result{Err: notFound(tabID)})
		return
	}
	if _, err := c.drag.Start(tab, panelID, index); err != nil {
		c.record(dispatcher.Result{TabID: tabID, Err: err})
	}
}

func (c *Controller) OnDragEnterCandidate(index int, panelID string) bool {
	target := dnd.Target{PanelID: panelID, Index: index}
	ok := c.drag.Enter(target, c.drag.Transfer())
	if ok && c.drag.Session().Active() {
		events.Drag.Hover(panelID, index)
	}
	return ok
}

// OnDrop drops the in-flight drag on the given slot using the encodings
// attached at drag start.
func (c *Controller) OnDrop(index int, panelID string) {
	c.DropPayload(index, panelID, nil)
}

// DropPayload drops with an explicit payload, as a view receiving data from
// outside the process would.
func (c *Controller) DropPayload(index int, panelID string, payload dnd.Payload) {
	drop, err := c.drag.Drop(dnd.Target{PanelID: panelID, Index: index}, payload)
	switch {
	case errors.Is(err, dnd.ErrProtocolMismatch):
		var types []string
		if payload != nil {
			types = payload.Types()
		}
		events.Drag.Mismatch(types)
		c.record(dispatcher.Result{Err: err})
	case errors.Is(err, dnd.ErrNoSession):
		c.record(dispatcher.Result{Err: err})
	default:
		events.Drag.Drop(drop.Message.Kind.String(), drop.Message.TabID, panelID, index)
	}
}

func (c *Controller) OnDragEnd() {
	c.drag.End()
}

// Commit applies a decoded drop. The drag controller calls it exactly once per
// successful drop.
func (c *Controller) Commit(drop dnd.Drop) error {
	c.record(c.dispatch.Handle(drop))
	return c.last.Err
}

func traceTransition(from, to dnd.Phase, s dnd.Session) {
	events.Drag.Transition(from.String(), to.String(), s.TabID, s.SourcePanelID)
}

func notFound(tabID string) error {
	return fmt.Errorf("%w: tab %q", workspace.ErrNotFound, tabID)
}
