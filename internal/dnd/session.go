package dnd

import (
	"errors"
	"fmt"

	"github.com/atomicstack/tabdeck/internal/workspace"
)

// ErrNoSession is returned by Drop when no drag is in flight.
var ErrNoSession = errors.New("no drag session")

// Phase is the state of the drag session.
type Phase int

const (
	Idle Phase = iota
	Dragging
	Hovering
	Dropped
	Cancelled
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Hovering:
		return "hovering"
	case Dropped:
		return "dropped"
	case Cancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Target identifies a drop location. An empty PanelID is empty workspace
// space; a negative Index is the panel background past the last tab.
type Target struct {
	PanelID string
	Index   int
}

// Workspace reports whether the target is empty workspace space.
func (t Target) Workspace() bool {
	return t.PanelID == ""
}

// Session describes the in-flight drag. Hover is nil until a candidate
// location has been entered.
type Session struct {
	Phase         Phase
	TabID         string
	ContentType   workspace.ContentType
	SourcePanelID string
	SourceIndex   int
	Hover         *Target
}

// Active reports whether a drag is in progress.
func (s Session) Active() bool {
	return s.Phase == Dragging || s.Phase == Hovering
}

// Drop is a decoded message paired with the location it was dropped on.
type Drop struct {
	Message Message
	Target  Target
}

// Committer applies a drop to the workspace. It is called exactly once per
// successful drop.
type Committer interface {
	Commit(Drop) error
}

// CommitFunc adapts a function to Committer.
type CommitFunc func(Drop) error

func (f CommitFunc) Commit(d Drop) error {
	return f(d)
}

// Observer is notified of every phase transition.
type Observer func(from, to Phase, s Session)

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithObserver registers an observer for phase transitions.
func WithObserver(fn Observer) ControllerOption {
	return func(c *Controller) {
		if fn != nil {
			c.observers = append(c.observers, fn)
		}
	}
}

// Controller drives one drag gesture at a time through the phase machine.
// It is not safe for concurrent use; it lives on the UI update loop.
type Controller struct {
	session   Session
	transfer  *DataTransfer
	commit    Committer
	observers []Observer
}

// NewController returns an idle controller that hands drops to commit.
func NewController(commit Committer, opts ...ControllerOption) *Controller {
	c := &Controller{commit: commit, session: Session{SourceIndex: -1}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session returns a copy of the current session.
func (c *Controller) Session() Session {
	s := c.session
	if s.Hover != nil {
		hover := *s.Hover
		s.Hover = &hover
	}
	return s
}

// Transfer returns the encodings attached to the in-flight drag.
func (c *Controller) Transfer() *DataTransfer {
	return c.transfer
}

// Start begins dragging tab from panelID at index. A drag already in flight
// is cancelled first so two sessions never overlap.
func (c *Controller) Start(tab workspace.Tab, panelID string, index int) (*DataTransfer, error) {
	if c.session.Active() {
		c.cancel()
	}
	dt, err := Encode(Message{
		TabID:         tab.ID,
		ContentType:   tab.ContentType,
		SourcePanelID: panelID,
		SourceIndex:   index,
	})
	if err != nil {
		return nil, err
	}
	c.transfer = dt
	c.transition(Dragging, Session{
		TabID:         tab.ID,
		ContentType:   tab.ContentType,
		SourcePanelID: panelID,
		SourceIndex:   index,
	})
	return dt, nil
}

// Enter records target as the current hover candidate. Only the advertised
// types are consulted. The return value tells the view whether to allow a
// drop here.
func (c *Controller) Enter(target Target, types TypeList) bool {
	accepted := Accepts(types)
	if !accepted || !c.session.Active() {
		return accepted
	}
	if c.session.Phase == Hovering && c.session.Hover != nil && *c.session.Hover == target {
		return true
	}
	next := c.session
	next.Hover = &target
	c.transition(Hovering, next)
	return true
}

// Drop decodes payload against target and commits it. A payload without a
// usable encoding cancels the session and returns ErrProtocolMismatch. The
// session is Idle again when Drop returns.
func (c *Controller) Drop(target Target, payload Payload) (Drop, error) {
	if !c.session.Active() {
		return Drop{}, ErrNoSession
	}
	if payload == nil {
		payload = c.transfer
	}
	msg, err := Decode(payload, target.PanelID)
	if err != nil {
		c.cancel()
		return Drop{}, err
	}
	drop := Drop{Message: msg, Target: target}
	next := c.session
	next.Hover = &target
	c.transition(Dropped, next)
	var commitErr error
	if c.commit != nil {
		commitErr = c.commit.Commit(drop)
	}
	c.reset()
	return drop, commitErr
}

// End finishes the gesture. A session still in flight was not dropped and is
// cancelled without side effects. It reports whether a cancellation happened.
func (c *Controller) End() bool {
	if !c.session.Active() {
		return false
	}
	c.cancel()
	return true
}

func (c *Controller) cancel() {
	c.transition(Cancelled, c.session)
	c.reset()
}

func (c *Controller) reset() {
	c.transfer = nil
	c.transition(Idle, Session{SourceIndex: -1})
}

func (c *Controller) transition(to Phase, next Session) {
	from := c.session.Phase
	next.Phase = to
	c.session = next
	for _, fn := range c.observers {
		fn(from, to, c.Session())
	}
}
