package command

import (
	"context"
	"fmt"

	"github.com/atomicstack/tabdeck/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

// Handler performs the work behind a request and returns the message the
// model receives when it completes. A nil message means nothing to report.
type Handler func(ctx context.Context) tea.Msg

// Request encapsulates a unit of background work.
type Request struct {
	ID      string
	Label   string
	Handler Handler
}

// Bus runs requests as Bubble Tea commands while emitting trace logs.
type Bus struct {
	ctx context.Context
}

// New initialises a command bus. Requests observe ctx, which defaults to
// context.Background.
func New(ctx context.Context) *Bus {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Bus{ctx: ctx}
}

// Execute wraps a request into a Bubble Tea command.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	return func() tea.Msg {
		if req.Handler == nil {
			events.Command.Skip(req.ID, req.Label)
			return nil
		}
		if err := b.ctx.Err(); err != nil {
			events.Command.Skip(req.ID, req.Label)
			return nil
		}
		msg := req.Handler(b.ctx)
		if msg == nil {
			events.Command.NoOp(req.ID, req.Label)
			return nil
		}
		events.Command.Result(req.ID, req.Label, fmt.Sprintf("%T", msg))
		return msg
	}
}
