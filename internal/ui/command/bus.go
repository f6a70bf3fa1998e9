package command

import (
	"context"

	"github.com/atomicstack/popup-context-menu/internal/host"
	"github.com/atomicstack/popup-context-menu/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

// Request encapsulates one outbound host request.
type Request struct {
	ID      string
	Label   string
	Event   string
	Payload any
}

// Result reports the outcome of a sent request back to the model.
type Result struct {
	Request   Request
	RequestID string
	Err       error
}

// Bus coordinates delivery of host requests.
type Bus struct {
	ctx    context.Context
	sender host.Sender
}

// New initialises a command bus that sends through s. A nil sender drops
// every request.
func New(ctx context.Context, s host.Sender) *Bus {
	if ctx == nil {
		ctx = context.Background()
	}
	if s == nil {
		s = host.Discard
	}
	return &Bus{ctx: ctx, sender: s}
}

// Execute wraps a host request into a Bubble Tea command while emitting trace logs.
func (b *Bus) Execute(req Request) tea.Cmd {
	if req.Event == "" {
		events.Command.NoOp(req.ID, req.Label)
		return nil
	}
	events.Command.Queue(req.ID, req.Label)
	return func() tea.Msg {
		id, err := b.sender.Send(b.ctx, req.Event, req.Payload)
		if err != nil {
			events.Host.Error(err)
		} else {
			events.Host.Send(id, req.Event)
		}
		events.Command.Result(req.ID, req.Label, id)
		return Result{Request: req, RequestID: id, Err: err}
	}
}
