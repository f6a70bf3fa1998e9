package dispatcher

import (
	"fmt"

	"github.com/atomicstack/popup-context-menu/internal/host"
	"github.com/atomicstack/popup-context-menu/internal/logging/events"
	"github.com/atomicstack/popup-context-menu/internal/menu"
)

// Kind identifies what a host event asks the popup to do.
type Kind int

const (
	KindNone Kind = iota
	KindShow
	KindHide
)

// Result is the decoded intent of one host event.
type Result struct {
	Kind       Kind
	Descriptor menu.Descriptor
}

// Dispatcher turns raw host events into popup intents.
type Dispatcher struct {
	decode func([]byte) (menu.Descriptor, error)
}

func New() *Dispatcher {
	return &Dispatcher{decode: menu.Decode}
}

// Handle decodes evt. Unknown event names yield KindNone without an error so
// newer hosts can talk to older popups.
func (d *Dispatcher) Handle(evt host.Event) (Result, error) {
	if evt.Err != nil {
		return Result{}, evt.Err
	}
	events.Host.Receive(evt.Name, len(evt.Data))
	switch evt.Name {
	case host.EventShowContext:
		if len(evt.Data) == 0 {
			return Result{}, fmt.Errorf("%s: missing descriptor", evt.Name)
		}
		desc, err := d.decode(evt.Data)
		if err != nil {
			return Result{}, fmt.Errorf("%s: %w", evt.Name, err)
		}
		return Result{Kind: KindShow, Descriptor: desc}, nil
	case host.EventHideContext:
		return Result{Kind: KindHide}, nil
	}
	events.Host.Drop(evt.Name, "unknown event")
	return Result{}, nil
}
