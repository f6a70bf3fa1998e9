package events

import "github.com/atomicstack/popup-context-menu/internal/logging"

type HostTracer struct{}

var Host = HostTracer{}

func (HostTracer) Receive(event string, size int) {
	logging.Trace("host.receive", map[string]interface{}{"event": event, "bytes": size})
}

func (HostTracer) Send(id, event string) {
	logging.Trace("host.send", map[string]interface{}{"id": id, "event": event})
}

func (HostTracer) Drop(event, reason string) {
	logging.Trace("host.drop", map[string]interface{}{"event": event, "reason": reason})
}

func (HostTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("host.error", map[string]interface{}{"error": err.Error()})
}

func (HostTracer) Closed() {
	logging.Trace("host.closed", nil)
}
