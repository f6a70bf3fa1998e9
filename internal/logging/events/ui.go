package events

import "github.com/atomicstack/popup-context-menu/internal/logging"

type UITracer struct{}

type FilterTracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Filter  = FilterTracer{}
	Command = CommandTracer{}
)

func (UITracer) Cursor(title string, cursor int) {
	logging.Trace("menu.cursor", map[string]interface{}{"title": title, "cursor": cursor})
}

func (UITracer) Resize(width, height int) {
	logging.Trace("menu.resize", map[string]interface{}{"width": width, "height": height})
}

func (FilterTracer) Change(search string, matches int) {
	logging.Trace("filter.change", map[string]interface{}{"search": search, "matches": matches})
}

func (FilterTracer) Cleared() {
	logging.Trace("filter.clear", nil)
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) NoOp(id, label string) {
	logging.Trace("command.noop", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, requestID string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "request": requestID})
}
