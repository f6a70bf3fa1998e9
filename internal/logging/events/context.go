package events

import "github.com/atomicstack/popup-context-menu/internal/logging"

type ContextTracer struct{}

type CloseReason string

const (
	CloseReasonButton CloseReason = "button"
	CloseReasonEscape CloseReason = "escape"
)

var Context = ContextTracer{}

func (ContextTracer) Show(title string, options int, deferred bool) {
	logging.Trace("context.show", map[string]interface{}{"title": title, "options": options, "deferred": deferred})
}

func (ContextTracer) Apply(title, position string, visible int) {
	logging.Trace("context.apply", map[string]interface{}{"title": title, "position": position, "visible": visible})
}

func (ContextTracer) Hide() {
	logging.Trace("context.hide", nil)
}

func (ContextTracer) Close(reason CloseReason) {
	logging.Trace("context.close", map[string]interface{}{"reason": string(reason)})
}

func (ContextTracer) CloseSuppressed(reason CloseReason) {
	logging.Trace("context.close.suppressed", map[string]interface{}{"reason": string(reason)})
}

func (ContextTracer) Back(parent string) {
	logging.Trace("context.back", map[string]interface{}{"parent": parent})
}

func (ContextTracer) Click(key, label string, submenu bool) {
	logging.Trace("context.click", map[string]interface{}{"key": key, "label": label, "submenu": submenu})
}
