package events

import "github.com/atomicstack/popup-context-menu/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Stop(reason string) {
	logging.Trace("app.stop", map[string]interface{}{"reason": reason})
}

func (AppTracer) Preload(path, title string, options int) {
	logging.Trace("app.preload", map[string]interface{}{"path": path, "title": title, "options": options})
}
