package events

import "github.com/atomicstack/tabdeck/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Exit(err error) {
	payload := map[string]interface{}{}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("app.exit", payload)
}

func (AppTracer) LayoutLoaded(source string, panels, tabs int) {
	logging.Trace("app.layout", map[string]interface{}{"source": source, "panels": panels, "tabs": tabs})
}
