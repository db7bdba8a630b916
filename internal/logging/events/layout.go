package events

import "github.com/atomicstack/tabdeck/internal/logging"

type LayoutTracer struct{}

var Layout = LayoutTracer{}

func (LayoutTracer) Apply(op, panelID, tabID string, version uint64) {
	logging.Trace("layout.apply", map[string]interface{}{
		"op":      op,
		"panel":   panelID,
		"tab":     tabID,
		"version": version,
	})
}

func (LayoutTracer) Noop(op, panelID, tabID string) {
	logging.Trace("layout.noop", map[string]interface{}{"op": op, "panel": panelID, "tab": tabID})
}

func (LayoutTracer) Reject(op string, err error) {
	if err == nil {
		return
	}
	logging.Trace("layout.reject", map[string]interface{}{"op": op, "error": err.Error()})
}

// Fallback records a recovery where one operation was replaced by another.
func (LayoutTracer) Fallback(from, to string, err error) {
	payload := map[string]interface{}{"from": from, "to": to}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("layout.fallback", payload)
}
