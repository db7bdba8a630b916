package events

import "github.com/atomicstack/tabdeck/internal/logging"

type DragTracer struct{}

var Drag = DragTracer{}

func (DragTracer) Transition(from, to, tabID, sourcePanelID string) {
	logging.Trace("drag.phase", map[string]interface{}{
		"from":   from,
		"to":     to,
		"tab":    tabID,
		"source": sourcePanelID,
	})
}

func (DragTracer) Hover(panelID string, index int) {
	logging.Trace("drag.hover", map[string]interface{}{"panel": panelID, "index": index})
}

func (DragTracer) Drop(kind, tabID, panelID string, index int) {
	logging.Trace("drag.drop", map[string]interface{}{
		"kind":  kind,
		"tab":   tabID,
		"panel": panelID,
		"index": index,
	})
}

func (DragTracer) Mismatch(types []string) {
	logging.Trace("drag.mismatch", map[string]interface{}{"types": types})
}
