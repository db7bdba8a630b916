package events

import "github.com/atomicstack/tabdeck/internal/logging"

type ContentTracer struct{}

var Content = ContentTracer{}

func (ContentTracer) Load(tabID string, seq int) {
	logging.Trace("content.load", map[string]interface{}{"tab": tabID, "seq": seq})
}

func (ContentTracer) Stale(tabID string, seq, current int) {
	logging.Trace("content.stale", map[string]interface{}{"tab": tabID, "seq": seq, "current": current})
}

func (ContentTracer) Error(tabID string, err error) {
	if err == nil {
		return
	}
	logging.Trace("content.error", map[string]interface{}{"tab": tabID, "error": err.Error()})
}

func (ContentTracer) Changed(paths []string) {
	logging.Trace("content.changed", map[string]interface{}{"paths": paths})
}
