package events

import "github.com/atomicstack/tabdeck/internal/logging"

type UITracer struct{}

type PickerTracer struct{}

type ActionTracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Picker  = PickerTracer{}
	Action  = ActionTracer{}
	Command = CommandTracer{}
)

func (UITracer) Focus(panelID string) {
	logging.Trace("ui.focus", map[string]interface{}{"panel": panelID})
}

func (UITracer) Key(key string) {
	logging.Trace("ui.key", map[string]interface{}{"key": key})
}

func (UITracer) Resize(width, height int) {
	logging.Trace("ui.resize", map[string]interface{}{"width": width, "height": height})
}

func (UITracer) Scroll(tabID string, offset int) {
	logging.Trace("ui.scroll", map[string]interface{}{"tab": tabID, "offset": offset})
}

func (PickerTracer) Open(items int) {
	logging.Trace("picker.open", map[string]interface{}{"items": items})
}

func (PickerTracer) Close(reason string) {
	logging.Trace("picker.close", map[string]interface{}{"reason": reason})
}

func (PickerTracer) Filter(filter string, matches int) {
	logging.Trace("picker.filter", map[string]interface{}{"filter": filter, "matches": matches})
}

func (PickerTracer) Cursor(cursor int) {
	logging.Trace("picker.cursor", map[string]interface{}{"cursor": cursor})
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) NoOp(id, label string) {
	logging.Trace("command.noop", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}
