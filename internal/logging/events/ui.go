package events

import "github.com/atomicstack/popupkit/internal/logging"

type UITracer struct{}

type ActionTracer struct{}

var (
	UI     = UITracer{}
	Action = ActionTracer{}
)

func (UITracer) Trigger(open bool) {
	logging.Trace("ui.trigger", map[string]interface{}{"open": open})
}

func (UITracer) Frame(active int, deferred int) {
	logging.Trace("ui.frame", map[string]interface{}{"active": active, "deferred": deferred})
}

func (UITracer) Pointer(kind string, x, y int, content, item string) {
	logging.Trace("ui.pointer", map[string]interface{}{
		"kind":    kind,
		"x":       x,
		"y":       y,
		"content": content,
		"item":    item,
	})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}
