package events

import "github.com/atomicstack/popupkit/internal/logging"

type SubmenuTracer struct{}

var Submenu = SubmenuTracer{}

func (SubmenuTracer) Store(anchor string, depth int) {
	logging.Trace("submenu.store", map[string]interface{}{"anchor": anchor, "depth": depth})
}

func (SubmenuTracer) Pop(anchor string, depth int) {
	logging.Trace("submenu.pop", map[string]interface{}{"anchor": anchor, "depth": depth})
}

func (SubmenuTracer) CloseLast(anchor string) {
	logging.Trace("submenu.close-last", map[string]interface{}{"anchor": anchor})
}

func (SubmenuTracer) Discard(anchor string, removed int) {
	logging.Trace("submenu.discard", map[string]interface{}{"anchor": anchor, "removed": removed})
}

func (SubmenuTracer) Clear(removed int) {
	logging.Trace("submenu.clear", map[string]interface{}{"removed": removed})
}
