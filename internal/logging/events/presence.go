package events

import "github.com/atomicstack/popupkit/internal/logging"

type PresenceTracer struct{}

var Presence = PresenceTracer{}

func (PresenceTracer) Transition(name, from, event, to string) {
	logging.Trace("presence.transition", map[string]interface{}{
		"name":  name,
		"from":  from,
		"event": event,
		"to":    to,
	})
}

func (PresenceTracer) Animation(name, kind, animation string) {
	logging.Trace("presence.animation", map[string]interface{}{
		"name":      name,
		"kind":      kind,
		"animation": animation,
	})
}

func (PresenceTracer) Attach(name string, attached bool) {
	logging.Trace("presence.attach", map[string]interface{}{"name": name, "attached": attached})
}
