package events

import "github.com/atomicstack/popupkit/internal/logging"

type KeysTracer struct{}

var Keys = KeysTracer{}

func (KeysTracer) Register(scope string, keys []string) {
	logging.Trace("keys.register", map[string]interface{}{"scope": scope, "keys": keys})
}

func (KeysTracer) Drop(scope string, bindings int) {
	logging.Trace("keys.drop", map[string]interface{}{"scope": scope, "bindings": bindings})
}

func (KeysTracer) Fire(scope, key string) {
	logging.Trace("keys.fire", map[string]interface{}{"scope": scope, "key": key})
}
