package events

import "github.com/atomicstack/popupkit/internal/logging"

type ScopeTracer struct{}

var Scope = ScopeTracer{}

func (ScopeTracer) Missing(family string) {
	logging.Trace("scope.missing", map[string]interface{}{"family": family})
}
