package events

import "github.com/atomicstack/popupkit/internal/logging"

type MenuTracer struct{}

var Menu = MenuTracer{}

func (MenuTracer) Mount(contentID string, submenu bool) {
	logging.Trace("menu.mount", map[string]interface{}{"content": contentID, "submenu": submenu})
}

func (MenuTracer) Unmount(contentID string, submenu bool) {
	logging.Trace("menu.unmount", map[string]interface{}{"content": contentID, "submenu": submenu})
}

func (MenuTracer) Focus(contentID, itemID string, index int) {
	logging.Trace("menu.focus", map[string]interface{}{"content": contentID, "item": itemID, "index": index})
}

func (MenuTracer) Open(scopeID string, open bool) {
	logging.Trace("menu.open", map[string]interface{}{"scope": scopeID, "open": open})
}

func (MenuTracer) Select(itemID, label string, closing bool) {
	logging.Trace("menu.select", map[string]interface{}{"item": itemID, "label": label, "close": closing})
}

func (MenuTracer) Entrance(triggerID string, stored bool) {
	logging.Trace("menu.entrance", map[string]interface{}{"trigger": triggerID, "stored": stored})
}

func (MenuTracer) Dismiss(contentID, origin string, closing bool) {
	logging.Trace("menu.dismiss", map[string]interface{}{"content": contentID, "origin": origin, "close": closing})
}

func (MenuTracer) TypeAhead(contentID, query string, index int) {
	logging.Trace("menu.typeahead", map[string]interface{}{"content": contentID, "query": query, "index": index})
}
