// Package ui contains the Bubble Tea program that demonstrates the menu
// primitives. The Model owns one menu.Tree built from a menu definition and
// focuses on message orchestration; rendering, hit-testing and animation live
// in dedicated helpers.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages. Each tea.Msg
//     type with a handler in the typed registry is handled by a focused
//     function (keys, mouse, resizes, frames, selections). Everything else
//     is offered to the tree, which owns submenu entrance, hover-open timers
//     and type-ahead expiry.
//   - Key presses first pass the global bindings (internal/ui/keys.go) and
//     then go to the tree, which dispatches them to the key scope of the
//     active content.
//   - Mouse events are resolved against the same layout the view draws
//     (internal/ui/layout.go) and handed to the tree as pointer hits.
//
// Animation:
//   - Every mounted content is tracked through an animator, the node its
//     presence machine watches. Opening plays "expand" and closing plays
//     "collapse"; a closing content stays on screen until its collapse ends.
//   - While anything is animating or deferred work is queued, finishUpdate
//     keeps exactly one frame tick in flight. Each frame steps the animators
//     and flushes the shared tick queue.
package ui
