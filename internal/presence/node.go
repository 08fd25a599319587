package presence

// AnimationNone is the computed animation name of a node with nothing to play.
const AnimationNone = "none"

// FillForwards keeps the final animation frame on screen.
const FillForwards = "forwards"

// Style is the subset of a node's computed style the machine reads.
type Style struct {
	AnimationName string
	DisplayNone   bool
}

// AnimationEventType distinguishes animation lifecycle notifications.
type AnimationEventType int

const (
	AnimationStart AnimationEventType = iota
	AnimationEnded
	AnimationCancel
)

func (t AnimationEventType) String() string {
	switch t {
	case AnimationStart:
		return "start"
	case AnimationEnded:
		return "end"
	case AnimationCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// AnimationEvent is emitted by a Node when one of its animations changes
// phase. Target is the node the animation runs on; nodes forwarding events
// from descendants set it to the descendant.
type AnimationEvent struct {
	Type   AnimationEventType
	Name   string
	Target Node
}

// Node is the visual root the machine tracks.
type Node interface {
	ComputedStyle() Style
	Subscribe(fn func(AnimationEvent)) (unsubscribe func())
	SetFillMode(mode string)
}

// Scheduler defers work to the next frame.
type Scheduler interface {
	Defer(fn func()) (cancel func())
}
