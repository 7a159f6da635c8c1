package animator

// EventType distinguishes the completion events an Animator emits.
type EventType int

const (
	// EventLoopCompleted fires each time a repeating action wraps past the end of its clip.
	EventLoopCompleted EventType = iota

	// EventFinished fires once when a play-once action reaches the end of its clip.
	EventFinished
)

// String returns the event type name used in logs.
func (t EventType) String() string {
	switch t {
	case EventLoopCompleted:
		return "loop"
	case EventFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Event is delivered to listeners after an Update has advanced every action.
type Event struct {
	// Type is the kind of completion.
	Type EventType

	// Action is the action that completed.
	Action Action
}

// ClipName returns the name of the clip behind the event's action.
func (e Event) ClipName() string {
	if e.Action == nil || e.Action.Clip() == nil {
		return ""
	}
	return e.Action.Clip().Name
}

// Listener receives completion events synchronously from Update.
type Listener func(Event)
