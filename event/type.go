package event

import (
	"fmt"

	"github.com/lixenwraith/spherefocus/core"
	"github.com/lixenwraith/spherefocus/input"
)

// EventType represents the kind of inbound engine event
type EventType uint8

const (
	// EventNone is the zero value and is ignored by the consumer
	EventNone EventType = iota

	// EventWindowCreated reports a new top-level window
	// Producer: compositor | Payload: Window
	EventWindowCreated

	// EventWindowDestroyed reports a window that no longer exists
	// Producer: compositor | Payload: Window
	EventWindowDestroyed

	// EventFocusChanged reports the compositor's new focused window
	// Producer: compositor | Payload: Window
	EventFocusChanged

	// EventCommand carries a decoded navigation or placement command
	// Producer: network listener, placement popup | Payload: Command
	EventCommand
)

var eventTypeNames = [...]string{
	EventNone:            "none",
	EventWindowCreated:   "window_created",
	EventWindowDestroyed: "window_destroyed",
	EventFocusChanged:    "focus_changed",
	EventCommand:         "command",
}

func (t EventType) String() string {
	if int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return fmt.Sprintf("event(%d)", uint8(t))
}

// Event is a single queued engine input
// Only the field named by Type is meaningful
type Event struct {
	Type    EventType
	Window  core.WindowRef
	Command input.Command
}

// WindowCreated builds a window creation event
func WindowCreated(ref core.WindowRef) Event {
	return Event{Type: EventWindowCreated, Window: ref}
}

// WindowDestroyed builds a window removal event
func WindowDestroyed(ref core.WindowRef) Event {
	return Event{Type: EventWindowDestroyed, Window: ref}
}

// FocusChanged builds a focus change event
func FocusChanged(ref core.WindowRef) Event {
	return Event{Type: EventFocusChanged, Window: ref}
}

// CommandEvent wraps a command for queued dispatch
func CommandEvent(cmd input.Command) Event {
	return Event{Type: EventCommand, Command: cmd}
}

func (e Event) String() string {
	if e.Type == EventCommand {
		return fmt.Sprintf("%s(%s)", e.Type, e.Command)
	}
	return fmt.Sprintf("%s(%s)", e.Type, e.Window)
}
