package engine

import (
	"github.com/lixenwraith/spherefocus/event"
)

// EventHandler processes a single event on the owner goroutine
type EventHandler func(ev event.Event)

// EventRouter dispatches queued events to registered handlers
//
// Architecture:
//   - Single-threaded dispatch on the owner goroutine
//   - Multiple handlers can register for the same event type
//   - Handlers are invoked in registration order
//   - Events are dispatched in queue order, each fully before the next
type EventRouter struct {
	handlers map[event.EventType][]EventHandler
	queue    *event.EventQueue
}

// NewEventRouter creates a router attached to the given queue
func NewEventRouter(queue *event.EventQueue) *EventRouter {
	return &EventRouter{
		handlers: make(map[event.EventType][]EventHandler),
		queue:    queue,
	}
}

// Register adds a handler for an event type
func (r *EventRouter) Register(t event.EventType, h EventHandler) {
	r.handlers[t] = append(r.handlers[t], h)
}

// Dispatch routes one event, returns false when no handler is registered
func (r *EventRouter) Dispatch(ev event.Event) bool {
	handlers := r.handlers[ev.Type]
	for _, h := range handlers {
		h(ev)
	}
	return len(handlers) > 0
}

// DispatchAll consumes all pending events and routes them
// Returns the number of events consumed
func (r *EventRouter) DispatchAll() int {
	events := r.queue.Consume()
	for _, ev := range events {
		r.Dispatch(ev)
	}
	return len(events)
}
