package event

import (
	"sync/atomic"

	"github.com/lixenwraith/spherefocus/parameter"
)

// EventQueue is a bounded lock-free MPSC ring buffer for engine events
// Thread-Safety:
//   - Push: Lock-free CAS, multiple producers OK
//   - Consume: Single consumer (engine owner loop)
//   - Published flags prevent reading partial writes
//
// Overflow: the incoming event is rejected and counted; queued events are never overwritten
// so arrival order is preserved for everything that was accepted
type EventQueue struct {
	events    [parameter.EventQueueSize]Event
	published [parameter.EventQueueSize]atomic.Bool // True = slot fully written
	head      atomic.Uint64                         // Read index
	tail      atomic.Uint64                         // Write index (reserved)
	dropped   atomic.Uint64
	ready     chan struct{}
}

func NewEventQueue() *EventQueue {
	return &EventQueue{
		ready: make(chan struct{}, 1),
	}
}

// Push appends an event using lock-free CAS with published flags pattern
// Returns false when the queue is full. Safe for concurrent producers
func (eq *EventQueue) Push(ev Event) bool {
	for {
		currentTail := eq.tail.Load()
		if currentTail-eq.head.Load() >= parameter.EventQueueSize {
			eq.dropped.Add(1)
			return false
		}

		if eq.tail.CompareAndSwap(currentTail, currentTail+1) {
			idx := currentTail & parameter.EventBufferMask

			eq.events[idx] = ev
			eq.published[idx].Store(true) // MUST be after write

			select {
			case eq.ready <- struct{}{}:
			default:
			}
			return true
		}
	}
}

// Consume returns pending events in FIFO order and advances head
// Single-consumer design. Stops at the first slot whose writer has not finished,
// the remainder is returned by a later call
func (eq *EventQueue) Consume() []Event {
	currentHead := eq.head.Load()
	currentTail := eq.tail.Load()
	if currentTail == currentHead {
		return nil
	}

	result := make([]Event, 0, currentTail-currentHead)
	for i := currentHead; i < currentTail; i++ {
		idx := i & parameter.EventBufferMask
		if !eq.published[idx].Load() {
			break // Writer incomplete
		}
		result = append(result, eq.events[idx])
		eq.events[idx] = Event{}
		eq.published[idx].Store(false)
	}

	if len(result) == 0 {
		return nil
	}
	eq.head.Store(currentHead + uint64(len(result)))
	return result
}

// Ready signals that at least one event was pushed since the last receive
// A signal may be delivered for events already drained; consumers must tolerate empty Consume
func (eq *EventQueue) Ready() <-chan struct{} {
	return eq.ready
}

// Len returns approximate pending event count
func (eq *EventQueue) Len() int {
	head := eq.head.Load()
	tail := eq.tail.Load()
	if tail <= head {
		return 0
	}
	return int(tail - head)
}

// Dropped returns the number of events rejected because the queue was full
func (eq *EventQueue) Dropped() uint64 {
	return eq.dropped.Load()
}
