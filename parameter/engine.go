package parameter

import "time"

// Engine loop timing
const (
	// TickInterval is the render/camera tick cadence (~60 FPS)
	TickInterval = 16 * time.Millisecond

	// KeyReplyTimeout bounds how long the keyboard path waits for the owner loop
	// A key that cannot be answered in time is treated as not consumed
	KeyReplyTimeout = 50 * time.Millisecond
)

// Event queue limits
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 256

	// EventBufferMask is the bitmask for fast modulo operations (256 - 1)
	EventBufferMask = 255
)
