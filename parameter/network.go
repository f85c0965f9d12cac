package parameter

import "time"

// UDP command channel
const (
	// CommandPort is the default UDP port for JSON commands
	CommandPort = 5005

	// CommandBindAddress listens on all IPv4 interfaces
	CommandBindAddress = "0.0.0.0"

	// CommandReadBuffer is the max datagram size read per packet
	CommandReadBuffer = 2048

	// CommandReadDeadline lets the read loop observe shutdown between packets
	CommandReadDeadline = 500 * time.Millisecond
)
