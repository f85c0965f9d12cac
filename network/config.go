package network

import (
	"net"
	"strconv"
	"time"

	"github.com/lixenwraith/spherefocus/parameter"
)

// Config holds command listener configuration
type Config struct {
	// Enabled false leaves the listener unbound
	Enabled bool

	// Address and Port to bind
	Address string
	Port    int

	// ReadBufferSize is the largest datagram accepted; longer payloads are truncated and fail to decode
	ReadBufferSize int

	// ReadDeadline bounds each blocking read so the loop observes Stop
	ReadDeadline time.Duration
}

// DefaultConfig returns the stock listener settings
func DefaultConfig() *Config {
	return &Config{
		Enabled:        true,
		Address:        parameter.CommandBindAddress,
		Port:           parameter.CommandPort,
		ReadBufferSize: parameter.CommandReadBuffer,
		ReadDeadline:   parameter.CommandReadDeadline,
	}
}

// Addr returns the host:port bind address
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Address, strconv.Itoa(c.Port))
}

func (c *Config) withDefaults() *Config {
	out := *c
	if out.ReadBufferSize <= 0 {
		out.ReadBufferSize = parameter.CommandReadBuffer
	}
	if out.ReadDeadline <= 0 {
		out.ReadDeadline = parameter.CommandReadDeadline
	}
	return &out
}
