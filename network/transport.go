package network

import (
	"errors"
	"io"
	"net"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lixenwraith/spherefocus/input"
)

// Transport reads command datagrams from a UDP socket
// Delivery is best effort: no acknowledgment, no ordering across senders
type Transport struct {
	config *Config
	logger *log.Logger
	conn   net.PacketConn

	onCommand func(input.Command)

	received atomic.Uint64
	rejected atomic.Uint64

	running atomic.Bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewTransport creates a transport with the given configuration
func NewTransport(cfg *Config, logger *log.Logger) *Transport {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Transport{
		config: cfg.withDefaults(),
		logger: logger,
		stopCh: make(chan struct{}),
	}
}

// SetHandler configures the callback for decoded commands
// Called from the read goroutine
func (t *Transport) SetHandler(onCommand func(input.Command)) {
	t.onCommand = onCommand
}

// Start binds the socket and launches the read loop
func (t *Transport) Start() error {
	if !t.running.CompareAndSwap(false, true) {
		return nil
	}

	conn, err := net.ListenPacket("udp", t.config.Addr())
	if err != nil {
		t.running.Store(false)
		return err
	}
	t.conn = conn

	t.wg.Add(1)
	go t.readLoop()

	return nil
}

// Stop closes the socket and waits for the read loop
// Datagrams arriving after Stop begins are dropped
func (t *Transport) Stop() error {
	if !t.running.CompareAndSwap(true, false) {
		return nil
	}

	close(t.stopCh)
	err := t.conn.Close()
	t.wg.Wait()

	if errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}

// IsRunning returns true while the socket is bound
func (t *Transport) IsRunning() bool {
	return t.running.Load()
}

// LocalAddr returns the bound address, nil before Start
func (t *Transport) LocalAddr() net.Addr {
	if t.conn == nil {
		return nil
	}
	return t.conn.LocalAddr()
}

// Stats returns decoded and rejected datagram counts
func (t *Transport) Stats() (received, rejected uint64) {
	return t.received.Load(), t.rejected.Load()
}

func (t *Transport) readLoop() {
	defer t.wg.Done()

	buf := make([]byte, t.config.ReadBufferSize)
	for {
		select {
		case <-t.stopCh:
			return
		default:
		}

		t.conn.SetReadDeadline(time.Now().Add(t.config.ReadDeadline))
		n, addr, err := t.conn.ReadFrom(buf)
		if err != nil {
			if errors.Is(err, os.ErrDeadlineExceeded) {
				continue
			}
			if errors.Is(err, net.ErrClosed) || !t.running.Load() {
				return
			}
			// Transient read fault, keep listening
			t.logger.Warn("command read failed", "err", err)
			continue
		}

		t.handle(buf[:n], addr)
	}
}

func (t *Transport) handle(data []byte, from net.Addr) {
	cmd, err := Decode(data)
	if err != nil {
		t.rejected.Add(1)
		t.logger.Warn("command datagram ignored", "from", from, "err", err)
		return
	}

	t.received.Add(1)
	t.logger.Debug("command received", "from", from, "cmd", cmd)
	if t.onCommand != nil && t.running.Load() {
		t.onCommand(cmd)
	}
}
