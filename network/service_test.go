package network

import (
	"context"
	"io"
	"net"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lixenwraith/spherefocus/input"
	"github.com/lixenwraith/spherefocus/placement"
)

type chanSink struct {
	ch chan input.Command
}

func (s *chanSink) Submit(cmd input.Command) bool {
	select {
	case s.ch <- cmd:
		return true
	default:
		return false
	}
}

func loopbackConfig(port int) *Config {
	cfg := DefaultConfig()
	cfg.Address = "127.0.0.1"
	cfg.Port = port
	cfg.ReadDeadline = 20 * time.Millisecond
	return cfg
}

func startService(t *testing.T, sink CommandSink, cfg *Config) *Service {
	t.Helper()
	svc := NewService(sink, log.New(io.Discard))
	if err := svc.Init(cfg); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := svc.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(func() { svc.Stop() })
	return svc
}

func TestServiceDeliversCommands(t *testing.T) {
	sink := &chanSink{ch: make(chan input.Command, 8)}
	svc := startService(t, sink, loopbackConfig(0))
	if !svc.IsRunning() {
		t.Fatal("service not running")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	// Garbage is ignored and does not stop the loop
	raw, err := net.Dial("udp", svc.LocalAddr())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	raw.Write([]byte("not json"))
	raw.Close()

	sends := []struct {
		req  Request
		want input.Command
	}{
		{Request{Cmd: CmdFocusNext}, input.Navigate(1)},
		{Request{Cmd: CmdFocusPrev}, input.Navigate(-1)},
		{Request{Cmd: CmdPlace, Action: "new_column_right"}, input.Place(placement.NewColumnRight)},
	}
	for _, s := range sends {
		if err := Send(ctx, svc.LocalAddr(), s.req); err != nil {
			t.Fatalf("Send(%v): %v", s.req, err)
		}
		select {
		case got := <-sink.ch:
			if got != s.want {
				t.Errorf("received %v, want %v", got, s.want)
			}
		case <-time.After(time.Second):
			t.Fatalf("no command received for %v", s.req)
		}
	}

	received, rejected := svc.transport.Stats()
	if received != 3 || rejected != 1 {
		t.Errorf("Stats() = %d, %d; want 3, 1", received, rejected)
	}
}

func TestServiceBindFailureDisables(t *testing.T) {
	occupied, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer occupied.Close()
	port := occupied.LocalAddr().(*net.UDPAddr).Port

	sink := &chanSink{ch: make(chan input.Command, 1)}
	svc := startService(t, sink, loopbackConfig(port))
	if svc.IsRunning() {
		t.Error("service running despite bind failure")
	}
	if svc.LocalAddr() != "" {
		t.Errorf("LocalAddr() = %q for disabled service", svc.LocalAddr())
	}
}

func TestServiceDisabled(t *testing.T) {
	cfg := loopbackConfig(0)
	cfg.Enabled = false
	svc := startService(t, &chanSink{ch: make(chan input.Command)}, cfg)
	if svc.IsRunning() {
		t.Error("disabled service is running")
	}
}

func TestServiceStopClosesSocket(t *testing.T) {
	sink := &chanSink{ch: make(chan input.Command, 1)}
	svc := startService(t, sink, loopbackConfig(0))
	addr := svc.LocalAddr()

	if err := svc.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if err := svc.Stop(); err != nil {
		t.Fatalf("second Stop: %v", err)
	}
	if svc.IsRunning() {
		t.Fatal("service running after Stop")
	}

	// Port is free again
	pc, err := net.ListenPacket("udp", addr)
	if err != nil {
		t.Fatalf("port not released: %v", err)
	}
	pc.Close()
}
