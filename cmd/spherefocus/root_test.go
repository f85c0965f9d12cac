package main

import (
	"bytes"
	"context"
	"errors"
	"net"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lixenwraith/spherefocus/config"
	"github.com/lixenwraith/spherefocus/input"
	"github.com/lixenwraith/spherefocus/network"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestConfigDefault(t *testing.T) {
	out, err := execute(t, "config", "--default")
	if err != nil {
		t.Fatalf("config --default: %v", err)
	}
	for _, want := range []string{"[ring]", "angle_per_column", "[placement]", "default_action = \"new_column_right\"", "[keys]"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestConfigSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	if _, err := execute(t, "config", "--save", "-c", path); err != nil {
		t.Fatalf("config --save: %v", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load saved config: %v", err)
	}
	if cfg.Network.Port != config.Default().Network.Port {
		t.Errorf("saved port = %d", cfg.Network.Port)
	}

	out, err := execute(t, "config", "-c", path, "-v")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if !strings.Contains(out, `level = "debug"`) {
		t.Errorf("--verbose not reflected:\n%s", out)
	}
}

func TestConfigRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := config.Default()
	cfg.Ring.Radius = -1
	if err := config.Save(path, cfg); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, "config", "-c", path); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("config with bad radius = %v, want ErrInvalid", err)
	}
}

func TestSendDeliversDatagram(t *testing.T) {
	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer conn.Close()

	out, err := execute(t, "send", "move_focus", "--dir", "left", "--addr", conn.LocalAddr().String())
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if !strings.Contains(out, "sent move_focus") {
		t.Errorf("output = %q", out)
	}

	buf := make([]byte, 256)
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	n, _, err := conn.ReadFrom(buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	cmd, err := network.Decode(buf[:n])
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if cmd != input.Navigate(-1) {
		t.Errorf("decoded %v, want navigate left", cmd)
	}
}

func TestSendRejectsBadCommand(t *testing.T) {
	tests := []struct {
		args []string
		want error
	}{
		{[]string{"send", "spin"}, network.ErrUnknownCommand},
		{[]string{"send", "move_focus", "--dir", "sideways"}, network.ErrBadArgument},
		{[]string{"send", "place", "--action", "diagonal"}, network.ErrBadArgument},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			args := append(tt.args, "--addr", "127.0.0.1:1")
			if _, err := execute(t, args...); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRunFlagsApply(t *testing.T) {
	cmd := newRunCmd(&rootOptions{})
	if err := cmd.ParseFlags([]string{"--port", "6000", "--no-prompt", "--log-file", "/tmp/x.log"}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}

	cfg := config.Default()
	cfg.Audio.Enabled = true
	f := &runFlags{}
	f.port, f.noPrompt, f.logFile = 6000, true, "/tmp/x.log"
	f.apply(cmd, &cfg)

	if cfg.Network.Port != 6000 || cfg.Placement.Prompt || cfg.Log.File != "/tmp/x.log" {
		t.Errorf("flags not applied: %+v", cfg)
	}
	if !cfg.Network.Enabled {
		t.Error("network disabled without --no-network")
	}
	if !cfg.Audio.Enabled {
		t.Error("unset --audio overrode the config file")
	}
}
