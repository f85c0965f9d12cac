package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lixenwraith/spherefocus/placement"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Network.Port != 5005 || cfg.Ring.AnglePerColumn != 45 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadOverridesOnlyGivenKeys(t *testing.T) {
	path := writeConfig(t, `
[ring]
angle_per_column = 30

[network]
port = 6006

[placement]
prompt = false
default_action = "split_bottom"

[keys]
navigate_left = ["Alt+h"]

[log]
level = "debug"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Ring.AnglePerColumn != 30 || cfg.Ring.Radius != 800 {
		t.Errorf("ring = %+v", cfg.Ring)
	}
	if cfg.Network.Port != 6006 || !cfg.Network.Enabled {
		t.Errorf("network = %+v", cfg.Network)
	}
	if len(cfg.Keys.NavigateRight) == 0 {
		t.Error("unset key binding lost its default")
	}
	if cfg.LogLevel() != log.DebugLevel {
		t.Errorf("LogLevel() = %v", cfg.LogLevel())
	}

	ec, err := cfg.EngineSettings()
	if err != nil {
		t.Fatalf("EngineSettings: %v", err)
	}
	if ec.Prompt || ec.DefaultAction != placement.SplitBottom {
		t.Errorf("placement settings = %v %v", ec.Prompt, ec.DefaultAction)
	}
	if ec.Geometry.AnglePerColumn != 30 || ec.Camera.AnglePerColumn != 30 {
		t.Errorf("angle not propagated: %+v %+v", ec.Geometry, ec.Camera)
	}
	if ec.TickInterval != 16*time.Millisecond {
		t.Errorf("TickInterval = %v", ec.TickInterval)
	}
	if nc := cfg.NetworkSettings(); nc.Addr() != "0.0.0.0:6006" {
		t.Errorf("network addr = %s", nc.Addr())
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown key", "[ring]\nradius = 800\nwobble = 3\n"},
		{"bad angle", "[ring]\nangle_per_column = 0\n"},
		{"bad easing", "[camera]\neasing = 1.5\n"},
		{"bad action", "[placement]\ndefault_action = \"diagonal\"\n"},
		{"bad level", "[log]\nlevel = \"loud\"\n"},
		{"bad binding", "[keys]\nsplit_top = [\"Hyper+Up\"]\n"},
		{"bad port", "[network]\nport = 70000\n"},
		{"bad volume", "[audio]\nvolume = 2.0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Load error = %v, want ErrInvalid", err)
			}
		})
	}

	if _, err := Load(writeConfig(t, "[ring\n")); err == nil {
		t.Error("Load accepted malformed TOML")
	}
}

func TestWriteRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Audio.Enabled = true
	cfg.Keys.CycleSplit = []string{"Ctrl+Meta+Up"}

	var buf bytes.Buffer
	if err := cfg.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.Contains(buf.String(), "[keys]") || !strings.Contains(buf.String(), "tick_interval_ms = 16") {
		t.Errorf("encoded config missing sections:\n%s", buf.String())
	}

	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !got.Audio.Enabled || len(got.Keys.CycleSplit) != 1 {
		t.Errorf("round trip lost values: %+v", got)
	}
}

func TestLogPath(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/tmp/state")
	cfg := Default()
	if got := cfg.LogPath(); got != "/tmp/state/spherefocus/spherefocus.log" {
		t.Errorf("LogPath() = %s", got)
	}
	cfg.Log.File = "/var/log/sf.log"
	if got := cfg.LogPath(); got != "/var/log/sf.log" {
		t.Errorf("LogPath() = %s", got)
	}
}
