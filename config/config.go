// Package config loads the TOML configuration file and maps it onto the
// settings of each service.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/lixenwraith/spherefocus/audio"
	"github.com/lixenwraith/spherefocus/camera"
	"github.com/lixenwraith/spherefocus/engine"
	"github.com/lixenwraith/spherefocus/input"
	"github.com/lixenwraith/spherefocus/network"
	"github.com/lixenwraith/spherefocus/parameter"
	"github.com/lixenwraith/spherefocus/placement"
	"github.com/lixenwraith/spherefocus/vmath"
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Ring      RingConfig        `toml:"ring"`
	Camera    CameraConfig      `toml:"camera"`
	Engine    EngineConfig      `toml:"engine"`
	Network   NetworkConfig     `toml:"network"`
	Placement PlacementConfig   `toml:"placement"`
	Keys      input.KeyBindings `toml:"keys"`
	Audio     AudioConfig       `toml:"audio"`
	Log       LogConfig         `toml:"log"`
}

type RingConfig struct {
	Radius         float64 `toml:"radius"`
	AnglePerColumn float64 `toml:"angle_per_column"` // degrees
	SplitOffset    float64 `toml:"split_offset"`
	SplitScale     float64 `toml:"split_scale"`
	OpacityFalloff float64 `toml:"opacity_falloff"` // opacity lost per degree off-center
}

type CameraConfig struct {
	Easing        float64 `toml:"easing"`
	SnapThreshold float64 `toml:"snap_threshold"`
}

type EngineConfig struct {
	TickIntervalMs int `toml:"tick_interval_ms"`
}

type NetworkConfig struct {
	Enabled    bool   `toml:"enabled"`
	Address    string `toml:"address"`
	Port       int    `toml:"port"`
	ReadBuffer int    `toml:"read_buffer"`
}

type PlacementConfig struct {
	Prompt        bool   `toml:"prompt"`
	DefaultAction string `toml:"default_action"`
}

type AudioConfig struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"`
}

type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file,omitempty"` // empty selects DefaultLogPath
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Ring: RingConfig{
			Radius:         parameter.RingRadius,
			AnglePerColumn: parameter.AnglePerColumn,
			SplitOffset:    parameter.SplitOffset,
			SplitScale:     parameter.SplitScale,
			OpacityFalloff: parameter.OpacityFalloff,
		},
		Camera: CameraConfig{
			Easing:        parameter.CameraEasing,
			SnapThreshold: parameter.CameraSnapThreshold,
		},
		Engine: EngineConfig{
			TickIntervalMs: int(parameter.TickInterval / time.Millisecond),
		},
		Network: NetworkConfig{
			Enabled:    true,
			Address:    parameter.CommandBindAddress,
			Port:       parameter.CommandPort,
			ReadBuffer: parameter.CommandReadBuffer,
		},
		Placement: PlacementConfig{
			Prompt:        true,
			DefaultAction: placement.NewColumnRight.String(),
		},
		Keys: input.DefaultKeyBindings(),
		Audio: AudioConfig{
			Enabled: false,
			Volume:  parameter.CueVolume,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/spherefocus/config.toml
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "spherefocus.toml"
	}
	return filepath.Join(dir, "spherefocus", "config.toml")
}

// DefaultLogPath returns $XDG_STATE_HOME/spherefocus/spherefocus.log
func DefaultLogPath() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "spherefocus", "spherefocus.log")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "state", "spherefocus", "spherefocus.log")
	}
	return filepath.Join(os.TempDir(), "spherefocus.log")
}

// Load reads path over the defaults
// A missing file yields the defaults; keys absent from the file keep their default value
func Load(path string) (Config, error) {
	cfg := Default()

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%w: unknown keys in %s: %s", ErrInvalid, path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges and parses key bindings
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.Ring.Radius > 0, "ring.radius must be positive, got %v", c.Ring.Radius)
	check(c.Ring.AnglePerColumn > 0 && c.Ring.AnglePerColumn <= 180, "ring.angle_per_column must be in (0, 180], got %v", c.Ring.AnglePerColumn)
	check(c.Ring.SplitScale > 0 && c.Ring.SplitScale <= 1, "ring.split_scale must be in (0, 1], got %v", c.Ring.SplitScale)
	check(c.Ring.OpacityFalloff >= 0, "ring.opacity_falloff must not be negative, got %v", c.Ring.OpacityFalloff)
	check(c.Camera.Easing > 0 && c.Camera.Easing <= 1, "camera.easing must be in (0, 1], got %v", c.Camera.Easing)
	check(c.Camera.SnapThreshold >= 0, "camera.snap_threshold must not be negative, got %v", c.Camera.SnapThreshold)
	check(c.Engine.TickIntervalMs > 0, "engine.tick_interval_ms must be positive, got %d", c.Engine.TickIntervalMs)
	check(c.Network.Port >= 0 && c.Network.Port <= 65535, "network.port out of range: %d", c.Network.Port)
	check(c.Network.ReadBuffer > 0, "network.read_buffer must be positive, got %d", c.Network.ReadBuffer)
	check(c.Audio.Volume >= 0 && c.Audio.Volume <= 1, "audio.volume must be in [0, 1], got %v", c.Audio.Volume)

	if _, err := placement.ParseAction(c.Placement.DefaultAction); err != nil {
		errs = append(errs, fmt.Errorf("%w: placement.default_action: %v", ErrInvalid, err))
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("%w: log.level: %v", ErrInvalid, err))
	}
	if _, err := c.Keys.Build(); err != nil {
		errs = append(errs, fmt.Errorf("%w: %v", ErrInvalid, err))
	}

	return errors.Join(errs...)
}

// Write encodes the configuration as TOML
func (c Config) Write(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return nil
}

// Save writes the configuration to path, creating parent directories
func Save(path string, c Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	if err := c.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// --- Service settings ---

// EngineSettings builds the engine settings; call Validate first
func (c Config) EngineSettings() (*engine.Config, error) {
	keys, err := c.Keys.Build()
	if err != nil {
		return nil, err
	}
	action, err := placement.ParseAction(c.Placement.DefaultAction)
	if err != nil {
		return nil, err
	}

	return &engine.Config{
		Geometry: vmath.Geometry{
			Radius:         c.Ring.Radius,
			AnglePerColumn: c.Ring.AnglePerColumn,
			OpacityFalloff: c.Ring.OpacityFalloff,
			SplitOffset:    c.Ring.SplitOffset,
			SplitScale:     c.Ring.SplitScale,
		},
		Camera: camera.Config{
			AnglePerColumn: c.Ring.AnglePerColumn,
			Easing:         c.Camera.Easing,
			SnapThreshold:  c.Camera.SnapThreshold,
		},
		TickInterval:  time.Duration(c.Engine.TickIntervalMs) * time.Millisecond,
		Prompt:        c.Placement.Prompt,
		DefaultAction: action,
		Keys:          keys,
	}, nil
}

// NetworkSettings builds the command listener settings
func (c Config) NetworkSettings() *network.Config {
	cfg := network.DefaultConfig()
	cfg.Enabled = c.Network.Enabled
	cfg.Address = c.Network.Address
	cfg.Port = c.Network.Port
	cfg.ReadBufferSize = c.Network.ReadBuffer
	return cfg
}

// AudioSettings builds the cue player settings
func (c Config) AudioSettings() *audio.Config {
	cfg := audio.DefaultConfig()
	cfg.Enabled = c.Audio.Enabled
	cfg.Volume = c.Audio.Volume
	return cfg
}

// LogLevel returns the parsed log level, info when unparseable
func (c Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// LogPath returns the configured log file or the default location
func (c Config) LogPath() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return DefaultLogPath()
}
