package engine

import (
	"time"

	"github.com/lixenwraith/spherefocus/camera"
	"github.com/lixenwraith/spherefocus/input"
	"github.com/lixenwraith/spherefocus/parameter"
	"github.com/lixenwraith/spherefocus/placement"
	"github.com/lixenwraith/spherefocus/vmath"
)

// Config holds engine tuning
type Config struct {
	Geometry vmath.Geometry
	Camera   camera.Config

	// TickInterval is the render and camera cadence
	TickInterval time.Duration

	// Prompt false places every new window with DefaultAction without asking
	Prompt bool

	// DefaultAction applies when prompting is off or the placement UI cannot be shown
	DefaultAction placement.Action

	// Keys resolves intercepted key presses, nil uses the stock bindings
	Keys *input.KeyTable
}

// DefaultConfig returns the stock engine settings
func DefaultConfig() *Config {
	return &Config{
		Geometry:      vmath.DefaultGeometry(),
		Camera:        camera.DefaultConfig(),
		TickInterval:  parameter.TickInterval,
		Prompt:        true,
		DefaultAction: placement.NewColumnRight,
	}
}

func (c *Config) normalized() *Config {
	out := *c
	if out.TickInterval <= 0 {
		out.TickInterval = parameter.TickInterval
	}
	if !out.DefaultAction.Valid() {
		out.DefaultAction = placement.NewColumnRight
	}
	if out.Keys == nil {
		out.Keys = input.DefaultKeyTable()
	}
	// Camera targets and projection must agree on column spacing
	out.Camera.AnglePerColumn = out.Geometry.AnglePerColumn
	return &out
}
