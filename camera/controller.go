// Package camera holds the ring camera yaw and eases it toward its target.
//
// Yaw is in degrees and never normalized. Navigation across the wrap point
// accumulates large positive or negative values; only the difference between
// a column angle and the current yaw reaches the renderer.
package camera

import (
	"math"

	"github.com/lixenwraith/spherefocus/core"
	"github.com/lixenwraith/spherefocus/layout"
	"github.com/lixenwraith/spherefocus/parameter"
)

// Config controls camera motion
type Config struct {
	AnglePerColumn float64
	Easing         float64 // fraction of remaining distance covered per tick, (0, 1]
	SnapThreshold  float64 // remaining distance at which yaw snaps to target
}

// DefaultConfig returns the stock camera settings
func DefaultConfig() Config {
	return Config{
		AnglePerColumn: parameter.AnglePerColumn,
		Easing:         parameter.CameraEasing,
		SnapThreshold:  parameter.CameraSnapThreshold,
	}
}

// Controller tracks current and target yaw
type Controller struct {
	cfg     Config
	current float64
	target  float64
}

// NewController creates a controller at yaw 0
func NewController(cfg Config) *Controller {
	if cfg.Easing <= 0 || cfg.Easing > 1 {
		cfg.Easing = parameter.CameraEasing
	}
	if cfg.SnapThreshold < 0 {
		cfg.SnapThreshold = parameter.CameraSnapThreshold
	}
	return &Controller{cfg: cfg}
}

// Yaw returns the current yaw used for rendering
func (c *Controller) Yaw() float64 {
	return c.current
}

// Target returns the yaw the camera is moving toward
func (c *Controller) Target() float64 {
	return c.target
}

// SetTarget overrides the target yaw
func (c *Controller) SetTarget(yaw float64) {
	c.target = yaw
}

// Converged reports whether the camera has reached its target
func (c *Controller) Converged() bool {
	return c.current == c.target
}

// Reset returns both yaws to 0
func (c *Controller) Reset() {
	c.current = 0
	c.target = 0
}

// Tick advances current yaw toward target by one easing step
func (c *Controller) Tick() {
	diff := c.target - c.current
	if math.Abs(diff) > c.cfg.SnapThreshold {
		c.current += diff * c.cfg.Easing
	} else {
		c.current = c.target
	}
}

// OnFocusChanged aims the camera at the column holding ref
// No-op when ref is not on the ring
func (c *Controller) OnFocusChanged(ring *layout.Ring, ref core.WindowRef) bool {
	idx := ring.FindColumnIndexOf(ref)
	if idx == layout.NotFound {
		return false
	}
	c.target = float64(idx) * c.cfg.AnglePerColumn
	return true
}

// OnNavigate aims the camera at the neighboring column in direction (-1 or +1), wrapping around the ring
// Returns the window to activate: the primary window of the new column
// No-op when nothing on the ring is focused
func (c *Controller) OnNavigate(ring *layout.Ring, focused core.WindowRef, direction int) (core.WindowRef, bool) {
	n := ring.Len()
	cur := ring.FindColumnIndexOf(focused)
	if cur == layout.NotFound || n == 0 {
		return core.NoWindow, false
	}

	next := ((cur+direction)%n + n) % n
	c.target = float64(next) * c.cfg.AnglePerColumn

	col, _ := ring.Column(next)
	return col.Primary(), true
}

// OnCycleSplitFocus returns the window sharing the focused window's split column
func (c *Controller) OnCycleSplitFocus(ring *layout.Ring, focused core.WindowRef) (core.WindowRef, bool) {
	col, ok := ring.Column(ring.FindColumnIndexOf(focused))
	if !ok {
		return core.NoWindow, false
	}
	return col.Other(focused)
}
