package terminal

import (
	"math"

	"github.com/lixenwraith/spherefocus/vmath"
)

// Minimum projected box size, smaller boxes cannot hold a border and a title
const (
	minBoxW = 4
	minBoxH = 3
)

// Rect is a screen rectangle in cells
type Rect struct {
	X, Y, W, H int
}

// Viewport maps compositor units onto a cell area
// A window at the ring front fills a quarter of the width and three quarters of the height
type Viewport struct {
	W, H     int
	Geometry vmath.Geometry
}

// BaseSize returns the cell size of an untransformed window
func (v Viewport) BaseSize() (w, h int) {
	return max(v.W/4, minBoxW*3), max(v.H*3/4, minBoxH*2)
}

// Full returns the whole area, used for maximized and fullscreen windows
func (v Viewport) Full() Rect {
	return Rect{W: v.W, H: v.H}
}

// Project maps a window transform to its on-screen box
// Offset X spans half the width per ring radius; depth shrinks the box toward the ring back
// and rotation narrows it by the cosine of the facing angle
func (v Viewport) Project(t vmath.Transform) Rect {
	r := v.Geometry.Radius
	if r <= 0 {
		r = 1
	}

	depth := 1.0
	if d := r - t.Offset.Z; d > 0 {
		depth = r / d
	}
	face := math.Max(math.Abs(math.Cos(vmath.DegToRad(t.RotationY))), 0.25)

	bw, bh := v.BaseSize()
	w := max(int(math.Round(float64(bw)*t.ScaleX*depth*face)), minBoxW)
	h := max(int(math.Round(float64(bh)*t.ScaleY*depth)), minBoxH)

	// A full window spans two split offsets above and below its center
	ky := 0.0
	if v.Geometry.SplitOffset > 0 {
		ky = float64(bh) / (4 * v.Geometry.SplitOffset)
	}
	cx := float64(v.W)/2 + t.Offset.X*float64(v.W)/(2*r)
	cy := float64(v.H)/2 + t.Offset.Y*ky*depth

	return Rect{
		X: int(math.Round(cx - float64(w)/2)),
		Y: int(math.Round(cy - float64(h)/2)),
		W: w,
		H: h,
	}
}
