package vmath

import (
	"math"

	"github.com/lixenwraith/spherefocus/core"
	"github.com/lixenwraith/spherefocus/parameter"
)

// Transform is the spatial state applied to one window actor
type Transform struct {
	Offset    Vec3F
	RotationY float64 // degrees
	Opacity   float64 // 0..255
	ScaleX    float64
	ScaleY    float64
}

// Identity is the flat, fully opaque transform used to restore a window
var Identity = Transform{Opacity: parameter.OpacityMax, ScaleX: 1, ScaleY: 1}

// IsIdentity reports whether t leaves the window untouched
func (t Transform) IsIdentity() bool {
	return t == Identity
}

// Geometry holds ring and split dimensions
// Yaw values are never normalized: only the difference between a column angle and the yaw matters
type Geometry struct {
	Radius         float64
	AnglePerColumn float64
	OpacityFalloff float64
	SplitOffset    float64
	SplitScale     float64
}

// DefaultGeometry returns the stock ring dimensions
func DefaultGeometry() Geometry {
	return Geometry{
		Radius:         parameter.RingRadius,
		AnglePerColumn: parameter.AnglePerColumn,
		OpacityFalloff: parameter.OpacityFalloff,
		SplitOffset:    parameter.SplitOffset,
		SplitScale:     parameter.SplitScale,
	}
}

// ColumnAngle returns the ring angle of a column in degrees, index is not wrapped
func (g Geometry) ColumnAngle(index int) float64 {
	return float64(index) * g.AnglePerColumn
}

// Project maps a column on the ring to its offset, rotation and opacity as seen from yaw
// The column at relative angle 0 sits at offset (0, 0, 0) facing the camera
func (g Geometry) Project(index int, yaw float64) Transform {
	rel := g.ColumnAngle(index) - yaw
	rad := DegToRad(rel)

	return Transform{
		Offset: Vec3F{
			X: math.Sin(rad) * g.Radius,
			Z: math.Cos(rad)*g.Radius - g.Radius,
		},
		RotationY: -rel,
		Opacity:   Clamp(parameter.OpacityMax-math.Abs(rel)*g.OpacityFalloff, 0, parameter.OpacityMax),
		ScaleX:    1,
		ScaleY:    1,
	}
}

// ProjectSplit returns the vertical offset and scale for a slot's split kind
func (g Geometry) ProjectSplit(kind core.SplitKind) (offsetY, scaleY float64) {
	switch kind {
	case core.SplitTop:
		return -g.SplitOffset, g.SplitScale
	case core.SplitBottom:
		return g.SplitOffset, g.SplitScale
	}
	return 0, 1
}

// Place combines the ring projection of a column with a slot's split
func (g Geometry) Place(index int, yaw float64, kind core.SplitKind) Transform {
	t := g.Project(index, yaw)
	t.Offset.Y, t.ScaleY = g.ProjectSplit(kind)
	return t
}

// Project uses the default geometry
func Project(index int, yaw float64) Transform {
	return DefaultGeometry().Project(index, yaw)
}

// ProjectSplit uses the default geometry
func ProjectSplit(kind core.SplitKind) (offsetY, scaleY float64) {
	return DefaultGeometry().ProjectSplit(kind)
}
