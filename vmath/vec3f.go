package vmath

import (
	"math"
)

// Vec3F is a float64 3D vector in compositor space
// X is right, Y is down, Z is toward the viewer
type Vec3F struct {
	X, Y, Z float64
}

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// DegToRad converts degrees to radians
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
