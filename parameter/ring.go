package parameter

// Ring geometry, abstract compositor-space units and degrees
const (
	// RingRadius is the virtual radius of the window ring
	RingRadius = 800.0

	// AnglePerColumn is the angular distance between adjacent columns
	AnglePerColumn = 45.0

	// OpacityFalloff is opacity lost per degree away from the camera center
	// 255 / 2.5 = 102 degrees until fully transparent
	OpacityFalloff = 2.5

	// OpacityMax is the fully opaque value
	OpacityMax = 255.0
)

// Vertical split geometry
const (
	// SplitOffset is the vertical distance of a top/bottom slot from the column center
	SplitOffset = 300.0

	// SplitScale is the vertical scale applied to a split slot
	SplitScale = 0.5
)
