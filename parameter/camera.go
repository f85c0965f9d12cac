package parameter

// Camera easing
// Each tick current yaw moves CameraEasing of the remaining distance toward the target
// Once the remaining distance is within CameraSnapThreshold it snaps to the target
const (
	CameraEasing        = 0.1
	CameraSnapThreshold = 0.1
)
