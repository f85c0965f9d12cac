package core

// WindowRef identifies a window owned by the host compositor
// The engine compares refs for equality only and never owns window lifetime
type WindowRef string

// NoWindow is the zero ref, used where no window is focused or pending
const NoWindow WindowRef = ""

// Valid reports whether the ref names a window
func (r WindowRef) Valid() bool {
	return r != NoWindow
}

// WindowState is the per-window state supplied by the compositor each tick
type WindowState struct {
	Maximized  bool
	Fullscreen bool
	Visible    bool
}

// Spatial reports whether the window may be displaced on the ring
// Maximized and fullscreen windows are always rendered flat
func (s WindowState) Spatial() bool {
	return !s.Maximized && !s.Fullscreen
}
