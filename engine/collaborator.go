package engine

import (
	"github.com/lixenwraith/spherefocus/audio"
	"github.com/lixenwraith/spherefocus/core"
	"github.com/lixenwraith/spherefocus/placement"
	"github.com/lixenwraith/spherefocus/vmath"
)

// Compositor is the host window manager the engine lays out
// All methods are called from the engine owner goroutine only
type Compositor interface {
	// ListWindows returns the live top-level windows in creation order
	ListWindows() []core.WindowRef

	// Focused returns the currently focused window, core.NoWindow when none
	Focused() core.WindowRef

	// WindowState returns current window flags
	// ok is false when the window is gone or its actor was torn down
	WindowState(ref core.WindowRef) (state core.WindowState, ok bool)

	// Activate focuses and raises a window
	Activate(ref core.WindowRef)

	// SetTransform applies a spatial transform to a window actor
	SetTransform(ref core.WindowRef, t vmath.Transform)

	// ResetTransform restores a window actor to its flat, opaque state
	ResetTransform(ref core.WindowRef)
}

// Committer is implemented by compositors that batch transforms into frames
// Commit is called once after every render pass
type Committer interface {
	Commit()
}

// PlacementUI presents the four placement choices for a new window
// The decision arrives later through Engine.ChoosePlacement or a placement command
type PlacementUI interface {
	Present(ref core.WindowRef, choices []placement.Action) error
	Dismiss()
}

// CuePlayer plays short feedback sounds
type CuePlayer interface {
	Play(cue audio.Cue) bool
}
