// Package placement decides where a newly detected window lands on the ring.
//
// The machine is Idle until a window is created, then AwaitingPlacement until
// one of the four actions resolves it. Only one window is ever pending; windows
// created while a decision is open wait in a FIFO backlog and are promoted one
// at a time.
package placement

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/spherefocus/core"
	"github.com/lixenwraith/spherefocus/layout"
)

// ErrNotAwaiting is returned when an action arrives with no pending window
var ErrNotAwaiting = errors.New("no placement pending")

// State is the placement lifecycle state
type State uint8

const (
	StateIdle State = iota
	StateAwaitingPlacement
)

func (s State) String() string {
	if s == StateAwaitingPlacement {
		return "awaiting_placement"
	}
	return "idle"
}

// Machine tracks the pending window and the backlog behind it
type Machine struct {
	state   State
	pending core.WindowRef
	backlog []core.WindowRef
}

// NewMachine creates an idle machine
func NewMachine() *Machine {
	return &Machine{}
}

// State returns the current state
func (m *Machine) State() State {
	return m.state
}

// Awaiting reports whether a placement decision is open
func (m *Machine) Awaiting() bool {
	return m.state == StateAwaitingPlacement
}

// Pending returns the window awaiting placement, or NoWindow
func (m *Machine) Pending() core.WindowRef {
	return m.pending
}

// Backlog returns a copy of windows queued behind the pending one
func (m *Machine) Backlog() []core.WindowRef {
	out := make([]core.WindowRef, len(m.backlog))
	copy(out, m.backlog)
	return out
}

// Tracks reports whether ref is pending or backlogged
func (m *Machine) Tracks(ref core.WindowRef) bool {
	if ref == m.pending && ref.Valid() {
		return true
	}
	for _, b := range m.backlog {
		if b == ref {
			return true
		}
	}
	return false
}

// WindowCreated registers a new window
// Returns true when ref became the pending window and choices must be presented
func (m *Machine) WindowCreated(ref core.WindowRef) bool {
	if !ref.Valid() || m.Tracks(ref) {
		return false
	}
	if m.state == StateAwaitingPlacement {
		m.backlog = append(m.backlog, ref)
		return false
	}
	m.pending = ref
	m.state = StateAwaitingPlacement
	return true
}

// Resolve places the pending window on the ring according to action and returns to Idle
// focusIndex is the column of the focused window, or -1 when nothing on the ring has focus
// The pending window is cleared even when the ring rejects it, so a decision is never stuck
func (m *Machine) Resolve(ring *layout.Ring, focusIndex int, action Action) (core.WindowRef, error) {
	if m.state != StateAwaitingPlacement {
		return core.NoWindow, ErrNotAwaiting
	}
	if !action.Valid() {
		return core.NoWindow, fmt.Errorf("resolve %s: invalid action %v", m.pending, action)
	}

	ref := m.pending
	m.pending = core.NoWindow
	m.state = StateIdle

	if err := Place(ring, focusIndex, action, ref); err != nil {
		return ref, fmt.Errorf("place %s with %v: %w", ref, action, err)
	}
	return ref, nil
}

// Advance promotes the next backlogged window to pending
// Returns the new pending window and true when choices must be presented
func (m *Machine) Advance() (core.WindowRef, bool) {
	if m.state != StateIdle || len(m.backlog) == 0 {
		return core.NoWindow, false
	}
	ref := m.backlog[0]
	m.backlog = m.backlog[1:]
	m.pending = ref
	m.state = StateAwaitingPlacement
	return ref, true
}

// Cancel forgets a window destroyed before it was placed
// Returns true when the cancelled window was the pending one
func (m *Machine) Cancel(ref core.WindowRef) bool {
	if ref.Valid() && ref == m.pending {
		m.pending = core.NoWindow
		m.state = StateIdle
		return true
	}
	for i, b := range m.backlog {
		if b == ref {
			m.backlog = append(m.backlog[:i], m.backlog[i+1:]...)
			break
		}
	}
	return false
}

// Reset drops the pending window and the backlog
func (m *Machine) Reset() {
	m.state = StateIdle
	m.pending = core.NoWindow
	m.backlog = nil
}

// Place applies a placement action for ref relative to the focused column
// Total for every action and focus index: an unfocused split falls back to a new trailing column
func Place(ring *layout.Ring, focusIndex int, action Action, ref core.WindowRef) error {
	n := ring.Len()
	if focusIndex < 0 || focusIndex >= n {
		focusIndex = layout.NotFound
	}

	switch action {
	case NewColumnLeft:
		if focusIndex == layout.NotFound {
			return ring.InsertColumnAt(n, ref)
		}
		return ring.InsertColumnAt(focusIndex, ref)

	case NewColumnRight:
		if focusIndex == layout.NotFound {
			return ring.InsertColumnAt(n, ref)
		}
		return ring.InsertColumnAt(focusIndex+1, ref)

	case SplitTop, SplitBottom:
		if focusIndex == layout.NotFound {
			return ring.InsertColumnAt(n, ref)
		}
		kind := core.SplitTop
		if action == SplitBottom {
			kind = core.SplitBottom
		}
		return ring.SplitInto(focusIndex, ref, kind)
	}
	return fmt.Errorf("invalid action %v", action)
}
