// Package layout owns the column model: the ordered ring of columns and the
// slots holding windows within them.
//
// Invariants held after every operation:
//   - a window appears in at most one slot across the ring
//   - a column holds one full slot, or exactly one top and one bottom slot
//   - empty columns do not exist; removing a column's last window removes the column
//
// Column indices shift on insert and remove. Callers re-resolve indices with
// FindColumnIndexOf after any mutation instead of caching them.
package layout

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/spherefocus/core"
)

var (
	// ErrIndexOutOfRange is returned when an insert or split index is outside the ring
	ErrIndexOutOfRange = errors.New("column index out of range")

	// ErrDuplicateWindow is returned when a window is already placed on the ring
	ErrDuplicateWindow = errors.New("window already placed")

	// ErrInvalidWindow is returned for the zero WindowRef
	ErrInvalidWindow = errors.New("invalid window ref")
)

// NotFound is returned by FindColumnIndexOf when the window is not on the ring
const NotFound = -1

// Slot pairs a window with its vertical placement in a column
type Slot struct {
	Window core.WindowRef
	Split  core.SplitKind
}

// Column is one navigation unit on the ring holding one or two slots
type Column struct {
	Slots []Slot
}

// Primary returns the column's first window, the activation target for navigation
func (c Column) Primary() core.WindowRef {
	if len(c.Slots) == 0 {
		return core.NoWindow
	}
	return c.Slots[0].Window
}

// Split reports whether the column holds a top/bottom pair
func (c Column) Split() bool {
	return len(c.Slots) == 2
}

// Other returns the window sharing a split column with ref
func (c Column) Other(ref core.WindowRef) (core.WindowRef, bool) {
	if len(c.Slots) != 2 {
		return core.NoWindow, false
	}
	switch ref {
	case c.Slots[0].Window:
		return c.Slots[1].Window, true
	case c.Slots[1].Window:
		return c.Slots[0].Window, true
	}
	return core.NoWindow, false
}

// SlotOf returns the slot holding ref
func (c Column) SlotOf(ref core.WindowRef) (Slot, bool) {
	for _, s := range c.Slots {
		if s.Window == ref {
			return s, true
		}
	}
	return Slot{}, false
}

func (c Column) clone() Column {
	slots := make([]Slot, len(c.Slots))
	copy(slots, c.Slots)
	return Column{Slots: slots}
}

// Ring is the ordered sequence of columns
// Ring index is the sequence position; it is linear for angle computation and
// wrapped only for navigation neighbors
// Not safe for concurrent use: the engine owner goroutine is the only mutator
type Ring struct {
	columns []Column
}

// NewRing creates an empty ring
func NewRing() *Ring {
	return &Ring{}
}

// Rebuild replaces the ring with one full column per window, in the given order
// Duplicate and zero refs are skipped
func (r *Ring) Rebuild(refs []core.WindowRef) {
	r.columns = r.columns[:0]
	for _, ref := range refs {
		if !ref.Valid() || r.Contains(ref) {
			continue
		}
		r.columns = append(r.columns, Column{Slots: []Slot{{Window: ref, Split: core.SplitFull}}})
	}
}

// Len returns the column count
func (r *Ring) Len() int {
	return len(r.columns)
}

// WindowCount returns the number of placed windows
func (r *Ring) WindowCount() int {
	n := 0
	for _, c := range r.columns {
		n += len(c.Slots)
	}
	return n
}

// Column returns a copy of the column at index
func (r *Ring) Column(index int) (Column, bool) {
	if index < 0 || index >= len(r.columns) {
		return Column{}, false
	}
	return r.columns[index].clone(), true
}

// Columns returns a deep copy of all columns in ring order
func (r *Ring) Columns() []Column {
	out := make([]Column, len(r.columns))
	for i, c := range r.columns {
		out[i] = c.clone()
	}
	return out
}

// Windows returns every placed window in ring order, top before bottom
func (r *Ring) Windows() []core.WindowRef {
	out := make([]core.WindowRef, 0, len(r.columns))
	for _, c := range r.columns {
		for _, s := range c.Slots {
			out = append(out, s.Window)
		}
	}
	return out
}

// FindColumnIndexOf returns the index of the column holding ref, or NotFound
func (r *Ring) FindColumnIndexOf(ref core.WindowRef) int {
	if !ref.Valid() {
		return NotFound
	}
	for i, c := range r.columns {
		for _, s := range c.Slots {
			if s.Window == ref {
				return i
			}
		}
	}
	return NotFound
}

// Contains reports whether ref is placed on the ring
func (r *Ring) Contains(ref core.WindowRef) bool {
	return r.FindColumnIndexOf(ref) != NotFound
}

// InsertColumnAt inserts a new full column holding ref at index, shifting later columns right
// Valid indices are [0, Len()]
func (r *Ring) InsertColumnAt(index int, ref core.WindowRef) error {
	if err := r.checkNew(ref); err != nil {
		return err
	}
	if index < 0 || index > len(r.columns) {
		return fmt.Errorf("insert at %d of %d: %w", index, len(r.columns), ErrIndexOutOfRange)
	}

	col := Column{Slots: []Slot{{Window: ref, Split: core.SplitFull}}}
	r.columns = append(r.columns, Column{})
	copy(r.columns[index+1:], r.columns[index:])
	r.columns[index] = col
	return nil
}

// SplitInto places ref in the column at index at the preferred half
// A single-slot column becomes a pair: the existing window takes the opposite half
// A column that is already split overflows into a new column at index+1
func (r *Ring) SplitInto(index int, ref core.WindowRef, preferred core.SplitKind) error {
	if err := r.checkNew(ref); err != nil {
		return err
	}
	if index < 0 || index >= len(r.columns) {
		return fmt.Errorf("split column %d of %d: %w", index, len(r.columns), ErrIndexOutOfRange)
	}
	if preferred != core.SplitTop && preferred != core.SplitBottom {
		preferred = core.SplitTop
	}

	col := &r.columns[index]
	if len(col.Slots) >= 2 {
		return r.InsertColumnAt(index+1, ref)
	}

	col.Slots[0].Split = preferred.Opposite()
	newSlot := Slot{Window: ref, Split: preferred}
	if preferred == core.SplitTop {
		col.Slots = []Slot{newSlot, col.Slots[0]}
	} else {
		col.Slots = append(col.Slots, newSlot)
	}
	return nil
}

// RemoveWindow removes ref from its slot
// The remaining window of a split column becomes full; an emptied column is removed
// Returns the index the window was removed from, or NotFound
func (r *Ring) RemoveWindow(ref core.WindowRef) int {
	index := r.FindColumnIndexOf(ref)
	if index == NotFound {
		return NotFound
	}

	col := &r.columns[index]
	kept := col.Slots[:0]
	for _, s := range col.Slots {
		if s.Window != ref {
			kept = append(kept, s)
		}
	}
	col.Slots = kept

	switch len(col.Slots) {
	case 0:
		r.columns = append(r.columns[:index], r.columns[index+1:]...)
	case 1:
		col.Slots[0].Split = core.SplitFull
	}
	return index
}

// Validate checks every ring invariant and returns the first violation
func (r *Ring) Validate() error {
	seen := make(map[core.WindowRef]int)
	for i, c := range r.columns {
		switch len(c.Slots) {
		case 1:
			if c.Slots[0].Split != core.SplitFull {
				return fmt.Errorf("column %d: single slot has split %v", i, c.Slots[0].Split)
			}
		case 2:
			a, b := c.Slots[0].Split, c.Slots[1].Split
			if !(a == core.SplitTop && b == core.SplitBottom) && !(a == core.SplitBottom && b == core.SplitTop) {
				return fmt.Errorf("column %d: split pair is %v/%v", i, a, b)
			}
		default:
			return fmt.Errorf("column %d: %d slots", i, len(c.Slots))
		}
		for _, s := range c.Slots {
			if !s.Window.Valid() {
				return fmt.Errorf("column %d: %w", i, ErrInvalidWindow)
			}
			if prev, dup := seen[s.Window]; dup {
				return fmt.Errorf("window %s in columns %d and %d: %w", s.Window, prev, i, ErrDuplicateWindow)
			}
			seen[s.Window] = i
		}
	}
	return nil
}

func (r *Ring) checkNew(ref core.WindowRef) error {
	if !ref.Valid() {
		return ErrInvalidWindow
	}
	if r.Contains(ref) {
		return fmt.Errorf("window %s: %w", ref, ErrDuplicateWindow)
	}
	return nil
}
