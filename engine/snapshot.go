package engine

import (
	"github.com/lixenwraith/spherefocus/core"
	"github.com/lixenwraith/spherefocus/layout"
	"github.com/lixenwraith/spherefocus/placement"
)

// Snapshot is an immutable copy of engine state for readers off the owner goroutine
type Snapshot struct {
	Columns   []layout.Column
	Yaw       float64
	TargetYaw float64
	State     placement.State
	Pending   core.WindowRef
	Backlog   int
	Focused   core.WindowRef
}

// ColumnOf returns the column index holding ref, layout.NotFound if absent
func (s *Snapshot) ColumnOf(ref core.WindowRef) int {
	for i, col := range s.Columns {
		if _, ok := col.SlotOf(ref); ok {
			return i
		}
	}
	return layout.NotFound
}

// Snapshot returns the state published after the last processed event or tick
func (e *Engine) Snapshot() *Snapshot {
	return e.snapshot.Load()
}

// publish refreshes the snapshot and gauges
// Owner-only
func (e *Engine) publish() {
	s := &Snapshot{
		Columns:   e.ring.Columns(),
		Yaw:       e.camera.Yaw(),
		TargetYaw: e.camera.Target(),
		State:     e.machine.State(),
		Pending:   e.machine.Pending(),
		Backlog:   len(e.machine.Backlog()),
		Focused:   e.focused,
	}
	e.snapshot.Store(s)

	e.metrics.columns.Store(int64(len(s.Columns)))
	e.metrics.windows.Store(int64(e.ring.WindowCount()))
	e.metrics.yaw.Set(s.Yaw)
	e.metrics.pending.Store(string(s.Pending))
}
