package engine

import (
	"github.com/lixenwraith/spherefocus/core"
)

// Tick advances the camera one easing step and runs a render pass
// Owner-only
func (e *Engine) Tick() {
	e.metrics.ticks.Add(1)
	e.camera.Tick()
	e.renderSafe()
	e.publish()
}

// renderSafe runs one render pass; a panic skips this frame and the next tick proceeds
func (e *Engine) renderSafe() {
	defer func() {
		if r := recover(); r != nil {
			e.metrics.renderRecovered.Add(1)
			e.logger.Debug("render pass recovered", "panic", r)
		}
	}()
	e.render()
}

// render pushes the projected transform of every visible window
// Maximized and fullscreen windows are kept flat; invisible or vanished windows are skipped
func (e *Engine) render() {
	yaw := e.camera.Yaw()
	seen := make(map[core.WindowRef]struct{}, len(e.rendered))

	for i, col := range e.ring.Columns() {
		for _, slot := range col.Slots {
			state, ok := e.compositor.WindowState(slot.Window)
			if !ok || !state.Visible {
				continue
			}
			if !state.Spatial() {
				e.compositor.ResetTransform(slot.Window)
				continue
			}
			e.compositor.SetTransform(slot.Window, e.cfg.Geometry.Place(i, yaw, slot.Split))
			seen[slot.Window] = struct{}{}
		}
	}

	// Windows that left the ring while alive get flattened once
	for ref := range e.rendered {
		if _, ok := seen[ref]; ok || e.ring.Contains(ref) {
			continue
		}
		if _, ok := e.compositor.WindowState(ref); ok {
			e.compositor.ResetTransform(ref)
		}
	}
	e.rendered = seen

	e.commit()
}

func (e *Engine) commit() {
	if c, ok := e.compositor.(Committer); ok {
		c.Commit()
	}
}
