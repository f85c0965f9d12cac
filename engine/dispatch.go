package engine

import (
	"github.com/lixenwraith/spherefocus/audio"
	"github.com/lixenwraith/spherefocus/core"
	"github.com/lixenwraith/spherefocus/event"
	"github.com/lixenwraith/spherefocus/input"
	"github.com/lixenwraith/spherefocus/layout"
	"github.com/lixenwraith/spherefocus/placement"
)

func (e *Engine) onWindowCreated(ev event.Event) {
	ref := ev.Window
	if e.ring.Contains(ref) {
		return
	}
	if !e.machine.WindowCreated(ref) {
		if e.machine.Tracks(ref) {
			e.logger.Debug("window queued for placement", "window", ref, "pending", e.machine.Pending())
		}
		return
	}
	e.prompt(ref)
}

func (e *Engine) onWindowDestroyed(ev event.Event) {
	ref := ev.Window

	if e.machine.Cancel(ref) {
		e.logger.Debug("pending window destroyed before placement", "window", ref)
		if e.ui != nil {
			e.ui.Dismiss()
		}
		e.advance()
	}

	if idx := e.ring.RemoveWindow(ref); idx != layout.NotFound {
		e.logger.Debug("window removed", "window", ref, "column", idx)
	}
	// The actor is gone, nothing to reset
	delete(e.rendered, ref)

	if e.focused == ref {
		e.focused = core.NoWindow
	}
	if e.anchor == ref {
		e.anchor = core.NoWindow
	}
	// Removal may shift the focused column
	e.camera.OnFocusChanged(e.ring, e.focusColumnRef())
}

func (e *Engine) onFocusChanged(ev event.Event) {
	e.setFocus(ev.Window)
}

// setFocus records the focused window and aims the camera at its column
// The last focused window on the ring is kept as the anchor for windows focused off the ring,
// such as a new window awaiting placement
func (e *Engine) setFocus(ref core.WindowRef) {
	e.focused = ref
	if e.camera.OnFocusChanged(e.ring, ref) {
		e.anchor = ref
	}
}

// focusColumnRef returns the window whose column anchors placement and camera aim
// Navigation uses e.focused alone
func (e *Engine) focusColumnRef() core.WindowRef {
	if e.ring.Contains(e.focused) {
		return e.focused
	}
	if e.ring.Contains(e.anchor) {
		return e.anchor
	}
	return core.NoWindow
}

func (e *Engine) onCommand(ev event.Event) {
	e.dispatch(ev.Command)
}

// handleKey resolves an intercepted key and dispatches its command
// Returns whether the key is consumed
func (e *Engine) handleKey(k input.Key) bool {
	cmd, consumed := e.cfg.Keys.Lookup(k, e.machine.Awaiting())
	if cmd.Valid() {
		e.dispatch(cmd)
		e.publish()
	}
	return consumed
}

// dispatch runs a command against the current state
// While a placement is pending only placement actions pass
func (e *Engine) dispatch(cmd input.Command) {
	if !cmd.Valid() {
		e.drop(cmd, "invalid")
		return
	}

	if e.machine.Awaiting() {
		if !cmd.AllowedWhileAwaiting() {
			e.drop(cmd, "placement pending")
			return
		}
		e.resolve(cmd.Action)
		return
	}

	switch cmd.Op {
	case input.OpNavigate:
		target, ok := e.camera.OnNavigate(e.ring, e.focused, cmd.Direction)
		if !ok {
			e.drop(cmd, "no focused column")
			return
		}
		e.activate(target)
		e.cue(audio.CueNavigate)

	case input.OpCycleSplit:
		other, ok := e.camera.OnCycleSplitFocus(e.ring, e.focused)
		if !ok {
			e.drop(cmd, "focused column not split")
			return
		}
		e.activate(other)

	case input.OpPlace:
		e.drop(cmd, "no pending window")
	}
}

// prompt asks the placement UI for a decision on the pending window
// Falls back to the default action when prompting is off or the UI fails
func (e *Engine) prompt(ref core.WindowRef) {
	if !e.cfg.Prompt || e.ui == nil {
		e.resolve(e.cfg.DefaultAction)
		return
	}
	if err := e.ui.Present(ref, placement.Actions[:]); err != nil {
		e.logger.Warn("placement prompt failed, using default", "window", ref, "action", e.cfg.DefaultAction, "err", err)
		e.resolve(e.cfg.DefaultAction)
		return
	}
	e.logger.Debug("awaiting placement", "window", ref)
	e.cue(audio.CuePrompt)
}

// resolve places the pending window and promotes the next backlogged one
func (e *Engine) resolve(action placement.Action) {
	focusIndex := e.ring.FindColumnIndexOf(e.focusColumnRef())
	ref, err := e.machine.Resolve(e.ring, focusIndex, action)
	if e.ui != nil && e.cfg.Prompt {
		e.ui.Dismiss()
	}

	if err != nil {
		e.logger.Warn("placement failed", "window", ref, "action", action, "err", err)
	} else {
		e.logger.Info("window placed", "window", ref, "action", action, "column", e.ring.FindColumnIndexOf(ref))
		e.cue(audio.CuePlaced)
		e.activate(ref)
	}

	e.advance()
}

func (e *Engine) advance() {
	if next, ok := e.machine.Advance(); ok {
		e.prompt(next)
	}
}

// activate focuses ref and aims the camera at it without waiting for the compositor echo
func (e *Engine) activate(ref core.WindowRef) {
	if _, ok := e.compositor.WindowState(ref); !ok {
		return
	}
	e.setFocus(ref)
	e.compositor.Activate(ref)
}

func (e *Engine) drop(cmd input.Command, reason string) {
	e.metrics.commandsDropped.Add(1)
	e.logger.Debug("command dropped", "cmd", cmd, "reason", reason)
}

func (e *Engine) cue(c audio.Cue) {
	if e.cues != nil {
		e.cues.Play(c)
	}
}
