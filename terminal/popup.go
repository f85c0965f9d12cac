package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/spherefocus/core"
	"github.com/lixenwraith/spherefocus/placement"
)

const popupWidth = 34

var popupStyle = tcell.StyleDefault.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite)

// popup is the modal placement prompt for one window
type popup struct {
	ref      core.WindowRef
	title    string
	choices  []placement.Action
	selected int
	buttons  []Rect // absolute, from the last draw
}

// Present opens the placement prompt for ref
// Implements engine.PlacementUI
func (d *Desktop) Present(ref core.WindowRef, choices []placement.Action) error {
	if len(choices) == 0 {
		return ErrNoChoices
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	w := d.find(ref)
	if w == nil {
		return fmt.Errorf("%w: %s", ErrUnknownWindow, ref)
	}
	d.popup = &popup{
		ref:     ref,
		title:   w.title,
		choices: append([]placement.Action(nil), choices...),
	}
	return nil
}

// Dismiss closes the placement prompt
// Implements engine.PlacementUI
func (d *Desktop) Dismiss() {
	d.mu.Lock()
	d.popup = nil
	d.mu.Unlock()
}

// Prompting reports the window the popup is open for
func (d *Desktop) Prompting() (core.WindowRef, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.popup == nil {
		return core.NoWindow, false
	}
	return d.popup.ref, true
}

// popupKey handles the popup's own keys: digits pick a choice, Enter picks the selection,
// Tab and Backtab move it; other keys continue to the engine
func (d *Desktop) popupKey(ev *tcell.EventKey) bool {
	d.mu.Lock()
	p := d.popup
	if p == nil {
		d.mu.Unlock()
		return false
	}

	choice := -1
	switch ev.Key() {
	case tcell.KeyEnter:
		choice = p.selected
	case tcell.KeyTab:
		p.selected = (p.selected + 1) % len(p.choices)
	case tcell.KeyBacktab:
		p.selected = (p.selected + len(p.choices) - 1) % len(p.choices)
	case tcell.KeyRune:
		n := int(ev.Rune() - '1')
		if n < 0 || n >= len(p.choices) {
			d.mu.Unlock()
			return false
		}
		choice = n
	default:
		d.mu.Unlock()
		return false
	}
	d.mu.Unlock()

	if choice >= 0 {
		d.choose(p, choice)
	}
	return true
}

func (d *Desktop) popupClick(x, y int) bool {
	d.mu.Lock()
	p := d.popup
	if p == nil {
		d.mu.Unlock()
		return false
	}
	choice := -1
	for i, b := range p.buttons {
		if x >= b.X && x < b.X+b.W && y >= b.Y && y < b.Y+b.H {
			choice = i
			break
		}
	}
	d.mu.Unlock()

	if choice < 0 {
		return false
	}
	d.choose(p, choice)
	return true
}

// choose hands the decision to the engine, which dismisses the popup once placed
func (d *Desktop) choose(p *popup, i int) {
	action := p.choices[i]
	d.logger.Debug("placement chosen", "window", p.ref, "action", action)
	if l := d.currentListener(); l != nil {
		l.ChoosePlacement(action)
	}
}

// drawPopup renders the prompt centered over area and records button rows for mouse hits
// Caller holds mu
func (d *Desktop) drawPopup(area Region) {
	p := d.popup
	if p == nil {
		return
	}

	h := len(p.choices) + 4
	r := area.Sub((area.W-popupWidth)/2, (area.H-h)/2, popupWidth, h)
	r.Fill(popupStyle)
	inner := r.Card("Place "+p.title, LineRounded, popupStyle)
	inner.TextCenter(0, "arrows, 1-4 or click", popupStyle.Dim(true))

	p.buttons = p.buttons[:0]
	for i, a := range p.choices {
		style := popupStyle
		if i == p.selected {
			style = style.Reverse(true)
		}
		row := inner.Sub(0, i+1, inner.W, 1)
		row.Fill(style)
		row.Text(1, 0, fmt.Sprintf("%d  %s", i+1, a.Label()), style)
		p.buttons = append(p.buttons, Rect{X: row.X, Y: row.Y, W: row.W, H: row.H})
	}
}
