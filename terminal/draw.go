package terminal

import (
	"cmp"
	"slices"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/spherefocus/parameter"
)

const helpText = " n new  x close  m max  f full  h min  u restore  tab focus  q quit "

var (
	focusStyle  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	statusStyle = tcell.StyleDefault.Reverse(true)
)

// Paint layers, later layers cover earlier ones
const (
	layerRing = iota
	layerMaximized
	layerFullscreen
)

type paint struct {
	w     *window
	rect  Rect
	layer int
	z     float64
	focus bool
}

// draw renders windows back to front, then the popup and the status line
// Caller holds mu
func (d *Desktop) draw() {
	d.screen.Clear()
	full := ScreenRegion(d.screen)
	if full.W == 0 || full.H < 2 {
		return
	}
	area := full.Sub(0, 0, full.W, full.H-1)
	vp := Viewport{W: area.W, H: area.H, Geometry: d.geometry}

	paints := make([]paint, 0, len(d.windows))
	for _, w := range d.windows {
		if !w.state.Visible || w.transform.Opacity <= 0 {
			continue
		}
		p := paint{w: w, z: w.transform.Offset.Z, focus: w.ref == d.focused}
		switch {
		case w.state.Fullscreen:
			p.rect, p.layer = vp.Full(), layerFullscreen
		case w.state.Maximized:
			p.rect, p.layer = vp.Full(), layerMaximized
		default:
			p.rect = vp.Project(w.transform)
		}
		paints = append(paints, p)
	}
	slices.SortStableFunc(paints, func(a, b paint) int {
		if c := cmp.Compare(a.layer, b.layer); c != 0 {
			return c
		}
		if c := cmp.Compare(a.z, b.z); c != 0 {
			return c
		}
		switch {
		case a.focus == b.focus:
			return 0
		case a.focus:
			return 1
		}
		return -1
	})

	d.hits = d.hits[:0]
	for _, p := range paints {
		r := area.Sub(p.rect.X, p.rect.Y, p.rect.W, p.rect.H)
		if r.W == 0 || r.H == 0 {
			continue
		}
		d.drawWindow(r, p)
		d.hits = append(d.hits, hit{ref: p.w.ref, rect: Rect{X: r.X, Y: r.Y, W: r.W, H: r.H}})
	}

	d.drawPopup(area)
	d.drawStatus(full.Sub(0, full.H-1, full.W, 1))
}

func (d *Desktop) drawWindow(r Region, p paint) {
	r.Fill(tcell.StyleDefault)

	line, style := LineSingle, opacityStyle(p.w.transform.Opacity)
	if p.focus {
		line, style = LineDouble, focusStyle
	}
	if d.popup != nil && d.popup.ref == p.w.ref {
		line = LineRounded
	}
	inner := r.Card(p.w.title, line, style)

	var flags string
	switch {
	case p.w.state.Fullscreen:
		flags = "[full]"
	case p.w.state.Maximized:
		flags = "[max]"
	}
	inner.TextCenter(inner.H/2, Truncate(flags, inner.W), style)
}

// opacityStyle grays a border with its window's opacity
func opacityStyle(opacity float64) tcell.Style {
	lvl := int32(60 + opacity/parameter.OpacityMax*195)
	style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(lvl, lvl, lvl))
	if opacity < parameter.OpacityMax/2 {
		style = style.Dim(true)
	}
	return style
}

func (d *Desktop) drawStatus(r Region) {
	r.Fill(statusStyle)
	text := helpText
	if s := d.status.Format(); s != "" {
		text += "│ " + s
	}
	r.Text(0, 0, Truncate(text, r.W), statusStyle)
}
