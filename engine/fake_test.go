package engine

import (
	"errors"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/lixenwraith/spherefocus/audio"
	"github.com/lixenwraith/spherefocus/core"
	"github.com/lixenwraith/spherefocus/event"
	"github.com/lixenwraith/spherefocus/placement"
	"github.com/lixenwraith/spherefocus/vmath"
)

type fakeCompositor struct {
	mu         sync.Mutex
	windows    []core.WindowRef
	states     map[core.WindowRef]core.WindowState
	focused    core.WindowRef
	activated  []core.WindowRef
	transforms map[core.WindowRef]vmath.Transform
	resets     map[core.WindowRef]int
	commits    int
	panicOn    core.WindowRef
}

func newFakeCompositor(refs ...core.WindowRef) *fakeCompositor {
	c := &fakeCompositor{
		states:     make(map[core.WindowRef]core.WindowState),
		transforms: make(map[core.WindowRef]vmath.Transform),
		resets:     make(map[core.WindowRef]int),
	}
	for _, r := range refs {
		c.add(r)
	}
	return c
}

func (c *fakeCompositor) add(ref core.WindowRef) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.windows = append(c.windows, ref)
	c.states[ref] = core.WindowState{Visible: true}
}

func (c *fakeCompositor) remove(ref core.WindowRef) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.states, ref)
	for i, w := range c.windows {
		if w == ref {
			c.windows = append(c.windows[:i], c.windows[i+1:]...)
			break
		}
	}
}

func (c *fakeCompositor) setState(ref core.WindowRef, s core.WindowState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.states[ref] = s
}

func (c *fakeCompositor) clearOutput() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.transforms = make(map[core.WindowRef]vmath.Transform)
	c.resets = make(map[core.WindowRef]int)
	c.activated = nil
}

func (c *fakeCompositor) ListWindows() []core.WindowRef {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]core.WindowRef, len(c.windows))
	copy(out, c.windows)
	return out
}

func (c *fakeCompositor) Focused() core.WindowRef {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.focused
}

func (c *fakeCompositor) WindowState(ref core.WindowRef) (core.WindowState, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ref == c.panicOn && ref.Valid() {
		panic("actor torn down")
	}
	s, ok := c.states[ref]
	return s, ok
}

func (c *fakeCompositor) Activate(ref core.WindowRef) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.focused = ref
	c.activated = append(c.activated, ref)
}

func (c *fakeCompositor) SetTransform(ref core.WindowRef, t vmath.Transform) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.transforms[ref] = t
}

func (c *fakeCompositor) ResetTransform(ref core.WindowRef) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.transforms, ref)
	c.resets[ref]++
}

func (c *fakeCompositor) Commit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.commits++
}

func (c *fakeCompositor) lastActivated() core.WindowRef {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.activated) == 0 {
		return core.NoWindow
	}
	return c.activated[len(c.activated)-1]
}

type fakeUI struct {
	presented []core.WindowRef
	choices   []placement.Action
	dismissed int
	err       error
}

func (u *fakeUI) Present(ref core.WindowRef, choices []placement.Action) error {
	if u.err != nil {
		return u.err
	}
	u.presented = append(u.presented, ref)
	u.choices = choices
	return nil
}

func (u *fakeUI) Dismiss() {
	u.dismissed++
}

type fakeCues struct {
	played []audio.Cue
}

func (f *fakeCues) Play(c audio.Cue) bool {
	f.played = append(f.played, c)
	return true
}

var errNoPopup = errors.New("popup unavailable")

// newTestEngine seeds an engine over comp without starting the loop
func newTestEngine(comp *fakeCompositor, cfg *Config, opts ...Option) *Engine {
	opts = append([]Option{WithLogger(log.New(io.Discard))}, opts...)
	e := New(cfg, comp, opts...)
	e.Seed()
	return e
}

// created simulates the compositor announcing and focusing a new window
func created(e *Engine, comp *fakeCompositor, ref core.WindowRef) {
	comp.add(ref)
	e.Process(event.WindowCreated(ref))
	e.Process(event.FocusChanged(ref))
}
