package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"

	"github.com/lixenwraith/spherefocus/core"
	"github.com/lixenwraith/spherefocus/input"
	"github.com/lixenwraith/spherefocus/placement"
	"github.com/lixenwraith/spherefocus/status"
	"github.com/lixenwraith/spherefocus/vmath"
)

var (
	ErrUnknownWindow = errors.New("unknown window")
	ErrNoChoices     = errors.New("no placement choices")
)

// Listener receives desktop activity
// Implemented by *engine.Engine; every method must be safe from any goroutine
type Listener interface {
	WindowCreated(ref core.WindowRef) bool
	WindowDestroyed(ref core.WindowRef) bool
	FocusChanged(ref core.WindowRef) bool
	HandleKey(k input.Key) bool
	ChoosePlacement(action placement.Action) bool
}

// Option configures a Desktop
type Option func(*Desktop)

// WithLogger sets the desktop logger
func WithLogger(l *log.Logger) Option {
	return func(d *Desktop) {
		if l != nil {
			d.logger = l.WithPrefix("terminal")
		}
	}
}

// WithGeometry sets the ring dimensions used to scale transforms onto the screen
func WithGeometry(g vmath.Geometry) Option {
	return func(d *Desktop) { d.geometry = g }
}

// WithStatus shows the registry on the status line and publishes desktop metrics into it
func WithStatus(r *status.Registry) Option {
	return func(d *Desktop) {
		if r != nil {
			d.status = r
		}
	}
}

// WithQuit sets the callback invoked when the user quits from the keyboard
func WithQuit(fn func()) Option {
	return func(d *Desktop) { d.quit = fn }
}

type window struct {
	ref       core.WindowRef
	title     string
	state     core.WindowState
	transform vmath.Transform
}

// hit is a drawn box, kept for mouse focus
type hit struct {
	ref  core.WindowRef
	rect Rect
}

// Desktop simulates a window manager on a tcell screen
// Compositor methods are called by the engine owner goroutine, input is handled on the
// desktop event goroutine; both sides share state under mu and never hold it across a
// Listener call
type Desktop struct {
	screen   tcell.Screen
	logger   *log.Logger
	geometry vmath.Geometry
	status   *status.Registry
	quit     func()

	windowCount *atomic.Int64
	frames      *atomic.Int64

	mu       sync.Mutex
	listener Listener
	windows  []*window // creation order
	focused  core.WindowRef
	serial   int
	popup    *popup
	hits     []hit // paint order, topmost last

	eventCh     chan tcell.Event
	stopCh      chan struct{}
	wg          sync.WaitGroup
	initialized atomic.Bool
	running     atomic.Bool
}

// NewDesktop creates a desktop on screen, the screen is initialized by Init
func NewDesktop(screen tcell.Screen, opts ...Option) *Desktop {
	d := &Desktop{
		screen:   screen,
		logger:   log.New(io.Discard),
		geometry: vmath.DefaultGeometry(),
		status:   status.NewRegistry(),
		eventCh:  make(chan tcell.Event, 100),
		stopCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.windowCount = d.status.Ints.Get("desktop.windows")
	d.frames = d.status.Ints.Get("desktop.frames")
	return d
}

// Attach routes desktop activity to l
func (d *Desktop) Attach(l Listener) {
	d.mu.Lock()
	d.listener = l
	d.mu.Unlock()
}

// Name implements service.Service
func (d *Desktop) Name() string {
	return "terminal"
}

// Dependencies implements service.Service
func (d *Desktop) Dependencies() []string {
	return nil
}

// Init implements service.Service
// args[0]: vmath.Geometry (optional, replaces the constructor geometry)
func (d *Desktop) Init(args ...any) error {
	if len(args) > 0 {
		if g, ok := args[0].(vmath.Geometry); ok {
			d.geometry = g
		}
	}

	if d.initialized.Load() {
		return nil
	}
	if err := d.screen.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	d.initialized.Store(true)
	d.screen.SetStyle(tcell.StyleDefault)
	d.screen.EnableMouse()
	d.screen.HideCursor()
	d.screen.Clear()
	return nil
}

// Start implements service.Service
// Installs a crash handler that restores the tty and launches input polling
func (d *Desktop) Start() error {
	if !d.running.CompareAndSwap(false, true) {
		return nil
	}

	core.SetCrashHandler(d.crash)

	d.wg.Add(2)
	core.Go(func() {
		defer d.wg.Done()
		d.pump()
	})
	core.Go(func() {
		defer d.wg.Done()
		d.loop()
	})
	return nil
}

// Stop implements service.Service
// Finalizing the screen releases the tty and unblocks the polling goroutine
// Also called after a failed Init elsewhere, when the screen is initialized but not started
func (d *Desktop) Stop() error {
	if d.running.CompareAndSwap(true, false) {
		close(d.stopCh)
		core.SetCrashHandler(nil)
	}
	if d.initialized.CompareAndSwap(true, false) {
		d.screen.Fini()
	}
	d.wg.Wait()
	return nil
}

func (d *Desktop) crash(r any) {
	d.screen.Fini()
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Exit(1)
}

func (d *Desktop) pump() {
	for {
		ev := d.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case d.eventCh <- ev:
		case <-d.stopCh:
			return
		}
	}
}

func (d *Desktop) loop() {
	for {
		select {
		case <-d.stopCh:
			return
		case ev := <-d.eventCh:
			if !d.handleEvent(ev) {
				if d.quit != nil {
					d.quit()
				}
				return
			}
		}
	}
}

// handleEvent applies one input event, returns false when the user quits
func (d *Desktop) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return d.handleKey(ev)
	case *tcell.EventMouse:
		d.handleMouse(ev)
	case *tcell.EventResize:
		d.screen.Sync()
	}
	return true
}

func (d *Desktop) handleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		return false
	}
	if d.popupKey(ev) {
		return true
	}
	if l := d.currentListener(); l != nil && l.HandleKey(input.KeyFromEvent(ev)) {
		return true
	}

	if ev.Key() == tcell.KeyTab {
		d.FocusNext()
		return true
	}
	if ev.Key() != tcell.KeyRune || ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt|tcell.ModMeta) != 0 {
		return true
	}

	focused := d.Focused()
	switch ev.Rune() {
	case 'n':
		d.Open("")
	case 'x':
		d.Close(focused)
	case 'm':
		d.update(focused, func(s *core.WindowState) { s.Maximized = !s.Maximized })
	case 'f':
		d.update(focused, func(s *core.WindowState) { s.Fullscreen = !s.Fullscreen })
	case 'h':
		d.Minimize(focused)
	case 'u':
		d.RestoreAll()
	case 'q':
		return false
	}
	return true
}

func (d *Desktop) handleMouse(ev *tcell.EventMouse) {
	if ev.Buttons()&tcell.Button1 == 0 {
		return
	}
	x, y := ev.Position()
	if d.popupClick(x, y) {
		return
	}

	d.mu.Lock()
	target := core.NoWindow
	for i := len(d.hits) - 1; i >= 0; i-- {
		r := d.hits[i].rect
		if x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H {
			target = d.hits[i].ref
			break
		}
	}
	d.mu.Unlock()

	if target.Valid() {
		d.Focus(target)
	}
}

func (d *Desktop) currentListener() Listener {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.listener
}

// --- Window management, the compositor's own side ---

// Open creates a window and gives it focus, an empty title is numbered
func (d *Desktop) Open(title string) core.WindowRef {
	d.mu.Lock()
	d.serial++
	if title == "" {
		title = fmt.Sprintf("term-%d", d.serial)
	}
	w := &window{
		ref:       core.WindowRef(uuid.NewString()),
		title:     title,
		state:     core.WindowState{Visible: true},
		transform: vmath.Identity,
	}
	d.windows = append(d.windows, w)
	d.focused = w.ref
	d.windowCount.Store(int64(len(d.windows)))
	l := d.listener
	d.mu.Unlock()

	d.logger.Debug("window opened", "window", w.ref, "title", title)
	if l != nil {
		l.WindowCreated(w.ref)
		l.FocusChanged(w.ref)
	}
	return w.ref
}

// Close destroys a window; focus falls back to the nearest earlier visible window
func (d *Desktop) Close(ref core.WindowRef) bool {
	d.mu.Lock()
	i := d.index(ref)
	if i < 0 {
		d.mu.Unlock()
		return false
	}
	d.windows = slices.Delete(d.windows, i, i+1)
	refocus := d.focused == ref
	if refocus {
		d.focused = d.fallback(i)
	}
	focused := d.focused
	if d.popup != nil && d.popup.ref == ref {
		d.popup = nil
	}
	d.windowCount.Store(int64(len(d.windows)))
	l := d.listener
	d.mu.Unlock()

	d.logger.Debug("window closed", "window", ref)
	if l != nil {
		l.WindowDestroyed(ref)
		if refocus {
			l.FocusChanged(focused)
		}
	}
	return true
}

// Focus makes ref the focused window and reports the change
func (d *Desktop) Focus(ref core.WindowRef) bool {
	d.mu.Lock()
	w := d.find(ref)
	if w == nil {
		d.mu.Unlock()
		return false
	}
	w.state.Visible = true
	d.focused = ref
	l := d.listener
	d.mu.Unlock()

	if l != nil {
		l.FocusChanged(ref)
	}
	return true
}

// FocusNext focuses the next visible window in creation order
func (d *Desktop) FocusNext() bool {
	d.mu.Lock()
	n := len(d.windows)
	start := d.index(d.focused)
	next := core.NoWindow
	for step := 1; step <= n; step++ {
		w := d.windows[(start+step+n)%n]
		if w.state.Visible {
			next = w.ref
			break
		}
	}
	d.mu.Unlock()

	if !next.Valid() {
		return false
	}
	return d.Focus(next)
}

// Minimize hides a window; a focused window hands focus to the nearest earlier visible one
func (d *Desktop) Minimize(ref core.WindowRef) bool {
	d.mu.Lock()
	i := d.index(ref)
	if i < 0 {
		d.mu.Unlock()
		return false
	}
	d.windows[i].state.Visible = false
	refocus := d.focused == ref
	if refocus {
		d.focused = d.fallback(i)
	}
	focused := d.focused
	l := d.listener
	d.mu.Unlock()

	if refocus && l != nil {
		l.FocusChanged(focused)
	}
	return true
}

// RestoreAll shows every minimized window
func (d *Desktop) RestoreAll() {
	d.mu.Lock()
	for _, w := range d.windows {
		w.state.Visible = true
	}
	d.mu.Unlock()
}

func (d *Desktop) update(ref core.WindowRef, fn func(*core.WindowState)) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	w := d.find(ref)
	if w == nil {
		return false
	}
	fn(&w.state)
	return true
}

// fallback picks the visible window nearest before index i, wrapping, or none
// Caller holds mu; the window at i has already been removed or hidden
func (d *Desktop) fallback(i int) core.WindowRef {
	n := len(d.windows)
	for step := 1; step <= n; step++ {
		w := d.windows[((i-step)%n+n)%n]
		if w.state.Visible {
			return w.ref
		}
	}
	return core.NoWindow
}

func (d *Desktop) index(ref core.WindowRef) int {
	return slices.IndexFunc(d.windows, func(w *window) bool { return w.ref == ref })
}

func (d *Desktop) find(ref core.WindowRef) *window {
	if i := d.index(ref); i >= 0 {
		return d.windows[i]
	}
	return nil
}

// --- engine.Compositor ---

// ListWindows returns every window in creation order, minimized ones included
func (d *Desktop) ListWindows() []core.WindowRef {
	d.mu.Lock()
	defer d.mu.Unlock()
	refs := make([]core.WindowRef, len(d.windows))
	for i, w := range d.windows {
		refs[i] = w.ref
	}
	return refs
}

// Focused returns the focused window
func (d *Desktop) Focused() core.WindowRef {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.focused
}

// WindowState returns the window flags, ok is false once the window is closed
func (d *Desktop) WindowState(ref core.WindowRef) (core.WindowState, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if w := d.find(ref); w != nil {
		return w.state, true
	}
	return core.WindowState{}, false
}

// Activate focuses and raises a window
// The engine has already recorded the focus so no change is reported back
func (d *Desktop) Activate(ref core.WindowRef) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if w := d.find(ref); w != nil {
		w.state.Visible = true
		d.focused = ref
	}
}

// SetTransform stores the transform drawn on the next commit
func (d *Desktop) SetTransform(ref core.WindowRef, t vmath.Transform) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if w := d.find(ref); w != nil {
		w.transform = t
	}
}

// ResetTransform draws the window flat and centered again
func (d *Desktop) ResetTransform(ref core.WindowRef) {
	d.SetTransform(ref, vmath.Identity)
}

// Commit draws a frame
func (d *Desktop) Commit() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.draw()
	d.screen.Show()
	d.frames.Add(1)
}

// Transform returns the last transform pushed for ref
func (d *Desktop) Transform(ref core.WindowRef) (vmath.Transform, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if w := d.find(ref); w != nil {
		return w.transform, true
	}
	return vmath.Transform{}, false
}
