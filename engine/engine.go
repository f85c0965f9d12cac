// Package engine runs the spatial layout: a single owner goroutine holds the
// ring, camera and placement state, consumes compositor and command events in
// arrival order, and pushes a projected transform for every window each tick.
//
// Inbound methods (WindowCreated, FocusChanged, Submit, HandleKey, ...) are safe
// from any goroutine. Process and Tick are owner-only and exported for tests
// that drive the engine without a running loop.
package engine

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lixenwraith/spherefocus/camera"
	"github.com/lixenwraith/spherefocus/core"
	"github.com/lixenwraith/spherefocus/event"
	"github.com/lixenwraith/spherefocus/input"
	"github.com/lixenwraith/spherefocus/layout"
	"github.com/lixenwraith/spherefocus/parameter"
	"github.com/lixenwraith/spherefocus/placement"
	"github.com/lixenwraith/spherefocus/status"
)

// Option configures optional collaborators
type Option func(*Engine)

// WithLogger sets the engine logger
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l.WithPrefix("engine")
		}
	}
}

// WithPlacementUI sets the collaborator that presents placement choices
func WithPlacementUI(ui PlacementUI) Option {
	return func(e *Engine) { e.ui = ui }
}

// WithCues sets the feedback sound player
func WithCues(p CuePlayer) Option {
	return func(e *Engine) { e.cues = p }
}

// WithStatus publishes engine metrics into an existing registry
func WithStatus(r *status.Registry) Option {
	return func(e *Engine) {
		if r != nil {
			e.status = r
		}
	}
}

type keyRequest struct {
	key   input.Key
	reply chan bool
}

// metrics caches registry pointers, written by the owner goroutine
type metrics struct {
	ticks           *atomic.Int64
	renderRecovered *atomic.Int64
	commandsDropped *atomic.Int64
	columns         *atomic.Int64
	windows         *atomic.Int64
	yaw             *status.AtomicFloat
	pending         *status.AtomicString
}

// Engine owns layout state and drives the compositor
type Engine struct {
	cfg        *Config
	logger     *log.Logger
	compositor Compositor
	ui         PlacementUI
	cues       CuePlayer
	status     *status.Registry
	metrics    metrics

	queue  *event.EventQueue
	router *EventRouter
	keyReq chan keyRequest

	// Owner state
	ring     *layout.Ring
	camera   *camera.Controller
	machine  *placement.Machine
	focused  core.WindowRef
	anchor   core.WindowRef
	rendered map[core.WindowRef]struct{} // windows carrying a transform from the last pass
	snapshot atomic.Pointer[Snapshot]

	running atomic.Bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// New creates an engine over compositor
func New(cfg *Config, compositor Compositor, opts ...Option) *Engine {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	cfg = cfg.normalized()

	queue := event.NewEventQueue()
	e := &Engine{
		cfg:        cfg,
		logger:     log.New(io.Discard),
		compositor: compositor,
		status:     status.NewRegistry(),
		queue:      queue,
		router:     NewEventRouter(queue),
		keyReq:     make(chan keyRequest),
		ring:       layout.NewRing(),
		camera:     camera.NewController(cfg.Camera),
		machine:    placement.NewMachine(),
		rendered:   make(map[core.WindowRef]struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.metrics = metrics{
		ticks:           e.status.Ints.Get("engine.ticks"),
		renderRecovered: e.status.Ints.Get("engine.render_recovered"),
		commandsDropped: e.status.Ints.Get("engine.commands_dropped"),
		columns:         e.status.Ints.Get("ring.columns"),
		windows:         e.status.Ints.Get("ring.windows"),
		yaw:             e.status.Floats.Get("camera.yaw"),
		pending:         e.status.Strings.Get("placement.pending"),
	}

	e.router.Register(event.EventWindowCreated, e.onWindowCreated)
	e.router.Register(event.EventWindowDestroyed, e.onWindowDestroyed)
	e.router.Register(event.EventFocusChanged, e.onFocusChanged)
	e.router.Register(event.EventCommand, e.onCommand)

	e.publish()
	return e
}

// Name implements service.Service
func (e *Engine) Name() string {
	return "engine"
}

// Dependencies implements service.Service
// A compositor or cue player that is itself a service starts first
func (e *Engine) Dependencies() []string {
	var deps []string
	if svc, ok := e.compositor.(interface{ Name() string }); ok {
		deps = append(deps, svc.Name())
	}
	if svc, ok := e.cues.(interface{ Name() string }); ok {
		deps = append(deps, svc.Name())
	}
	return deps
}

// Init implements service.Service
// args[0]: *Config (optional, replaces the constructor config)
func (e *Engine) Init(args ...any) error {
	if len(args) > 0 {
		if cfg, ok := args[0].(*Config); ok && cfg != nil {
			e.cfg = cfg.normalized()
			e.camera = camera.NewController(e.cfg.Camera)
		}
	}
	return nil
}

// Start implements service.Service
// Seeds the ring from the live window set and launches the owner loop
func (e *Engine) Start() error {
	if !e.running.CompareAndSwap(false, true) {
		return nil
	}

	e.Seed()

	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	e.wg.Add(1)
	core.Go(func() {
		defer e.wg.Done()
		e.Run(ctx)
	})
	return nil
}

// Stop implements service.Service
// Halts the tick source and owner loop, then restores every window and the camera
func (e *Engine) Stop() error {
	if !e.running.CompareAndSwap(true, false) {
		return nil
	}

	e.cancel()
	e.wg.Wait()
	e.Restore()
	return nil
}

// Running reports whether the owner loop is active
func (e *Engine) Running() bool {
	return e.running.Load()
}

// Seed rebuilds the ring from the compositor's live windows, each in its own column
// Owner-only: called by Start before the loop runs
func (e *Engine) Seed() {
	windows := e.compositor.ListWindows()
	e.ring.Rebuild(windows)
	e.machine.Reset()
	e.anchor = core.NoWindow
	e.setFocus(e.compositor.Focused())
	e.logger.Info("ring seeded", "windows", len(windows), "focused", e.focused)
	e.publish()
}

// Restore resets every tracked window transform and returns the camera to yaw 0
// Owner-only: called by Stop after the loop exits
func (e *Engine) Restore() {
	if e.machine.Awaiting() && e.ui != nil {
		e.ui.Dismiss()
	}
	e.machine.Reset()

	for _, ref := range e.ring.Windows() {
		if _, ok := e.compositor.WindowState(ref); ok {
			e.compositor.ResetTransform(ref)
		}
		delete(e.rendered, ref)
	}
	for ref := range e.rendered {
		if _, ok := e.compositor.WindowState(ref); ok {
			e.compositor.ResetTransform(ref)
		}
		delete(e.rendered, ref)
	}
	e.commit()

	e.camera.Reset()
	e.logger.Info("layout restored")
	e.publish()
}

// Run is the owner loop: queue wakeups, keyboard requests and ticks are serialized here
// Returns when ctx is cancelled
func (e *Engine) Run(ctx context.Context) {
	ticker := time.NewTicker(e.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-e.queue.Ready():
			e.drain()

		case req := <-e.keyReq:
			// Events that arrived before the key are applied first
			e.drain()
			req.reply <- e.handleKey(req.key)

		case <-ticker.C:
			e.drain()
			e.Tick()
		}
	}
}

func (e *Engine) drain() {
	if e.router.DispatchAll() > 0 {
		e.publish()
	}
}

// Process applies one event immediately
// Owner-only
func (e *Engine) Process(ev event.Event) {
	if !e.router.Dispatch(ev) {
		e.logger.Debug("event ignored", "event", ev)
	}
	e.publish()
}

// --- Inbound API, safe from any goroutine ---

// WindowCreated reports a new top-level window
func (e *Engine) WindowCreated(ref core.WindowRef) bool {
	return e.push(event.WindowCreated(ref))
}

// WindowDestroyed reports a window that no longer exists
func (e *Engine) WindowDestroyed(ref core.WindowRef) bool {
	return e.push(event.WindowDestroyed(ref))
}

// FocusChanged reports the compositor's new focused window
func (e *Engine) FocusChanged(ref core.WindowRef) bool {
	return e.push(event.FocusChanged(ref))
}

// Submit queues a decoded command, as delivered by the network listener
func (e *Engine) Submit(cmd input.Command) bool {
	return e.push(event.CommandEvent(cmd))
}

// ChoosePlacement resolves the pending window with the user's choice from the placement UI
func (e *Engine) ChoosePlacement(action placement.Action) bool {
	return e.push(event.CommandEvent(input.Place(action)))
}

// HandleKey runs a key press through the key table on the owner goroutine
// Returns true when the key was consumed and must not reach the focused window
// A key the loop cannot answer within parameter.KeyReplyTimeout passes through
func (e *Engine) HandleKey(k input.Key) bool {
	if !e.running.Load() {
		return false
	}

	req := keyRequest{key: k, reply: make(chan bool, 1)}
	timer := time.NewTimer(parameter.KeyReplyTimeout)
	defer timer.Stop()

	select {
	case e.keyReq <- req:
	case <-timer.C:
		return false
	}

	select {
	case consumed := <-req.reply:
		return consumed
	case <-timer.C:
		return false
	}
}

func (e *Engine) push(ev event.Event) bool {
	if !e.queue.Push(ev) {
		e.logger.Warn("event queue full, event dropped", "event", ev)
		return false
	}
	return true
}
