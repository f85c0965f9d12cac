package audio

import (
	"io"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/spherefocus/parameter"
)

// Player plays cues through the system speaker as a hub-managed service
// Handles graceful degradation: without an audio device every Play is a silent no-op
type Player struct {
	mu     sync.Mutex
	config *Config
	logger *log.Logger
	mixer  *beep.Mixer

	running    atomic.Bool
	silentMode atomic.Bool
}

// NewPlayer creates a cue player
func NewPlayer(logger *log.Logger) *Player {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Player{
		config: DefaultConfig(),
		logger: logger.WithPrefix("audio"),
		mixer:  &beep.Mixer{},
	}
}

// Name implements service.Service
func (p *Player) Name() string {
	return "audio"
}

// Dependencies implements service.Service
func (p *Player) Dependencies() []string {
	return nil
}

// Init implements service.Service
// args[0]: *Config (optional, overrides default)
func (p *Player) Init(args ...any) error {
	if len(args) > 0 {
		if cfg, ok := args[0].(*Config); ok && cfg != nil {
			p.config = cfg.normalized()
		}
	}
	return nil
}

// Start implements service.Service
// Opens the speaker; on failure the player runs in silent mode and no error is returned
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running.Load() {
		return nil
	}
	p.running.Store(true)

	if !p.config.Enabled {
		p.silentMode.Store(true)
		return nil
	}

	rate := beep.SampleRate(p.config.SampleRate)
	if err := speaker.Init(rate, rate.N(parameter.AudioBufferDuration)); err != nil {
		p.logger.Warn("no audio device, cues disabled", "err", err)
		p.silentMode.Store(true)
		return nil
	}

	speaker.Play(p.mixer)
	p.logger.Debug("speaker initialized", "rate", p.config.SampleRate)
	return nil
}

// Stop implements service.Service
func (p *Player) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running.CompareAndSwap(true, false) {
		return nil
	}
	if p.silentMode.Load() {
		return nil
	}

	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Clear()
	return nil
}

// Play queues cue on the mixer without blocking on playback
// Returns false when nothing will be heard
func (p *Player) Play(cue Cue) bool {
	if !p.running.Load() || p.silentMode.Load() {
		return false
	}

	s := Render(cue, p.config)
	if s == nil {
		return false
	}

	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
	return true
}

// IsSilent returns true if cues are not reaching a device
func (p *Player) IsSilent() bool {
	return p.silentMode.Load()
}
