package network

import (
	"io"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/lixenwraith/spherefocus/input"
)

// CommandSink accepts commands for the engine owner loop
type CommandSink interface {
	Submit(cmd input.Command) bool
}

// Service wraps Transport as a hub-managed service
type Service struct {
	config    *Config
	logger    *log.Logger
	sink      CommandSink
	transport *Transport

	disabled atomic.Bool
}

// NewService creates a network service feeding sink
func NewService(sink CommandSink, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Service{
		config: DefaultConfig(),
		logger: logger.WithPrefix("network"),
		sink:   sink,
	}
}

// Name implements service.Service
func (s *Service) Name() string {
	return "network"
}

// Dependencies implements service.Service
// The listener starts after the engine and stops before it
func (s *Service) Dependencies() []string {
	return []string{"engine"}
}

// Init implements service.Service
// args[0]: *Config (optional, overrides default)
func (s *Service) Init(args ...any) error {
	if len(args) > 0 {
		if cfg, ok := args[0].(*Config); ok && cfg != nil {
			s.config = cfg
		}
	}

	if !s.config.Enabled {
		s.disabled.Store(true)
		return nil
	}

	s.transport = NewTransport(s.config, s.logger)
	s.transport.SetHandler(s.onCommand)
	return nil
}

// Start implements service.Service
// A bind failure disables the command path for this session and is not an error
func (s *Service) Start() error {
	if s.disabled.Load() || s.transport == nil {
		return nil
	}
	if err := s.transport.Start(); err != nil {
		s.logger.Error("command listener disabled", "addr", s.config.Addr(), "err", err)
		s.disabled.Store(true)
		return nil
	}
	s.logger.Info("listening for commands", "addr", s.transport.LocalAddr())
	return nil
}

// Stop implements service.Service
func (s *Service) Stop() error {
	if s.transport != nil {
		return s.transport.Stop()
	}
	return nil
}

// IsRunning returns true if the listener is bound
func (s *Service) IsRunning() bool {
	return s.transport != nil && s.transport.IsRunning()
}

// LocalAddr returns the bound address, nil when not running
func (s *Service) LocalAddr() string {
	if !s.IsRunning() {
		return ""
	}
	return s.transport.LocalAddr().String()
}

func (s *Service) onCommand(cmd input.Command) {
	if !s.sink.Submit(cmd) {
		s.logger.Debug("command dropped, engine queue full", "cmd", cmd)
	}
}
