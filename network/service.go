package network

import (
	"sync/atomic"

	"github.com/lixenwraith/termchat/event"
)

// Service wraps the listener and sender as a hub-managed service
type Service struct {
	config   *Config
	listener *Listener
	sender   *Sender
	inbound  *event.Queue[Inbound]

	disabled atomic.Bool
}

// NewService creates a network service with default config
func NewService() *Service {
	return &Service{
		config: DefaultConfig(),
	}
}

// Name implements service.Service
func (s *Service) Name() string {
	return "network"
}

// Init implements service.Service
// args[0]: *Config (optional, overrides default)
// args[1]: bool, true disables the listener (sending still works)
func (s *Service) Init(args ...any) error {
	if len(args) > 0 {
		if cfg, ok := args[0].(*Config); ok && cfg != nil {
			s.config = cfg
		}
	}
	if len(args) > 1 {
		if off, ok := args[1].(bool); ok {
			s.disabled.Store(off)
		}
	}

	s.inbound = event.NewQueue[Inbound](s.config.QueueSize)
	s.listener = NewListener(s.config, s.inbound)
	s.sender = NewSender(s.config, NewOutbox(s.config.QueueSize))
	return nil
}

// Start implements service.Service
func (s *Service) Start() error {
	if s.disabled.Load() || s.listener == nil {
		return nil
	}
	return s.listener.Start()
}

// Stop implements service.Service
func (s *Service) Stop() error {
	if s.sender != nil {
		s.sender.Outbox().Cancel()
	}
	if s.listener != nil {
		return s.listener.Stop()
	}
	return nil
}

// Inbound returns the queue the frame loop drains
func (s *Service) Inbound() *event.Queue[Inbound] { return s.inbound }

// Sender returns the outbound side
func (s *Service) Sender() *Sender { return s.sender }

// Listener returns the inbound side
func (s *Service) Listener() *Listener { return s.listener }

// IsRunning returns true if the listener is active
func (s *Service) IsRunning() bool {
	return s.listener != nil && s.listener.IsRunning()
}
