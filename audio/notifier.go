package audio

import (
	"log"
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Player is the minimal interface the chat scenes use
type Player interface {
	Play(Cue) bool
	ToggleMute() bool
	IsMuted() bool
}

// Notifier plays cue tones through the speaker mixer
// Handles graceful degradation when no audio backend is available
type Notifier struct {
	mu     sync.Mutex
	config *Config
	mixer  *beep.Mixer

	// initSpeaker is swapped in tests
	initSpeaker func(beep.SampleRate, int) error
	playSpeaker func(...beep.Streamer)

	started  atomic.Bool
	disabled atomic.Bool
	muted    atomic.Bool
	played   atomic.Uint64
}

// NewNotifier creates a stopped notifier
func NewNotifier() *Notifier {
	return &Notifier{
		config:      DefaultConfig(),
		mixer:       &beep.Mixer{},
		initSpeaker: speaker.Init,
		playSpeaker: speaker.Play,
	}
}

// Name implements service.Service
func (n *Notifier) Name() string {
	return "audio"
}

// Init implements service.Service
// args[0]: *Config (optional)
// args[1]: bool - start muted
func (n *Notifier) Init(args ...any) error {
	if len(args) > 0 {
		if cfg, ok := args[0].(*Config); ok && cfg != nil {
			n.config = cfg
		}
	}
	n.muted.Store(!n.config.Enabled)
	if len(args) > 1 {
		if muted, ok := args[1].(bool); ok && muted {
			n.muted.Store(true)
		}
	}
	return nil
}

// Start implements service.Service
// Speaker failure disables the notifier instead of failing startup
func (n *Notifier) Start() error {
	if n.started.Load() || n.disabled.Load() {
		return nil
	}

	rate := beep.SampleRate(n.config.SampleRate)
	if err := n.initSpeaker(rate, rate.N(n.config.BufferTime)); err != nil {
		log.Printf("audio: speaker unavailable, notifications disabled: %v", err)
		n.disabled.Store(true)
		return nil
	}
	n.playSpeaker(n.mixer)
	n.started.Store(true)
	return nil
}

// Stop implements service.Service
func (n *Notifier) Stop() error {
	if !n.started.CompareAndSwap(true, false) {
		return nil
	}
	speaker.Lock()
	n.mixer.Clear()
	speaker.Unlock()
	return nil
}

// Play queues cue on the mixer; returns false when nothing will be heard
func (n *Notifier) Play(cue Cue) bool {
	if !n.started.Load() || n.muted.Load() {
		return false
	}
	n.mu.Lock()
	s := CueStreamer(cue, n.config)
	n.mu.Unlock()
	if s == nil {
		return false
	}

	speaker.Lock()
	n.mixer.Add(s)
	speaker.Unlock()
	n.played.Add(1)
	return true
}

// ToggleMute flips mute, returns true if sound is now on
func (n *Notifier) ToggleMute() bool {
	muted := !n.muted.Load()
	n.muted.Store(muted)
	return !muted
}

// IsMuted returns current mute state
func (n *Notifier) IsMuted() bool {
	return n.muted.Load()
}

// IsDisabled returns true if no backend could be opened
func (n *Notifier) IsDisabled() bool {
	return n.disabled.Load()
}

// Played returns how many cues were queued
func (n *Notifier) Played() uint64 {
	return n.played.Load()
}

// SetVolume updates the volume for later cues (0.0-1.0)
func (n *Notifier) SetVolume(vol float64) {
	n.mu.Lock()
	n.config.Volume = min(max(vol, 0), 1)
	n.mu.Unlock()
}
