package audio

import (
	"errors"
	"time"
)

// Cue is a notification sound
type Cue int

const (
	CueReceive   Cue = iota // Message arrived
	CueSent                 // All peers accepted a message
	CueSendError            // A send failed
	cueCount
)

func (c Cue) String() string {
	switch c {
	case CueReceive:
		return "receive"
	case CueSent:
		return "sent"
	case CueSendError:
		return "send_error"
	}
	return "unknown"
}

// Config tunes the notifier
type Config struct {
	Enabled    bool
	Volume     float64 // 0.0-1.0
	SampleRate int
	BufferTime time.Duration
}

// DefaultConfig returns the notifier defaults; enabled at moderate volume
func DefaultConfig() *Config {
	return &Config{
		Enabled:    true,
		Volume:     0.5,
		SampleRate: 48000,
		BufferTime: 100 * time.Millisecond,
	}
}

// Sentinel errors
var (
	ErrNotStarted = errors.New("audio: notifier not started")
	ErrUnknownCue = errors.New("audio: unknown cue")
)

// Tone timing
const (
	receiveNoteDuration = 90 * time.Millisecond
	receiveAttack       = 5 * time.Millisecond
	receiveRelease      = 60 * time.Millisecond

	sentDuration = 40 * time.Millisecond
	sentAttack   = 2 * time.Millisecond
	sentRelease  = 30 * time.Millisecond

	errorDuration = 150 * time.Millisecond
	errorAttack   = 5 * time.Millisecond
	errorRelease  = 50 * time.Millisecond
)
