package audio

import (
	"errors"
	"testing"

	"github.com/gopxl/beep"
)

func fakeNotifier(initErr error) (*Notifier, *int) {
	n := NewNotifier()
	plays := 0
	n.initSpeaker = func(beep.SampleRate, int) error { return initErr }
	n.playSpeaker = func(...beep.Streamer) { plays++ }
	return n, &plays
}

func TestNotifierSpeakerFailureDisables(t *testing.T) {
	n, plays := fakeNotifier(errors.New("no device"))
	if err := n.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := n.Start(); err != nil {
		t.Fatalf("start should not fail: %v", err)
	}
	if !n.IsDisabled() {
		t.Error("expected disabled notifier")
	}
	if *plays != 0 {
		t.Error("mixer attached despite failure")
	}
	if n.Play(CueReceive) {
		t.Error("disabled notifier reported playback")
	}
	if err := n.Stop(); err != nil {
		t.Errorf("stop: %v", err)
	}
}

func TestNotifierPlay(t *testing.T) {
	n, plays := fakeNotifier(nil)
	n.Init(DefaultConfig())
	if err := n.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer n.Stop()

	if *plays != 1 {
		t.Fatalf("mixer attached %d times", *plays)
	}
	if !n.Play(CueReceive) || !n.Play(CueSendError) {
		t.Fatal("expected playback")
	}
	if n.Play(Cue(42)) {
		t.Error("unknown cue reported playback")
	}
	if n.Played() != 2 {
		t.Errorf("played = %d", n.Played())
	}

	if n.ToggleMute() {
		t.Error("toggle from unmuted should report sound off")
	}
	if n.Play(CueReceive) {
		t.Error("muted notifier reported playback")
	}
}

func TestNotifierInitMuted(t *testing.T) {
	n, _ := fakeNotifier(nil)
	n.Init(nil, true)
	if !n.IsMuted() {
		t.Error("expected muted")
	}

	cfg := DefaultConfig()
	cfg.Enabled = false
	n, _ = fakeNotifier(nil)
	n.Init(cfg)
	if !n.IsMuted() {
		t.Error("disabled config should start muted")
	}
}
