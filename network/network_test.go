package network

import (
	"bytes"
	"context"
	"errors"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/lixenwraith/termchat/event"
)

func TestEnvelopeWireFormat(t *testing.T) {
	env := Envelope{Content: "hi", SentBy: "al", SentFrom: "c"}
	b, err := env.Encode(0)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	// fixarray(3), fixstr "hi", fixstr "al", fixstr "c"
	want := []byte{0x93, 0xa2, 'h', 'i', 0xa2, 'a', 'l', 0xa1, 'c'}
	if !bytes.Equal(b, want) {
		t.Fatalf("wire = % x, want % x", b, want)
	}

	got, err := DecodeEnvelope(b)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != env {
		t.Errorf("decoded %+v, want %+v", got, env)
	}
}

func TestEnvelopeLimits(t *testing.T) {
	env := Envelope{Content: strings.Repeat("x", 100)}
	if _, err := env.Encode(50); !errors.Is(err, ErrPayloadTooLarge) {
		t.Errorf("err = %v, want ErrPayloadTooLarge", err)
	}
	if _, err := DecodeEnvelope([]byte{0xc1}); err == nil {
		t.Error("decoding garbage should fail")
	}
}

func loopbackConfig() *Config {
	cfg := DefaultConfig()
	cfg.ListenHost = "127.0.0.1"
	cfg.Port = 0
	cfg.ReadTimeout = 20 * time.Millisecond
	return cfg
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for condition")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestLoopbackDelivery(t *testing.T) {
	cfg := loopbackConfig()
	queue := event.NewQueue[Inbound](16)
	l := NewListener(cfg, queue)
	if err := l.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer l.Stop()

	outbox := NewOutbox(16)
	s := NewSender(cfg, outbox)
	env := Envelope{Content: "ping", SentBy: "alice", SentFrom: "general"}

	p := s.Send(context.Background(), 7, l.Addr().String(), env)
	<-p.Done()
	if p.Err() != nil {
		t.Fatalf("send: %v", p.Err())
	}

	var got []Inbound
	waitFor(t, func() bool {
		got = append(got, queue.Drain()...)
		return len(got) > 0
	})
	if got[0].Envelope != env {
		t.Errorf("received %+v, want %+v", got[0].Envelope, env)
	}

	results := outbox.Poll()
	if len(results) != 1 || results[0].LocalID != 7 || results[0].Err != nil {
		t.Errorf("results = %+v", results)
	}
	if outbox.Len() != 0 {
		t.Errorf("in flight = %d after completion", outbox.Len())
	}
	if outbox.Poll() != nil {
		t.Error("second poll should be empty")
	}
}

func TestListenerDropsInvalid(t *testing.T) {
	cfg := loopbackConfig()
	queue := event.NewQueue[Inbound](16)
	l := NewListener(cfg, queue)
	if err := l.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer l.Stop()

	conn, err := net.Dial("udp", l.Addr().String())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	conn.Write([]byte{0xc1, 0x00})

	waitFor(t, func() bool { return l.Invalid() == 1 })
	if queue.Len() != 0 {
		t.Errorf("invalid datagram was queued")
	}
}

func TestListenerStopIdempotent(t *testing.T) {
	l := NewListener(loopbackConfig(), event.NewQueue[Inbound](4))
	if err := l.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := l.Start(); err != nil {
		t.Fatalf("second start: %v", err)
	}

	done := make(chan struct{})
	go func() {
		l.Stop()
		l.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("stop did not return")
	}
	if l.IsRunning() {
		t.Error("listener still running")
	}
}

func TestOutboxCancel(t *testing.T) {
	cfg := loopbackConfig()
	outbox := NewOutbox(16)
	s := NewSender(cfg, outbox)

	outbox.Cancel()

	// Cancel only affects sends started before it
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := s.Send(ctx, 1, "127.0.0.1:9", Envelope{Content: "x"})
	<-p.Done()
	if !errors.Is(p.Err(), context.Canceled) {
		t.Errorf("caller-cancelled send err = %v", p.Err())
	}

	res := outbox.Poll()
	if len(res) != 1 || res[0].LocalID != 1 || res[0].Err == nil {
		t.Errorf("results = %+v", res)
	}
}

func TestServiceLifecycle(t *testing.T) {
	svc := NewService()
	if err := svc.Init(loopbackConfig()); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := svc.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if !svc.IsRunning() {
		t.Fatal("service not running")
	}

	addr := svc.Listener().Addr().String()
	p := svc.Sender().Send(context.Background(), 3, addr, Envelope{Content: "self"})
	<-p.Done()

	waitFor(t, func() bool { return svc.Inbound().Len() == 1 })

	if err := svc.Stop(); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if err := svc.Stop(); err != nil {
		t.Fatalf("second stop: %v", err)
	}
}

func TestServiceDisabledListener(t *testing.T) {
	svc := NewService()
	if err := svc.Init(loopbackConfig(), true); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := svc.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if svc.IsRunning() {
		t.Error("disabled listener should not run")
	}
	if svc.Sender() == nil {
		t.Error("sender should exist when listening is disabled")
	}
	svc.Stop()
}
