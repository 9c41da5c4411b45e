package network

import (
	"errors"
	"log"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/termchat/event"
)

// Inbound is a decoded envelope and the address it came from
type Inbound struct {
	Envelope Envelope
	From     string
}

// Listener receives envelopes on a UDP socket and queues them for the frame loop
type Listener struct {
	config *Config
	conn   net.PacketConn
	queue  *event.Queue[Inbound]

	running atomic.Bool
	stopCh  chan struct{}
	wg      sync.WaitGroup

	received atomic.Uint64
	invalid  atomic.Uint64
}

// NewListener creates a stopped listener delivering into queue
func NewListener(cfg *Config, queue *event.Queue[Inbound]) *Listener {
	return &Listener{
		config: cfg,
		queue:  queue,
	}
}

// Start binds the socket and launches the receive loop
func (l *Listener) Start() error {
	if !l.running.CompareAndSwap(false, true) {
		return nil // Already running
	}

	conn, err := net.ListenPacket("udp", l.config.ListenAddress())
	if err != nil {
		l.running.Store(false)
		return err
	}
	l.conn = conn
	l.stopCh = make(chan struct{})

	l.wg.Add(1)
	go l.receiveLoop()
	return nil
}

// Addr returns the bound address, nil before Start
func (l *Listener) Addr() net.Addr {
	if l.conn == nil {
		return nil
	}
	return l.conn.LocalAddr()
}

// receiveLoop reads with a short deadline so Stop is observed promptly
func (l *Listener) receiveLoop() {
	defer l.wg.Done()

	buf := make([]byte, l.config.MaxDatagram)
	for {
		select {
		case <-l.stopCh:
			return
		default:
		}

		l.conn.SetReadDeadline(time.Now().Add(l.config.ReadTimeout))
		n, from, err := l.conn.ReadFrom(buf)
		if err != nil {
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				continue
			}
			select {
			case <-l.stopCh:
				return
			default:
			}
			log.Printf("network: receive: %v", err)
			continue
		}

		env, err := DecodeEnvelope(buf[:n])
		if err != nil {
			l.invalid.Add(1)
			log.Printf("network: dropped datagram from %v: %v", from, err)
			continue
		}
		l.received.Add(1)
		if !l.queue.Push(Inbound{Envelope: env, From: from.String()}) {
			log.Printf("network: inbound queue full, oldest message dropped")
		}
	}
}

// Stop closes the socket and waits for the receive loop; idempotent
func (l *Listener) Stop() error {
	if !l.running.CompareAndSwap(true, false) {
		return nil
	}
	close(l.stopCh)
	err := l.conn.Close()
	l.wg.Wait()
	return err
}

// IsRunning returns listener state
func (l *Listener) IsRunning() bool {
	return l.running.Load()
}

// Received returns the number of envelopes queued so far
func (l *Listener) Received() uint64 { return l.received.Load() }

// Invalid returns the number of datagrams that failed to decode
func (l *Listener) Invalid() uint64 { return l.invalid.Load() }
