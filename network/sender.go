package network

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/termchat/event"
)

// Result is the outcome of one send; Err is nil on success
type Result struct {
	LocalID int64
	Addr    string
	Err     error
}

// Pending tracks one in-flight send
type Pending struct {
	LocalID int64
	Addr    string

	done   chan struct{}
	err    error
	cancel context.CancelFunc
}

// Done is closed when the send finished or was cancelled
func (p *Pending) Done() <-chan struct{} { return p.done }

// Err returns the send error; valid after Done is closed
func (p *Pending) Err() error { return p.err }

// Cancel aborts this send only
func (p *Pending) Cancel() { p.cancel() }

// Outbox collects send results for the frame loop
// Sends complete on their own goroutines; Poll never blocks
type Outbox struct {
	results  *event.Queue[Result]
	inflight atomic.Int64

	// Cancellation root; replaced after Cancel so later sends proceed
	ctx    atomic.Pointer[context.Context]
	cancel atomic.Pointer[context.CancelFunc]
}

// NewOutbox creates an outbox holding up to size unpolled results
func NewOutbox(size int) *Outbox {
	o := &Outbox{results: event.NewQueue[Result](size)}
	o.reset()
	return o
}

func (o *Outbox) reset() {
	ctx, cancel := context.WithCancel(context.Background())
	o.ctx.Store(&ctx)
	o.cancel.Store(&cancel)
}

// Poll returns every result that arrived since the last call
func (o *Outbox) Poll() []Result {
	return o.results.Drain()
}

// Len returns the number of sends still in flight
func (o *Outbox) Len() int {
	return int(o.inflight.Load())
}

// Cancel aborts every in-flight send; their results report context.Canceled
func (o *Outbox) Cancel() {
	cancel := *o.cancel.Load()
	o.reset()
	cancel()
}

// WaitIdle blocks until no send is in flight or timeout elapses; used on shutdown
func (o *Outbox) WaitIdle(timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for o.Len() > 0 {
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(5 * time.Millisecond)
	}
	return true
}

// Sender writes envelopes to peers, one short-lived socket per send
type Sender struct {
	config *Config
	outbox *Outbox
	dialer net.Dialer
}

// NewSender creates a sender reporting into outbox
func NewSender(cfg *Config, outbox *Outbox) *Sender {
	return &Sender{config: cfg, outbox: outbox}
}

// Outbox returns the result collector
func (s *Sender) Outbox() *Outbox { return s.outbox }

// Send delivers env to addr in the background
// The result, tagged with localID, is reported through the outbox
func (s *Sender) Send(ctx context.Context, localID int64, addr string, env Envelope) *Pending {
	root := *s.outbox.ctx.Load()
	sendCtx, cancel := context.WithTimeout(root, s.config.SendTimeout)
	stop := context.AfterFunc(ctx, cancel)
	if ctx.Err() != nil {
		cancel()
	}

	p := &Pending{
		LocalID: localID,
		Addr:    addr,
		done:    make(chan struct{}),
		cancel:  cancel,
	}

	s.outbox.inflight.Add(1)
	go func() {
		defer close(p.done)
		defer stop()
		defer cancel()

		p.err = s.deliver(sendCtx, addr, env)
		// Result first, so an idle outbox always has it ready to poll
		s.outbox.results.Push(Result{LocalID: localID, Addr: addr, Err: p.err})
		s.outbox.inflight.Add(-1)
	}()
	return p
}

func (s *Sender) deliver(ctx context.Context, addr string, env Envelope) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := env.Encode(s.config.MaxDatagram)
	if err != nil {
		return err
	}

	conn, err := s.dialer.DialContext(ctx, "udp", addr)
	if err != nil {
		return fmt.Errorf("network: dial %s: %w", addr, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetWriteDeadline(deadline)
	}

	// Write on a datagram socket does not observe ctx; check it around the call
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := conn.Write(payload); err != nil {
		return fmt.Errorf("network: send to %s: %w", addr, err)
	}
	return nil
}

// Address formats a peer address
func Address(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}
