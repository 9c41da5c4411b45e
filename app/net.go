package app

import (
	"log"

	"github.com/lixenwraith/termchat/audio"
	"github.com/lixenwraith/termchat/config"
	"github.com/lixenwraith/termchat/engine"
	"github.com/lixenwraith/termchat/event"
	"github.com/lixenwraith/termchat/network"
	"github.com/lixenwraith/termchat/screen"
	"github.com/lixenwraith/termchat/terminal"
)

// Net moves network traffic in and out of the state once per frame
// Received envelopes are stored, finished sends update their messages,
// and each outcome plays its cue
type Net struct {
	state   *State
	keys    config.Keymap
	inbound *event.Queue[network.Inbound]
	outbox  *network.Outbox
	player  audio.Player

	received uint64
	failed   uint64
	binds    bindings
}

// NewNet wires the inbound queue and outbox to state
// Any of inbound, outbox or player may be nil
func NewNet(state *State, keys config.Keymap, inbound *event.Queue[network.Inbound], outbox *network.Outbox, player audio.Player) *Net {
	return &Net{
		state:   state,
		keys:    keys,
		inbound: inbound,
		outbox:  outbox,
		player:  player,
		binds:   bindings{state: state},
	}
}

// Received returns the number of stored inbound messages
func (n *Net) Received() uint64 { return n.received }

// Failed returns the number of failed sends seen
func (n *Net) Failed() uint64 { return n.failed }

func (n *Net) play(cue audio.Cue) {
	if n.player != nil {
		n.player.Play(cue)
	}
}

func (n *Net) Update(e *engine.Engine) {
	sent, failed := 0, 0
	for _, r := range n.state.PollOutbound() {
		if r.Err != nil {
			failed++
		} else {
			sent++
		}
	}
	n.failed += uint64(failed)
	switch {
	case failed > 0:
		n.play(audio.CueSendError)
	case sent > 0:
		n.play(audio.CueSent)
	}

	if n.inbound == nil {
		return
	}
	stored := 0
	for _, in := range n.inbound.Drain() {
		stored += n.state.RecvMessage(in.Envelope)
	}
	if stored > 0 {
		n.received += uint64(stored)
		n.play(audio.CueReceive)
	}
}

// Draw shows the in-flight send count two rows above the bottom
func (n *Net) Draw(e *engine.Engine, t screen.Transform, s screen.Size, buf *screen.Buffer) {
	buf.PrintStyled(t.Move(0, s.H-2), terminal.StyleReverse, "%d", n.state.Pending())
	if n.player != nil && n.player.IsMuted() {
		buf.PrintStyled(t.Move(0, s.H-3), terminal.StyleDim, "muted")
	}
}

func (n *Net) Mount(e *engine.Engine) {
	if n.player != nil {
		n.binds.on(e.Bus(), n.keys.Key(config.ActionToggleMute), func() {
			log.Printf("app: sound on: %v", n.player.ToggleMute())
		})
	}
}

// Unmount cancels sends still in flight; their results arrive as errors
func (n *Net) Unmount(e *engine.Engine) {
	if n.outbox != nil {
		n.outbox.Cancel()
	}
	n.binds.release(e.Bus())
}
