package app

import (
	"github.com/lixenwraith/termchat/audio"
	"github.com/lixenwraith/termchat/config"
	"github.com/lixenwraith/termchat/engine"
	"github.com/lixenwraith/termchat/event"
	"github.com/lixenwraith/termchat/network"
)

// Peers carries the background collaborators of the scene tree; all optional
type Peers struct {
	Inbound *event.Queue[network.Inbound]
	Outbox  *network.Outbox
	Player  audio.Player
}

// Root is the scene tree: the sidebar with the chat list and the chat pane,
// the modal host, the network pump and the perf overlay, drawn in that order
type Root struct {
	*engine.Stack

	Sidebar *Sidebar
	Select  *SelectView
	Net     *Net
}

// NewRoot builds the tree; children are mounted as they are added
func NewRoot(e *engine.Engine, state *State, keys config.Keymap, peers Peers) *Root {
	r := &Root{
		Stack:   engine.NewStack(),
		Sidebar: NewSidebar(state, keys, NewChatView(state, keys), NewChat(state, keys)),
		Select:  NewSelectView(state, keys),
		Net:     NewNet(state, keys, peers.Inbound, peers.Outbox, peers.Player),
	}
	r.Add(e, r.Sidebar)
	r.Add(e, r.Select)
	r.Add(e, r.Net)
	r.Add(e, Perf{})
	return r
}
