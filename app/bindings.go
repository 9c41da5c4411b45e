package app

import "github.com/lixenwraith/termchat/event"

type keyed struct {
	key    event.Key
	handle event.Handle
}

// bindings records a scene's bus registrations so Unmount removes exactly them
// Keyed handlers are muted while a text field holds the input
type bindings struct {
	state *State
	keyed []keyed
	any   []event.Handle
}

func (b *bindings) on(bus *event.Bus, key event.Key, fn func()) {
	h := bus.AppendListener(key, func(event.Key) {
		if b.state != nil && b.state.Editing() {
			return
		}
		fn()
	})
	b.keyed = append(b.keyed, keyed{key, h})
}

func (b *bindings) onAny(bus *event.Bus, fn event.Listener) {
	b.any = append(b.any, bus.AppendAnyListener(fn))
}

func (b *bindings) release(bus *event.Bus) {
	for _, k := range b.keyed {
		bus.RemoveListener(k.key, k.handle)
	}
	for _, h := range b.any {
		bus.RemoveAnyListener(h)
	}
	b.keyed = b.keyed[:0]
	b.any = b.any[:0]
}

func (b *bindings) len() int {
	return len(b.keyed) + len(b.any)
}
