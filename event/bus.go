package event

// Listener receives the dispatched key
type Listener func(Key)

// Handle identifies one registration; zero is never issued
type Handle uint64

type registration struct {
	handle Handle
	fn     Listener
}

// Bus dispatches keys to listeners
//
// Architecture:
//   - Single-threaded; owned by the engine, mutated only from mount/unmount
//     and handler callbacks
//   - Listeners on the same key run in registration order
//   - Catch-all listeners run after keyed listeners for every key
//   - Removing an unknown or already removed handle is a no-op
type Bus struct {
	listeners map[Key][]registration
	any       []registration
	next      Handle
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{
		listeners: make(map[Key][]registration),
	}
}

func (b *Bus) issue() Handle {
	b.next++
	return b.next
}

// AppendListener registers fn for key and returns its removal handle
func (b *Bus) AppendListener(key Key, fn Listener) Handle {
	h := b.issue()
	b.listeners[key] = append(b.listeners[key], registration{h, fn})
	return h
}

// RemoveListener removes exactly the registration for h under key
func (b *Bus) RemoveListener(key Key, h Handle) bool {
	regs := b.listeners[key]
	for i, r := range regs {
		if r.handle != h {
			continue
		}
		// Copy so a dispatch iterating the old slice is unaffected
		next := make([]registration, 0, len(regs)-1)
		next = append(next, regs[:i]...)
		next = append(next, regs[i+1:]...)
		if len(next) == 0 {
			delete(b.listeners, key)
		} else {
			b.listeners[key] = next
		}
		return true
	}
	return false
}

// AppendAnyListener registers fn for every dispatched key
func (b *Bus) AppendAnyListener(fn Listener) Handle {
	h := b.issue()
	b.any = append(b.any, registration{h, fn})
	return h
}

// RemoveAnyListener removes a catch-all registration
func (b *Bus) RemoveAnyListener(h Handle) bool {
	for i, r := range b.any {
		if r.handle != h {
			continue
		}
		next := make([]registration, 0, len(b.any)-1)
		next = append(next, b.any[:i]...)
		b.any = append(next, b.any[i+1:]...)
		return true
	}
	return false
}

// Dispatch synchronously invokes every listener for key, then catch-all listeners
// Registrations changed during the pass may or may not observe this key
func (b *Bus) Dispatch(key Key) {
	for _, r := range b.listeners[key] {
		r.fn(key)
	}
	for _, r := range b.any {
		r.fn(key)
	}
}

// ListenerCount returns the number of listeners bound to key
func (b *Bus) ListenerCount(key Key) int {
	return len(b.listeners[key])
}

// AnyListenerCount returns the number of catch-all listeners
func (b *Bus) AnyListenerCount() int {
	return len(b.any)
}

// Len returns the number of live registrations of every kind
func (b *Bus) Len() int {
	n := len(b.any)
	for _, regs := range b.listeners {
		n += len(regs)
	}
	return n
}
