package service

import (
	"errors"
	"fmt"
	"log"
	"sync"
)

// ErrNotInitialized is returned by StartAll before a successful InitAll
var ErrNotInitialized = errors.New("service: hub not initialized")

type entry struct {
	svc  Service
	args []any // Init arguments
}

// Hub runs the client's services in registration order
// Register a service after the ones it relies on; Stop runs in reverse
type Hub struct {
	mu      sync.RWMutex
	entries []entry
	byName  map[string]int
	ready   bool
	started int // Prefix of entries whose Start succeeded
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{byName: make(map[string]int)}
}

// Register appends svc with the arguments its Init receives
func (h *Hub) Register(svc Service, args ...any) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	name := svc.Name()
	if _, ok := h.byName[name]; ok {
		return fmt.Errorf("service: %s already registered", name)
	}
	h.byName[name] = len(h.entries)
	h.entries = append(h.entries, entry{svc: svc, args: args})
	h.ready = false
	return nil
}

// Get looks a service up by name
func (h *Hub) Get(name string) (Service, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	i, ok := h.byName[name]
	if !ok {
		return nil, false
	}
	return h.entries[i].svc, true
}

// MustGet returns the named service as T; panics if it is missing or of another type
func MustGet[T any](h *Hub, name string) T {
	svc, ok := h.Get(name)
	if !ok {
		panic(fmt.Sprintf("service not found: %s", name))
	}
	typed, ok := svc.(T)
	if !ok {
		panic(fmt.Sprintf("service %s: type mismatch, got %T", name, svc))
	}
	return typed
}

// InitAll initializes every service in order
// A failure stops the services initialized before it, newest first
func (h *Hub) InitAll() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i, e := range h.entries {
		if err := e.svc.Init(e.args...); err != nil {
			h.stopPrefix(i)
			return fmt.Errorf("service %s init failed: %w", e.svc.Name(), err)
		}
	}
	h.ready = true
	return nil
}

// StartAll starts every service in order, rolling back on failure
func (h *Hub) StartAll() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.ready {
		return ErrNotInitialized
	}
	for i, e := range h.entries {
		if err := e.svc.Start(); err != nil {
			h.stopPrefix(i)
			h.started = 0
			return fmt.Errorf("service %s start failed: %w", e.svc.Name(), err)
		}
		h.started = i + 1
	}
	return nil
}

// StopAll stops started services newest first; errors are logged, not returned
func (h *Hub) StopAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.stopPrefix(h.started)
	h.started = 0
}

// stopPrefix stops entries[:n] in reverse
func (h *Hub) stopPrefix(n int) {
	for i := n - 1; i >= 0; i-- {
		svc := h.entries[i].svc
		if err := svc.Stop(); err != nil {
			log.Printf("service %s stop: %v", svc.Name(), err)
		}
	}
}

// Names returns the registered names in start order
func (h *Hub) Names() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	names := make([]string, len(h.entries))
	for i, e := range h.entries {
		names[i] = e.svc.Name()
	}
	return names
}
