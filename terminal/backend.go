package terminal

import "time"

// Backend abstracts platform-specific terminal operations
type Backend interface {
	// Lifecycle
	Init() error
	Fini()

	// Capabilities
	Size() (width, height int)

	// I/O
	Write(p []byte) (int, error)

	// Read waits up to timeout for input; zero timeout polls without blocking
	// Returns nil, nil when nothing arrived in time
	Read(timeout time.Duration) ([]byte, error)

	// SetResizeHandler registers a callback for terminal resize events
	SetResizeHandler(handler func(width, height int))
}
