package terminal

import (
	"fmt"
	"time"
)

// Sink receives styled runs from the compositor
// Home is called once per commit, then one WriteRun per style run, then Flush
type Sink interface {
	Home()
	WriteRun(style Style, text []byte) error
	Flush() error
}

// Driver is the character device collaborator of the engine
type Driver interface {
	Sink

	// Init enters raw mode and the alternate screen
	Init() error
	// Fini restores the original mode; idempotent
	Fini()

	// Size returns the last probed size, UpdateSize re-probes the device
	Size() (width, height int)
	UpdateSize() (width, height int)

	// ReadAvailable returns whatever input is pending without blocking
	ReadAvailable() ([]byte, error)
	// ReadTimeout waits at most d for more input
	ReadTimeout(d time.Duration) ([]byte, error)

	Write(p []byte) (int, error)
	MoveCursor(x, y int)

	// ResizeNotify registers fn to run on window size change
	// fn runs on a signal goroutine and must only record the request
	ResizeNotify(fn func())
}

// Kind selects a driver implementation
type Kind string

const (
	KindANSI  Kind = "ansi"
	KindTcell Kind = "tcell"
)

// ParseKind validates a driver name from config
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case "", KindANSI:
		return KindANSI, nil
	case KindTcell:
		return KindTcell, nil
	}
	return "", fmt.Errorf("unknown terminal driver %q", s)
}

// New constructs the driver for kind on the process tty
func New(kind Kind, mode ColorMode) (Driver, error) {
	switch kind {
	case KindANSI, "":
		return NewANSIDriver(newBackend(), mode), nil
	case KindTcell:
		return NewTcellDriver(nil)
	}
	return nil, fmt.Errorf("unknown terminal driver %q", kind)
}
