//go:build !unix

package terminal

import (
	"errors"
	"time"
)

// unsupportedBackend lets the package build where no raw tty exists; use the tcell driver there
type unsupportedBackend struct{}

func newBackend() Backend { return unsupportedBackend{} }

func (unsupportedBackend) Init() error {
	return errors.New("ansi driver requires a unix tty, use driver = \"tcell\"")
}
func (unsupportedBackend) Fini() {}
func (unsupportedBackend) Size() (int, int) { return 80, 24 }
func (unsupportedBackend) Write(p []byte) (int, error) { return len(p), nil }
func (unsupportedBackend) Read(time.Duration) ([]byte, error) { return nil, nil }
func (unsupportedBackend) SetResizeHandler(func(width, height int)) {}
