//go:build unix

package terminal

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

type unixBackend struct {
	in      *os.File
	out     *os.File
	inFd    int
	outFd   int
	oldTerm *term.State
	buf     []byte

	resizeStopCh chan struct{}
	resizeDoneCh chan struct{}
}

func newBackend() Backend {
	return NewFileBackend(os.Stdin, os.Stdout)
}

// NewFileBackend builds a backend over explicit tty files (stdin/stdout or a pty)
func NewFileBackend(in, out *os.File) Backend {
	return &unixBackend{
		in:    in,
		out:   out,
		inFd:  int(in.Fd()),
		outFd: int(out.Fd()),
		buf:   make([]byte, 256),
	}
}

func (b *unixBackend) Init() error {
	if !term.IsTerminal(b.inFd) {
		return fmt.Errorf("stdin is not a terminal")
	}

	old, err := term.MakeRaw(b.inFd)
	if err != nil {
		return err
	}
	b.oldTerm = old
	return nil
}

func (b *unixBackend) Fini() {
	if b.resizeStopCh != nil {
		close(b.resizeStopCh)
		<-b.resizeDoneCh
		b.resizeStopCh = nil
	}
	if b.oldTerm != nil {
		term.Restore(b.inFd, b.oldTerm)
		b.oldTerm = nil
	}
}

func (b *unixBackend) Size() (int, int) {
	return getTerminalSize(b.outFd)
}

func (b *unixBackend) Write(p []byte) (int, error) {
	return b.out.Write(p)
}

// Read polls the input fd once and drains what is ready
func (b *unixBackend) Read(timeout time.Duration) ([]byte, error) {
	fds := []unix.PollFd{
		{Fd: int32(b.inFd), Events: unix.POLLIN},
	}

	for {
		n, err := unix.Poll(fds, int(timeout/time.Millisecond))
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return nil, err
		}
		if n == 0 || fds[0].Revents&unix.POLLIN == 0 {
			return nil, nil
		}
		break
	}

	rn, err := unix.Read(b.inFd, b.buf)
	if err != nil {
		if err == unix.EINTR || err == unix.EAGAIN {
			return nil, nil
		}
		return nil, err
	}
	if rn <= 0 {
		return nil, nil
	}

	ret := make([]byte, rn)
	copy(ret, b.buf[:rn])
	return ret, nil
}

func (b *unixBackend) SetResizeHandler(handler func(width, height int)) {
	if b.resizeStopCh != nil {
		return
	}
	b.resizeStopCh = make(chan struct{})
	b.resizeDoneCh = make(chan struct{})

	go func() {
		defer close(b.resizeDoneCh)
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGWINCH)
		defer signal.Stop(sigCh)

		for {
			select {
			case <-b.resizeStopCh:
				return
			case <-sigCh:
				w, h := b.Size()
				handler(w, h)
			}
		}
	}()
}

// getTerminalSize returns the terminal size for a given fd
func getTerminalSize(fd int) (int, int) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 || ws.Row == 0 {
		return 80, 24 // Fallback
	}
	return int(ws.Col), int(ws.Row)
}
