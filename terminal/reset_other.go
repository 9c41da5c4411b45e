//go:build !linux

package terminal

// resetTerminalMode has no portable termios path outside Linux
func resetTerminalMode() {}
