// Package terminal provides the character device side of the renderer.
//
// Features:
//   - Raw mode and alternate screen over a real tty (ANSIDriver)
//   - tcell backed driver for terminals where terminfo matters (TcellDriver)
//   - True color (24-bit) and 256-color palette SGR output
//   - Non-blocking input reads with a short timed read for escape classification
//   - SIGWINCH resize notification
//   - Clean terminal restoration on exit/panic
//
// Drivers never interpret input; they hand raw bytes to the engine.
package terminal
