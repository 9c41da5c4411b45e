package event

import "fmt"

// NonChar names logical keys that have no single character
type NonChar uint8

const (
	NonCharNone NonChar = iota
	NonCharEsc
	NonCharShiftTab
)

// Key is the bus routing key: a character or a logical non-character key
type Key struct {
	Char    rune
	NonChar NonChar
}

// Logical keys
var (
	Esc      = Key{NonChar: NonCharEsc}
	ShiftTab = Key{NonChar: NonCharShiftTab}
	Enter    = Char('\r')
	Tab      = Char('\t')
)

// Char keys a printable or control character
func Char(r rune) Key {
	return Key{Char: r}
}

// Ctrl keys the control character for a letter (ctrl+u -> 0x15)
func Ctrl(r rune) Key {
	return Key{Char: r & 0x1f}
}

// IsPrintable reports whether the key carries insertable text
func (k Key) IsPrintable() bool {
	return k.NonChar == NonCharNone && k.Char >= 0x20 && k.Char != 0x7f
}

// IsBackspace reports DEL or ctrl+h
func (k Key) IsBackspace() bool {
	return k.NonChar == NonCharNone && (k.Char == 0x7f || k.Char == 0x08)
}

func (k Key) String() string {
	if name, ok := KeyName(k); ok {
		return name
	}
	return fmt.Sprintf("%q", k.Char)
}
