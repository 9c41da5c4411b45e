package terminal

// Raw control bytes the engine recognizes before dispatch
const (
	ByteCtrlQ     byte = 0x11
	ByteEscape    byte = 0x1b
	ByteBackspace byte = 0x7f
	ByteCtrlH     byte = 0x08
)

// EscapeMaxTail bounds the bytes read after ESC for classification
const EscapeMaxTail = 8

// Escape is the logical meaning of an ESC-introduced sequence
type Escape uint8

const (
	EscapeUnknown Escape = iota
	EscapeBare           // ESC pressed on its own
	EscapeBacktab        // Shift+Tab, CSI Z
)

// ClassifyEscape maps the bytes that followed an ESC byte
func ClassifyEscape(tail []byte) Escape {
	switch string(tail) {
	case "":
		return EscapeBare
	case "[Z":
		return EscapeBacktab
	}
	return EscapeUnknown
}
