package network

import (
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// ErrPayloadTooLarge is returned when an envelope exceeds the datagram limit
var ErrPayloadTooLarge = errors.New("network: payload too large")

// Envelope is one chat message on the wire
// Encoded as a three element msgpack array: content, sender name, chat name
type Envelope struct {
	_msgpack struct{} `msgpack:",as_array"`

	Content  string
	SentBy   string // name of the sending user
	SentFrom string // name of the chat the message was written in
}

// Encode serializes e, enforcing limit when positive
func (e Envelope) Encode(limit int) ([]byte, error) {
	b, err := msgpack.Marshal(&e)
	if err != nil {
		return nil, fmt.Errorf("network: encode envelope: %w", err)
	}
	if limit > 0 && len(b) > limit {
		return nil, fmt.Errorf("%w: %d > %d bytes", ErrPayloadTooLarge, len(b), limit)
	}
	return b, nil
}

// DecodeEnvelope parses one datagram
func DecodeEnvelope(b []byte) (Envelope, error) {
	var e Envelope
	if err := msgpack.Unmarshal(b, &e); err != nil {
		return Envelope{}, fmt.Errorf("network: decode envelope: %w", err)
	}
	return e, nil
}
