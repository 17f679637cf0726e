package client

//
// wire.go
//

import (
	"encoding/binary"
	"fmt"
)

// Every encoded message starts with a magic byte and the schema id as a
// 4-byte big-endian unsigned integer. The schema type is not part of the
// envelope; it is recovered by looking the id up in the registry.
const (
	MagicByte       byte = 0x0
	wireHeaderBytes      = 5
)

// Frame wraps an encoded payload with the wire envelope for the given id.
// The result is always exactly 5+len(payload) bytes.
func Frame(id uint32, payload []byte) []byte {
	framed := make([]byte, wireHeaderBytes, wireHeaderBytes+len(payload))
	framed[0] = MagicByte
	binary.BigEndian.PutUint32(framed[1:wireHeaderBytes], id)
	return append(framed, payload...)
}

// Unframe splits a message into its schema id and payload. The payload
// slice aliases the input buffer.
func Unframe(buffer []byte) (uint32, []byte, error) {
	if len(buffer) < wireHeaderBytes {
		return 0, nil, &WireFormatError{Reason: fmt.Sprintf("message of %d bytes is shorter than the %d byte header", len(buffer), wireHeaderBytes)}
	}
	if buffer[0] != MagicByte {
		return 0, nil, &WireFormatError{Reason: fmt.Sprintf("unknown magic byte %#x", buffer[0])}
	}
	return binary.BigEndian.Uint32(buffer[1:wireHeaderBytes]), buffer[wireHeaderBytes:], nil
}
