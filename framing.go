package kafka

import (
	"encoding/binary"
	"fmt"
	"io"
)

// readFrame reads exactly four bytes for the size, then exactly that many
// bytes before anything is decoded. A short read at either stage is a
// transport error, not a protocol error; the caller should not try to
// interpret a partial frame.
func readFrame(r io.Reader) (payload []byte, err error) {
	var sizeBuf [4]byte
	if _, err := io.ReadFull(r, sizeBuf[:]); err != nil {
		return nil, fmt.Errorf("kafka: reading response size: %w", err)
	}
	size := int32(binary.BigEndian.Uint32(sizeBuf[:]))
	if size < 0 {
		return nil, PacketDecodingError{"response size is negative"}
	}
	payload = make([]byte, size)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("kafka: reading response body (%d bytes): %w", size, err)
	}
	return payload, nil
}

// writeFrame writes a fully-framed request (as produced by encodeRequest)
// to w in a single call.
func writeFrame(w io.Writer, frame []byte) error {
	if _, err := w.Write(frame); err != nil {
		return fmt.Errorf("kafka: writing request: %w", err)
	}
	return nil
}

// readResponse reads one framed response, decodes its ResponseHeader, and
// decodes body in place. It verifies the correlation id matches what the
// caller expects, since in-order request/response pairing is only
// guaranteed within a single socket.
func readResponse(r io.Reader, wantCorrelationID int32, body protocolBody, version int16) (*ResponseHeader, error) {
	raw, err := readFrame(r)
	if err != nil {
		return nil, err
	}
	pd := newRealDecoder(raw)
	header := &ResponseHeader{}
	if err := header.decode(pd); err != nil {
		return nil, err
	}
	if header.CorrelationID != wantCorrelationID {
		return nil, fmt.Errorf("kafka: correlation id mismatch: want %d, got %d", wantCorrelationID, header.CorrelationID)
	}
	if err := body.decode(pd, version); err != nil {
		return nil, err
	}
	return header, nil
}
