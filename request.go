package kafka

import (
	"github.com/rcrowley/go-metrics"
)

// protocolBody is the single seam every request/response schema implements;
// request.go and framing.go know how to frame any of them without per-API
// boilerplate in the dispatch layer.
type protocolBody interface {
	key() int16
	version() int16
	setVersion(v int16)
	headerVersion() int16
	isValidVersion() bool
	requiredVersion() KafkaVersion
	encode(pe packetEncoder) error
	decode(pd packetDecoder, version int16) error
}

// encodeRequest produces the full wire frame for body: i32 size, then the
// RequestHeader, then the body. The size field is back-patched after
// serialization, never known in advance. This is the one framing path
// every request goes through; no request type frames itself.
func encodeRequest(header *RequestHeader, body protocolBody, registry metrics.Registry) ([]byte, error) {
	pe := newRealEncoder(registry)

	// Reserve the 4-byte size prefix; it is back-patched once the header
	// and body have both been appended.
	sizeOffset := pe.offset()
	pe.push(newInt32LengthField(sizeOffset))

	if err := header.encode(pe); err != nil {
		return nil, err
	}
	if err := body.encode(pe); err != nil {
		return nil, err
	}
	if err := pe.pop(); err != nil {
		return nil, err
	}
	return pe.raw, nil
}
