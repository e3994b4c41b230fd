package kafka

import (
	"encoding/binary"
	"math"

	"github.com/rcrowley/go-metrics"
)

// realEncoder is the only packetEncoder implementation: an append-only byte
// buffer plus a stack of pending fields whose value depends on what is
// encoded after them: the request size prefix, the record batch's
// batch_length and CRC, and the records-region length in Produce requests
// and Fetch responses.
type realEncoder struct {
	raw      []byte
	stack    []pushEncoder
	registry metrics.Registry
}

func newRealEncoder(registry metrics.Registry) *realEncoder {
	if registry == nil {
		registry = metrics.DefaultRegistry
	}
	return &realEncoder{registry: registry}
}

func (e *realEncoder) putInt8(in int8) {
	e.raw = append(e.raw, byte(in))
}

func (e *realEncoder) putInt16(in int16) {
	e.raw = append(e.raw, byte(in>>8), byte(in))
}

func (e *realEncoder) putInt32(in int32) {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(in))
	e.raw = append(e.raw, buf[:]...)
}

func (e *realEncoder) putInt64(in int64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(in))
	e.raw = append(e.raw, buf[:]...)
}

func (e *realEncoder) putBool(in bool) {
	if in {
		e.putInt8(1)
	} else {
		e.putInt8(0)
	}
}

// putVarint zig-zag encodes in, then writes 7 bits per byte little-endian
// with the continuation bit (0x80) set on every byte but the last.
func (e *realEncoder) putVarint(in int32) {
	zigzag := uint32((in << 1) ^ (in >> 31))
	for zigzag&^0x7f != 0 {
		e.raw = append(e.raw, byte(zigzag&0x7f|0x80))
		zigzag >>= 7
	}
	e.raw = append(e.raw, byte(zigzag))
}

func (e *realEncoder) putString(in string) error {
	if len(in) > math.MaxInt16 {
		return PacketEncodingError{"string too long"}
	}
	e.putInt16(int16(len(in)))
	e.raw = append(e.raw, in...)
	return nil
}

func (e *realEncoder) putNullableString(in *string) error {
	if in == nil {
		e.putInt16(-1)
		return nil
	}
	return e.putString(*in)
}

func (e *realEncoder) putBytes(in []byte) error {
	if in == nil {
		e.putInt32(-1)
		return nil
	}
	if len(in) > math.MaxInt32 {
		return PacketEncodingError{"byte slice too long"}
	}
	e.putInt32(int32(len(in)))
	return e.putRawBytes(in)
}

func (e *realEncoder) putVarintBytes(in []byte) error {
	if in == nil {
		e.putVarint(-1)
		return nil
	}
	e.putVarint(int32(len(in)))
	return e.putRawBytes(in)
}

func (e *realEncoder) putRawBytes(in []byte) error {
	e.raw = append(e.raw, in...)
	return nil
}

func (e *realEncoder) putStringArray(in []string) error {
	if err := e.putArrayLength(len(in)); err != nil {
		return err
	}
	for _, s := range in {
		if err := e.putString(s); err != nil {
			return err
		}
	}
	return nil
}

func (e *realEncoder) putArrayLength(n int) error {
	if n > math.MaxInt32 {
		return PacketEncodingError{"array too long"}
	}
	e.putInt32(int32(n))
	return nil
}

func (e *realEncoder) offset() int {
	return len(e.raw)
}

func (e *realEncoder) push(pe pushEncoder) {
	reserve := pe.reserveLength()
	e.raw = append(e.raw, make([]byte, reserve)...)
	e.stack = append(e.stack, pe)
}

func (e *realEncoder) pop() error {
	pe := e.stack[len(e.stack)-1]
	e.stack = e.stack[:len(e.stack)-1]
	return pe.run(len(e.raw), e.raw)
}

func (e *realEncoder) metricRegistry() metrics.Registry {
	return e.registry
}

// int32LengthField is a pushEncoder that back-patches a 4-byte length once
// the bytes it covers have been appended.
type int32LengthField struct {
	startOffset int
}

func (f *int32LengthField) reserveLength() int {
	return 4
}

func (f *int32LengthField) run(curOffset int, buf []byte) error {
	length := curOffset - f.startOffset - 4
	binary.BigEndian.PutUint32(buf[f.startOffset:], uint32(length))
	return nil
}

func newInt32LengthField(startOffset int) *int32LengthField {
	return &int32LengthField{startOffset: startOffset}
}
