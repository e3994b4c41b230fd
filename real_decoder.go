package kafka

import (
	"encoding/binary"
	"math"
)

// realDecoder is the only packetDecoder implementation: a positional cursor
// over a byte slice.
type realDecoder struct {
	raw   []byte
	off   int
	stack []pushDecoder
}

func newRealDecoder(raw []byte) *realDecoder {
	return &realDecoder{raw: raw}
}

func (d *realDecoder) remaining() int {
	return len(d.raw) - d.off
}

func (d *realDecoder) require(n int) error {
	if n < 0 {
		return PacketDecodingError{"negative length"}
	}
	if d.remaining() < n {
		return PacketDecodingError{"insufficient data"}
	}
	return nil
}

func (d *realDecoder) getInt8() (int8, error) {
	if err := d.require(1); err != nil {
		return 0, err
	}
	v := int8(d.raw[d.off])
	d.off++
	return v, nil
}

func (d *realDecoder) getInt16() (int16, error) {
	if err := d.require(2); err != nil {
		return 0, err
	}
	v := int16(binary.BigEndian.Uint16(d.raw[d.off:]))
	d.off += 2
	return v, nil
}

func (d *realDecoder) getInt32() (int32, error) {
	if err := d.require(4); err != nil {
		return 0, err
	}
	v := int32(binary.BigEndian.Uint32(d.raw[d.off:]))
	d.off += 4
	return v, nil
}

func (d *realDecoder) getInt64() (int64, error) {
	if err := d.require(8); err != nil {
		return 0, err
	}
	v := int64(binary.BigEndian.Uint64(d.raw[d.off:]))
	d.off += 8
	return v, nil
}

func (d *realDecoder) getBool() (bool, error) {
	v, err := d.getInt8()
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// getVarint reads 7-bits-per-byte little-endian with continuation bit
// 0x80, then zig-zag decodes the raw unsigned value: (v >> 1) ^ -(v & 1).
// A plain arithmetic right shift would agree with this only for
// non-negative source values, so negative values must go through the
// full zig-zag decode.
func (d *realDecoder) getVarint() (int32, error) {
	var value uint32
	var shift uint
	for {
		b, err := d.getInt8()
		if err != nil {
			return 0, err
		}
		value |= uint32(b&0x7f) << shift
		if uint8(b)&0x80 == 0 {
			break
		}
		shift += 7
		if shift > 28 {
			return 0, PacketDecodingError{"varint overflows int32"}
		}
	}
	return int32(value>>1) ^ -(int32(value) & 1), nil
}

func (d *realDecoder) getString() (string, error) {
	n, err := d.getInt16()
	if err != nil {
		return "", err
	}
	if n == -1 {
		return "", nil
	}
	if err := d.require(int(n)); err != nil {
		return "", err
	}
	s := string(d.raw[d.off : d.off+int(n)])
	d.off += int(n)
	return s, nil
}

func (d *realDecoder) getNullableString() (*string, error) {
	n, err := d.getInt16()
	if err != nil {
		return nil, err
	}
	if n == -1 {
		return nil, nil
	}
	if err := d.require(int(n)); err != nil {
		return nil, err
	}
	s := string(d.raw[d.off : d.off+int(n)])
	d.off += int(n)
	return &s, nil
}

func (d *realDecoder) getBytes() ([]byte, error) {
	n, err := d.getInt32()
	if err != nil {
		return nil, err
	}
	if n == -1 {
		return nil, nil
	}
	return d.getRawBytes(int(n))
}

func (d *realDecoder) getVarintBytes() ([]byte, error) {
	n, err := d.getVarint()
	if err != nil {
		return nil, err
	}
	if n == -1 {
		return nil, nil
	}
	return d.getRawBytes(int(n))
}

func (d *realDecoder) getRawBytes(length int) ([]byte, error) {
	if err := d.require(length); err != nil {
		return nil, err
	}
	v := make([]byte, length)
	copy(v, d.raw[d.off:d.off+length])
	d.off += length
	return v, nil
}

func (d *realDecoder) getStringArray() ([]string, error) {
	n, err := d.getArrayLength()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	out := make([]string, n)
	for i := range out {
		if out[i], err = d.getString(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (d *realDecoder) getArrayLength() (int, error) {
	n, err := d.getInt32()
	if err != nil {
		return 0, err
	}
	if n > math.MaxInt32 {
		return 0, PacketDecodingError{"array length too large"}
	}
	if n == -1 {
		return 0, nil
	}
	if int(n) < 0 || int(n) > d.remaining() {
		return 0, PacketDecodingError{"array length larger than remaining bytes"}
	}
	return int(n), nil
}

func (d *realDecoder) push(pd pushDecoder) error {
	d.stack = append(d.stack, pd)
	return nil
}

func (d *realDecoder) pop() error {
	pd := d.stack[len(d.stack)-1]
	d.stack = d.stack[:len(d.stack)-1]
	return pd.check(d.off, d.raw)
}
