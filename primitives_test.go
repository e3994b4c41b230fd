package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVarintZigZagGoldenVector(t *testing.T) {
	// Encoding the i32 value 300 zig-zags to 600, which varint-encodes as
	// D8 04 (0xD8 = 0x80|0x58, continuation set, low 7 bits 0x58; 0x04 is
	// 600>>7). See DESIGN.md's "Varint zig-zag fix" entry for the reasoning
	// behind this golden vector.
	e := newRealEncoder(nil)
	e.putVarint(300)
	assert.Equal(t, []byte{0xD8, 0x04}, e.raw)

	d := newRealDecoder([]byte{0xD8, 0x04})
	v, err := d.getVarint()
	require.NoError(t, err)
	assert.Equal(t, int32(300), v)
}

func TestVarintRoundTrip(t *testing.T) {
	values := []int32{0, 1, -1, 63, 64, -64, -65, 1000000, -1000000, 2147483647, -2147483648}
	for _, v := range values {
		e := newRealEncoder(nil)
		e.putVarint(v)
		d := newRealDecoder(e.raw)
		got, err := d.getVarint()
		require.NoError(t, err)
		assert.Equalf(t, v, got, "round trip of %d", v)
	}
}

func TestStringRoundTrip(t *testing.T) {
	e := newRealEncoder(nil)
	require.NoError(t, e.putString("roi"))
	d := newRealDecoder(e.raw)
	got, err := d.getString()
	require.NoError(t, err)
	assert.Equal(t, "roi", got)
}

func TestNullableStringRoundTrip(t *testing.T) {
	e := newRealEncoder(nil)
	require.NoError(t, e.putNullableString(nil))
	d := newRealDecoder(e.raw)
	got, err := d.getNullableString()
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestArrayLengthNullSentinel(t *testing.T) {
	// A null array (-1) decodes as length 0, the same as an explicit empty
	// array; the two are indistinguishable once decoded, matching
	// real_decoder.go's getArrayLength.
	d := newRealDecoder([]byte{0xFF, 0xFF, 0xFF, 0xFF})
	n, err := d.getArrayLength()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestVarintBytesNullRoundTrip(t *testing.T) {
	e := newRealEncoder(nil)
	require.NoError(t, e.putVarintBytes(nil))
	d := newRealDecoder(e.raw)
	got, err := d.getVarintBytes()
	require.NoError(t, err)
	assert.Nil(t, got)
}
