package kafka

// packetDecoder is the single decode-side seam every schema's decode method
// reads through, mirroring packetEncoder.
type packetDecoder interface {
	getInt8() (int8, error)
	getInt16() (int16, error)
	getInt32() (int32, error)
	getInt64() (int64, error)
	getBool() (bool, error)
	getVarint() (int32, error)

	getString() (string, error)
	getNullableString() (*string, error)
	getBytes() ([]byte, error)
	getVarintBytes() ([]byte, error)
	getRawBytes(length int) ([]byte, error)
	getStringArray() ([]string, error)

	getArrayLength() (int, error)

	remaining() int
	push(pd pushDecoder) error
	pop() error
}

// pushDecoder mirrors pushEncoder for length fields read up front and
// checked against the actual bytes consumed once the body has been decoded.
type pushDecoder interface {
	saveLength(length int)
	check(curOffset int, buf []byte) error
}
