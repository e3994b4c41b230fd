package kafka

import "github.com/rcrowley/go-metrics"

// packetEncoder is the single encode-side seam every schema's encode method
// writes through. One interface, many scalar/composite methods, instead of
// a per-type trait hierarchy.
type packetEncoder interface {
	putInt8(in int8)
	putInt16(in int16)
	putInt32(in int32)
	putInt64(in int64)
	putBool(in bool)
	putVarint(in int32)

	putString(in string) error
	putNullableString(in *string) error
	putBytes(in []byte) error
	putVarintBytes(in []byte) error
	putRawBytes(in []byte) error
	putStringArray(in []string) error

	putArrayLength(n int) error

	// offset/push/pop support the fill-in-after-the-fact pattern used by
	// the request size prefix, the record batch's batch_length and CRC, and
	// the records-region length in Produce requests and Fetch responses.
	offset() int
	push(pe pushEncoder)
	pop() error

	metricRegistry() metrics.Registry
}

// pushEncoder is a length field whose value isn't known until everything
// after it has been encoded: reserve the bytes on push, fill them in on pop.
type pushEncoder interface {
	reserveLength() int
	run(curOffset int, buf []byte) error
}
