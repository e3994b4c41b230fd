package kafka

import (
	"hash/crc32"
)

// castagnoliTable is the CRC-32C polynomial Kafka uses for the record
// batch checksum. No third-party library in the pack offers Castagnoli
// CRC (DESIGN.md); this is also what Sarama itself reaches for here.
var castagnoliTable = crc32.MakeTable(crc32.Castagnoli)

// RecordBatch is the nested binary format used inside Produce requests and
// Fetch responses. Both the CRC and the batch length are computed for real
// on encode, never left as placeholder literals.
type RecordBatch struct {
	BaseOffset           int64
	PartitionLeaderEpoch int32
	Magic                int8
	CRC                  int32
	Attributes           int16
	LastOffsetDelta      int32
	FirstTimestamp       int64
	MaxTimestamp         int64
	ProducerID           int64
	ProducerEpoch        int16
	BaseSequence         int32
	Records              []*Record
}

// Attributes bit 0-2 is the compression codec; this client always writes
// zero there since compression is a non-goal.

// Record is one entry inside a RecordBatch.
type Record struct {
	Attributes     int8
	TimestampDelta int64
	OffsetDelta    int32
	Key            []byte
	Value          []byte
	Headers        []RecordHeader
}

// RecordHeader is one key/value pair attached to a Record.
type RecordHeader struct {
	Key   string
	Value []byte
}

// NewRecordBatch builds a batch of records ready for a Produce request.
// magic is always 2; base_offset 0, producer fields left at the
// non-transactional defaults (-1) since idempotent/transactional production
// is not part of this client's scope.
func NewRecordBatch(records []*Record) *RecordBatch {
	return &RecordBatch{
		BaseOffset:           0,
		PartitionLeaderEpoch: -1,
		Magic:                2,
		Attributes:           0,
		LastOffsetDelta:      int32(len(records) - 1),
		ProducerID:           -1,
		ProducerEpoch:        -1,
		BaseSequence:         -1,
		Records:              records,
	}
}

// NewRecord builds a Record with offsetDelta/timestampDelta set relative
// to the batch's base; key/value lengths are derived on encode rather than
// stored redundantly.
func NewRecord(key, value []byte, offsetDelta int32, headers []RecordHeader) *Record {
	return &Record{
		OffsetDelta: offsetDelta,
		Key:         key,
		Value:       value,
		Headers:     headers,
	}
}

func (b *RecordBatch) encode(pe packetEncoder) error {
	pe.putInt64(b.BaseOffset)

	batchLengthOffset := pe.offset()
	pe.push(newInt32LengthField(batchLengthOffset))

	pe.putInt32(b.PartitionLeaderEpoch)
	pe.putInt8(2) // magic is always 2

	crcOffset := pe.offset()
	pe.push(newCRC32Field(crcOffset))

	pe.putInt16(b.Attributes)
	pe.putInt32(b.LastOffsetDelta)
	pe.putInt64(b.FirstTimestamp)
	pe.putInt64(b.MaxTimestamp)
	pe.putInt64(b.ProducerID)
	pe.putInt16(b.ProducerEpoch)
	pe.putInt32(b.BaseSequence)

	pe.putInt32(int32(len(b.Records)))
	for _, r := range b.Records {
		if err := encodeRecord(pe, r); err != nil {
			return err
		}
	}

	if err := pe.pop(); err != nil { // crc
		return err
	}
	return pe.pop() // batch_length
}

func encodeRecord(pe packetEncoder, r *Record) error {
	body := newRealEncoder(nil)
	body.putInt8(r.Attributes)
	body.putVarint(int32(r.TimestampDelta))
	body.putVarint(r.OffsetDelta)
	if err := body.putVarintBytes(r.Key); err != nil {
		return err
	}
	if err := body.putVarintBytes(r.Value); err != nil {
		return err
	}
	body.putVarint(int32(len(r.Headers)))
	for _, h := range r.Headers {
		if err := body.putVarintBytes([]byte(h.Key)); err != nil {
			return err
		}
		if err := body.putVarintBytes(h.Value); err != nil {
			return err
		}
	}

	pe.putVarint(int32(len(body.raw)))
	return pe.putRawBytes(body.raw)
}

func (b *RecordBatch) decode(pd packetDecoder) (err error) {
	if b.BaseOffset, err = pd.getInt64(); err != nil {
		return err
	}
	// batchLength (bytes from partition_leader_epoch to end of batch) is
	// read but not cross-checked against bytes actually consumed: this
	// engine trusts the broker's framing the same way it trusts the
	// records-region length in the enclosing FetchResponse.
	if _, err = pd.getInt32(); err != nil {
		return err
	}

	if b.PartitionLeaderEpoch, err = pd.getInt32(); err != nil {
		return err
	}
	magic, err := pd.getInt8()
	if err != nil {
		return err
	}
	b.Magic = magic
	if b.CRC, err = pd.getInt32(); err != nil {
		return err
	}
	if b.Attributes, err = pd.getInt16(); err != nil {
		return err
	}
	if b.LastOffsetDelta, err = pd.getInt32(); err != nil {
		return err
	}
	if b.FirstTimestamp, err = pd.getInt64(); err != nil {
		return err
	}
	if b.MaxTimestamp, err = pd.getInt64(); err != nil {
		return err
	}
	if b.ProducerID, err = pd.getInt64(); err != nil {
		return err
	}
	if b.ProducerEpoch, err = pd.getInt16(); err != nil {
		return err
	}
	if b.BaseSequence, err = pd.getInt32(); err != nil {
		return err
	}
	recordCount, err := pd.getInt32()
	if err != nil {
		return err
	}
	b.Records = make([]*Record, recordCount)
	for i := range b.Records {
		r, err := decodeRecord(pd)
		if err != nil {
			return err
		}
		b.Records[i] = r
	}
	return nil
}

func decodeRecord(pd packetDecoder) (*Record, error) {
	length, err := pd.getVarint()
	if err != nil {
		return nil, err
	}
	raw, err := pd.getRawBytes(int(length))
	if err != nil {
		return nil, err
	}
	body := newRealDecoder(raw)

	r := &Record{}
	if r.Attributes, err = body.getInt8(); err != nil {
		return nil, err
	}
	delta, err := body.getVarint()
	if err != nil {
		return nil, err
	}
	r.TimestampDelta = int64(delta)
	if r.OffsetDelta, err = body.getVarint(); err != nil {
		return nil, err
	}
	if r.Key, err = body.getVarintBytes(); err != nil {
		return nil, err
	}
	if r.Value, err = body.getVarintBytes(); err != nil {
		return nil, err
	}
	headerCount, err := body.getVarint()
	if err != nil {
		return nil, err
	}
	r.Headers = make([]RecordHeader, headerCount)
	for i := range r.Headers {
		keyBytes, err := body.getVarintBytes()
		if err != nil {
			return nil, err
		}
		r.Headers[i].Key = string(keyBytes)
		if r.Headers[i].Value, err = body.getVarintBytes(); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// decodeRecordBatches decodes every RecordBatch concatenated in a
// partition's records region, stopping once the cursor reaches the end of
// raw.
func decodeRecordBatches(raw []byte) ([]*RecordBatch, error) {
	pd := newRealDecoder(raw)
	var batches []*RecordBatch
	for pd.remaining() > 0 {
		// A truncated trailing batch (broker sent a partial last batch to
		// respect max_bytes) has fewer bytes than a minimal batch header;
		// stop rather than erroring, matching real consumer behavior.
		if pd.remaining() < 61 {
			break
		}
		b := &RecordBatch{}
		if err := b.decode(pd); err != nil {
			return nil, err
		}
		batches = append(batches, b)
	}
	return batches, nil
}

// crc32Field is a pushEncoder that back-patches the CRC-32C checksum over
// everything encoded between its own placeholder and the point it's
// popped.
type crc32Field struct {
	crcOffset int
}

func newCRC32Field(crcOffset int) *crc32Field {
	return &crc32Field{crcOffset: crcOffset}
}

func (f *crc32Field) reserveLength() int {
	return 4
}

func (f *crc32Field) run(curOffset int, buf []byte) error {
	sum := crc32.Checksum(buf[f.crcOffset+4:curOffset], castagnoliTable)
	be := []byte{byte(sum >> 24), byte(sum >> 16), byte(sum >> 8), byte(sum)}
	copy(buf[f.crcOffset:f.crcOffset+4], be)
	return nil
}
