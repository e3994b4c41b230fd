package kafka

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRecordBatchRoundTrip exercises the real CRC-32C and batch_length
// computation over a key/value/header record.
func TestRecordBatchRoundTrip(t *testing.T) {
	record := NewRecord([]byte("k"), []byte("v"), 0, []RecordHeader{
		{Key: "app", Value: []byte("rust")},
	})
	batch := NewRecordBatch([]*Record{record})

	pe := newRealEncoder(nil)
	require.NoError(t, batch.encode(pe))

	pd := newRealDecoder(pe.raw)
	got := &RecordBatch{}
	require.NoError(t, got.decode(pd))

	if !assert.Len(t, got.Records, 1) {
		t.Fatal(spew.Sdump(got))
	}
	assert.Equal(t, []byte("k"), got.Records[0].Key)
	assert.Equal(t, []byte("v"), got.Records[0].Value)
	require.Len(t, got.Records[0].Headers, 1)
	assert.Equal(t, "app", got.Records[0].Headers[0].Key)
	assert.Equal(t, []byte("rust"), got.Records[0].Headers[0].Value)
}

func TestRecordBatchCRCIsComputed(t *testing.T) {
	batch := NewRecordBatch([]*Record{NewRecord([]byte("k"), []byte("v"), 0, nil)})
	pe := newRealEncoder(nil)
	require.NoError(t, batch.encode(pe))

	pd := newRealDecoder(pe.raw)
	got := &RecordBatch{}
	require.NoError(t, got.decode(pd))

	assert.NotZero(t, got.CRC, "crc must be a real checksum, not the original's hardcoded 0")
}

func TestRecordBatchLengthIsComputed(t *testing.T) {
	batch := NewRecordBatch([]*Record{NewRecord([]byte("k"), []byte("v"), 0, nil)})
	pe := newRealEncoder(nil)
	require.NoError(t, batch.encode(pe))

	// batch_length sits right after base_offset (8 bytes); it must equal
	// the number of bytes from partition_leader_epoch through the end of
	// the batch, never the original's hardcoded 100.
	pd := newRealDecoder(pe.raw)
	_, err := pd.getInt64()
	require.NoError(t, err)
	length, err := pd.getInt32()
	require.NoError(t, err)
	assert.Equal(t, len(pe.raw)-12, int(length))
	assert.NotEqual(t, int32(100), length)
}

func TestDecodeRecordBatchesStopsOnTruncatedTrailer(t *testing.T) {
	batch := NewRecordBatch([]*Record{NewRecord([]byte("k"), []byte("v"), 0, nil)})
	pe := newRealEncoder(nil)
	require.NoError(t, batch.encode(pe))

	truncated := append(pe.raw, pe.raw[:30]...)
	batches, err := decodeRecordBatches(truncated)
	require.NoError(t, err)
	assert.Len(t, batches, 1)
}
