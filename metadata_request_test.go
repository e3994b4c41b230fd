package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMetadataRequestEmptyTopicsFraming asserts that an empty (nil) Topics
// list encodes as an explicit zero-length array (00 00 00 00), never the
// null-array sentinel (FF FF FF FF).
func TestMetadataRequestEmptyTopicsFraming(t *testing.T) {
	req := &MetadataRequest{AllowAutoTopicCreation: false}
	pe := newRealEncoder(nil)
	require.NoError(t, req.encode(pe))
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x00, 0x00}, pe.raw)
}

func TestMetadataRequestRoundTrip(t *testing.T) {
	req := &MetadataRequest{Topics: []string{"t1", "t2"}, AllowAutoTopicCreation: true}
	pe := newRealEncoder(nil)
	require.NoError(t, req.encode(pe))

	pd := newRealDecoder(pe.raw)
	got := &MetadataRequest{}
	require.NoError(t, got.decode(pd, 6))
	assert.Equal(t, req.Topics, got.Topics)
	assert.True(t, got.AllowAutoTopicCreation)
}
