package kafka

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCreateTopicsRequestWireLayout pins the corresponding golden-vector fixture's exact byte
// sequence for create_topic("t1", 3, 1): array-count 1, string "t1",
// num_partitions 3, replication_factor 1, assignments-count 0,
// configs-count 0, timeout_ms 5000, validate_only 0.
func TestCreateTopicsRequestWireLayout(t *testing.T) {
	req := &CreateTopicsRequest{
		Topics: []*CreatableTopic{
			{Name: "t1", NumPartitions: 3, ReplicationFactor: 1},
		},
		Timeout: 5000 * time.Millisecond,
	}
	pe := newRealEncoder(nil)
	require.NoError(t, req.encode(pe))

	want := []byte{
		0x00, 0x00, 0x00, 0x01, // topics array count = 1
		0x00, 0x02, 't', '1', // string "t1"
		0x00, 0x00, 0x00, 0x03, // num_partitions = 3
		0x00, 0x01, // replication_factor = 1
		0x00, 0x00, 0x00, 0x00, // assignments count = 0
		0x00, 0x00, 0x00, 0x00, // configs count = 0
		0x00, 0x00, 0x13, 0x88, // timeout_ms = 5000
		0x00, // validate_only = false
	}
	assert.Equal(t, want, pe.raw)
}

func TestCreateTopicsResponseSuccessIsReported(t *testing.T) {
	resp := &CreateTopicsResponse{
		Version:      3,
		TopicErrors:  map[string]*TopicError{"t1": {Err: ErrNoError}},
		ThrottleTime: 0,
	}
	pe := newRealEncoder(nil)
	require.NoError(t, resp.encode(pe))

	pd := newRealDecoder(pe.raw)
	got := &CreateTopicsResponse{}
	require.NoError(t, got.decode(pd, 3))

	topicErr, ok := got.TopicErrors["t1"]
	require.True(t, ok)
	assert.Equal(t, ErrNoError, topicErr.Err)
}
