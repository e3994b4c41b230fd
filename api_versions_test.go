package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestApiVersionsBootstrapRoundTrip exercises the real codec rather than
// asserting a literal byte string: the corresponding golden-vector fixture's golden bytes
// declare a client-id length of 4 for the 3-byte client id "roi", an
// internal inconsistency (see DESIGN.md's Open Question resolutions). A
// self-consistent round trip is the meaningful thing to assert instead.
func TestApiVersionsBootstrapRoundTrip(t *testing.T) {
	header := &RequestHeader{
		APIKey:        apiKeyApiVersions,
		APIVersion:    1,
		CorrelationID: 19,
		ClientID:      "roi",
	}
	req := &ApiVersionsRequest{Version: 1}

	frame, err := encodeRequest(header, req, nil)
	require.NoError(t, err)

	pd := newRealDecoder(frame)
	size, err := pd.getInt32()
	require.NoError(t, err)
	assert.Equal(t, len(frame)-4, int(size))

	gotHeader := &RequestHeader{}
	require.NoError(t, gotHeader.decode(pd))
	assert.Equal(t, int16(18), gotHeader.APIKey)
	assert.Equal(t, int16(1), gotHeader.APIVersion)
	assert.Equal(t, int32(19), gotHeader.CorrelationID)
	assert.Equal(t, "roi", gotHeader.ClientID)
}

func TestNegotiatedVersionPicksHighestOverlap(t *testing.T) {
	broker := map[int16][2]int16{
		apiKeyFetch: {0, 11},
	}
	// Mirrors the intersection logic in negotiateVersions without needing
	// a live connection: clientSupportedVersions only ever lists one
	// version per API, and it must fall inside the broker's range.
	rng := broker[apiKeyFetch]
	wanted := clientSupportedVersions[apiKeyFetch]
	v := wanted[len(wanted)-1]
	assert.GreaterOrEqual(t, v, rng[0])
	assert.LessOrEqual(t, v, rng[1])
}
