package kafka

import (
	"testing"

	"github.com/eapache/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClusterClient() *ClusterClient {
	return &ClusterClient{
		clientID:    "roi",
		cfg:         NewConfig(),
		conns:       newConnPool(NewConfig()),
		metadata:    newMetadataCache(),
		roundRobin:  queue.New(),
		apiVersions: map[int16]int16{apiKeyMetadata: 6},
	}
}

func TestDispatchAfterCloseReturnsErrClosedClient(t *testing.T) {
	c := newTestClusterClient()
	require.NoError(t, c.Close())

	err := c.dispatch(1, &MetadataRequest{}, &MetadataResponse{})
	assert.ErrorIs(t, err, ErrClosedClient)
}

func TestNegotiatedVersionUnknownAPIKeyFails(t *testing.T) {
	c := newTestClusterClient()
	_, err := c.negotiatedVersion(apiKeyJoinGroup)
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestNextRoundRobinBrokerCyclesAndErrorsWhenEmpty(t *testing.T) {
	c := newTestClusterClient()
	_, err := c.nextRoundRobinBroker()
	assert.ErrorIs(t, err, ErrNoBrokersAvailable)

	c.roundRobin.Add(int32(1))
	c.roundRobin.Add(int32(2))

	first, err := c.nextRoundRobinBroker()
	require.NoError(t, err)
	second, err := c.nextRoundRobinBroker()
	require.NoError(t, err)
	third, err := c.nextRoundRobinBroker()
	require.NoError(t, err)

	assert.Equal(t, first, third)
	assert.NotEqual(t, first, second)
}

func TestSeedNodeIDIsNegativeAndStable(t *testing.T) {
	a := seedNodeID("broker1:9092")
	b := seedNodeID("broker1:9092")
	c := seedNodeID("broker2:9092")

	assert.Equal(t, a, b)
	assert.Negative(t, a)
	assert.NotEqual(t, a, c)
}
