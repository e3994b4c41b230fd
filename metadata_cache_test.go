package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetadataCacheUpdateIsAtomicSwap(t *testing.T) {
	c := newMetadataCache()
	assert.False(t, c.hasTopic("orders"))

	c.update(&MetadataResponse{
		Brokers: []*Broker{{NodeID: 1, Host: "h1", Port: 9092}},
		Topics: []*TopicMetadata{
			{Name: "orders", Partitions: []*PartitionMetadata{{PartitionIndex: 0, LeaderID: 1}}},
		},
	})
	assert.True(t, c.hasTopic("orders"))
	leader, ok := c.leaderFor("orders", 0)
	assert.True(t, ok)
	assert.Equal(t, int32(1), leader)

	addr, ok := c.brokerAddr(1)
	assert.True(t, ok)
	assert.Equal(t, "h1:9092", addr)
}

func TestMetadataCacheRefreshPreservesUnrelatedTopics(t *testing.T) {
	c := newMetadataCache()
	c.update(&MetadataResponse{
		Topics: []*TopicMetadata{
			{Name: "orders", Partitions: []*PartitionMetadata{{PartitionIndex: 0, LeaderID: 1}}},
		},
	})
	c.update(&MetadataResponse{
		Topics: []*TopicMetadata{
			{Name: "payments", Partitions: []*PartitionMetadata{{PartitionIndex: 0, LeaderID: 2}}},
		},
	})

	assert.True(t, c.hasTopic("orders"))
	assert.True(t, c.hasTopic("payments"))
}

func TestMetadataCacheMissingTopics(t *testing.T) {
	c := newMetadataCache()
	c.update(&MetadataResponse{
		Topics: []*TopicMetadata{{Name: "orders"}},
	})
	missing := c.missingTopics([]string{"orders", "payments"})
	assert.Equal(t, []string{"payments"}, missing)
}

func TestMetadataCacheRegisterBrokerAddsWithoutDroppingExisting(t *testing.T) {
	c := newMetadataCache()
	c.update(&MetadataResponse{
		Brokers: []*Broker{{NodeID: 1, Host: "h1", Port: 9092}},
		Topics: []*TopicMetadata{
			{Name: "orders", Partitions: []*PartitionMetadata{{PartitionIndex: 0, LeaderID: 1}}},
		},
	})

	c.registerBroker(&Broker{NodeID: 9, Host: "coordinator", Port: 9093})

	addr, ok := c.brokerAddr(9)
	assert.True(t, ok)
	assert.Equal(t, "coordinator:9093", addr)

	addr, ok = c.brokerAddr(1)
	assert.True(t, ok)
	assert.Equal(t, "h1:9092", addr)
	assert.True(t, c.hasTopic("orders"))
}
