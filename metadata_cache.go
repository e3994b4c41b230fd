package kafka

import "sync/atomic"

// metadataSnapshot is one immutable view of the cluster as last reported
// by a Metadata response. A MetadataCache never mutates a snapshot in
// place; a refresh builds a whole new one and swaps the pointer, so any
// goroutine holding a snapshot it already read from never observes a
// torn read.
type metadataSnapshot struct {
	brokers map[int32]*Broker
	topics  map[string]*TopicMetadata
}

// MetadataCache holds the engine's current view of brokers and topic
// partition layout. leaderFor/brokerAddr are lock-free reads against the
// current snapshot; update builds the next snapshot and swaps it in.
type MetadataCache struct {
	current atomic.Pointer[metadataSnapshot]
}

func newMetadataCache() *MetadataCache {
	c := &MetadataCache{}
	c.current.Store(&metadataSnapshot{
		brokers: make(map[int32]*Broker),
		topics:  make(map[string]*TopicMetadata),
	})
	return c
}

// update replaces the cache's snapshot wholesale from the contents of a
// Metadata response: each refresh is treated as authoritative and
// complete for the topics it names, never merged field-by-field into what
// came before.
func (c *MetadataCache) update(resp *MetadataResponse) {
	next := &metadataSnapshot{
		brokers: make(map[int32]*Broker, len(resp.Brokers)),
		topics:  make(map[string]*TopicMetadata, len(resp.Topics)),
	}
	for _, b := range resp.Brokers {
		next.brokers[b.NodeID] = b
	}
	prev := c.current.Load()
	for topic, meta := range prev.topics {
		next.topics[topic] = meta
	}
	for _, t := range resp.Topics {
		next.topics[t.Name] = t
	}
	c.current.Store(next)
}

// leaderFor reports the broker id leading topic/partition, and whether
// the cache currently has an entry for that topic at all.
func (c *MetadataCache) leaderFor(topic string, partition int32) (int32, bool) {
	snap := c.current.Load()
	t, ok := snap.topics[topic]
	if !ok {
		return 0, false
	}
	for _, p := range t.Partitions {
		if p.PartitionIndex == partition {
			return p.LeaderID, true
		}
	}
	return 0, false
}

// partitionsFor returns every partition index the cache knows for topic.
func (c *MetadataCache) partitionsFor(topic string) ([]int32, bool) {
	snap := c.current.Load()
	t, ok := snap.topics[topic]
	if !ok {
		return nil, false
	}
	out := make([]int32, len(t.Partitions))
	for i, p := range t.Partitions {
		out[i] = p.PartitionIndex
	}
	return out, true
}

// brokerAddr resolves a broker id to its dial address, as last reported
// by a Metadata response.
func (c *MetadataCache) brokerAddr(nodeID int32) (string, bool) {
	snap := c.current.Load()
	b, ok := snap.brokers[nodeID]
	if !ok {
		return "", false
	}
	return b.addr(), true
}

// registerBroker adds or updates a single broker entry without waiting for
// the next full Metadata refresh, for cases like FindCoordinator that learn
// a broker's address directly rather than through a Metadata response.
func (c *MetadataCache) registerBroker(b *Broker) {
	prev := c.current.Load()
	next := &metadataSnapshot{
		brokers: make(map[int32]*Broker, len(prev.brokers)+1),
		topics:  prev.topics,
	}
	for id, existing := range prev.brokers {
		next.brokers[id] = existing
	}
	next.brokers[b.NodeID] = b
	c.current.Store(next)
}

// brokerIDs returns every broker id currently known, in no particular
// order; cluster_client.go's round-robin cursor is filled from this set.
func (c *MetadataCache) brokerIDs() []int32 {
	snap := c.current.Load()
	ids := make([]int32, 0, len(snap.brokers))
	for id := range snap.brokers {
		ids = append(ids, id)
	}
	return ids
}

// hasTopic reports whether the cache has an entry for topic at all, used
// by the routing path to decide whether a refresh is required before a
// partition-routed call.
func (c *MetadataCache) hasTopic(topic string) bool {
	snap := c.current.Load()
	_, ok := snap.topics[topic]
	return ok
}

// missingTopics filters topics down to the ones the cache has no entry
// for yet.
func (c *MetadataCache) missingTopics(topics []string) []string {
	snap := c.current.Load()
	var missing []string
	for _, t := range topics {
		if _, ok := snap.topics[t]; !ok {
			missing = append(missing, t)
		}
	}
	return missing
}
