package kafka

import (
	"fmt"
	"time"
)

// Produce appends one record to (topic, partition) and waits for the
// broker's ack. Always routed directly to the partition leader, never a
// round-robin broker. On a transport error, or a response naming a
// stale-leader error code for this partition, the engine refreshes
// metadata and retries exactly once against whatever the cache now says
// the leader is.
func (c *ClusterClient) Produce(topic string, partition int32, key, value []byte) (int64, error) {
	leader, ok := c.metadata.leaderFor(topic, partition)
	if !ok {
		var refreshed bool
		if leader, refreshed = c.refreshAndLookupLeader(topic, partition); !refreshed {
			return 0, fmt.Errorf("%w: %s[%d]", ErrNoRouteForTopic, topic, partition)
		}
	}

	batch := NewRecordBatch([]*Record{NewRecord(key, value, 0, nil)})
	req := &ProduceRequest{
		Acks:    -1, // wait for all in-sync replicas, the safest of the three ack modes
		Timeout: 5 * time.Second,
	}
	req.AddRecordBatch(topic, partition, batch)

	resp := &ProduceResponse{}
	dispatchErr := c.dispatch(leader, req, resp)
	if dispatchErr == nil {
		block, ok := resp.Blocks[topic][partition]
		if ok && !staleLeaderError(block.Err) {
			if block.Err != ErrNoError {
				return 0, block.Err
			}
			return block.Offset, nil
		}
	}

	newLeader, refreshed := c.refreshAndLookupLeader(topic, partition)
	if !refreshed {
		if dispatchErr != nil {
			return 0, dispatchErr
		}
		return 0, ErrNoRouteForTopic
	}
	retryResp := &ProduceResponse{}
	if err := c.dispatch(newLeader, req, retryResp); err != nil {
		return 0, err
	}
	block, ok := retryResp.Blocks[topic][partition]
	if !ok {
		return 0, fmt.Errorf("kafka: no block for %s[%d] in produce response", topic, partition)
	}
	if block.Err != ErrNoError {
		return 0, block.Err
	}
	return block.Offset, nil
}

func (c *ClusterClient) refreshAndLookupLeader(topic string, partition int32) (int32, bool) {
	if err := c.RefreshMetadata([]string{topic}); err != nil {
		return 0, false
	}
	return c.metadata.leaderFor(topic, partition)
}
