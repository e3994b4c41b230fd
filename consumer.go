package kafka

import "fmt"

// ListOffsets resolves the offset nearest timestamp for one (topic,
// partition), routed to that partition's current leader; metadata is
// refreshed first if the cache has no leader for it.
// timestamp is a real unix-ms value or one of TimestampEarliest/
// TimestampLatest.
func (c *ClusterClient) ListOffsets(topic string, partition int32, timestamp int64) (int64, error) {
	leader, ok := c.metadata.leaderFor(topic, partition)
	if !ok {
		if err := c.RefreshMetadata([]string{topic}); err != nil {
			return 0, err
		}
		leader, ok = c.metadata.leaderFor(topic, partition)
		if !ok {
			return 0, fmt.Errorf("%w: %s[%d]", ErrNoRouteForTopic, topic, partition)
		}
	}

	req := &ListOffsetsRequest{IsolationLevel: ReadUncommitted}
	req.AddBlock(topic, partition, timestamp)
	resp := &ListOffsetsResponse{}
	if err := c.dispatch(leader, req, resp); err != nil {
		return 0, err
	}
	block, ok := resp.Blocks[topic][partition]
	if !ok {
		return 0, fmt.Errorf("kafka: no offset block for %s[%d] in response", topic, partition)
	}
	if block.ErrorCode != ErrNoError {
		return 0, block.ErrorCode
	}
	return block.Offset, nil
}

// CommitOffset records the next offset to read for (topic, partition)
// under groupID, against coordinator coordinatorID (obtained via
// FindCoordinator).
func (c *ClusterClient) CommitOffset(coordinatorID int32, groupID, memberID string, generationID int32, topic string, partition int32, offset int64, metadata string) error {
	req := &OffsetCommitRequest{
		GroupID:      groupID,
		GenerationID: generationID,
		MemberID:     memberID,
	}
	req.AddBlock(topic, partition, offset, metadata)
	resp := &OffsetCommitResponse{}
	if err := c.dispatch(coordinatorID, req, resp); err != nil {
		return err
	}
	if code, ok := resp.Errors[topic][partition]; ok && code != ErrNoError {
		return code
	}
	return nil
}

// FindCoordinator locates the broker that owns groupID's offsets, routed
// through a round-robin broker since, by definition, the client doesn't
// yet know which broker that is.
func (c *ClusterClient) FindCoordinator(groupID string) (*FindCoordinatorResponse, error) {
	brokerID, err := c.nextRoundRobinBroker()
	if err != nil {
		return nil, err
	}
	req := &FindCoordinatorRequest{CoordinatorKey: groupID, CoordinatorType: CoordinatorGroup}
	resp := &FindCoordinatorResponse{}
	if err := c.dispatch(brokerID, req, resp); err != nil {
		return nil, err
	}
	if resp.ErrorCode != ErrNoError {
		return nil, resp.ErrorCode
	}
	c.metadata.registerBroker(&Broker{NodeID: resp.NodeID, Host: resp.Host, Port: resp.Port})
	return resp, nil
}

// JoinGroup joins groupID via coordinatorID, offering protocols as the
// partition-assignment strategies this member supports.
func (c *ClusterClient) JoinGroup(coordinatorID int32, groupID, memberID string, sessionTimeout int32, protocols []GroupProtocol) (*JoinGroupResponse, error) {
	req := &JoinGroupRequest{
		GroupID:          groupID,
		SessionTimeoutMs: sessionTimeout,
		MemberID:         memberID,
		ProtocolType:     "consumer",
		GroupProtocols:   protocols,
	}
	resp := &JoinGroupResponse{}
	if err := c.dispatch(coordinatorID, req, resp); err != nil {
		return nil, err
	}
	if resp.Err != ErrNoError {
		return nil, resp.Err
	}
	return resp, nil
}
