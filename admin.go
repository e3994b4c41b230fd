package kafka

import "time"

// CreateTopic creates a single topic with the given partition count and
// replication factor, using CreateTopics v3.
func (c *ClusterClient) CreateTopic(name string, numPartitions int32, replicationFactor int16) error {
	req := &CreateTopicsRequest{
		Topics: []*CreatableTopic{
			{
				Name:              name,
				NumPartitions:     numPartitions,
				ReplicationFactor: replicationFactor,
			},
		},
		Timeout: 5 * time.Second,
	}
	resp := &CreateTopicsResponse{}
	brokerID, err := c.nextRoundRobinBroker()
	if err != nil {
		return err
	}
	if err := c.dispatch(brokerID, req, resp); err != nil {
		return err
	}
	if topicErr, ok := resp.TopicErrors[name]; ok && topicErr.Err != ErrNoError {
		return topicErr
	}
	return nil
}

// DeleteTopic deletes a single topic, the natural counterpart to
// CreateTopic.
func (c *ClusterClient) DeleteTopic(name string) error {
	req := NewDeleteTopicsRequest([]string{name}, 5*time.Second)
	resp := &DeleteTopicsResponse{}
	brokerID, err := c.nextRoundRobinBroker()
	if err != nil {
		return err
	}
	if err := c.dispatch(brokerID, req, resp); err != nil {
		return err
	}
	if topicErr, ok := resp.TopicErrors[name]; ok && topicErr.Err != ErrNoError {
		return topicErr
	}
	return nil
}

// FetchMetadata returns the TopicMetadata this client currently has
// cached for topics, refreshing first for any topic the cache doesn't
// know about yet.
func (c *ClusterClient) FetchMetadata(topics []string) ([]*TopicMetadata, error) {
	missing := c.metadata.missingTopics(topics)
	if len(missing) > 0 {
		if err := c.RefreshMetadata(missing); err != nil {
			return nil, err
		}
	}
	out := make([]*TopicMetadata, 0, len(topics))
	snap := c.metadata.current.Load()
	for _, t := range topics {
		if tm, ok := snap.topics[t]; ok {
			out = append(out, tm)
		}
	}
	return out, nil
}
