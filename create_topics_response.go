package kafka

import "time"

// CreateTopicsResponse (API key 19, version 3). TopicError lives in
// errors.go since it is shared with other Admin response types that also
// carry a per-item error code + optional message.
type CreateTopicsResponse struct {
	Version int16
	// ThrottleTime is the duration for which the request was throttled due
	// to a quota violation, or zero if it wasn't throttled.
	ThrottleTime time.Duration
	// TopicErrors maps topic name to the result of creating it.
	TopicErrors map[string]*TopicError
}

func (c *CreateTopicsResponse) setVersion(v int16) { c.Version = v }

func (c *CreateTopicsResponse) encode(pe packetEncoder) error {
	pe.putInt32(int32(c.ThrottleTime / time.Millisecond))

	if err := pe.putArrayLength(len(c.TopicErrors)); err != nil {
		return err
	}
	for topic, topicError := range c.TopicErrors {
		if err := pe.putString(topic); err != nil {
			return err
		}
		if err := topicError.encode(pe, c.Version); err != nil {
			return err
		}
	}
	return nil
}

func (c *CreateTopicsResponse) decode(pd packetDecoder, version int16) (err error) {
	c.Version = version

	throttleTime, err := pd.getInt32()
	if err != nil {
		return err
	}
	c.ThrottleTime = time.Duration(throttleTime) * time.Millisecond

	n, err := pd.getArrayLength()
	if err != nil {
		return err
	}
	c.TopicErrors = make(map[string]*TopicError, n)
	for i := 0; i < n; i++ {
		topic, err := pd.getString()
		if err != nil {
			return err
		}
		c.TopicErrors[topic] = new(TopicError)
		if err := c.TopicErrors[topic].decode(pd, version); err != nil {
			return err
		}
	}
	return nil
}

func (c *CreateTopicsResponse) key() int16           { return apiKeyCreateTopics }
func (c *CreateTopicsResponse) version() int16       { return c.Version }
func (c *CreateTopicsResponse) headerVersion() int16 { return 0 }
func (c *CreateTopicsResponse) isValidVersion() bool { return c.Version == 3 }
func (c *CreateTopicsResponse) requiredVersion() KafkaVersion { return V2_0_0_0 }
