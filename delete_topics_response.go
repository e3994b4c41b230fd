package kafka

import "time"

// DeleteTopicsResponse (API key 20) mirrors CreateTopicsResponse's shape:
// a per-topic error map, since a multi-topic delete can partially fail.
type DeleteTopicsResponse struct {
	Version      int16
	ThrottleTime time.Duration
	TopicErrors  map[string]*TopicError
}

func (d *DeleteTopicsResponse) setVersion(v int16) { d.Version = v }

func (d *DeleteTopicsResponse) encode(pe packetEncoder) error {
	if d.Version >= 1 {
		pe.putInt32(int32(d.ThrottleTime / time.Millisecond))
	}
	if err := pe.putArrayLength(len(d.TopicErrors)); err != nil {
		return err
	}
	for topic, topicErr := range d.TopicErrors {
		if err := pe.putString(topic); err != nil {
			return err
		}
		pe.putInt16(int16(topicErr.Err))
	}
	return nil
}

func (d *DeleteTopicsResponse) decode(pd packetDecoder, version int16) (err error) {
	d.Version = version
	if version >= 1 {
		throttleTime, err := pd.getInt32()
		if err != nil {
			return err
		}
		d.ThrottleTime = time.Duration(throttleTime) * time.Millisecond
	}

	n, err := pd.getArrayLength()
	if err != nil {
		return err
	}
	d.TopicErrors = make(map[string]*TopicError, n)
	for i := 0; i < n; i++ {
		topic, err := pd.getString()
		if err != nil {
			return err
		}
		errCode, err := pd.getInt16()
		if err != nil {
			return err
		}
		d.TopicErrors[topic] = &TopicError{Err: KError(errCode)}
	}
	return nil
}

func (d *DeleteTopicsResponse) key() int16           { return apiKeyDeleteTopics }
func (d *DeleteTopicsResponse) version() int16       { return d.Version }
func (d *DeleteTopicsResponse) headerVersion() int16 { return 0 }
func (d *DeleteTopicsResponse) isValidVersion() bool { return d.Version >= 0 && d.Version <= 3 }
func (d *DeleteTopicsResponse) requiredVersion() KafkaVersion {
	switch d.Version {
	case 3:
		return V2_1_0_0
	case 2:
		return V2_0_0_0
	case 1:
		return V0_11_0_0
	case 0:
		return V0_10_1_0
	default:
		return V2_2_0_0
	}
}
