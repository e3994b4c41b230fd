package kafka

// OffsetCommitResponse (API key 8, version 6).
type OffsetCommitResponse struct {
	Version        int16
	ThrottleTimeMs int32
	Errors         map[string]map[int32]KError
}

func (r *OffsetCommitResponse) setVersion(v int16) { r.Version = v }

func (r *OffsetCommitResponse) encode(pe packetEncoder) error {
	pe.putInt32(r.ThrottleTimeMs)
	if err := pe.putArrayLength(len(r.Errors)); err != nil {
		return err
	}
	for topic, partitions := range r.Errors {
		if err := pe.putString(topic); err != nil {
			return err
		}
		if err := pe.putArrayLength(len(partitions)); err != nil {
			return err
		}
		for partition, code := range partitions {
			pe.putInt32(partition)
			pe.putInt16(int16(code))
		}
	}
	return nil
}

func (r *OffsetCommitResponse) decode(pd packetDecoder, version int16) (err error) {
	r.Version = version
	if r.ThrottleTimeMs, err = pd.getInt32(); err != nil {
		return err
	}
	topicCount, err := pd.getArrayLength()
	if err != nil {
		return err
	}
	r.Errors = make(map[string]map[int32]KError, topicCount)
	for i := 0; i < topicCount; i++ {
		topic, err := pd.getString()
		if err != nil {
			return err
		}
		partitionCount, err := pd.getArrayLength()
		if err != nil {
			return err
		}
		r.Errors[topic] = make(map[int32]KError, partitionCount)
		for j := 0; j < partitionCount; j++ {
			partition, err := pd.getInt32()
			if err != nil {
				return err
			}
			code, err := pd.getInt16()
			if err != nil {
				return err
			}
			r.Errors[topic][partition] = KError(code)
		}
	}
	return nil
}

func (r *OffsetCommitResponse) key() int16                    { return apiKeyOffsetCommit }
func (r *OffsetCommitResponse) version() int16                { return r.Version }
func (r *OffsetCommitResponse) headerVersion() int16          { return 0 }
func (r *OffsetCommitResponse) isValidVersion() bool          { return r.Version == 6 }
func (r *OffsetCommitResponse) requiredVersion() KafkaVersion { return V2_1_0_0 }
