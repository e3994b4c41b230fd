package kafka

// ListOffsetsResponse (API key 2, version 3).
type ListOffsetsResponse struct {
	Version        int16
	ThrottleTimeMs int32
	Blocks         map[string]map[int32]*ListOffsetsResponseBlock
}

// ListOffsetsResponseBlock is one partition's resolved offset.
type ListOffsetsResponseBlock struct {
	ErrorCode KError
	Timestamp int64
	Offset    int64
	LeaderEpoch int32
}

func (r *ListOffsetsResponse) setVersion(v int16) { r.Version = v }

func (r *ListOffsetsResponse) encode(pe packetEncoder) error {
	pe.putInt32(r.ThrottleTimeMs)
	if err := pe.putArrayLength(len(r.Blocks)); err != nil {
		return err
	}
	for topic, partitions := range r.Blocks {
		if err := pe.putString(topic); err != nil {
			return err
		}
		if err := pe.putArrayLength(len(partitions)); err != nil {
			return err
		}
		for partition, block := range partitions {
			pe.putInt32(partition)
			pe.putInt16(int16(block.ErrorCode))
			pe.putInt64(block.Timestamp)
			pe.putInt64(block.Offset)
			pe.putInt32(block.LeaderEpoch)
		}
	}
	return nil
}

func (r *ListOffsetsResponse) decode(pd packetDecoder, version int16) (err error) {
	r.Version = version
	if r.ThrottleTimeMs, err = pd.getInt32(); err != nil {
		return err
	}

	topicCount, err := pd.getArrayLength()
	if err != nil {
		return err
	}
	r.Blocks = make(map[string]map[int32]*ListOffsetsResponseBlock, topicCount)
	for i := 0; i < topicCount; i++ {
		topic, err := pd.getString()
		if err != nil {
			return err
		}
		partitionCount, err := pd.getArrayLength()
		if err != nil {
			return err
		}
		r.Blocks[topic] = make(map[int32]*ListOffsetsResponseBlock, partitionCount)
		for j := 0; j < partitionCount; j++ {
			partition, err := pd.getInt32()
			if err != nil {
				return err
			}
			block := &ListOffsetsResponseBlock{}
			errCode, err := pd.getInt16()
			if err != nil {
				return err
			}
			block.ErrorCode = KError(errCode)
			if block.Timestamp, err = pd.getInt64(); err != nil {
				return err
			}
			if block.Offset, err = pd.getInt64(); err != nil {
				return err
			}
			if block.LeaderEpoch, err = pd.getInt32(); err != nil {
				return err
			}
			r.Blocks[topic][partition] = block
		}
	}
	return nil
}

func (r *ListOffsetsResponse) key() int16                    { return apiKeyListOffsets }
func (r *ListOffsetsResponse) version() int16                { return r.Version }
func (r *ListOffsetsResponse) headerVersion() int16          { return 0 }
func (r *ListOffsetsResponse) isValidVersion() bool          { return r.Version == 3 }
func (r *ListOffsetsResponse) requiredVersion() KafkaVersion { return V2_0_0_0 }
