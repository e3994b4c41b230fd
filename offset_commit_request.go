package kafka

// OffsetCommitRequest (API key 8, version 6) persists the next offset to
// read per partition under a consumer group, to be resumed after a
// restart or group rebalance.
type OffsetCommitRequest struct {
	Version                int16
	GroupID                string
	GenerationID           int32
	MemberID               string
	GroupInstanceID        *string
	blocks                 map[string]map[int32]*offsetCommitBlock
}

type offsetCommitBlock struct {
	Offset      int64
	LeaderEpoch int32
	Metadata    string
}

func (r *OffsetCommitRequest) setVersion(v int16) { r.Version = v }

// AddBlock records the offset to commit for one partition.
func (r *OffsetCommitRequest) AddBlock(topic string, partition int32, offset int64, metadata string) {
	if r.blocks == nil {
		r.blocks = make(map[string]map[int32]*offsetCommitBlock)
	}
	if r.blocks[topic] == nil {
		r.blocks[topic] = make(map[int32]*offsetCommitBlock)
	}
	r.blocks[topic][partition] = &offsetCommitBlock{Offset: offset, LeaderEpoch: -1, Metadata: metadata}
}

func (r *OffsetCommitRequest) encode(pe packetEncoder) error {
	if err := pe.putString(r.GroupID); err != nil {
		return err
	}
	pe.putInt32(r.GenerationID)
	if err := pe.putString(r.MemberID); err != nil {
		return err
	}
	if err := pe.putNullableString(r.GroupInstanceID); err != nil {
		return err
	}

	if err := pe.putArrayLength(len(r.blocks)); err != nil {
		return err
	}
	for topic, partitions := range r.blocks {
		if err := pe.putString(topic); err != nil {
			return err
		}
		if err := pe.putArrayLength(len(partitions)); err != nil {
			return err
		}
		for partition, block := range partitions {
			pe.putInt32(partition)
			pe.putInt64(block.Offset)
			pe.putInt32(block.LeaderEpoch)
			if err := pe.putString(block.Metadata); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *OffsetCommitRequest) decode(pd packetDecoder, version int16) (err error) {
	r.Version = version
	if r.GroupID, err = pd.getString(); err != nil {
		return err
	}
	if r.GenerationID, err = pd.getInt32(); err != nil {
		return err
	}
	if r.MemberID, err = pd.getString(); err != nil {
		return err
	}
	if r.GroupInstanceID, err = pd.getNullableString(); err != nil {
		return err
	}

	topicCount, err := pd.getArrayLength()
	if err != nil {
		return err
	}
	if topicCount == 0 {
		return nil
	}
	r.blocks = make(map[string]map[int32]*offsetCommitBlock, topicCount)
	for i := 0; i < topicCount; i++ {
		topic, err := pd.getString()
		if err != nil {
			return err
		}
		partitionCount, err := pd.getArrayLength()
		if err != nil {
			return err
		}
		r.blocks[topic] = make(map[int32]*offsetCommitBlock, partitionCount)
		for j := 0; j < partitionCount; j++ {
			partition, err := pd.getInt32()
			if err != nil {
				return err
			}
			block := &offsetCommitBlock{}
			if block.Offset, err = pd.getInt64(); err != nil {
				return err
			}
			if block.LeaderEpoch, err = pd.getInt32(); err != nil {
				return err
			}
			if block.Metadata, err = pd.getString(); err != nil {
				return err
			}
			r.blocks[topic][partition] = block
		}
	}
	return nil
}

func (r *OffsetCommitRequest) key() int16                    { return apiKeyOffsetCommit }
func (r *OffsetCommitRequest) version() int16                { return r.Version }
func (r *OffsetCommitRequest) headerVersion() int16          { return 1 }
func (r *OffsetCommitRequest) isValidVersion() bool          { return r.Version == 6 }
func (r *OffsetCommitRequest) requiredVersion() KafkaVersion { return V2_1_0_0 }
