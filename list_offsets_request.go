package kafka

// ListOffsetsRequest (API key 2, version 3) resolves a special timestamp
// (earliest: -2, latest: -1, or a real unix-ms timestamp) to a concrete
// offset per partition, ahead of a Fetch. Built in the same per-topic/
// per-partition block shape as FetchRequest (fetch_request.go).
type ListOffsetsRequest struct {
	Version        int16
	ReplicaID      int32
	IsolationLevel IsolationLevel
	blocks         map[string]map[int32]*listOffsetsBlock
}

type listOffsetsBlock struct {
	CurrentLeaderEpoch int32
	Timestamp          int64
}

func (r *ListOffsetsRequest) setVersion(v int16) { r.Version = v }

// AddBlock requests the offset nearest timestamp for one partition.
// timestamp is either a real unix-ms value or one of TimestampEarliest /
// TimestampLatest.
func (r *ListOffsetsRequest) AddBlock(topic string, partition int32, timestamp int64) {
	if r.blocks == nil {
		r.blocks = make(map[string]map[int32]*listOffsetsBlock)
	}
	if r.blocks[topic] == nil {
		r.blocks[topic] = make(map[int32]*listOffsetsBlock)
	}
	r.blocks[topic][partition] = &listOffsetsBlock{CurrentLeaderEpoch: -1, Timestamp: timestamp}
}

// Sentinel timestamps, per the published protocol.
const (
	TimestampLatest   int64 = -1
	TimestampEarliest int64 = -2
)

func (r *ListOffsetsRequest) encode(pe packetEncoder) error {
	pe.putInt32(-1) // replica_id is always -1 for clients
	pe.putInt8(int8(r.IsolationLevel))

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
			pe.putInt32(block.CurrentLeaderEpoch)
			pe.putInt64(block.Timestamp)
		}
	}
	return nil
}

func (r *ListOffsetsRequest) decode(pd packetDecoder, version int16) (err error) {
	r.Version = version
	if _, err = pd.getInt32(); err != nil {
		return err
	}
	isolation, err := pd.getInt8()
	if err != nil {
		return err
	}
	r.IsolationLevel = IsolationLevel(isolation)

	topicCount, err := pd.getArrayLength()
	if err != nil {
		return err
	}
	if topicCount == 0 {
		return nil
	}
	r.blocks = make(map[string]map[int32]*listOffsetsBlock, topicCount)
	for i := 0; i < topicCount; i++ {
		topic, err := pd.getString()
		if err != nil {
			return err
		}
		partitionCount, err := pd.getArrayLength()
		if err != nil {
			return err
		}
		r.blocks[topic] = make(map[int32]*listOffsetsBlock, partitionCount)
		for j := 0; j < partitionCount; j++ {
			partition, err := pd.getInt32()
			if err != nil {
				return err
			}
			block := &listOffsetsBlock{}
			if block.CurrentLeaderEpoch, err = pd.getInt32(); err != nil {
				return err
			}
			if block.Timestamp, err = pd.getInt64(); err != nil {
				return err
			}
			r.blocks[topic][partition] = block
		}
	}
	return nil
}

func (r *ListOffsetsRequest) key() int16                    { return apiKeyListOffsets }
func (r *ListOffsetsRequest) version() int16                { return r.Version }
func (r *ListOffsetsRequest) headerVersion() int16          { return 1 }
func (r *ListOffsetsRequest) isValidVersion() bool          { return r.Version == 3 }
func (r *ListOffsetsRequest) requiredVersion() KafkaVersion { return V2_0_0_0 }
