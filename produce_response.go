package kafka

import "time"

// ProduceResponse (API key 0, version 6).
type ProduceResponse struct {
	Version      int16
	Blocks       map[string]map[int32]*ProduceResponseBlock
	ThrottleTime time.Duration
}

// ProduceResponseBlock is one partition's result inside a ProduceResponse.
type ProduceResponseBlock struct {
	Err       KError
	Offset    int64
	Timestamp time.Time
	LogStartOffset int64
}

func (r *ProduceResponse) setVersion(v int16) { r.Version = v }

func (r *ProduceResponse) encode(pe packetEncoder) error {
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
			pe.putInt16(int16(block.Err))
			pe.putInt64(block.Offset)
			if r.Version >= 2 {
				timestamp := int64(-1)
				if !block.Timestamp.IsZero() {
					timestamp = block.Timestamp.UnixNano() / int64(time.Millisecond)
				}
				pe.putInt64(timestamp)
			}
			if r.Version >= 5 {
				pe.putInt64(block.LogStartOffset)
			}
		}
	}
	if r.Version >= 1 {
		pe.putInt32(int32(r.ThrottleTime / time.Millisecond))
	}
	return nil
}

func (r *ProduceResponse) decode(pd packetDecoder, version int16) (err error) {
	r.Version = version

	topicCount, err := pd.getArrayLength()
	if err != nil {
		return err
	}
	r.Blocks = make(map[string]map[int32]*ProduceResponseBlock, topicCount)
	for i := 0; i < topicCount; i++ {
		topic, err := pd.getString()
		if err != nil {
			return err
		}
		partitionCount, err := pd.getArrayLength()
		if err != nil {
			return err
		}
		r.Blocks[topic] = make(map[int32]*ProduceResponseBlock, partitionCount)
		for j := 0; j < partitionCount; j++ {
			partition, err := pd.getInt32()
			if err != nil {
				return err
			}
			block := new(ProduceResponseBlock)
			errCode, err := pd.getInt16()
			if err != nil {
				return err
			}
			block.Err = KError(errCode)
			if block.Offset, err = pd.getInt64(); err != nil {
				return err
			}
			if version >= 2 {
				timestamp, err := pd.getInt64()
				if err != nil {
					return err
				}
				if timestamp != -1 {
					block.Timestamp = time.Unix(0, timestamp*int64(time.Millisecond))
				}
			}
			if version >= 5 {
				if block.LogStartOffset, err = pd.getInt64(); err != nil {
					return err
				}
			}
			r.Blocks[topic][partition] = block
		}
	}

	if version >= 1 {
		throttleTime, err := pd.getInt32()
		if err != nil {
			return err
		}
		r.ThrottleTime = time.Duration(throttleTime) * time.Millisecond
	}
	return nil
}

func (r *ProduceResponse) key() int16                    { return apiKeyProduce }
func (r *ProduceResponse) version() int16                { return r.Version }
func (r *ProduceResponse) headerVersion() int16          { return 0 }
func (r *ProduceResponse) isValidVersion() bool          { return r.Version == 6 }
func (r *ProduceResponse) requiredVersion() KafkaVersion { return V1_0_0_0 }
