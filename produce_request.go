package kafka

import "time"

// ProduceRequest (API key 0, version 6):
//
//	transactional_id acks timeout [topic_data]
//	topic_data => topic [data]
//	data => partition record_set
//
// Like every other protocolBody, this type carries no framing of its own;
// encodeRequest (request.go) is the only place a RequestHeader and size
// prefix get attached.
type ProduceRequest struct {
	Version         int16
	TransactionalID *string
	Acks            int16
	Timeout         time.Duration
	Records         map[string]map[int32]*RecordBatch
}

func (r *ProduceRequest) setVersion(v int16) { r.Version = v }

func (r *ProduceRequest) encode(pe packetEncoder) error {
	if err := pe.putNullableString(r.TransactionalID); err != nil {
		return err
	}
	pe.putInt16(r.Acks)
	pe.putInt32(int32(r.Timeout / time.Millisecond))

	if err := pe.putArrayLength(len(r.Records)); err != nil {
		return err
	}
	for topic, partitions := range r.Records {
		if err := pe.putString(topic); err != nil {
			return err
		}
		if err := pe.putArrayLength(len(partitions)); err != nil {
			return err
		}
		for partition, batch := range partitions {
			pe.putInt32(partition)

			recordsOffset := pe.offset()
			pe.push(newInt32LengthField(recordsOffset))
			if err := batch.encode(pe); err != nil {
				return err
			}
			if err := pe.pop(); err != nil {
				return err
			}
		}
		getOrRegisterTopicMeter("produce-rate", topic, pe.metricRegistry()).Mark(1)
	}
	return nil
}

func (r *ProduceRequest) decode(pd packetDecoder, version int16) (err error) {
	r.Version = version
	if r.TransactionalID, err = pd.getNullableString(); err != nil {
		return err
	}
	if r.Acks, err = pd.getInt16(); err != nil {
		return err
	}
	timeoutMs, err := pd.getInt32()
	if err != nil {
		return err
	}
	r.Timeout = time.Duration(timeoutMs) * time.Millisecond

	topicCount, err := pd.getArrayLength()
	if err != nil {
		return err
	}
	if topicCount == 0 {
		return nil
	}
	r.Records = make(map[string]map[int32]*RecordBatch, topicCount)
	for i := 0; i < topicCount; i++ {
		topic, err := pd.getString()
		if err != nil {
			return err
		}
		partitionCount, err := pd.getArrayLength()
		if err != nil {
			return err
		}
		r.Records[topic] = make(map[int32]*RecordBatch, partitionCount)
		for j := 0; j < partitionCount; j++ {
			partition, err := pd.getInt32()
			if err != nil {
				return err
			}
			recordsLen, err := pd.getInt32()
			if err != nil {
				return err
			}
			raw, err := pd.getRawBytes(int(recordsLen))
			if err != nil {
				return err
			}
			sub := newRealDecoder(raw)
			batch := &RecordBatch{}
			if err := batch.decode(sub); err != nil {
				return err
			}
			r.Records[topic][partition] = batch
		}
	}
	return nil
}

func (r *ProduceRequest) key() int16                    { return apiKeyProduce }
func (r *ProduceRequest) version() int16                { return r.Version }
func (r *ProduceRequest) headerVersion() int16          { return 1 }
func (r *ProduceRequest) isValidVersion() bool          { return r.Version == 6 }
func (r *ProduceRequest) requiredVersion() KafkaVersion { return V1_0_0_0 }

// AddRecordBatch attaches a record batch for a (topic, partition) pair.
func (r *ProduceRequest) AddRecordBatch(topic string, partition int32, batch *RecordBatch) {
	if r.Records == nil {
		r.Records = make(map[string]map[int32]*RecordBatch)
	}
	if r.Records[topic] == nil {
		r.Records[topic] = make(map[int32]*RecordBatch)
	}
	r.Records[topic][partition] = batch
}
