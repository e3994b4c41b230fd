package kafka

// FetchResponse (API key 1, version 8). One response corresponds to one
// fan-out task's request: it only ever describes the topic and partitions
// that task asked for.
type FetchResponse struct {
	Version        int16
	ThrottleTimeMs int32
	ErrorCode      KError
	SessionID      int32
	Topics         []*FetchableTopicResponse
}

// FetchableTopicResponse carries every partition response for one topic.
type FetchableTopicResponse struct {
	Topic      string
	Partitions []*FetchablePartitionResponse
}

// FetchablePartitionResponse is one partition's fetch result: its error
// code, high watermark, and the record batches found in [offset,
// HighWatermark).
type FetchablePartitionResponse struct {
	PartitionIndex       int32
	ErrorCode            KError
	HighWatermark        int64
	LastStableOffset     int64
	LogStartOffset       int64
	AbortedTransactions  []AbortedTransaction
	PreferredReadReplica int32
	RecordBatches        []*RecordBatch
}

// AbortedTransaction names a producer whose transaction was aborted below
// the partition's last stable offset; carried for read-committed isolation
// (IsolationLevel ReadCommitted) but not otherwise interpreted here.
// Filtering aborted records out of the record stream is consumer-group
// business logic this client doesn't implement.
type AbortedTransaction struct {
	ProducerID  int64
	FirstOffset int64
}

func (r *FetchResponse) setVersion(v int16) { r.Version = v }

func (r *FetchResponse) encode(pe packetEncoder) error {
	pe.putInt32(r.ThrottleTimeMs)
	pe.putInt16(int16(r.ErrorCode))
	pe.putInt32(r.SessionID)

	if err := pe.putArrayLength(len(r.Topics)); err != nil {
		return err
	}
	for _, t := range r.Topics {
		if err := pe.putString(t.Topic); err != nil {
			return err
		}
		if err := pe.putArrayLength(len(t.Partitions)); err != nil {
			return err
		}
		for _, p := range t.Partitions {
			pe.putInt32(p.PartitionIndex)
			pe.putInt16(int16(p.ErrorCode))
			pe.putInt64(p.HighWatermark)
			pe.putInt64(p.LastStableOffset)
			pe.putInt64(p.LogStartOffset)

			if err := pe.putArrayLength(len(p.AbortedTransactions)); err != nil {
				return err
			}
			for _, a := range p.AbortedTransactions {
				pe.putInt64(a.ProducerID)
				pe.putInt64(a.FirstOffset)
			}
			pe.putInt32(p.PreferredReadReplica)

			recordsOffset := pe.offset()
			pe.push(newInt32LengthField(recordsOffset))
			for _, b := range p.RecordBatches {
				if err := b.encode(pe); err != nil {
					return err
				}
			}
			if err := pe.pop(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *FetchResponse) decode(pd packetDecoder, version int16) (err error) {
	r.Version = version
	if r.ThrottleTimeMs, err = pd.getInt32(); err != nil {
		return err
	}
	code, err := pd.getInt16()
	if err != nil {
		return err
	}
	r.ErrorCode = KError(code)
	if r.SessionID, err = pd.getInt32(); err != nil {
		return err
	}

	topicCount, err := pd.getArrayLength()
	if err != nil {
		return err
	}
	r.Topics = make([]*FetchableTopicResponse, topicCount)
	for i := 0; i < topicCount; i++ {
		t := &FetchableTopicResponse{}
		if t.Topic, err = pd.getString(); err != nil {
			return err
		}
		partitionCount, err := pd.getArrayLength()
		if err != nil {
			return err
		}
		t.Partitions = make([]*FetchablePartitionResponse, partitionCount)
		for j := 0; j < partitionCount; j++ {
			p := &FetchablePartitionResponse{}
			if p.PartitionIndex, err = pd.getInt32(); err != nil {
				return err
			}
			pCode, err := pd.getInt16()
			if err != nil {
				return err
			}
			p.ErrorCode = KError(pCode)
			if p.HighWatermark, err = pd.getInt64(); err != nil {
				return err
			}
			if p.LastStableOffset, err = pd.getInt64(); err != nil {
				return err
			}
			if p.LogStartOffset, err = pd.getInt64(); err != nil {
				return err
			}
			abortedCount, err := pd.getArrayLength()
			if err != nil {
				return err
			}
			p.AbortedTransactions = make([]AbortedTransaction, abortedCount)
			for k := range p.AbortedTransactions {
				if p.AbortedTransactions[k].ProducerID, err = pd.getInt64(); err != nil {
					return err
				}
				if p.AbortedTransactions[k].FirstOffset, err = pd.getInt64(); err != nil {
					return err
				}
			}
			if p.PreferredReadReplica, err = pd.getInt32(); err != nil {
				return err
			}

			recordsLen, err := pd.getInt32()
			if err != nil {
				return err
			}
			if recordsLen > 0 {
				recordsRaw, err := pd.getRawBytes(int(recordsLen))
				if err != nil {
					return err
				}
				batches, err := decodeRecordBatches(recordsRaw)
				if err != nil {
					return err
				}
				p.RecordBatches = batches
			}
			t.Partitions[j] = p
		}
		r.Topics[i] = t
	}
	return nil
}

func (r *FetchResponse) key() int16                    { return apiKeyFetch }
func (r *FetchResponse) version() int16                { return r.Version }
func (r *FetchResponse) headerVersion() int16          { return 0 }
func (r *FetchResponse) isValidVersion() bool          { return r.Version >= 0 && r.Version <= 11 }
func (r *FetchResponse) requiredVersion() KafkaVersion { return V2_0_0_0 }
