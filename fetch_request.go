package kafka

type fetchRequestBlock struct {
	// fetchOffset is the message offset to begin fetching from.
	fetchOffset int64
	// logStartOffset is the earliest available offset of the follower
	// replica. Only meaningful when the request comes from a follower,
	// which this client never is.
	logStartOffset int64
	// maxBytes is the maximum bytes to fetch from this partition. See
	// KIP-74 for cases where this limit may not be honored.
	maxBytes int32
}

func (b *fetchRequestBlock) encode(pe packetEncoder) error {
	pe.putInt64(b.fetchOffset)
	pe.putInt64(b.logStartOffset)
	pe.putInt32(b.maxBytes)
	return nil
}

func (b *fetchRequestBlock) decode(pd packetDecoder) (err error) {
	if b.fetchOffset, err = pd.getInt64(); err != nil {
		return err
	}
	if b.logStartOffset, err = pd.getInt64(); err != nil {
		return err
	}
	if b.maxBytes, err = pd.getInt32(); err != nil {
		return err
	}
	return nil
}

// FetchRequest (API key 1, version 8) fetches Kafka messages. Version 3
// introduced MaxBytes; see KIP-74 for the fetch response size limit that
// field enforces.
type FetchRequest struct {
	// MaxWaitTime is the maximum time in milliseconds to wait for the
	// response.
	MaxWaitTime int32
	// MinBytes is the minimum bytes to accumulate in the response.
	MinBytes int32
	// MaxBytes is the maximum bytes to fetch. See KIP-74 for cases
	// where this limit may not be honored.
	MaxBytes int32
	// Isolation controls the visibility of transactional records.
	// READ_UNCOMMITTED (0) makes all records visible; READ_COMMITTED (1)
	// hides non-committed transactional records and includes the list of
	// aborted transactions in the response.
	Isolation IsolationLevel
	// SessionID is the fetch session ID.
	SessionID int32
	// SessionEpoch is the epoch of the partition leader as known to this
	// client.
	SessionEpoch int32
	// blocks contains the topics to fetch.
	blocks map[string]map[int32]*fetchRequestBlock
	// forgotten names, in an incremental fetch session, the partitions to
	// drop from the session. Always empty: this client never establishes
	// a persistent fetch session across calls.
	forgotten map[string][]int32
}

func (r *FetchRequest) setVersion(int16) {}

// newFetchRequest builds a FetchRequest scoped to a single (topic, leader)
// pair: one request per fan-out task, never a multi-topic request split
// across goroutines.
func newFetchRequest(maxWaitMs, minBytes, maxBytes int32) *FetchRequest {
	return &FetchRequest{
		MaxWaitTime: maxWaitMs,
		MinBytes:    minBytes,
		MaxBytes:    maxBytes,
		Isolation:   ReadUncommitted,
	}
}

type IsolationLevel int8

const (
	ReadUncommitted IsolationLevel = iota
	ReadCommitted
)

func (r *FetchRequest) encode(pe packetEncoder) (err error) {
	metricRegistry := pe.metricRegistry()

	pe.putInt32(-1) // ReplicaID is always -1 for clients
	pe.putInt32(r.MaxWaitTime)
	pe.putInt32(r.MinBytes)
	pe.putInt32(r.MaxBytes)
	pe.putInt8(int8(r.Isolation))
	pe.putInt32(r.SessionID)
	pe.putInt32(r.SessionEpoch)

	if err := pe.putArrayLength(len(r.blocks)); err != nil {
		return err
	}
	for topic, blocks := range r.blocks {
		if err := pe.putString(topic); err != nil {
			return err
		}
		if err := pe.putArrayLength(len(blocks)); err != nil {
			return err
		}
		for partition, block := range blocks {
			pe.putInt32(partition)
			if err := block.encode(pe); err != nil {
				return err
			}
		}
		getOrRegisterTopicMeter("consumer-fetch-rate", topic, metricRegistry).Mark(1)
	}

	return pe.putArrayLength(len(r.forgotten))
}

func (r *FetchRequest) decode(pd packetDecoder, version int16) (err error) {
	if _, err = pd.getInt32(); err != nil {
		return err
	}
	if r.MaxWaitTime, err = pd.getInt32(); err != nil {
		return err
	}
	if r.MinBytes, err = pd.getInt32(); err != nil {
		return err
	}
	if r.MaxBytes, err = pd.getInt32(); err != nil {
		return err
	}
	isolation, err := pd.getInt8()
	if err != nil {
		return err
	}
	r.Isolation = IsolationLevel(isolation)
	if r.SessionID, err = pd.getInt32(); err != nil {
		return err
	}
	if r.SessionEpoch, err = pd.getInt32(); err != nil {
		return err
	}

	topicCount, err := pd.getArrayLength()
	if err != nil {
		return err
	}
	if topicCount > 0 {
		r.blocks = make(map[string]map[int32]*fetchRequestBlock)
		for i := 0; i < topicCount; i++ {
			topic, err := pd.getString()
			if err != nil {
				return err
			}
			partitionCount, err := pd.getArrayLength()
			if err != nil {
				return err
			}
			r.blocks[topic] = make(map[int32]*fetchRequestBlock)
			for j := 0; j < partitionCount; j++ {
				partition, err := pd.getInt32()
				if err != nil {
					return err
				}
				fetchBlock := &fetchRequestBlock{}
				if err := fetchBlock.decode(pd); err != nil {
					return err
				}
				r.blocks[topic][partition] = fetchBlock
			}
		}
	}

	forgottenCount, err := pd.getArrayLength()
	if err != nil {
		return err
	}
	if forgottenCount > 0 {
		r.forgotten = make(map[string][]int32)
		for i := 0; i < forgottenCount; i++ {
			topic, err := pd.getString()
			if err != nil {
				return err
			}
			partitionCount, err := pd.getArrayLength()
			if err != nil {
				return err
			}
			r.forgotten[topic] = make([]int32, partitionCount)
			for j := 0; j < partitionCount; j++ {
				partition, err := pd.getInt32()
				if err != nil {
					return err
				}
				r.forgotten[topic][j] = partition
			}
		}
	}

	return nil
}

func (r *FetchRequest) key() int16                    { return apiKeyFetch }
func (r *FetchRequest) version() int16                { return 8 }
func (r *FetchRequest) headerVersion() int16          { return 1 }
func (r *FetchRequest) isValidVersion() bool          { return true }
func (r *FetchRequest) requiredVersion() KafkaVersion { return V2_0_0_0 }

func (r *FetchRequest) AddBlock(topic string, partitionID int32, fetchOffset int64, maxBytes int32, _ int32) {
	if r.blocks == nil {
		r.blocks = make(map[string]map[int32]*fetchRequestBlock)
	}
	if r.blocks[topic] == nil {
		r.blocks[topic] = make(map[int32]*fetchRequestBlock)
	}
	r.blocks[topic][partitionID] = &fetchRequestBlock{
		fetchOffset: fetchOffset,
		maxBytes:    maxBytes,
	}
}
