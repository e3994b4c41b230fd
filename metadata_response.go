package kafka

// MetadataResponse (API key 3, version 6):
//
//	throttle_time_ms [brokers] cluster_id controller_id [topics]
//	brokers => node_id host port rack
//	topics => error_code name is_internal [partitions]
//	partitions => error_code partition_index leader_id [replica_nodes] [isr_nodes] [offline_replicas]
type MetadataResponse struct {
	Version        int16
	ThrottleTimeMs int32
	Brokers        []*Broker
	ClusterID      *string
	ControllerID   int32
	Topics         []*TopicMetadata
}

func (r *MetadataResponse) setVersion(v int16) { r.Version = v }

func (r *MetadataResponse) encode(pe packetEncoder) error {
	pe.putInt32(r.ThrottleTimeMs)
	if err := pe.putArrayLength(len(r.Brokers)); err != nil {
		return err
	}
	for _, b := range r.Brokers {
		if err := b.encode(pe); err != nil {
			return err
		}
	}
	if err := pe.putNullableString(r.ClusterID); err != nil {
		return err
	}
	pe.putInt32(r.ControllerID)
	if err := pe.putArrayLength(len(r.Topics)); err != nil {
		return err
	}
	for _, t := range r.Topics {
		if err := t.encode(pe); err != nil {
			return err
		}
	}
	return nil
}

func (r *MetadataResponse) decode(pd packetDecoder, version int16) (err error) {
	r.Version = version
	if r.ThrottleTimeMs, err = pd.getInt32(); err != nil {
		return err
	}
	n, err := pd.getArrayLength()
	if err != nil {
		return err
	}
	r.Brokers = make([]*Broker, n)
	for i := 0; i < n; i++ {
		b := &Broker{}
		if err := b.decode(pd); err != nil {
			return err
		}
		r.Brokers[i] = b
	}
	if r.ClusterID, err = pd.getNullableString(); err != nil {
		return err
	}
	if r.ControllerID, err = pd.getInt32(); err != nil {
		return err
	}
	n, err = pd.getArrayLength()
	if err != nil {
		return err
	}
	r.Topics = make([]*TopicMetadata, n)
	for i := 0; i < n; i++ {
		t := &TopicMetadata{}
		if err := t.decode(pd); err != nil {
			return err
		}
		r.Topics[i] = t
	}
	return nil
}

func (r *MetadataResponse) key() int16                   { return apiKeyMetadata }
func (r *MetadataResponse) version() int16               { return r.Version }
func (r *MetadataResponse) headerVersion() int16         { return 0 }
func (r *MetadataResponse) isValidVersion() bool         { return r.Version == 6 }
func (r *MetadataResponse) requiredVersion() KafkaVersion { return V1_0_0_0 }
