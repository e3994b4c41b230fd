package kafka

import "time"

// CreateTopicsRequest (API key 19, version 3). Field order and literal
// values for the single-topic case are pinned by the corresponding golden-vector fixture:
// array-count 1, string name, num_partitions, replication_factor,
// assignments-count 0, configs-count 0, timeout_ms, validate_only.
type CreateTopicsRequest struct {
	Version      int16
	Topics       []*CreatableTopic
	Timeout      time.Duration
	ValidateOnly bool
}

// CreatableTopic describes one topic to create. Assignments and
// Configs are supported per the schema but are typically empty; the Admin
// facade's CreateTopic convenience method always sends them empty,
// matching the corresponding golden-vector fixture.
type CreatableTopic struct {
	Name              string
	NumPartitions     int32
	ReplicationFactor int16
	Assignments       []*CreatableReplicaAssignment
	Configs           []*CreatableTopicConfig
}

type CreatableReplicaAssignment struct {
	PartitionIndex int32
	BrokerIDs      []int32
}

type CreatableTopicConfig struct {
	Name  string
	Value *string
}

func (r *CreateTopicsRequest) setVersion(v int16) { r.Version = v }

func (r *CreateTopicsRequest) encode(pe packetEncoder) error {
	if err := pe.putArrayLength(len(r.Topics)); err != nil {
		return err
	}
	for _, t := range r.Topics {
		if err := pe.putString(t.Name); err != nil {
			return err
		}
		pe.putInt32(t.NumPartitions)
		pe.putInt16(t.ReplicationFactor)

		if err := pe.putArrayLength(len(t.Assignments)); err != nil {
			return err
		}
		for _, a := range t.Assignments {
			pe.putInt32(a.PartitionIndex)
			if err := encodeInt32Array(pe, a.BrokerIDs); err != nil {
				return err
			}
		}

		if err := pe.putArrayLength(len(t.Configs)); err != nil {
			return err
		}
		for _, c := range t.Configs {
			if err := pe.putString(c.Name); err != nil {
				return err
			}
			if err := pe.putNullableString(c.Value); err != nil {
				return err
			}
		}
	}
	pe.putInt32(int32(r.Timeout / time.Millisecond))
	pe.putBool(r.ValidateOnly)
	return nil
}

func (r *CreateTopicsRequest) decode(pd packetDecoder, version int16) (err error) {
	r.Version = version
	n, err := pd.getArrayLength()
	if err != nil {
		return err
	}
	r.Topics = make([]*CreatableTopic, n)
	for i := 0; i < n; i++ {
		t := &CreatableTopic{}
		if t.Name, err = pd.getString(); err != nil {
			return err
		}
		if t.NumPartitions, err = pd.getInt32(); err != nil {
			return err
		}
		if t.ReplicationFactor, err = pd.getInt16(); err != nil {
			return err
		}
		aCount, err := pd.getArrayLength()
		if err != nil {
			return err
		}
		t.Assignments = make([]*CreatableReplicaAssignment, aCount)
		for j := 0; j < aCount; j++ {
			a := &CreatableReplicaAssignment{}
			if a.PartitionIndex, err = pd.getInt32(); err != nil {
				return err
			}
			if a.BrokerIDs, err = decodeInt32Array(pd); err != nil {
				return err
			}
			t.Assignments[j] = a
		}
		cCount, err := pd.getArrayLength()
		if err != nil {
			return err
		}
		t.Configs = make([]*CreatableTopicConfig, cCount)
		for j := 0; j < cCount; j++ {
			c := &CreatableTopicConfig{}
			if c.Name, err = pd.getString(); err != nil {
				return err
			}
			if c.Value, err = pd.getNullableString(); err != nil {
				return err
			}
			t.Configs[j] = c
		}
		r.Topics[i] = t
	}
	timeoutMs, err := pd.getInt32()
	if err != nil {
		return err
	}
	r.Timeout = time.Duration(timeoutMs) * time.Millisecond
	r.ValidateOnly, err = pd.getBool()
	return err
}

func (r *CreateTopicsRequest) key() int16                    { return apiKeyCreateTopics }
func (r *CreateTopicsRequest) version() int16                { return r.Version }
func (r *CreateTopicsRequest) headerVersion() int16          { return 1 }
func (r *CreateTopicsRequest) isValidVersion() bool          { return r.Version == 3 }
func (r *CreateTopicsRequest) requiredVersion() KafkaVersion { return V2_0_0_0 }
