package kafka

// Broker is the client's record of one cluster member, as carried by a
// Metadata response. Identity is NodeID; it is entirely superseded (not
// merged) on every refresh.
type Broker struct {
	NodeID int32
	Host   string
	Port   int32
	Rack   *string
}

func (b *Broker) addr() string {
	return joinHostPort(b.Host, b.Port)
}

func (b *Broker) encode(pe packetEncoder) error {
	pe.putInt32(b.NodeID)
	if err := pe.putString(b.Host); err != nil {
		return err
	}
	pe.putInt32(b.Port)
	return pe.putNullableString(b.Rack)
}

func (b *Broker) decode(pd packetDecoder) (err error) {
	if b.NodeID, err = pd.getInt32(); err != nil {
		return err
	}
	if b.Host, err = pd.getString(); err != nil {
		return err
	}
	if b.Port, err = pd.getInt32(); err != nil {
		return err
	}
	b.Rack, err = pd.getNullableString()
	return err
}

// PartitionMetadata describes one partition of one topic: its leader and
// replica set, as of the last Metadata refresh. Identity is (topic,
// PartitionIndex).
type PartitionMetadata struct {
	ErrorCode       KError
	PartitionIndex  int32
	LeaderID        int32
	ReplicaNodes    []int32
	ISRNodes        []int32
	OfflineReplicas []int32
}

func (p *PartitionMetadata) encode(pe packetEncoder) error {
	pe.putInt16(int16(p.ErrorCode))
	pe.putInt32(p.PartitionIndex)
	pe.putInt32(p.LeaderID)
	if err := encodeInt32Array(pe, p.ReplicaNodes); err != nil {
		return err
	}
	if err := encodeInt32Array(pe, p.ISRNodes); err != nil {
		return err
	}
	return encodeInt32Array(pe, p.OfflineReplicas)
}

func (p *PartitionMetadata) decode(pd packetDecoder) (err error) {
	code, err := pd.getInt16()
	if err != nil {
		return err
	}
	p.ErrorCode = KError(code)
	if p.PartitionIndex, err = pd.getInt32(); err != nil {
		return err
	}
	if p.LeaderID, err = pd.getInt32(); err != nil {
		return err
	}
	if p.ReplicaNodes, err = decodeInt32Array(pd); err != nil {
		return err
	}
	if p.ISRNodes, err = decodeInt32Array(pd); err != nil {
		return err
	}
	p.OfflineReplicas, err = decodeInt32Array(pd)
	return err
}

// TopicMetadata describes one topic: its name and the metadata of every
// partition the broker reported for it.
type TopicMetadata struct {
	ErrorCode  KError
	Name       string
	IsInternal bool
	Partitions []*PartitionMetadata
}

func (t *TopicMetadata) encode(pe packetEncoder) error {
	pe.putInt16(int16(t.ErrorCode))
	if err := pe.putString(t.Name); err != nil {
		return err
	}
	pe.putBool(t.IsInternal)
	if err := pe.putArrayLength(len(t.Partitions)); err != nil {
		return err
	}
	for _, p := range t.Partitions {
		if err := p.encode(pe); err != nil {
			return err
		}
	}
	return nil
}

func (t *TopicMetadata) decode(pd packetDecoder) (err error) {
	code, err := pd.getInt16()
	if err != nil {
		return err
	}
	t.ErrorCode = KError(code)
	if t.Name, err = pd.getString(); err != nil {
		return err
	}
	if t.IsInternal, err = pd.getBool(); err != nil {
		return err
	}
	n, err := pd.getArrayLength()
	if err != nil {
		return err
	}
	t.Partitions = make([]*PartitionMetadata, n)
	for i := 0; i < n; i++ {
		p := &PartitionMetadata{}
		if err := p.decode(pd); err != nil {
			return err
		}
		t.Partitions[i] = p
	}
	return nil
}

func encodeInt32Array(pe packetEncoder, in []int32) error {
	if err := pe.putArrayLength(len(in)); err != nil {
		return err
	}
	for _, v := range in {
		pe.putInt32(v)
	}
	return nil
}

func decodeInt32Array(pd packetDecoder) ([]int32, error) {
	n, err := pd.getArrayLength()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	out := make([]int32, n)
	for i := range out {
		if out[i], err = pd.getInt32(); err != nil {
			return nil, err
		}
	}
	return out, nil
}
