package kafka

// JoinGroupRequest (API key 11, version 3) is the entry point into a
// consumer group rebalance: a member announces itself and the partition
// assignment strategies it supports, and waits for the coordinator to
// admit it to the current (or a new) generation.
type JoinGroupRequest struct {
	Version            int16
	GroupID            string
	SessionTimeoutMs   int32
	RebalanceTimeoutMs int32
	MemberID           string
	ProtocolType       string
	GroupProtocols     []GroupProtocol
}

// GroupProtocol names one partition-assignment strategy this member is
// willing to run (e.g. "range", "roundrobin") and the opaque metadata it
// advertises for it.
type GroupProtocol struct {
	Name     string
	Metadata []byte
}

func (r *JoinGroupRequest) setVersion(v int16) { r.Version = v }

func (r *JoinGroupRequest) encode(pe packetEncoder) error {
	if err := pe.putString(r.GroupID); err != nil {
		return err
	}
	pe.putInt32(r.SessionTimeoutMs)
	pe.putInt32(r.RebalanceTimeoutMs)
	if err := pe.putString(r.MemberID); err != nil {
		return err
	}
	if err := pe.putString(r.ProtocolType); err != nil {
		return err
	}

	if err := pe.putArrayLength(len(r.GroupProtocols)); err != nil {
		return err
	}
	for _, proto := range r.GroupProtocols {
		if err := pe.putString(proto.Name); err != nil {
			return err
		}
		if err := pe.putBytes(proto.Metadata); err != nil {
			return err
		}
	}
	return nil
}

func (r *JoinGroupRequest) decode(pd packetDecoder, version int16) (err error) {
	r.Version = version
	if r.GroupID, err = pd.getString(); err != nil {
		return err
	}
	if r.SessionTimeoutMs, err = pd.getInt32(); err != nil {
		return err
	}
	if r.RebalanceTimeoutMs, err = pd.getInt32(); err != nil {
		return err
	}
	if r.MemberID, err = pd.getString(); err != nil {
		return err
	}
	if r.ProtocolType, err = pd.getString(); err != nil {
		return err
	}

	protoCount, err := pd.getArrayLength()
	if err != nil {
		return err
	}
	r.GroupProtocols = make([]GroupProtocol, protoCount)
	for i := range r.GroupProtocols {
		if r.GroupProtocols[i].Name, err = pd.getString(); err != nil {
			return err
		}
		if r.GroupProtocols[i].Metadata, err = pd.getBytes(); err != nil {
			return err
		}
	}
	return nil
}

func (r *JoinGroupRequest) key() int16                    { return apiKeyJoinGroup }
func (r *JoinGroupRequest) version() int16                { return r.Version }
func (r *JoinGroupRequest) headerVersion() int16          { return 1 }
func (r *JoinGroupRequest) isValidVersion() bool          { return r.Version == 3 }
func (r *JoinGroupRequest) requiredVersion() KafkaVersion { return V0_11_0_0 }
