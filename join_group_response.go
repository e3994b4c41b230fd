package kafka

// JoinGroupResponse (API key 11, version 3). When this member is elected
// group leader, Members is populated with every member's metadata so the
// leader can compute the partition assignment; followers see an empty
// Members slice.
type JoinGroupResponse struct {
	Version       int16
	ThrottleTime  int32
	Err           KError
	GenerationID  int32
	GroupProtocol string
	LeaderID      string
	MemberID      string
	Members       []JoinGroupMember
}

// JoinGroupMember is one group member's id and protocol metadata, as seen
// by the elected leader.
type JoinGroupMember struct {
	MemberID string
	Metadata []byte
}

func (r *JoinGroupResponse) setVersion(v int16) { r.Version = v }

// IsLeader reports whether the coordinator elected this client to compute
// the partition assignment for the group.
func (r *JoinGroupResponse) IsLeader() bool {
	return r.LeaderID == r.MemberID
}

func (r *JoinGroupResponse) encode(pe packetEncoder) error {
	pe.putInt32(r.ThrottleTime)
	pe.putInt16(int16(r.Err))
	pe.putInt32(r.GenerationID)
	if err := pe.putString(r.GroupProtocol); err != nil {
		return err
	}
	if err := pe.putString(r.LeaderID); err != nil {
		return err
	}
	if err := pe.putString(r.MemberID); err != nil {
		return err
	}

	if err := pe.putArrayLength(len(r.Members)); err != nil {
		return err
	}
	for _, m := range r.Members {
		if err := pe.putString(m.MemberID); err != nil {
			return err
		}
		if err := pe.putBytes(m.Metadata); err != nil {
			return err
		}
	}
	return nil
}

func (r *JoinGroupResponse) decode(pd packetDecoder, version int16) (err error) {
	r.Version = version
	if r.ThrottleTime, err = pd.getInt32(); err != nil {
		return err
	}
	errCode, err := pd.getInt16()
	if err != nil {
		return err
	}
	r.Err = KError(errCode)
	if r.GenerationID, err = pd.getInt32(); err != nil {
		return err
	}
	if r.GroupProtocol, err = pd.getString(); err != nil {
		return err
	}
	if r.LeaderID, err = pd.getString(); err != nil {
		return err
	}
	if r.MemberID, err = pd.getString(); err != nil {
		return err
	}

	memberCount, err := pd.getArrayLength()
	if err != nil {
		return err
	}
	r.Members = make([]JoinGroupMember, memberCount)
	for i := range r.Members {
		if r.Members[i].MemberID, err = pd.getString(); err != nil {
			return err
		}
		if r.Members[i].Metadata, err = pd.getBytes(); err != nil {
			return err
		}
	}
	return nil
}

func (r *JoinGroupResponse) key() int16                    { return apiKeyJoinGroup }
func (r *JoinGroupResponse) version() int16                { return r.Version }
func (r *JoinGroupResponse) headerVersion() int16          { return 0 }
func (r *JoinGroupResponse) isValidVersion() bool          { return r.Version == 3 }
func (r *JoinGroupResponse) requiredVersion() KafkaVersion { return V0_11_0_0 }
