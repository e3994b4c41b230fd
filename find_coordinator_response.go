package kafka

// FindCoordinatorResponse (API key 10, version 2).
type FindCoordinatorResponse struct {
	Version        int16
	ThrottleTimeMs int32
	ErrorCode      KError
	ErrorMessage   *string
	NodeID         int32
	Host           string
	Port           int32
}

func (r *FindCoordinatorResponse) setVersion(v int16) { r.Version = v }

func (r *FindCoordinatorResponse) encode(pe packetEncoder) error {
	pe.putInt32(r.ThrottleTimeMs)
	pe.putInt16(int16(r.ErrorCode))
	if err := pe.putNullableString(r.ErrorMessage); err != nil {
		return err
	}
	pe.putInt32(r.NodeID)
	if err := pe.putString(r.Host); err != nil {
		return err
	}
	pe.putInt32(r.Port)
	return nil
}

func (r *FindCoordinatorResponse) decode(pd packetDecoder, version int16) (err error) {
	r.Version = version
	if r.ThrottleTimeMs, err = pd.getInt32(); err != nil {
		return err
	}
	errCode, err := pd.getInt16()
	if err != nil {
		return err
	}
	r.ErrorCode = KError(errCode)
	if r.ErrorMessage, err = pd.getNullableString(); err != nil {
		return err
	}
	if r.NodeID, err = pd.getInt32(); err != nil {
		return err
	}
	if r.Host, err = pd.getString(); err != nil {
		return err
	}
	if r.Port, err = pd.getInt32(); err != nil {
		return err
	}
	return nil
}

func (r *FindCoordinatorResponse) key() int16                    { return apiKeyFindCoordinator }
func (r *FindCoordinatorResponse) version() int16                { return r.Version }
func (r *FindCoordinatorResponse) headerVersion() int16          { return 0 }
func (r *FindCoordinatorResponse) isValidVersion() bool          { return r.Version == 2 }
func (r *FindCoordinatorResponse) requiredVersion() KafkaVersion { return V0_11_0_0 }
