package kafka

// ApiVersionEntry is one (api_key, [min_version, max_version]) triple from
// an ApiVersionsResponse, indexed by ApiKey in ClusterClient.apiVersions
// and built once at connect.
type ApiVersionEntry struct {
	APIKey     int16
	MinVersion int16
	MaxVersion int16
}

// ApiVersionsResponse (API key 18, version 1):
//
//	error_code [api_keys] throttle_time_ms
//	api_keys => api_key min_version max_version
type ApiVersionsResponse struct {
	Version        int16
	ErrorCode      KError
	APIKeys        []ApiVersionEntry
	ThrottleTimeMs int32
}

func (r *ApiVersionsResponse) setVersion(v int16) { r.Version = v }

func (r *ApiVersionsResponse) encode(pe packetEncoder) error {
	pe.putInt16(int16(r.ErrorCode))
	if err := pe.putArrayLength(len(r.APIKeys)); err != nil {
		return err
	}
	for _, k := range r.APIKeys {
		pe.putInt16(k.APIKey)
		pe.putInt16(k.MinVersion)
		pe.putInt16(k.MaxVersion)
	}
	if r.Version >= 1 {
		pe.putInt32(r.ThrottleTimeMs)
	}
	return nil
}

func (r *ApiVersionsResponse) decode(pd packetDecoder, version int16) (err error) {
	r.Version = version
	code, err := pd.getInt16()
	if err != nil {
		return err
	}
	r.ErrorCode = KError(code)

	n, err := pd.getArrayLength()
	if err != nil {
		return err
	}
	r.APIKeys = make([]ApiVersionEntry, n)
	for i := range r.APIKeys {
		if r.APIKeys[i].APIKey, err = pd.getInt16(); err != nil {
			return err
		}
		if r.APIKeys[i].MinVersion, err = pd.getInt16(); err != nil {
			return err
		}
		if r.APIKeys[i].MaxVersion, err = pd.getInt16(); err != nil {
			return err
		}
	}
	if version >= 1 {
		if r.ThrottleTimeMs, err = pd.getInt32(); err != nil {
			return err
		}
	}
	return nil
}

func (r *ApiVersionsResponse) key() int16                    { return apiKeyApiVersions }
func (r *ApiVersionsResponse) version() int16                { return r.Version }
func (r *ApiVersionsResponse) headerVersion() int16          { return 0 }
func (r *ApiVersionsResponse) isValidVersion() bool          { return r.Version == 1 }
func (r *ApiVersionsResponse) requiredVersion() KafkaVersion { return V0_10_0_0 }
