package kafka

// ApiVersionsRequest (API key 18, version 1) has an empty body. The
// broker replies with the version ranges it supports for every API key it
// knows.
type ApiVersionsRequest struct {
	Version int16
}

func (r *ApiVersionsRequest) setVersion(v int16)          { r.Version = v }
func (r *ApiVersionsRequest) encode(pe packetEncoder) error { return nil }
func (r *ApiVersionsRequest) decode(pd packetDecoder, version int16) error {
	r.Version = version
	return nil
}
func (r *ApiVersionsRequest) key() int16                    { return apiKeyApiVersions }
func (r *ApiVersionsRequest) version() int16                { return r.Version }
func (r *ApiVersionsRequest) headerVersion() int16          { return 1 }
func (r *ApiVersionsRequest) isValidVersion() bool          { return r.Version == 1 }
func (r *ApiVersionsRequest) requiredVersion() KafkaVersion { return V0_10_0_0 }
