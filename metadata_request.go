package kafka

// MetadataRequest (API key 3, version 6) asks for broker and topic/partition
// metadata. An empty Topics list means "all topics" and MUST still encode
// the array with an explicit i32 count of 0, never the null-array sentinel
// (-1): `00 00 00 00` followed by `00` for AllowAutoTopicCreation.
type MetadataRequest struct {
	Version                int16
	Topics                 []string
	AllowAutoTopicCreation bool
}

func (r *MetadataRequest) setVersion(v int16) { r.Version = v }

func (r *MetadataRequest) encode(pe packetEncoder) error {
	// Always emit the explicit count, even when Topics is nil/empty. The
	// empty array is a valid "all topics" request, never the null array.
	if err := pe.putArrayLength(len(r.Topics)); err != nil {
		return err
	}
	for _, t := range r.Topics {
		if err := pe.putString(t); err != nil {
			return err
		}
	}
	pe.putBool(r.AllowAutoTopicCreation)
	return nil
}

func (r *MetadataRequest) decode(pd packetDecoder, version int16) (err error) {
	r.Version = version
	n, err := pd.getArrayLength()
	if err != nil {
		return err
	}
	if n > 0 {
		r.Topics = make([]string, n)
		for i := range r.Topics {
			if r.Topics[i], err = pd.getString(); err != nil {
				return err
			}
		}
	}
	r.AllowAutoTopicCreation, err = pd.getBool()
	return err
}

func (r *MetadataRequest) key() int16               { return apiKeyMetadata }
func (r *MetadataRequest) version() int16           { return r.Version }
func (r *MetadataRequest) headerVersion() int16     { return 1 }
func (r *MetadataRequest) isValidVersion() bool     { return r.Version == 6 }
func (r *MetadataRequest) requiredVersion() KafkaVersion { return V1_0_0_0 }
