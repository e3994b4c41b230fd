package kafka

import "time"

// DeleteTopicsRequest (API key 20, version 3) is the supplemental Admin
// operation this client adds beyond the distilled create/fetch surface:
// the natural counterpart to CreateTopics, built the same way.
type DeleteTopicsRequest struct {
	Version int16
	Topics  []string
	Timeout time.Duration
}

func (d *DeleteTopicsRequest) setVersion(v int16) { d.Version = v }

func NewDeleteTopicsRequest(topics []string, timeout time.Duration) *DeleteTopicsRequest {
	return &DeleteTopicsRequest{
		Topics:  topics,
		Timeout: timeout,
	}
}

func (d *DeleteTopicsRequest) encode(pe packetEncoder) error {
	if err := pe.putStringArray(d.Topics); err != nil {
		return err
	}
	pe.putInt32(int32(d.Timeout / time.Millisecond))
	return nil
}

func (d *DeleteTopicsRequest) decode(pd packetDecoder, version int16) (err error) {
	d.Version = version
	if d.Topics, err = pd.getStringArray(); err != nil {
		return err
	}
	timeoutMs, err := pd.getInt32()
	if err != nil {
		return err
	}
	d.Timeout = time.Duration(timeoutMs) * time.Millisecond
	return nil
}

func (d *DeleteTopicsRequest) key() int16                    { return apiKeyDeleteTopics }
func (d *DeleteTopicsRequest) version() int16                { return d.Version }
func (d *DeleteTopicsRequest) headerVersion() int16          { return 1 }
func (d *DeleteTopicsRequest) isValidVersion() bool          { return d.Version == 3 }
func (d *DeleteTopicsRequest) requiredVersion() KafkaVersion { return V2_1_0_0 }
