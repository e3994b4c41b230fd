package kafka

// RequestHeader precedes every request body on the wire: api_key,
// api_version, correlation_id, client_id. Every (ApiKey, version) pair this
// client speaks is a non-flexible version, so no tagged-field trailer is
// encoded here.
type RequestHeader struct {
	APIKey        int16
	APIVersion    int16
	CorrelationID int32
	ClientID      string
}

func (h *RequestHeader) encode(pe packetEncoder) error {
	pe.putInt16(h.APIKey)
	pe.putInt16(h.APIVersion)
	pe.putInt32(h.CorrelationID)
	return pe.putString(h.ClientID)
}

func (h *RequestHeader) decode(pd packetDecoder) (err error) {
	if h.APIKey, err = pd.getInt16(); err != nil {
		return err
	}
	if h.APIVersion, err = pd.getInt16(); err != nil {
		return err
	}
	if h.CorrelationID, err = pd.getInt32(); err != nil {
		return err
	}
	h.ClientID, err = pd.getString()
	return err
}

// ResponseHeader is the only thing framing guarantees before the body: the
// correlation id the client chose for the request being answered.
type ResponseHeader struct {
	CorrelationID int32
}

func (h *ResponseHeader) decode(pd packetDecoder) (err error) {
	h.CorrelationID, err = pd.getInt32()
	return err
}
