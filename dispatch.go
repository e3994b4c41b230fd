package kafka

import (
	"net"
	"time"
)

// dispatch sends req to the broker identified by nodeID and decodes the
// response into resp, using whichever version was negotiated for req's
// API key during bootstrap. This is the one path every facade method and
// every fan-out task ultimately calls through.
func (c *ClusterClient) dispatch(nodeID int32, req, resp protocolBody) error {
	if c.closed.Load() {
		return ErrClosedClient
	}
	version, err := c.negotiatedVersion(req.key())
	if err != nil {
		return err
	}
	req.setVersion(version)
	resp.setVersion(version)

	addr, ok := c.metadata.brokerAddr(nodeID)
	if !ok {
		return ErrNoRouteForTopic
	}
	pool := c.conns.pool(nodeID, addr)
	conn, err := pool.get()
	if err != nil {
		return err
	}

	registry := c.cfg.registry()
	getOrRegisterBrokerMeter("requests", nodeID, registry).Mark(1)
	start := time.Now()

	if c.cfg.RequestTimeout > 0 {
		if err := conn.SetDeadline(start.Add(c.cfg.RequestTimeout)); err != nil {
			pool.put(conn, true)
			return err
		}
		defer conn.SetDeadline(time.Time{})
	}

	correlationID := c.nextCorrelationID()
	header := &RequestHeader{
		APIKey:        req.key(),
		APIVersion:    version,
		CorrelationID: correlationID,
		ClientID:      c.clientID,
	}
	frame, err := encodeRequest(header, req, registry)
	if err != nil {
		pool.put(conn, true)
		return err
	}
	if err := writeFrame(conn, frame); err != nil {
		pool.put(conn, true)
		return err
	}
	c.cfg.DebugLogger.Printf("-> broker %d: api key %d v%d, correlation id %d, %d bytes",
		nodeID, req.key(), version, correlationID, len(frame))

	if _, err := readResponse(conn, correlationID, resp, version); err != nil {
		pool.put(conn, true)
		return err
	}
	c.cfg.DebugLogger.Printf("<- broker %d: correlation id %d", nodeID, correlationID)
	pool.put(conn, false)
	getOrRegisterBrokerTimer("roundtrip", nodeID, registry).Update(time.Since(start))
	return nil
}

// negotiateVersions sends an ApiVersionsRequest over a fresh bootstrap
// connection and intersects the broker's advertised ranges with this
// client's own clientSupportedVersions, choosing the highest version both
// sides understand for each API.
func (c *ClusterClient) negotiateVersions(conn net.Conn) (map[int16]int16, error) {
	correlationID := c.nextCorrelationID()
	req := &ApiVersionsRequest{Version: 1}
	header := &RequestHeader{
		APIKey:        apiKeyApiVersions,
		APIVersion:    1,
		CorrelationID: correlationID,
		ClientID:      c.clientID,
	}
	frame, err := encodeRequest(header, req, c.cfg.registry())
	if err != nil {
		return nil, err
	}
	if err := writeFrame(conn, frame); err != nil {
		return nil, err
	}
	resp := &ApiVersionsResponse{}
	if _, err := readResponse(conn, correlationID, resp, 1); err != nil {
		return nil, err
	}
	if resp.ErrorCode != ErrNoError {
		return nil, resp.ErrorCode
	}

	broker := make(map[int16][2]int16, len(resp.APIKeys))
	for _, k := range resp.APIKeys {
		broker[k.APIKey] = [2]int16{k.MinVersion, k.MaxVersion}
	}

	negotiated := make(map[int16]int16, len(clientSupportedVersions))
	for apiKey, wanted := range clientSupportedVersions {
		rng, ok := broker[apiKey]
		if !ok {
			continue
		}
		for i := len(wanted) - 1; i >= 0; i-- {
			v := wanted[i]
			if v >= rng[0] && v <= rng[1] {
				negotiated[apiKey] = v
				break
			}
		}
	}
	return negotiated, nil
}

// metadataOverConn sends a MetadataRequest over a connection that hasn't
// gone through version negotiation yet (the bootstrap's first round
// trip), hardcoding version 6 since that is the only version this client
// implements.
func (c *ClusterClient) metadataOverConn(conn net.Conn, topics []string) (*MetadataResponse, error) {
	correlationID := c.nextCorrelationID()
	req := &MetadataRequest{Version: 6, Topics: topics, AllowAutoTopicCreation: false}
	header := &RequestHeader{
		APIKey:        apiKeyMetadata,
		APIVersion:    6,
		CorrelationID: correlationID,
		ClientID:      c.clientID,
	}
	frame, err := encodeRequest(header, req, c.cfg.registry())
	if err != nil {
		return nil, err
	}
	if err := writeFrame(conn, frame); err != nil {
		return nil, err
	}
	resp := &MetadataResponse{}
	if _, err := readResponse(conn, correlationID, resp, 6); err != nil {
		return nil, err
	}
	return resp, nil
}

// metadataRequest dispatches a MetadataRequest to brokerID through the
// normal pooled/negotiated path, used by every refresh after bootstrap.
func (c *ClusterClient) metadataRequest(brokerID int32, topics []string) (*MetadataResponse, error) {
	req := &MetadataRequest{Topics: topics, AllowAutoTopicCreation: false}
	resp := &MetadataResponse{}
	if err := c.dispatch(brokerID, req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}
