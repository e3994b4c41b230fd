package kafka

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/eapache/queue"
	"github.com/hashicorp/go-multierror"
)

// ClusterClient is the engine's single entry point: it owns the metadata
// cache, the per-broker connection pools, the negotiated API version
// table, and the correlation id sequence every dispatched request draws
// from.
type ClusterClient struct {
	clientID string
	cfg      *Config

	conns    *connPool
	metadata *MetadataCache

	correlationID int32

	// apiVersions maps an API key to the version this client negotiated
	// during bootstrap: the highest version both this client and the seed
	// broker that completed the bootstrap understand.
	apiVersions map[int16]int16

	// roundRobin walks the known broker ids for calls that aren't routed
	// by partition leader (metadata refreshes, CreateTopic/DeleteTopic,
	// FindCoordinator).
	// Fetch's fan-out goroutines can each trigger a RefreshMetadata on a
	// transport or stale-leader error, so every access goes through
	// roundRobinMu.
	roundRobin   *queue.Queue
	roundRobinMu sync.Mutex

	closed atomic.Bool
}

// New tries each host in seeds in turn until one completes the bootstrap
// (dial, API version negotiation, initial cluster metadata), aggregating
// the failures of the seeds tried before it. It fails with
// ErrNoBrokersAvailable if no seed completes the bootstrap, whether the
// seed could not be dialed or failed a later step.
func New(clientID string, seeds []string, cfg *Config) (*ClusterClient, error) {
	if cfg == nil {
		cfg = NewConfig()
	}
	if cfg.Logger == nil {
		cfg.Logger = StdLogger
	}
	if cfg.DebugLogger == nil {
		cfg.DebugLogger = DebugLogger
	}
	c := &ClusterClient{
		clientID:   clientID,
		cfg:        cfg,
		conns:      newConnPool(cfg),
		metadata:   newMetadataCache(),
		roundRobin: queue.New(),
	}

	var bootstrapErr *multierror.Error
	bootstrapped := false
	for _, seed := range seeds {
		pool := c.conns.pool(seedNodeID(seed), seed)
		conn, err := pool.get()
		if err != nil {
			bootstrapErr = multierror.Append(bootstrapErr, fmt.Errorf("seed %s: %w", seed, err))
			continue
		}

		versions, err := c.negotiateVersions(conn)
		if err != nil {
			pool.put(conn, true)
			bootstrapErr = multierror.Append(bootstrapErr, fmt.Errorf("seed %s: negotiating versions: %w", seed, err))
			continue
		}
		c.apiVersions = versions

		resp, err := c.metadataOverConn(conn, nil)
		if err != nil {
			pool.put(conn, true)
			bootstrapErr = multierror.Append(bootstrapErr, fmt.Errorf("seed %s: fetching metadata: %w", seed, err))
			continue
		}
		pool.put(conn, false)
		c.metadata.update(resp)
		c.seedBrokerPools()
		bootstrapped = true
		break
	}

	if !bootstrapped {
		if bootstrapErr != nil {
			return nil, fmt.Errorf("%w: %s", ErrNoBrokersAvailable, bootstrapErr)
		}
		return nil, ErrNoBrokersAvailable
	}

	// A second metadata round trip, now routed to whichever broker the
	// first response named, gives a consistent view of the whole cluster
	// rather than whatever partial view the bootstrap seed happened to
	// have.
	if err := c.RefreshMetadata(nil); err != nil {
		c.cfg.Logger.Printf("kafka: post-bootstrap metadata refresh failed: %v", err)
	}

	return c, nil
}

func (c *ClusterClient) seedBrokerPools() {
	c.roundRobinMu.Lock()
	defer c.roundRobinMu.Unlock()
	for _, id := range c.metadata.brokerIDs() {
		addr, ok := c.metadata.brokerAddr(id)
		if !ok {
			continue
		}
		c.conns.pool(id, addr)
		c.roundRobin.Add(id)
	}
}

func (c *ClusterClient) nextCorrelationID() int32 {
	return atomic.AddInt32(&c.correlationID, 1)
}

// negotiatedVersion returns the version this client will use for apiKey:
// whichever of clientSupportedVersions[apiKey] was negotiated during
// bootstrap, or ErrUnsupportedVersion if the cluster never advertised an
// overlapping version.
func (c *ClusterClient) negotiatedVersion(apiKey int16) (int16, error) {
	v, ok := c.apiVersions[apiKey]
	if !ok {
		return 0, fmt.Errorf("%w: api key %d", ErrUnsupportedVersion, apiKey)
	}
	return v, nil
}

// nextRoundRobinBroker returns the next broker id in rotation, for calls
// that aren't routed by partition leader.
func (c *ClusterClient) nextRoundRobinBroker() (int32, error) {
	c.roundRobinMu.Lock()
	defer c.roundRobinMu.Unlock()
	if c.roundRobin.Length() == 0 {
		return 0, ErrNoBrokersAvailable
	}
	id := c.roundRobin.Remove().(int32)
	c.roundRobin.Add(id)
	return id, nil
}

// RefreshMetadata re-fetches metadata for topics (or the whole cluster
// when topics is nil/empty) from a round-robin broker and swaps it into
// the cache.
func (c *ClusterClient) RefreshMetadata(topics []string) error {
	brokerID, err := c.nextRoundRobinBroker()
	if err != nil {
		return err
	}
	resp, err := c.metadataRequest(brokerID, topics)
	if err != nil {
		return err
	}
	c.metadata.update(resp)
	c.seedBrokerPools()
	return nil
}

// Close tears down every pooled connection. Further calls on c return
// ErrClosedClient.
func (c *ClusterClient) Close() error {
	c.closed.Store(true)
	c.conns.closeAll()
	return nil
}

// seedNodeID assigns a synthetic negative node id to a seed address before
// any real broker id is known for it, so it can share brokerPool's
// nodeID-keyed storage with post-bootstrap brokers. Negative ids never
// collide with a real Kafka broker id, which is always >= 0.
func seedNodeID(addr string) int32 {
	h := int32(0)
	for _, r := range addr {
		h = h*31 + int32(r)
	}
	if h > 0 {
		h = -h
	}
	return h - 1
}
