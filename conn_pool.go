package kafka

import (
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/eapache/go-resiliency/breaker"
	"github.com/eapache/queue"
)

// brokerPool owns every live connection to one broker: an idle free list
// dispatch.go draws from, and a circuit breaker around the dial step so a
// broker that just went down fails fast instead of letting every pending
// request queue up behind a string of timeouts.
type brokerPool struct {
	nodeID int32

	mu      sync.Mutex
	addr    string
	idle    *queue.Queue
	dial    *breaker.Breaker
	open    int
	maxOpen int

	dialTimeout time.Duration
}

func newBrokerPool(nodeID int32, addr string, cfg *Config) *brokerPool {
	return &brokerPool{
		nodeID:      nodeID,
		addr:        addr,
		idle:        queue.New(),
		dial:        breaker.New(3, 1, 10*time.Second),
		maxOpen:     cfg.MaxOpenRequests,
		dialTimeout: cfg.DialTimeout,
	}
}

// setAddr updates the dial target after a metadata refresh moves this
// broker id to a new host/port; existing idle connections are left alone,
// since Kafka broker ids are rarely actually relocated mid-session.
func (p *brokerPool) setAddr(addr string) {
	p.mu.Lock()
	p.addr = addr
	p.mu.Unlock()
}

// get returns an idle connection if one is pooled, otherwise dials a new
// one through the breaker.
func (p *brokerPool) get() (net.Conn, error) {
	p.mu.Lock()
	if p.idle.Length() > 0 {
		conn := p.idle.Remove().(net.Conn)
		p.mu.Unlock()
		return conn, nil
	}
	addr := p.addr
	p.mu.Unlock()

	var conn net.Conn
	err := p.dial.Run(func() error {
		c, dialErr := net.DialTimeout("tcp", addr, p.dialTimeout)
		if dialErr != nil {
			return dialErr
		}
		conn = c
		return nil
	})
	if err == breaker.ErrBreakerOpen {
		return nil, fmt.Errorf("kafka: %s: %w", formatAddr(p.nodeID, addr), err)
	}
	if err != nil {
		return nil, fmt.Errorf("kafka: dialing %s: %w", formatAddr(p.nodeID, addr), err)
	}

	p.mu.Lock()
	p.open++
	p.mu.Unlock()
	return conn, nil
}

// put returns a connection to the idle pool, or closes it if the pool is
// already at its cap or the connection is known bad.
func (p *brokerPool) put(conn net.Conn, bad bool) {
	if bad {
		conn.Close()
		p.mu.Lock()
		p.open--
		p.mu.Unlock()
		return
	}
	p.mu.Lock()
	if p.idle.Length() >= p.maxOpen {
		p.mu.Unlock()
		conn.Close()
		return
	}
	p.idle.Add(conn)
	p.mu.Unlock()
}

func (p *brokerPool) closeAll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for p.idle.Length() > 0 {
		p.idle.Remove().(net.Conn).Close()
	}
}

// connPool owns one brokerPool per broker id known to the cluster.
type connPool struct {
	cfg *Config

	mu      sync.RWMutex
	brokers map[int32]*brokerPool
}

func newConnPool(cfg *Config) *connPool {
	return &connPool{cfg: cfg, brokers: make(map[int32]*brokerPool)}
}

// pool returns the brokerPool for nodeID, creating or re-addressing it to
// match addr as reported by the latest metadata snapshot.
func (c *connPool) pool(nodeID int32, addr string) *brokerPool {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.brokers[nodeID]
	if !ok {
		p = newBrokerPool(nodeID, addr, c.cfg)
		c.brokers[nodeID] = p
		return p
	}
	p.setAddr(addr)
	return p
}

func (c *connPool) closeAll() {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, p := range c.brokers {
		p.closeAll()
	}
}
