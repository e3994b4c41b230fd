package kafka

import (
	"time"

	"github.com/rcrowley/go-metrics"
)

// Config carries the engine's ambient settings: everything that isn't
// part of any one request's wire body. ClientID is deliberately not part
// of Config; it's a constructor argument to New, since every request
// header needs it and a zero-value default would be easy to ship by
// accident.
type Config struct {
	// DialTimeout bounds every TCP dial this engine makes, both during
	// bootstrap and when opening a new pooled connection.
	DialTimeout time.Duration

	// RequestTimeout bounds how long a single dispatched request waits for
	// its matching response before the engine gives up on that socket.
	RequestTimeout time.Duration

	// MaxOpenRequests caps how many pooled connections conn_pool.go keeps
	// per broker; round-robin dispatch and the Fetch fan-out both draw from
	// this pool.
	MaxOpenRequests int

	// MetricRegistry receives the per-topic/per-broker meters and timers
	// every schema's encode/dispatch path registers into. Defaults to
	// metrics.DefaultRegistry when nil.
	MetricRegistry metrics.Registry

	// Logger receives engine diagnostics (a failed post-bootstrap metadata
	// refresh).
	// DebugLogger receives per-request trace detail. Both default to the
	// package-level no-op loggers.
	Logger      Logger
	DebugLogger Logger
}

// NewConfig returns a Config with the engine's defaults: 30s dial and
// request timeouts, a pool of 5 connections per broker, the default
// metrics registry, and no-op logging.
func NewConfig() *Config {
	return &Config{
		DialTimeout:     30 * time.Second,
		RequestTimeout:  30 * time.Second,
		MaxOpenRequests: 5,
		MetricRegistry:  metrics.DefaultRegistry,
		Logger:          StdLogger,
		DebugLogger:     DebugLogger,
	}
}

func (c *Config) registry() metrics.Registry {
	if c.MetricRegistry == nil {
		return metrics.DefaultRegistry
	}
	return c.MetricRegistry
}
