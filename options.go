package mdd

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// config holds factory construction parameters. All fields are unexported:
// callers configure a Factory only through Option, mirroring the teacher's
// functional-options pattern.
type config struct {
	log             *zap.Logger
	initialCapacity int
	metricsRegistry *prometheus.Registry
}

// Option configures a Factory using the functional options pattern. Options
// are applied in the order they are provided to NewFactory.
type Option func(*config)

// WithLogger attaches a *zap.Logger for node-lifecycle tracing (node
// creation, reuse and revival in the unique table's create, and sweeps in
// Clean). The factory logs only at debug level, so passing a production
// logger configured at info level or above costs one Enabled() check per
// create call and per Clean sweep that removes nodes.
func WithLogger(log *zap.Logger) Option {
	return func(c *config) {
		if log != nil {
			c.log = log
		}
	}
}

// WithInitialCapacity pre-sizes the unique table and operation cache maps.
// Use this when the approximate final node/cache-entry count is known in
// advance, to avoid incremental map growth during construction.
func WithInitialCapacity(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.initialCapacity = n
		}
	}
}

// WithMetrics registers the factory's Prometheus collectors (unique-table
// size, cache size, cache hit/miss/store counters) against reg. Omit this
// option and the factory collects nothing, at zero runtime cost.
func WithMetrics(reg *prometheus.Registry) Option {
	return func(c *config) {
		c.metricsRegistry = reg
	}
}

// newConfig builds a config with sensible defaults and applies opts in order.
//
// Defaults:
//   - log: zap.NewNop() (no output)
//   - initialCapacity: 0 (let the runtime grow the maps incrementally)
//   - metricsRegistry: nil (metrics disabled)
func newConfig(opts ...Option) *config {
	c := &config{
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
