package mdd

import (
	"cmp"
	"unsafe"

	"github.com/prometheus/client_golang/prometheus"
)

// ptrOf gives a stable, orderable address for a node pointer, used only to
// canonicalise the operand order of a commutative operation before hitting
// the cache (cache.go's canonicalCommutative). It is never dereferenced and
// never compared across factories.
func ptrOf[V cmp.Ordered](n *node[V]) unsafe.Pointer {
	return unsafe.Pointer(n)
}

// metricsHooks wraps the optional Prometheus collectors registered via
// WithMetrics. A nil *metricsHooks is valid and every method on it is a
// no-op, so callers (the operation cache's lookup/store, Factory.Clean)
// never check whether metrics are enabled — they just call through a
// pointer that may be nil.
type metricsHooks struct {
	tableSize  prometheus.Gauge
	cacheSize  prometheus.Gauge
	cacheHits  prometheus.Counter
	cacheMiss  prometheus.Counter
	cacheStore prometheus.Counter
}

// newMetricsHooks registers the factory's collectors against reg and returns
// the hooks struct. Registration errors (e.g. a duplicate registration in a
// shared registry) are deliberately ignored here, mirroring the original
// engine's stance that observability must never fail an operation; a caller
// who needs to detect a duplicate registration should pass a dedicated
// *prometheus.Registry rather than a shared default one.
func newMetricsHooks(reg *prometheus.Registry) *metricsHooks {
	if reg == nil {
		return nil
	}
	h := &metricsHooks{
		tableSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mdd_unique_table_size",
			Help: "Number of nodes resident in the unique table after the most recent Clean, including zero-count nodes.",
		}),
		cacheSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mdd_operation_cache_size",
			Help: "Number of entries currently resident in the operation cache.",
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mdd_operation_cache_hits_total",
			Help: "Total operation cache lookups that found a cached result.",
		}),
		cacheMiss: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mdd_operation_cache_misses_total",
			Help: "Total operation cache lookups that found nothing cached.",
		}),
		cacheStore: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mdd_operation_cache_stores_total",
			Help: "Total results stored into the operation cache.",
		}),
	}
	for _, c := range []prometheus.Collector{h.tableSize, h.cacheSize, h.cacheHits, h.cacheMiss, h.cacheStore} {
		_ = reg.Register(c)
	}
	return h
}

func (h *metricsHooks) observeCacheHit() {
	if h == nil {
		return
	}
	h.cacheHits.Inc()
}

func (h *metricsHooks) observeCacheMiss() {
	if h == nil {
		return
	}
	h.cacheMiss.Inc()
}

func (h *metricsHooks) observeCacheStore() {
	if h == nil {
		return
	}
	h.cacheStore.Inc()
}

func (h *metricsHooks) observeCacheSize(n int) {
	if h == nil {
		return
	}
	h.cacheSize.Set(float64(n))
}

func (h *metricsHooks) observeTableSize(n int) {
	if h == nil {
		return
	}
	h.tableSize.Set(float64(n))
}
