package mdd

import "cmp"

// opTag enumerates the operations memoised in the operation cache
// (spec.md §4.3). set_project's key additionally carries a projection node,
// so cacheKey always has three node slots even though most operations only
// use two.
type opTag uint8

const (
	opSetUnion opTag = iota
	opSetMinus
	opSetIntersection
	opRelCompositionII
	opRelCompositionIS
	opRelRelabel
	opRelNext
	opRelPrev
	opSetProject
)

// cacheKey is the memoisation key (op, a, b, p) of spec.md §4.3. p is nil
// for every operation that does not take a projection.
type cacheKey[V cmp.Ordered] struct {
	op   opTag
	a, b *node[V]
	p    *node[uint]
}

// opCache is the per-Factory operation cache (spec.md §4.3). It tolerates
// stale entries by construction: a cached result always carries its own
// reference, so "stale" never means "dangling": a node named by an entry
// keeps a use count of at least one until clear releases the entry.
type opCache[V cmp.Ordered] struct {
	entries map[cacheKey[V]]*node[V]
	hits    uint64
	misses  uint64
	stores  uint64
	metrics *metricsHooks
}

func newOpCache[V cmp.Ordered](capacity int, m *metricsHooks) *opCache[V] {
	return &opCache[V]{
		entries: make(map[cacheKey[V]]*node[V], capacity),
		metrics: m,
	}
}

// canonicalCommutative orders a commutative operation's operands by pointer
// identity so that op(a, b) and op(b, a) share one cache entry, doubling the
// effective hit rate for commuted recomputations (spec.md §4.3).
func canonicalCommutative[V cmp.Ordered](a, b *node[V]) (*node[V], *node[V]) {
	if uintptr(ptrOf(b)) < uintptr(ptrOf(a)) {
		return b, a
	}
	return a, b
}

// lookup returns a fresh reference to the cached result for key, or nil if
// there is no entry. The cache itself retains its own reference on a hit, so
// the returned reference is genuinely new to the caller.
func (c *opCache[V]) lookup(key cacheKey[V]) *node[V] {
	if result, ok := c.entries[key]; ok {
		c.hits++
		c.metrics.observeCacheHit()
		return result.use()
	}
	c.misses++
	c.metrics.observeCacheMiss()
	return nil
}

// store records result under key, taking a fresh counted reference on the
// key's node components and on the result so the cache keeps them alive.
func (c *opCache[V]) store(key cacheKey[V], result *node[V]) {
	key.a.use()
	if key.b != nil {
		key.b.use()
	}
	if key.p != nil {
		key.p.use()
	}
	c.entries[key] = result.use()
	c.stores++
	c.metrics.observeCacheStore()
	c.metrics.observeCacheSize(len(c.entries))
}

// clear drops every cached entry, releasing the reference each entry held on
// its key components and its result. This is the only way cached node
// references are ever released in bulk; a subsequent Factory.Clean can then
// reclaim whatever becomes zero-count as a result.
func (c *opCache[V]) clear() {
	for key, result := range c.entries {
		key.a.unuse()
		if key.b != nil {
			key.b.unuse()
		}
		if key.p != nil {
			key.p.unuse()
		}
		result.unuse()
	}
	c.entries = make(map[cacheKey[V]]*node[V], len(c.entries))
	c.metrics.observeCacheSize(0)
}

func (c *opCache[V]) size() int { return len(c.entries) }
