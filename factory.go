package mdd

import (
	"cmp"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// Factory owns one unique table and one operation cache for a single value
// domain V. Every Set, Irel, Srel, and Projection derived from a Factory
// shares its table and cache; combining wrappers from two different
// factories is a precondition violation (ErrDifferentFactory).
//
// A Factory is not safe for concurrent use — this engine is single-threaded
// by design (spec Non-goals): a Factory and everything derived from it must
// be driven from one goroutine at a time.
type Factory[V cmp.Ordered] struct {
	table     *uniqueTable[V]
	cache     *opCache[V]
	projTable *uniqueTable[uint]
	metrics   *metricsHooks
	log       *zap.Logger
}

// NewFactory constructs a Factory for value domain V, applying opts in order.
func NewFactory[V cmp.Ordered](opts ...Option) *Factory[V] {
	cfg := newConfig(opts...)
	m := newMetricsHooks(cfg.metricsRegistry)
	return &Factory[V]{
		table:     newUniqueTable[V](cfg.initialCapacity, cfg.log),
		cache:     newOpCache[V](cfg.initialCapacity, m),
		projTable: newUniqueTable[uint](0, cfg.log),
		metrics:   m,
		log:       cfg.log,
	}
}

// EmptySet returns the empty set (FALSE).
func (f *Factory[V]) EmptySet() *Set[V] {
	return &Set[V]{f: f, root: f.table.empty()}
}

// SingletonSet returns the set containing only the zero-length vector
// (TRUE) — a direct wrapper around TRUE, per spec.md §6's singleton_set().
// Building up any non-empty vector set starts from here or from EmptySet
// plus repeated Add.
func (f *Factory[V]) SingletonSet() *Set[V] {
	return &Set[V]{f: f, root: f.table.emptylist()}
}

// VectorSet returns the set containing exactly one vector, built by adding
// it to the empty set. This is a convenience on top of SingletonSet/Add, not
// a spec-named operation.
func (f *Factory[V]) VectorSet(vector []V) *Set[V] {
	return f.EmptySet().Add(vector)
}

// EmptyIrel returns the empty interleaved relation (FALSE).
func (f *Factory[V]) EmptyIrel() *Irel[V] {
	return &Irel[V]{Set: Set[V]{f: f, root: f.table.empty()}}
}

// EmptySrel returns the empty sequential relation (FALSE).
func (f *Factory[V]) EmptySrel() *Srel[V] {
	return &Srel[V]{Set: Set[V]{f: f, root: f.table.empty()}}
}

// Size reports the unique table's node count, including zero-count nodes.
func (f *Factory[V]) Size() int {
	return f.table.size()
}

// Clean sweeps every zero-count node from the unique table. Results still
// held in the operation cache keep their nodes alive; call ClearCache first
// to make a Clean sweep maximally effective.
func (f *Factory[V]) Clean() {
	f.table.clean()
	f.metrics.observeTableSize(f.table.size())
}

// ClearCache releases every reference the operation cache holds. Call this
// before Clean to reclaim nodes that are only kept alive by cached results.
func (f *Factory[V]) ClearCache() {
	f.cache.clear()
}

// CacheHits reports the cumulative operation cache hit count.
func (f *Factory[V]) CacheHits() uint64 { return f.cache.hits }

// CacheMisses reports the cumulative operation cache miss count.
func (f *Factory[V]) CacheMisses() uint64 { return f.cache.misses }

// CacheStores reports the cumulative operation cache store count.
func (f *Factory[V]) CacheStores() uint64 { return f.cache.stores }

// Dump writes a textual rendering of the unique table to w, one line per
// resident node (sentinels excluded, since they are never stored in the
// table), in the spirit of the original engine's print_nodes debug helper.
// Each hinted wrapper's root node is marked with a trailing hint index so a
// caller can locate specific roots within a large dump.
func (f *Factory[V]) Dump(w io.Writer, hints ...*Set[V]) error {
	hintOf := make(map[*node[V]][]int, len(hints))
	for i, h := range hints {
		if h == nil || h.f != f {
			continue
		}
		hintOf[h.root] = append(hintOf[h.root], i)
	}
	ids := make(map[*node[V]]int, f.table.size())
	next := 1
	for _, n := range f.table.nodes {
		ids[n] = next
		next++
	}
	for n, id := range ids {
		right := nodeLabel(f.table, ids, n.right)
		down := nodeLabel(f.table, ids, n.down)
		line := fmt.Sprintf("%d: (%v, right=%s, down=%s)@%d", id, n.value, right, down, n.count)
		if hs, ok := hintOf[n]; ok {
			line += fmt.Sprintf(" hints=%v", hs)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func nodeLabel[V cmp.Ordered](t *uniqueTable[V], ids map[*node[V]]int, n *node[V]) string {
	switch n {
	case t.falseNode:
		return "FALSE"
	case t.trueNode:
		return "TRUE"
	default:
		return fmt.Sprintf("%d", ids[n])
	}
}
