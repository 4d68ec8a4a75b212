package mdd

import "cmp"

// Projection names a strictly increasing subset of a domain's levels to keep
// under Project/Match (spec.md §4.5). Its index list is itself hash-consed,
// as a chain of (index, FALSE, next) nodes in the factory's own uint
// unique table, so that two Projections over the same index set share one
// node and can be compared and cached by pointer identity exactly like any
// other MDD-derived value.
type Projection[V cmp.Ordered] struct {
	f       *Factory[V]
	domain  int
	indices []int
	node    *node[uint]
}

// NewProjection builds a Projection over domain levels [0, domain) that
// keeps exactly the given indices. indices must be strictly increasing and
// within [0, domain); violating either returns ErrInvalidProjection.
func NewProjection[V cmp.Ordered](f *Factory[V], indices []int, domain int) (*Projection[V], error) {
	for i, idx := range indices {
		if idx < 0 || idx >= domain {
			return nil, ErrInvalidProjection
		}
		if i > 0 && indices[i-1] >= idx {
			return nil, ErrInvalidProjection
		}
	}
	cp := make([]int, len(indices))
	copy(cp, indices)
	return &Projection[V]{
		f:       f,
		domain:  domain,
		indices: cp,
		node:    buildProjectionChain(f.projTable, cp),
	}, nil
}

// FullProjection builds a Projection that keeps every level of domain.
func FullProjection[V cmp.Ordered](f *Factory[V], domain int) *Projection[V] {
	indices := make([]int, domain)
	for i := range indices {
		indices[i] = i
	}
	p, err := NewProjection(f, indices, domain)
	if err != nil {
		panic("mdd: FullProjection built an invalid index list")
	}
	return p
}

// Close releases the Projection's reference to its index-chain node.
func (p *Projection[V]) Close() {
	if p.node != nil {
		p.node.unuse()
		p.node = nil
	}
}

// Full reports whether every level of the domain is kept.
func (p *Projection[V]) Full() bool { return len(p.indices) == p.domain }

// Size reports how many levels are kept.
func (p *Projection[V]) Size() int { return len(p.indices) }

// Bits materialises the projection as a domain-length slice, true at every
// kept index.
func (p *Projection[V]) Bits() []bool {
	bits := make([]bool, p.domain)
	for _, idx := range p.indices {
		bits[idx] = true
	}
	return bits
}

// ProjectionIterator walks a Projection's levels in order, yielding a single
// boolean per level (true if kept) instead of a sequence of kept indices
// (spec.md §4.5). This matches the spec's own description of the iterator
// over projection.h's resolved against the inconsistency between
// projection.h's index-chain accessor and set_match_proj.h's per-level
// boolean use of it — see DESIGN.md.
type ProjectionIterator struct {
	indices []int
	level   int
	pos     int
}

// Iterator returns a fresh ProjectionIterator positioned before level 0.
func (p *Projection[V]) Iterator() *ProjectionIterator {
	return &ProjectionIterator{indices: p.indices}
}

// NextLevel reports whether the current level is kept, and advances to the
// next level. Call it domain times, once per level, in ascending order.
func (it *ProjectionIterator) NextLevel() bool {
	keep := it.pos < len(it.indices) && it.indices[it.pos] == it.level
	if keep {
		it.pos++
	}
	it.level++
	return keep
}

// buildProjectionChain hash-conses indices as a single down-chain (no
// branching: every node's right sibling is FALSE) terminated by TRUE, a
// direct MDD encoding of one sorted index list.
func buildProjectionChain(t *uniqueTable[uint], indices []int) *node[uint] {
	n := t.emptylist()
	for i := len(indices) - 1; i >= 0; i-- {
		n = t.create(uint(indices[i]), t.empty().use(), n)
	}
	return n
}

// Project returns the set of vectors obtained by keeping only p's levels
// and discarding the rest, existentially quantifying over every dropped
// level (i.e. a vector's projection is a member of the result iff some
// completion of it, at the dropped levels, is a member of s). Grounded on
// original_source/include/operations/set_project.h.
func (s *Set[V]) Project(p *Projection[V]) (*Set[V], error) {
	if p.f != s.f {
		return nil, ErrDifferentFactory
	}
	if p.Full() {
		return newSet(s.f, s.root.use()), nil
	}
	return newSet(s.f, projectRec(s.f, s.root, p.node, 0)), nil
}

func projectRec[V cmp.Ordered](f *Factory[V], n *node[V], p *node[uint], level int) *node[V] {
	t := f.table
	if n == t.empty() {
		return t.empty()
	}
	if n == t.emptylist() {
		return t.emptylist()
	}
	key := cacheKey[V]{op: opSetProject, a: n, p: p}
	if cached := f.cache.lookup(key); cached != nil {
		return cached
	}
	keep := p != f.projTable.emptylist() && int(p.value) == level
	var result *node[V]
	if keep {
		right := projectRec(f, n.right, p, level)
		down := projectRec(f, n.down, p.down, level+1)
		result = t.create(n.value, right, down)
	} else {
		result = projectUnionChain(f, n, p, level+1)
	}
	f.cache.store(key, result)
	return result
}

// projectUnionChain existentially quantifies out one dropped level by
// unioning the projected subtrees of every sibling in n's right-chain.
func projectUnionChain[V cmp.Ordered](f *Factory[V], n *node[V], p *node[uint], level int) *node[V] {
	t := f.table
	acc := t.empty().use()
	for n != t.empty() {
		sub := projectRec(f, n.down, p, level)
		merged := union(f, acc, sub)
		acc.unuse()
		sub.unuse()
		acc = merged
		n = n.right
	}
	return acc
}

// Match restricts s to the vectors whose projection onto p equals vector,
// returning the resulting set (so a non-empty result means vector is the
// projection of some member of s). Grounded on
// original_source/include/operations/set_match_proj.h, whose match builds a
// node_ptr restriction rather than a predicate; the kept-level branch here
// additionally collapses a FALSE-down result to its right sibling, since this
// package's node invariant (node.go) forbids an interior node with a FALSE
// down, a case the original's unconditional create does not need to guard
// against — see DESIGN.md.
func (s *Set[V]) Match(p *Projection[V], vector []V) (*Set[V], error) {
	if p.f != s.f {
		return nil, ErrDifferentFactory
	}
	if len(vector) != p.Size() {
		return nil, ErrWrongWidth
	}
	return newSet(s.f, matchRec(s.f, s.root, p.node, 0, vector, 0)), nil
}

func matchRec[V cmp.Ordered](f *Factory[V], n *node[V], p *node[uint], level int, vector []V, pos int) *node[V] {
	t := f.table
	if n == t.empty() {
		return t.empty()
	}
	if n == t.emptylist() {
		return n.use()
	}
	keep := p != f.projTable.emptylist() && int(p.value) == level
	if keep {
		val := vector[pos]
		for !t.isSentinel(n) && n.value < val {
			n = n.right
		}
		if t.isSentinel(n) || n.value != val {
			return t.empty()
		}
		down := matchRec(f, n.down, p.down, level+1, vector, pos+1)
		if down == t.empty() {
			return down
		}
		return t.create(val, t.empty().use(), down)
	}
	right := matchRec(f, n.right, p, level, vector, pos)
	down := matchRec(f, n.down, p, level+1, vector, pos)
	if down == t.empty() {
		return right
	}
	return t.create(n.value, right, down)
}

