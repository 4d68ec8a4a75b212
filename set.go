package mdd

import "cmp"

// Set wraps one node of a Factory's unique table and the factory it belongs
// to, representing a set of fixed-width vectors over V. A Set owns exactly
// one counted reference to its root for its entire lifetime; Close releases
// it. Every operation that "modifies" a Set actually returns a new Set and
// leaves the receiver's fields unchanged; Add additionally releases the
// receiver's reference, so the receiver must not be used after Add.
type Set[V cmp.Ordered] struct {
	f    *Factory[V]
	root *node[V]
}

// Close releases the Set's reference to its root node. A Set must not be
// used after Close. There is no finalizer: Go has no deterministic
// destructor equivalent to the original engine's scope-exit release, so
// releasing the reference is the caller's explicit responsibility, exactly
// as it would be calling a Close method on any other owned resource.
func (s *Set[V]) Close() {
	if s.root != nil {
		s.root.unuse()
		s.root = nil
	}
}

func newSet[V cmp.Ordered](f *Factory[V], root *node[V]) *Set[V] {
	return &Set[V]{f: f, root: root}
}

func (s *Set[V]) sameFactory(other *Set[V]) bool {
	return s.f == other.f
}

// Add returns a new Set containing every vector in s plus vector. Like the
// original engine's `+=`, Add consumes s's reference to its current root: s
// must not be used again after calling Add on it (the idiomatic pattern is
// `s = s.Add(vector)`, never `t := s.Add(vector)` while still holding s).
// The width of vector is not checked: a Set may hold vectors of different
// widths.
func (s *Set[V]) Add(vector []V) *Set[V] {
	root := addElement(s.f.table, s.root, vector, 0)
	s.root.unuse()
	return newSet(s.f, root)
}

// Union returns the set of vectors present in s or other (or both).
func (s *Set[V]) Union(other *Set[V]) (*Set[V], error) {
	if !s.sameFactory(other) {
		return nil, ErrDifferentFactory
	}
	return newSet(s.f, union(s.f, s.root, other.root)), nil
}

// Intersect returns the set of vectors present in both s and other.
func (s *Set[V]) Intersect(other *Set[V]) (*Set[V], error) {
	if !s.sameFactory(other) {
		return nil, ErrDifferentFactory
	}
	return newSet(s.f, intersect(s.f, s.root, other.root)), nil
}

// Minus returns the set of vectors present in s but not in other.
func (s *Set[V]) Minus(other *Set[V]) (*Set[V], error) {
	if !s.sameFactory(other) {
		return nil, ErrDifferentFactory
	}
	return newSet(s.f, minus(s.f, s.root, other.root)), nil
}

// Equal reports whether s and other denote the same set of vectors. Since
// equal sets are hash-consed to the same node, this is pointer equality, not
// a structural walk.
func (s *Set[V]) Equal(other *Set[V]) bool {
	return s.sameFactory(other) && s.root == other.root
}

// Contains reports whether vector is a member of s.
func (s *Set[V]) Contains(vector []V) bool {
	return contains(s.f.table, s.root, vector)
}

// Count returns the number of vectors in s.
func (s *Set[V]) Count() uint64 {
	memo := make(map[*node[V]]uint64)
	return countRec(s.f.table, s.root, memo)
}

// IsEmpty reports whether s is the empty set (FALSE).
func (s *Set[V]) IsEmpty() bool {
	return s.root == s.f.table.empty()
}

// Subscript returns the subtree reached by following the arc labelled v at
// s's top level (spec's a(v) operator): walk the right-chain for a node
// whose value equals v, and wrap its down child. Returns ErrMissingKey if no
// such arc exists.
func (s *Set[V]) Subscript(v V) (*Set[V], error) {
	n := s.root
	for !s.f.table.isSentinel(n) {
		switch {
		case n.value == v:
			return newSet(s.f, n.down.use()), nil
		case v < n.value:
			return nil, ErrMissingKey
		default:
			n = n.right
		}
	}
	return nil, ErrMissingKey
}

// Iterate returns an iterator over every vector in s, in ascending
// lexicographic order (spec.md §4.9).
func (s *Set[V]) Iterate() *Iterator[V] {
	return newIterator(s.f.table, s.root)
}

// addElement inserts vector[idx:] beneath node, returning a fresh reference
// to the resulting node without consuming any reference on node (node.go's
// create is the only primitive that consumes references; every helper here
// borrows its *node[V] inputs and only calls use() when an existing subtree
// is embedded unchanged into a freshly created node).
func addElement[V cmp.Ordered](t *uniqueTable[V], n *node[V], vector []V, idx int) *node[V] {
	if idx == len(vector) {
		return addEmptyVector(t, n)
	}
	val := vector[idx]
	if t.isSentinel(n) {
		// n is FALSE (nothing at this level yet) or TRUE (this level already
		// accepts stopping here, from a previously inserted shorter vector);
		// n.use() is a no-op on either sentinel and preserves which one it
		// was, so the new value's chain keeps n's existing epsilon-acceptance
		// instead of silently discarding it when n == TRUE.
		down := addElement(t, t.empty(), vector, idx+1)
		return t.create(val, n.use(), down)
	}
	switch {
	case val < n.value:
		down := addElement(t, t.empty(), vector, idx+1)
		return t.create(val, n.use(), down)
	case val > n.value:
		right := addElement(t, n.right, vector, idx)
		return t.create(n.value, right, n.down.use())
	default:
		down := addElement(t, n.down, vector, idx+1)
		return t.create(n.value, n.right.use(), down)
	}
}

// contains walks s's structure following vector's values level by level.
func contains[V cmp.Ordered](t *uniqueTable[V], n *node[V], vector []V) bool {
	for _, val := range vector {
		found := false
		for !isFalseOrTrue(n) {
			switch {
			case n.value == val:
				n = n.down
				found = true
			case val < n.value:
			default:
				n = n.right
				continue
			}
			break
		}
		if !found {
			return false
		}
	}
	return n == t.emptylist()
}

// addEmptyVector returns n's vectors together with the zero-length vector:
// n's rightmost right-chain, with a terminal FALSE swapped for TRUE. A
// terminal already TRUE is left as is. This is the "add_empty_vector"
// operation spec.md's union and add_element both name explicitly — it is
// what union(TRUE, n) and the empty-iterator case of add_element reduce to.
func addEmptyVector[V cmp.Ordered](t *uniqueTable[V], n *node[V]) *node[V] {
	if n == t.emptylist() {
		return n.use()
	}
	if n == t.empty() {
		return t.emptylist()
	}
	right := addEmptyVector(t, n.right)
	return t.create(n.value, right, n.down.use())
}

// acceptsEmpty reports whether n's denoted set contains the zero-length
// vector at this level, i.e. whether n's right-chain terminates in TRUE
// rather than FALSE.
func acceptsEmpty[V cmp.Ordered](t *uniqueTable[V], n *node[V]) bool {
	for !t.isSentinel(n) {
		n = n.right
	}
	return n == t.emptylist()
}

// stripEmptyVector returns n's vectors minus the zero-length vector: n's
// right-chain with a terminal TRUE swapped for FALSE. Used by minus when the
// subtrahend is TRUE (spec.md §4.4's b == TRUE case).
func stripEmptyVector[V cmp.Ordered](t *uniqueTable[V], n *node[V]) *node[V] {
	if n == t.emptylist() {
		return t.empty()
	}
	if n == t.empty() {
		return n.use()
	}
	right := stripEmptyVector(t, n.right)
	return t.create(n.value, right, n.down.use())
}

// isFalseOrTrue reports whether n is either sentinel. The two sentinels are
// themselves indistinguishable by their fields alone (both are zero-valued
// node structs) — only their pointer identity against a uniqueTable's
// falseNode/trueNode tells them apart, which is why every caller that needs
// to know *which* sentinel it reached takes a *uniqueTable[V] and compares
// against t.empty()/t.emptylist() directly instead of inspecting fields.
func isFalseOrTrue[V cmp.Ordered](n *node[V]) bool { return n.down == nil }

// countRec counts the vectors reachable from n, memoising per call since a
// shared DAG can revisit the same node many times along different paths.
// This avoids the original engine's LSB-pointer-marking trick (spec.md §9),
// which is unsound to replicate in Go: there is no portable way to steal a
// bit from a pointer value, and doing so would defeat the garbage collector.
func countRec[V cmp.Ordered](t *uniqueTable[V], n *node[V], memo map[*node[V]]uint64) uint64 {
	if n == t.empty() {
		return 0
	}
	if n == t.emptylist() {
		return 1
	}
	if v, ok := memo[n]; ok {
		return v
	}
	total := countRec(t, n.down, memo) + countRec(t, n.right, memo)
	memo[n] = total
	return total
}

// union returns the node for the union of a and b (spec.md §4.2).
func union[V cmp.Ordered](f *Factory[V], a, b *node[V]) *node[V] {
	t := f.table
	if a == b {
		return a.use()
	}
	if a == t.empty() {
		return b.use()
	}
	if b == t.empty() {
		return a.use()
	}
	if a == t.emptylist() {
		return addEmptyVector(t, b)
	}
	if b == t.emptylist() {
		return addEmptyVector(t, a)
	}
	ca, cb := canonicalCommutative(a, b)
	key := cacheKey[V]{op: opSetUnion, a: ca, b: cb}
	if cached := f.cache.lookup(key); cached != nil {
		return cached
	}
	var result *node[V]
	switch {
	case a.value < b.value:
		right := union(f, a.right, b)
		result = t.create(a.value, right, a.down.use())
	case b.value < a.value:
		right := union(f, a, b.right)
		result = t.create(b.value, right, b.down.use())
	default:
		down := union(f, a.down, b.down)
		right := union(f, a.right, b.right)
		result = t.create(a.value, right, down)
	}
	f.cache.store(key, result)
	return result
}

// intersect returns the node for the intersection of a and b (spec.md §4.4),
// collapsing a matched-value node to its right sibling when the matched
// down-subtree is FALSE — the case the original set_intersect.h omits but
// which the spec calls out explicitly.
func intersect[V cmp.Ordered](f *Factory[V], a, b *node[V]) *node[V] {
	t := f.table
	if a == b {
		return a.use()
	}
	if a == t.empty() || b == t.empty() {
		return t.empty()
	}
	// Intersecting with TRUE conflates "accepts only the empty vector" with
	// "accepts the empty vector among others" if handled by recursing into
	// the other side's right unconditionally. The correct reading (spec.md
	// §9): it yields TRUE iff the other side also accepts the empty vector.
	if a == t.emptylist() {
		if acceptsEmpty(t, b) {
			return t.emptylist()
		}
		return t.empty()
	}
	if b == t.emptylist() {
		if acceptsEmpty(t, a) {
			return t.emptylist()
		}
		return t.empty()
	}
	ca, cb := canonicalCommutative(a, b)
	key := cacheKey[V]{op: opSetIntersection, a: ca, b: cb}
	if cached := f.cache.lookup(key); cached != nil {
		return cached
	}
	var result *node[V]
	switch {
	case a.value < b.value:
		result = intersect(f, a.right, b)
	case b.value < a.value:
		result = intersect(f, a, b.right)
	default:
		down := intersect(f, a.down, b.down)
		right := intersect(f, a.right, b.right)
		if down == t.empty() {
			down.unuse()
			result = right
		} else {
			result = t.create(a.value, right, down)
		}
	}
	f.cache.store(key, result)
	return result
}

// minus returns the node for the vectors in a but not in b (spec.md §4.4).
// This operation is not commutative, so its cache key is never canonicalised.
func minus[V cmp.Ordered](f *Factory[V], a, b *node[V]) *node[V] {
	t := f.table
	if a == b {
		return t.empty()
	}
	if a == t.empty() {
		return t.empty()
	}
	if b == t.empty() {
		return a.use()
	}
	if a == t.emptylist() {
		if acceptsEmpty(t, b) {
			return t.empty()
		}
		return t.emptylist()
	}
	if b == t.emptylist() {
		return stripEmptyVector(t, a)
	}
	key := cacheKey[V]{op: opSetMinus, a: a, b: b}
	if cached := f.cache.lookup(key); cached != nil {
		return cached
	}
	var result *node[V]
	switch {
	case a.value < b.value:
		right := minus(f, a.right, b)
		result = t.create(a.value, right, a.down.use())
	case b.value < a.value:
		result = minus(f, a, b.right)
	default:
		down := minus(f, a.down, b.down)
		right := minus(f, a.right, b.right)
		if down == t.empty() {
			down.unuse()
			result = right
		} else {
			result = t.create(a.value, right, down)
		}
	}
	f.cache.store(key, result)
	return result
}
