package mdd

import "cmp"

// Relabeler drives Set.Relabel's signature-refinement traversal (spec.md
// §4.8). At each node, Match is asked whether the subtree rooted there
// should be replaced outright; if so, Replace supplies the replacement.
// Relabel is defined generically over any MDD — the recursion does not
// depend on whether the vectors being relabelled are plain tuples or a
// relation's interleaved/sequential encoding — which is why it is a method
// on Set rather than on Irel/Srel specifically. A typical use is bisimulation
// partition refinement, where Match identifies subtrees matching a
// candidate partition block and Replace substitutes the block's
// representative.
type Relabeler[V cmp.Ordered] interface {
	// Match reports whether the subtree rooted at level with vectors sub
	// should be replaced as a whole.
	Match(level int, sub *Set[V]) bool
	// Replace returns the replacement for a subtree Match accepted.
	Replace(level int, sub *Set[V]) *Set[V]
}

// Relabel rewrites s by repeatedly asking r whether to replace each subtree,
// top-down, memoising per node for the duration of this call so a shared
// subtree is only asked about once. Grounded on
// original_source/include/operations/rel_relabel.h.
func (s *Set[V]) Relabel(r Relabeler[V]) *Set[V] {
	memo := make(map[*node[V]]*node[V])
	result := relabelRec(s.f, s.root, 0, r, memo)
	for n, cached := range memo {
		cached.unuse()
		delete(memo, n)
	}
	return newSet(s.f, result)
}

func relabelRec[V cmp.Ordered](f *Factory[V], n *node[V], level int, r Relabeler[V], memo map[*node[V]]*node[V]) *node[V] {
	t := f.table
	if t.isSentinel(n) {
		return n.use()
	}
	if cached, ok := memo[n]; ok {
		return cached.use()
	}
	sub := newSet(f, n.use())
	var result *node[V]
	if r.Match(level, sub) {
		replacement := r.Replace(level, sub)
		result = replacement.root
	} else {
		right := relabelRec(f, n.right, level, r, memo)
		down := relabelRec(f, n.down, level+1, r, memo)
		if down == t.empty() {
			result = right
		} else {
			result = t.create(n.value, right, down)
		}
	}
	sub.Close()
	memo[n] = result.use()
	return result
}
