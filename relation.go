package mdd

import "cmp"

// Irel wraps an interleaved relation: a vector set whose levels alternate
// source and destination components (x0, y0, x1, y1, ..., x(k-1), y(k-1)),
// per spec.md §3.3. It embeds Set, so every set-level operation (Union,
// Minus, Intersect, Equal, Contains, Count, Iterate, ...) is available
// directly on an Irel.
type Irel[V cmp.Ordered] struct {
	Set[V]
}

// Srel wraps a sequential relation: a vector set whose first half of levels
// are all source components and whose second half are all destination
// components (x0, ..., x(k-1), y0, ..., y(k-1)).
type Srel[V cmp.Ordered] struct {
	Set[V]
}

// ZipInterleaved interleaves src and dst into a single (2*min(len(src),
// len(dst)))-length vector, the encoding Irel.AddPair needs. Grounded on
// original_source/include/utilities/zip.h.
func ZipInterleaved[V any](src, dst []V) []V {
	n := len(src)
	if len(dst) < n {
		n = len(dst)
	}
	out := make([]V, 0, 2*n)
	for i := 0; i < n; i++ {
		out = append(out, src[i], dst[i])
	}
	return out
}

// AddPair adds the pair (src, dst) to the interleaved relation, returning a
// new Irel. src and dst must have equal length.
func (r *Irel[V]) AddPair(src, dst []V) (*Irel[V], error) {
	if len(src) != len(dst) {
		return nil, ErrWrongWidth
	}
	added := r.Set.Add(ZipInterleaved(src, dst))
	return &Irel[V]{Set: *added}, nil
}

// Compose computes the relational composition r;other — the interleaved
// relation c such that c(x, z) holds iff r(x, y) and other(y, z) hold for
// some y — existentially eliminating the shared middle coordinate.
// Grounded on original_source/include/operations/rel_composition.h's
// compose_i_i.
func (r *Irel[V]) Compose(other *Irel[V]) (*Irel[V], error) {
	if r.f != other.f {
		return nil, ErrDifferentFactory
	}
	result := composeII(r.f, r.root, other.root)
	return &Irel[V]{Set: Set[V]{f: r.f, root: result}}, nil
}

// ComposeSequential computes r;other where other is a sequential relation
// (all middle components, then all destination components). The result is
// a sequential relation too (all of r's source components, then other's
// destination components), since the destination components of other are
// only known once every middle coordinate has been matched — there is no
// way to interleave them with r's source components as Compose does.
// If p is non-nil, only p's kept levels of the result (over r's source
// components followed by other's destination components) are retained,
// computed by projecting the full composition rather than by a fused
// visit — the same simplification Next/Prev make for their own projected
// variant (relation.go's doc comments there), and equivalent in result.
// Grounded on rel_composition.h's compose_i_s; spec.md §4.7.2's projected
// variant.
func (r *Irel[V]) ComposeSequential(other *Srel[V], p *Projection[V]) (*Srel[V], error) {
	if r.f != other.f {
		return nil, ErrDifferentFactory
	}
	result := composeIS(r.f, r.root, other.root)
	out := &Srel[V]{Set: Set[V]{f: r.f, root: result}}
	if p == nil {
		return out, nil
	}
	projected, err := out.Set.Project(p)
	if err != nil {
		out.Set.Close()
		return nil, err
	}
	out.Set.Close()
	return &Srel[V]{Set: *projected}, nil
}

// Closure computes the transitive closure of r: the smallest interleaved
// relation containing r and closed under composition with itself. It
// doubles the relation's reach each iteration (R, R∪R², R∪R²∪R³∪R⁴, ...),
// reaching a fixed point in O(log n) compositions for an n-step relation.
func (r *Irel[V]) Closure() *Irel[V] {
	f := r.f
	acc := r.root.use()
	for {
		sq := composeII(f, acc, acc)
		next := union(f, acc, sq)
		sq.unuse()
		if next == acc {
			next.unuse()
			break
		}
		acc.unuse()
		acc = next
	}
	return &Irel[V]{Set: Set[V]{f: f, root: acc}}
}

// Next computes the image of s under r: {y : exists x in s, r(x, y)}.
// If p is non-nil, only p's kept destination coordinates are retained in
// the result (a projected image), computed by projecting the full image
// rather than by a fused traversal — simpler than, and one cache generation
// behind, a dedicated projected-image algorithm, but equivalent in result.
// Grounded on original_source/include/operations/rel_next.h.
func (r *Irel[V]) Next(s *Set[V], p *Projection[V]) (*Set[V], error) {
	if r.f != s.f {
		return nil, ErrDifferentFactory
	}
	result := nextRec(r.f, r.root, s.root)
	out := newSet(r.f, result)
	if p == nil {
		return out, nil
	}
	projected, err := out.Project(p)
	if err != nil {
		out.Close()
		return nil, err
	}
	out.Close()
	return projected, nil
}

// Prev computes the pre-image of t under r: {x : exists y in t, r(x, y)}.
// p behaves as in Next, but over r's source coordinates.
// Grounded on original_source/include/operations/rel_prev.h.
func (r *Irel[V]) Prev(t *Set[V], p *Projection[V]) (*Set[V], error) {
	if r.f != t.f {
		return nil, ErrDifferentFactory
	}
	result := prevStepX(r.f, r.root, t.root)
	out := newSet(r.f, result)
	if p == nil {
		return out, nil
	}
	projected, err := out.Project(p)
	if err != nil {
		out.Close()
		return nil, err
	}
	out.Close()
	return projected, nil
}

// composeII implements compose_i_i: na is r's remaining structure
// positioned at a source (x) level; nb is other's remaining structure
// positioned at the middle (m) level of the same pair of levels. A result
// node whose down comes back FALSE collapses to its right sibling.
func composeII[V cmp.Ordered](f *Factory[V], na, nb *node[V]) *node[V] {
	t := f.table
	if na == t.empty() || nb == t.empty() {
		return t.empty()
	}
	if na == t.emptylist() {
		return nb.use()
	}
	key := cacheKey[V]{op: opRelCompositionII, a: na, b: nb}
	if cached := f.cache.lookup(key); cached != nil {
		return cached
	}
	right := composeII(f, na.right, nb)
	down := composeIIMatch(f, na.down, nb)
	result := right
	if down != t.empty() {
		result = t.create(na.value, right, down)
	}
	f.cache.store(key, result)
	return result
}

// composeIIMatch merges na's middle-level chain against nb's current
// middle-level chain, unioning the per-match continuations.
func composeIIMatch[V cmp.Ordered](f *Factory[V], na, nb *node[V]) *node[V] {
	t := f.table
	acc := t.empty().use()
	for na != t.empty() && nb != t.empty() {
		switch {
		case na.value < nb.value:
			na = na.right
		case nb.value < na.value:
			nb = nb.right
		default:
			piece := composeIIOutputZ(f, na.down, nb.down)
			merged := union(f, acc, piece)
			acc.unuse()
			piece.unuse()
			acc = merged
			na = na.right
			nb = nb.right
		}
	}
	return acc
}

// composeIIOutputZ copies other's destination (z) level into the output,
// resuming composeII with r's next source level for every branch.
func composeIIOutputZ[V cmp.Ordered](f *Factory[V], naNext, nb *node[V]) *node[V] {
	t := f.table
	if nb == t.empty() {
		return t.empty()
	}
	if nb == t.emptylist() {
		return naNext.use()
	}
	right := composeIIOutputZ(f, naNext, nb.right)
	down := composeII(f, naNext, nb.down)
	if down == t.empty() {
		return right
	}
	return t.create(nb.value, right, down)
}

// composeIS implements compose_i_s: nb is a sequential relation, so once
// every middle coordinate of na has matched, nb's remaining structure *is*
// the destination suffix of the result, verbatim.
func composeIS[V cmp.Ordered](f *Factory[V], na, nb *node[V]) *node[V] {
	t := f.table
	if na == t.empty() || nb == t.empty() {
		return t.empty()
	}
	if na == t.emptylist() {
		return nb.use()
	}
	key := cacheKey[V]{op: opRelCompositionIS, a: na, b: nb}
	if cached := f.cache.lookup(key); cached != nil {
		return cached
	}
	right := composeIS(f, na.right, nb)
	down := composeISMatch(f, na.down, nb)
	result := right
	if down != t.empty() {
		result = t.create(na.value, right, down)
	}
	f.cache.store(key, result)
	return result
}

// composeISMatch merges na's middle-level chain against nb's current
// middle-level chain, recursing composeIS on the matched continuations —
// nb.down there is either nb's next middle level, or (once na's matching is
// exhausted) already the start of nb's destination suffix.
func composeISMatch[V cmp.Ordered](f *Factory[V], na, nb *node[V]) *node[V] {
	t := f.table
	acc := t.empty().use()
	for na != t.empty() && nb != t.empty() {
		switch {
		case na.value < nb.value:
			na = na.right
		case nb.value < na.value:
			nb = nb.right
		default:
			piece := composeIS(f, na.down, nb.down)
			merged := union(f, acc, piece)
			acc.unuse()
			piece.unuse()
			acc = merged
			na = na.right
			nb = nb.right
		}
	}
	return acc
}

// nextRec implements next/image: nr is r's remaining structure at a source
// level, ns is s's remaining structure at the matching level of the same
// domain.
func nextRec[V cmp.Ordered](f *Factory[V], nr, ns *node[V]) *node[V] {
	t := f.table
	if nr == t.empty() {
		return t.empty()
	}
	if nr == t.emptylist() {
		return ns.use()
	}
	if t.isSentinel(ns) {
		return ns.use()
	}
	key := cacheKey[V]{op: opRelNext, a: nr, b: ns}
	if cached := f.cache.lookup(key); cached != nil {
		return cached
	}
	acc := t.empty().use()
	a, b := nr, ns
	for a != t.empty() && b != t.empty() {
		switch {
		case a.value < b.value:
			a = a.right
		case b.value < a.value:
			b = b.right
		default:
			piece := nextOutputY(f, a.down, b.down)
			merged := union(f, acc, piece)
			acc.unuse()
			piece.unuse()
			acc = merged
			a = a.right
			b = b.right
		}
	}
	f.cache.store(key, acc)
	return acc
}

// nextOutputY copies r's destination level into the output, resuming
// nextRec with s's next source level for every branch.
func nextOutputY[V cmp.Ordered](f *Factory[V], nrY, nsNext *node[V]) *node[V] {
	t := f.table
	if nrY == t.empty() {
		return t.empty()
	}
	if nrY == t.emptylist() {
		return nsNext.use()
	}
	right := nextOutputY(f, nrY.right, nsNext)
	down := nextRec(f, nrY.down, nsNext)
	if down == t.empty() {
		return right
	}
	return t.create(nrY.value, right, down)
}

// prevStepX implements prev/pre-image: nr is r's remaining structure at a
// source level, copied straight into the output; nt is t's remaining
// structure, re-synchronised against r's destination level one level down.
func prevStepX[V cmp.Ordered](f *Factory[V], nr, nt *node[V]) *node[V] {
	t := f.table
	if nr == t.empty() {
		return t.empty()
	}
	if nr == t.emptylist() {
		return nt.use()
	}
	if t.isSentinel(nt) {
		return nt.use()
	}
	key := cacheKey[V]{op: opRelPrev, a: nr, b: nt}
	if cached := f.cache.lookup(key); cached != nil {
		return cached
	}
	right := prevStepX(f, nr.right, nt)
	down := prevMatchY(f, nr.down, nt)
	result := right
	if down != t.empty() {
		result = t.create(nr.value, right, down)
	}
	f.cache.store(key, result)
	return result
}

// prevMatchY merges r's destination-level chain against t's current level,
// recursing prevStepX on the matched continuations.
func prevMatchY[V cmp.Ordered](f *Factory[V], nrY, nt *node[V]) *node[V] {
	t := f.table
	acc := t.empty().use()
	for nrY != t.empty() && nt != t.empty() {
		switch {
		case nrY.value < nt.value:
			nrY = nrY.right
		case nt.value < nrY.value:
			nt = nt.right
		default:
			piece := prevStepX(f, nrY.down, nt.down)
			merged := union(f, acc, piece)
			acc.unuse()
			piece.unuse()
			acc = merged
			nrY = nrY.right
			nt = nt.right
		}
	}
	return acc
}
