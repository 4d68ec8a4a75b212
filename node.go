package mdd

import (
	"cmp"

	"go.uber.org/zap"
)

// zapDebugLevel gates the node-lifecycle tracing below; it is the Go
// equivalent of the original C++ engine's compile-time DEBUG_MDD_NODES
// std::cout tracing, now a runtime-checked log level instead of a build tag.
const zapDebugLevel = zap.DebugLevel

// node is one interior node of an MDD, or one of the two sentinels.
//
// node follows the invariants of spec.md §3.2:
//   - along any right-chain, values are strictly increasing and the chain
//     terminates at a sentinel;
//   - down is never the FALSE sentinel for an interior node — a would-be
//     node with a FALSE down is collapsed to its right by the operation
//     that would have created it, never by create itself;
//   - two interior nodes with equal (value, right, down) never coexist:
//     pointer equality is set equality.
type node[V cmp.Ordered] struct {
	value V
	right *node[V]
	down  *node[V]
	count uint32
}

// sentinel reports whether n is the FALSE or TRUE terminal. The encoding
// recommended by spec.md §4.1 is used: a sentinel has a nil down.
func (n *node[V]) sentinel() bool {
	return n.down == nil
}

// use increments n's reference count and returns n, so that callers can
// write create(v, r, d.use()) to keep a count they still need elsewhere.
// Sentinels are exempt: use/unuse on FALSE or TRUE are no-ops (spec.md §3.5).
func (n *node[V]) use() *node[V] {
	if n.sentinel() {
		return n
	}
	if n.count == 0 {
		panic("mdd: use() on a zero-count node outside create/revival")
	}
	n.count++
	return n
}

// unuse decrements n's reference count and, if it reaches zero, recursively
// releases n's own references to right and down. The node itself remains
// resident in the unique table — a zero-count node can still be revived by
// a later create, or reclaimed in bulk by Factory.Clean.
func (n *node[V]) unuse() {
	if n.sentinel() {
		return
	}
	if n.count == 0 {
		panic("mdd: unuse() on an already-zero-count node")
	}
	n.count--
	if n.count == 0 {
		n.right.unuse()
		n.down.unuse()
	}
}

// nodeKey is the hash-consing key. Go's built-in map hashing over a
// comparable struct of (value, right-pointer, down-pointer) stands in for
// the Jenkins-style pointer mixing the C++ original hand-rolls in node.h:
// the standard library gives no hook to plug a custom hash into a map, and
// nothing in the example pack improves on the runtime's own hashing of a
// small comparable struct, so this one corner is stdlib by necessity (see
// DESIGN.md).
type nodeKey[V cmp.Ordered] struct {
	value V
	right *node[V]
	down  *node[V]
}

// uniqueTable is the hash-consed store of interior nodes for one value
// domain, plus the two sentinels FALSE and TRUE. It implements the node
// lifecycle of spec.md §3.5: birth via create (with revival of zero-count
// nodes), and bulk death via clean.
type uniqueTable[V cmp.Ordered] struct {
	nodes map[nodeKey[V]]*node[V]
	log   *zap.Logger

	falseNode *node[V]
	trueNode  *node[V]
}

func newUniqueTable[V cmp.Ordered](capacity int, log *zap.Logger) *uniqueTable[V] {
	t := &uniqueTable[V]{
		nodes: make(map[nodeKey[V]]*node[V], capacity),
		log:   log,
	}
	// Sentinels are never inserted into t.nodes: they are recognised by
	// pointer identity (isSentinel) and by their nil down, and are never
	// subject to revival or cleaning.
	t.falseNode = &node[V]{}
	t.trueNode = &node[V]{}
	return t
}

// empty returns the FALSE sentinel (the empty set).
func (t *uniqueTable[V]) empty() *node[V] { return t.falseNode }

// emptylist returns the TRUE sentinel (the set containing only the
// zero-length vector).
func (t *uniqueTable[V]) emptylist() *node[V] { return t.trueNode }

// isSentinel reports whether n is one of this table's two terminals.
func (t *uniqueTable[V]) isSentinel(n *node[V]) bool {
	return n == t.falseNode || n == t.trueNode
}

// create returns the canonical node for (val, right, down), consuming one
// reference to each of right and down supplied by the caller and returning
// one fresh reference to the result (spec.md §3.5, §4.1). This is the single
// most load-bearing contract in the package: every recursive algorithm in
// set.go, relation.go, and relabel.go depends on it to stay leak-neutral.
func (t *uniqueTable[V]) create(val V, right, down *node[V]) *node[V] {
	key := nodeKey[V]{val, right, down}
	if existing, ok := t.nodes[key]; ok {
		if existing.count == 0 {
			// Revival: the node is structurally intact, but unuse released
			// its counts on right/down when it reached zero, so it takes
			// over the counts the caller passed in for right/down instead
			// of releasing them.
			existing.count = 1
			if t.log.Core().Enabled(zapDebugLevel) {
				t.log.Debug("revived node", zap.Any("value", val))
			}
			return existing
		}
		// An equivalent live node already exists: share it, and release the
		// caller's references to right/down since the existing node already
		// owns its own.
		right.unuse()
		down.unuse()
		existing.count++
		if t.log.Core().Enabled(zapDebugLevel) {
			t.log.Debug("reused node", zap.Any("value", val), zap.Uint32("count", existing.count))
		}
		return existing
	}
	fresh := &node[V]{value: val, right: right, down: down, count: 1}
	t.nodes[key] = fresh
	if t.log.Core().Enabled(zapDebugLevel) {
		t.log.Debug("created node", zap.Any("value", val))
	}
	return fresh
}

// size reports the unique-table cardinality, including zero-count nodes but
// excluding the two sentinels.
func (t *uniqueTable[V]) size() int {
	return len(t.nodes)
}

// clean removes every zero-count node from the table. The sweep is
// necessarily all-or-nothing: a zero-count node may still be referenced
// structurally (not by count) from another zero-count node that would
// survive a partial sweep, and revival depends on that structure staying
// intact.
func (t *uniqueTable[V]) clean() {
	removed := 0
	for key, n := range t.nodes {
		if n.count == 0 {
			delete(t.nodes, key)
			removed++
		}
	}
	if removed > 0 && t.log.Core().Enabled(zapDebugLevel) {
		t.log.Debug("cleaned unique table", zap.Int("removed", removed), zap.Int("remaining", len(t.nodes)))
	}
}
