// Package mdd provides a Go-native Multi-valued Decision Diagram (MDD) engine
// for compactly representing and manipulating large sets of fixed-width
// vectors over an ordered value domain.
//
// # Overview
//
// An MDD is a rooted DAG of interior nodes (value, right, down) plus two
// sentinels, FALSE (empty set) and TRUE (the set containing only the
// zero-length vector). Interior nodes are hash-consed in a per-Factory
// unique table so that equal sets are equal pointers, and every recursive
// set/relation operation is memoised in a per-Factory operation cache so
// repeated sub-problems cost one lookup instead of one recursion.
//
// # Basic usage
//
//	f := mdd.NewFactory[string]()
//	s := f.EmptySet()
//	s = s.Add([]string{"a"})
//	s = s.Add([]string{"a", "b"})
//	for it := s.Iterate(); it.Next(); {
//	    fmt.Println(it.Vector())
//	}
//
// # Performance considerations
//
//   - Build sets bottom-up via Add; avoid rebuilding the same vector set
//     from scratch across calls, since hash-consing only pays off when
//     intermediate structure is shared.
//   - Call Factory.Clean after dropping a batch of Sets to reclaim
//     zero-count nodes; cached operation results keep nodes alive until
//     ClearCache is also called too.
//   - This engine is single-threaded: a Factory and every Set/Irel/Srel/
//     Projection derived from it must be used from one goroutine at a time.
package mdd

import "errors"

// Precondition errors. These are returned from wrapper methods so callers
// can recover; internal invariant violations (a use count going negative, a
// malformed node reaching create) are bugs in the engine and panic instead,
// mirroring the assert-and-abort stance of the C++ original this package is
// ported from.
var (
	// ErrDifferentFactory indicates two wrappers from different factories
	// were combined in one operation. Nodes from different factories are
	// never comparable or combinable.
	ErrDifferentFactory = errors.New("mdd: operands belong to different factories")

	// ErrMissingKey indicates Set.Subscript was called with a value that
	// does not label any outgoing arc at the root level.
	ErrMissingKey = errors.New("mdd: value not present at this level")

	// ErrWrongWidth indicates a vector passed to Irel.AddPair or Set.Match
	// does not have the width the operation expects (AddPair's src and dst
	// of different lengths, or a Match vector whose length differs from the
	// projection's index count). Add and Contains do not check widths.
	ErrWrongWidth = errors.New("mdd: vector has the wrong width for this operation")

	// ErrEmptyIterator indicates Vector was called on an iterator that has
	// not been advanced, or has already been exhausted.
	ErrEmptyIterator = errors.New("mdd: iterator exhausted")

	// ErrInvalidProjection indicates a projection's index list was not
	// strictly increasing, or contained an index >= the domain size.
	ErrInvalidProjection = errors.New("mdd: projection indices must be strictly increasing and within the domain")
)
