package mdd

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func collectVectors(t *testing.T, s *Set[string]) [][]string {
	t.Helper()
	var out [][]string
	for it := s.Iterate(); it.Next(); {
		v, err := it.Vector()
		require.NoError(t, err)
		out = append(out, v)
	}
	return out
}

func TestSetAddAndContains(t *testing.T) {
	f := NewFactory[string]()
	s := f.EmptySet()
	s = s.Add([]string{"a", "b"})
	s = s.Add([]string{"a", "c"})
	s = s.Add([]string{"b", "a"})

	require.True(t, s.Contains([]string{"a", "b"}))
	require.True(t, s.Contains([]string{"a", "c"}))
	require.True(t, s.Contains([]string{"b", "a"}))
	require.False(t, s.Contains([]string{"b", "b"}))
	require.EqualValues(t, 3, s.Count())
}

func TestSetAddIsIdempotent(t *testing.T) {
	f := NewFactory[string]()
	s := f.EmptySet().Add([]string{"x"})
	before := s.Count()
	s = s.Add([]string{"x"})
	require.Equal(t, before, s.Count())
}

func TestSetUnion(t *testing.T) {
	f := NewFactory[string]()
	a := f.EmptySet().Add([]string{"a"}).Add([]string{"b"})
	b := f.EmptySet().Add([]string{"b"}).Add([]string{"c"})

	u, err := a.Union(b)
	require.NoError(t, err)

	want := [][]string{{"a"}, {"b"}, {"c"}}
	got := collectVectors(t, u)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("union mismatch (-want +got):\n%s", diff)
	}
}

func TestSetIntersect(t *testing.T) {
	f := NewFactory[string]()
	a := f.EmptySet().Add([]string{"a"}).Add([]string{"b"})
	b := f.EmptySet().Add([]string{"b"}).Add([]string{"c"})

	i, err := a.Intersect(b)
	require.NoError(t, err)
	require.EqualValues(t, 1, i.Count())
	require.True(t, i.Contains([]string{"b"}))
}

func TestSetIntersectCollapsesToFalse(t *testing.T) {
	f := NewFactory[string]()
	a := f.EmptySet().Add([]string{"a", "x"})
	b := f.EmptySet().Add([]string{"a", "y"})

	i, err := a.Intersect(b)
	require.NoError(t, err)
	require.True(t, i.IsEmpty(), "matched prefix with disjoint suffixes must intersect to empty")
}

func TestSetMinus(t *testing.T) {
	f := NewFactory[string]()
	a := f.EmptySet().Add([]string{"a"}).Add([]string{"b"}).Add([]string{"c"})
	b := f.EmptySet().Add([]string{"b"})

	m, err := a.Minus(b)
	require.NoError(t, err)
	require.EqualValues(t, 2, m.Count())
	require.False(t, m.Contains([]string{"b"}))
	require.True(t, m.Contains([]string{"a"}))
	require.True(t, m.Contains([]string{"c"}))
}

func TestSetEqualIsHashConsed(t *testing.T) {
	f := NewFactory[string]()
	a := f.EmptySet().Add([]string{"a"}).Add([]string{"b"})
	b := f.EmptySet().Add([]string{"b"}).Add([]string{"a"})
	require.True(t, a.Equal(b))
}

func TestSetDifferentFactoryRejected(t *testing.T) {
	f1 := NewFactory[string]()
	f2 := NewFactory[string]()
	a := f1.EmptySet().Add([]string{"a"})
	b := f2.EmptySet().Add([]string{"a"})

	_, err := a.Union(b)
	require.ErrorIs(t, err, ErrDifferentFactory)
}

func TestSetSubscript(t *testing.T) {
	f := NewFactory[string]()
	s := f.EmptySet().Add([]string{"a", "x"}).Add([]string{"a", "y"}).Add([]string{"b", "z"})

	sub, err := s.Subscript("a")
	require.NoError(t, err)
	require.EqualValues(t, 2, sub.Count())
	require.True(t, sub.Contains([]string{"x"}))
	require.True(t, sub.Contains([]string{"y"}))

	_, err = s.Subscript("q")
	require.ErrorIs(t, err, ErrMissingKey)
}

func TestSingletonSet(t *testing.T) {
	f := NewFactory[string]()
	s := f.SingletonSet()
	require.EqualValues(t, 1, s.Count())
	require.True(t, s.Contains(nil))
}

func TestCleanReclaimsZeroCountNodes(t *testing.T) {
	f := NewFactory[string]()
	s := f.EmptySet().Add([]string{"a"})
	sizeBefore := f.Size()
	require.Greater(t, sizeBefore, 0)

	s.Close()
	f.Clean()
	require.Less(t, f.Size(), sizeBefore)
}
