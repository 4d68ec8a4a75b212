package mdd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetRelabelSingletonCollapse(t *testing.T) {
	f := NewFactory[string]()
	s := f.EmptySet().
		Add([]string{"a", "x"}).
		Add([]string{"b", "y"})

	r := singletonCollapserForTest{f: f}
	out := s.Relabel(r)

	got := collectVectors(t, out)
	require.Len(t, got, 1, "both singleton branches should collapse onto one canonical vector")
	require.Equal(t, []string{"*", "*"}, got[0])
}

type singletonCollapserForTest struct {
	f *Factory[string]
}

func (c singletonCollapserForTest) Match(level int, sub *Set[string]) bool {
	return sub.Count() == 1
}

func (c singletonCollapserForTest) Replace(level int, sub *Set[string]) *Set[string] {
	it := sub.Iterate()
	it.Next()
	vec, _ := it.Vector()
	canonical := make([]string, len(vec))
	for i := range canonical {
		canonical[i] = "*"
	}
	return c.f.EmptySet().Add(canonical)
}

func TestSetRelabelNoMatchIsIdentity(t *testing.T) {
	f := NewFactory[string]()
	s := f.EmptySet().Add([]string{"a"}).Add([]string{"b"})

	out := s.Relabel(neverMatcher{})
	require.True(t, s.Equal(out))
}

type neverMatcher struct{}

func (neverMatcher) Match(level int, sub *Set[string]) bool          { return false }
func (neverMatcher) Replace(level int, sub *Set[string]) *Set[string] { return sub }
