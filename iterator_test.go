package mdd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIteratorAscendingLexicographicOrder(t *testing.T) {
	f := NewFactory[string]()
	s := f.EmptySet().
		Add([]string{"b", "a"}).
		Add([]string{"a", "b"}).
		Add([]string{"a", "a"})

	var got [][]string
	for it := s.Iterate(); it.Next(); {
		v, err := it.Vector()
		require.NoError(t, err)
		got = append(got, v)
	}
	want := [][]string{{"a", "a"}, {"a", "b"}, {"b", "a"}}
	require.Equal(t, want, got)
}

func TestIteratorOverEmptySet(t *testing.T) {
	f := NewFactory[string]()
	it := f.EmptySet().Iterate()
	require.False(t, it.Next())
	_, err := it.Vector()
	require.ErrorIs(t, err, ErrEmptyIterator)
}

func TestIteratorOverSingletonSet(t *testing.T) {
	f := NewFactory[string]()
	it := f.SingletonSet().Iterate()
	require.True(t, it.Next())
	v, err := it.Vector()
	require.NoError(t, err)
	require.Empty(t, v)
	require.False(t, it.Next())
}

func TestIteratorVectorBeforeNextErrors(t *testing.T) {
	f := NewFactory[string]()
	it := f.EmptySet().Add([]string{"a"}).Iterate()
	_, err := it.Vector()
	require.ErrorIs(t, err, ErrEmptyIterator)
}
