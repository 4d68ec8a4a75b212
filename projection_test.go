package mdd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewProjectionRejectsBadIndices(t *testing.T) {
	f := NewFactory[string]()

	_, err := NewProjection[string](f, []int{2, 1}, 3)
	require.ErrorIs(t, err, ErrInvalidProjection)

	_, err = NewProjection[string](f, []int{0, 3}, 3)
	require.ErrorIs(t, err, ErrInvalidProjection)
}

func TestFullProjectionKeepsEveryLevel(t *testing.T) {
	f := NewFactory[string]()
	p := FullProjection[string](f, 3)
	require.True(t, p.Full())
	require.Equal(t, 3, p.Size())
	require.Equal(t, []bool{true, true, true}, p.Bits())
}

func TestProjectionIteratorYieldsPerLevelBool(t *testing.T) {
	f := NewFactory[string]()
	p, err := NewProjection[string](f, []int{0, 2}, 3)
	require.NoError(t, err)

	it := p.Iterator()
	require.True(t, it.NextLevel(), "level 0 kept")
	require.False(t, it.NextLevel(), "level 1 dropped")
	require.True(t, it.NextLevel(), "level 2 kept")
}

func TestSetProjectExistentiallyQuantifiesDroppedLevels(t *testing.T) {
	f := NewFactory[string]()
	s := f.EmptySet().
		Add([]string{"a", "x", "1"}).
		Add([]string{"a", "y", "1"}).
		Add([]string{"b", "x", "2"})

	p, err := NewProjection[string](f, []int{0, 2}, 3)
	require.NoError(t, err)

	projected, err := s.Project(p)
	require.NoError(t, err)

	require.True(t, projected.Contains([]string{"a", "1"}))
	require.True(t, projected.Contains([]string{"b", "2"}))
	require.EqualValues(t, 2, projected.Count())
}

func TestSetMatchAgainstProjection(t *testing.T) {
	f := NewFactory[string]()
	s := f.EmptySet().
		Add([]string{"a", "x", "1"}).
		Add([]string{"b", "y", "2"})

	p, err := NewProjection[string](f, []int{0, 2}, 3)
	require.NoError(t, err)

	match, err := s.Match(p, []string{"a", "1"})
	require.NoError(t, err)
	require.False(t, match.IsEmpty())
	require.True(t, match.Contains([]string{"a", "x", "1"}))
	require.EqualValues(t, 1, match.Count())

	match, err = s.Match(p, []string{"a", "2"})
	require.NoError(t, err)
	require.True(t, match.IsEmpty())

	_, err = s.Match(p, []string{"a"})
	require.ErrorIs(t, err, ErrWrongWidth)
}
