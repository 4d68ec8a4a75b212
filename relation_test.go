package mdd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestZipInterleaved(t *testing.T) {
	got := ZipInterleaved([]string{"a", "b"}, []string{"x", "y"})
	require.Equal(t, []string{"a", "x", "b", "y"}, got)
}

func TestIrelAddPairRejectsMismatchedWidth(t *testing.T) {
	f := NewFactory[string]()
	r := f.EmptyIrel()
	_, err := r.AddPair([]string{"a"}, []string{"x", "y"})
	require.ErrorIs(t, err, ErrWrongWidth)
}

func TestIrelComposeSingleStep(t *testing.T) {
	f := NewFactory[string]()
	r, err := f.EmptyIrel().AddPair([]string{"a"}, []string{"b"})
	require.NoError(t, err)
	r, err = r.AddPair([]string{"b"}, []string{"c"})
	require.NoError(t, err)

	composed, err := r.Compose(r)
	require.NoError(t, err)

	vectors := collectVectors(t, &composed.Set)
	require.Contains(t, vectors, []string{"a", "c"})
	require.NotContains(t, vectors, []string{"a", "b"})
}

func TestIrelClosureReachesFixedPoint(t *testing.T) {
	f := NewFactory[string]()
	r, err := f.EmptyIrel().AddPair([]string{"a"}, []string{"b"})
	require.NoError(t, err)
	r, err = r.AddPair([]string{"b"}, []string{"c"})
	require.NoError(t, err)
	r, err = r.AddPair([]string{"c"}, []string{"d"})
	require.NoError(t, err)

	closure := r.Closure()
	vectors := collectVectors(t, &closure.Set)

	require.Contains(t, vectors, []string{"a", "b"})
	require.Contains(t, vectors, []string{"a", "c"})
	require.Contains(t, vectors, []string{"a", "d"})
	require.Contains(t, vectors, []string{"b", "d"})
}

func TestIrelNextComputesImage(t *testing.T) {
	f := NewFactory[string]()
	r, err := f.EmptyIrel().AddPair([]string{"a"}, []string{"x"})
	require.NoError(t, err)
	r, err = r.AddPair([]string{"a"}, []string{"y"})
	require.NoError(t, err)
	r, err = r.AddPair([]string{"b"}, []string{"z"})
	require.NoError(t, err)

	s := f.EmptySet().Add([]string{"a"})
	image, err := r.Next(s, nil)
	require.NoError(t, err)

	vectors := collectVectors(t, image)
	require.Contains(t, vectors, []string{"x"})
	require.Contains(t, vectors, []string{"y"})
	require.NotContains(t, vectors, []string{"z"})
}

func TestIrelPrevComputesPreimage(t *testing.T) {
	f := NewFactory[string]()
	r, err := f.EmptyIrel().AddPair([]string{"a"}, []string{"x"})
	require.NoError(t, err)
	r, err = r.AddPair([]string{"b"}, []string{"x"})
	require.NoError(t, err)
	r, err = r.AddPair([]string{"c"}, []string{"y"})
	require.NoError(t, err)

	tset := f.EmptySet().Add([]string{"x"})
	preimage, err := r.Prev(tset, nil)
	require.NoError(t, err)

	vectors := collectVectors(t, preimage)
	require.Contains(t, vectors, []string{"a"})
	require.Contains(t, vectors, []string{"b"})
	require.NotContains(t, vectors, []string{"c"})
}

func TestIrelComposeSequential(t *testing.T) {
	f := NewFactory[string]()
	r, err := f.EmptyIrel().AddPair([]string{"a"}, []string{"m"})
	require.NoError(t, err)

	srel := f.EmptySrel()
	added := srel.Set.Add([]string{"m", "y"})
	srel = &Srel[string]{Set: *added}

	composed, err := r.ComposeSequential(srel, nil)
	require.NoError(t, err)

	vectors := collectVectors(t, &composed.Set)
	require.Contains(t, vectors, []string{"a", "y"})
}

func TestIrelComposeSequentialProjected(t *testing.T) {
	f := NewFactory[string]()
	r, err := f.EmptyIrel().AddPair([]string{"a"}, []string{"m"})
	require.NoError(t, err)
	r, err = r.AddPair([]string{"b"}, []string{"m"})
	require.NoError(t, err)

	srel := f.EmptySrel()
	added := srel.Set.Add([]string{"m", "y"})
	srel = &Srel[string]{Set: *added}

	p, err := NewProjection[string](f, []int{1}, 2)
	require.NoError(t, err)

	composed, err := r.ComposeSequential(srel, p)
	require.NoError(t, err)

	vectors := collectVectors(t, &composed.Set)
	require.Equal(t, [][]string{{"y"}}, vectors)
}
