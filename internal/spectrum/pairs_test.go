package spectrum

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lenskit/internal/cosmo"
)

func TestPairCount(t *testing.T) {
	tests := []struct {
		mode  cosmo.Tomography
		nbins int
		want  int
	}{
		{cosmo.TomoAutoOnly, 1, 1},
		{cosmo.TomoAutoOnly, 4, 4},
		{cosmo.TomoCrossOnly, 2, 1},
		{cosmo.TomoCrossOnly, 3, 3},
		{cosmo.TomoCrossOnly, 5, 10},
		{cosmo.TomoAll, 1, 1},
		{cosmo.TomoAll, 2, 3},
		{cosmo.TomoAll, 4, 10},
	}
	for _, tt := range tests {
		got, err := PairCount(tt.mode, tt.nbins)
		require.NoError(t, err, "%s nbins=%d", tt.mode, tt.nbins)
		assert.Equal(t, tt.want, got, "%s nbins=%d", tt.mode, tt.nbins)
	}
}

func TestPairCount_CrossOnlySingleBin(t *testing.T) {
	_, err := PairCount(cosmo.TomoCrossOnly, 1)
	require.ErrorIs(t, err, ErrEmptyComputation)
}

func TestPairCount_ContractViolationsPanic(t *testing.T) {
	require.Panics(t, func() { PairCount(cosmo.TomoAll, 0) })
	require.Panics(t, func() { PairCount(cosmo.Tomography(99), 2) })
}

func TestPairs_Order(t *testing.T) {
	tests := []struct {
		mode  cosmo.Tomography
		nbins int
		want  [][2]int
	}{
		{cosmo.TomoAutoOnly, 4, [][2]int{{0, 0}, {1, 1}, {2, 2}, {3, 3}}},
		{cosmo.TomoCrossOnly, 3, [][2]int{{0, 1}, {0, 2}, {1, 2}}},
		{cosmo.TomoAll, 2, [][2]int{{0, 0}, {0, 1}, {1, 1}}},
		{cosmo.TomoAll, 3, [][2]int{{0, 0}, {0, 1}, {0, 2}, {1, 1}, {1, 2}, {2, 2}}},
	}
	for _, tt := range tests {
		got, err := Pairs(tt.mode, tt.nbins)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s nbins=%d", tt.mode, tt.nbins)
	}
}

func TestForEachPair_IndexMatchesOrder(t *testing.T) {
	next := 0
	err := ForEachPair(cosmo.TomoAll, 5, func(idx, i, j int) error {
		if idx != next {
			t.Fatalf("pair index %d out of sequence, want %d", idx, next)
		}
		next++
		return nil
	})
	require.NoError(t, err)

	n, err := PairCount(cosmo.TomoAll, 5)
	require.NoError(t, err)
	assert.Equal(t, n, next, "enumeration and sizing must agree")
}

func TestForEachPair_StopsOnError(t *testing.T) {
	sentinel := errors.New("stop")
	visited := 0
	err := ForEachPair(cosmo.TomoAll, 3, func(idx, i, j int) error {
		visited++
		if idx == 2 {
			return sentinel
		}
		return nil
	})
	require.ErrorIs(t, err, sentinel)
	assert.Equal(t, 3, visited)
}
