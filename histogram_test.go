package main

import (
	"math/rand/v2"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func TestHistogramNormalized(t *testing.T) {

	rng := rand.New(rand.NewPCG(3, 4))
	counts := make([]int, 1000)
	over := 0
	for i := range counts {
		counts[i] = rng.IntN(31)
		if counts[i] > defaultBins-1 {
			over++
		}
	}

	h, err := buildHistogram(counts, defaultBins)
	require.NoError(t, err)

	assert.Len(t, h.X, defaultBins-1)
	assert.Len(t, h.Y, defaultBins-1)
	for i, x := range h.X {
		assert.Equal(t, float64(i), x)
	}
	assert.InDelta(t, 1, floats.Sum(h.Y), 1e-9)
	assert.Equal(t, over, h.Excluded)
}

func TestHistogramDensity(t *testing.T) {

	h, err := buildHistogram([]int{0, 0, 1, 3}, 5)
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 1, 2, 3}, h.X)
	assert.InDeltaSlice(t, []float64{0.5, 0.25, 0, 0.25}, h.Y, 1e-12)
	assert.Zero(t, h.Excluded)
}

func TestHistogramPointMass(t *testing.T) {

	h, err := buildHistogram(make([]int, 4), defaultBins)
	require.NoError(t, err)

	assert.Equal(t, 1., h.Y[0])
	assert.Zero(t, floats.Sum(h.Y[1:]))
}

func TestHistogramLastBinClosed(t *testing.T) {

	h, err := buildHistogram([]int{23, 24}, defaultBins)
	require.NoError(t, err)

	// 23 and 24 share the last bucket [23, 24].
	assert.Equal(t, 1., h.Y[len(h.Y)-1])
	assert.Zero(t, h.Excluded)
}

func TestHistogramTruncates(t *testing.T) {

	h, err := buildHistogram([]int{0, 1, 25, 40, -1}, defaultBins)
	require.NoError(t, err)

	assert.Equal(t, 3, h.Excluded)
	assert.InDelta(t, 1, floats.Sum(h.Y), 1e-12)
	assert.Equal(t, 0.5, h.Y[0])
}

func TestHistogramErrors(t *testing.T) {

	_, err := buildHistogram(nil, defaultBins)
	assert.Equal(t, ErrNoWindows, errors.Cause(err))

	_, err = buildHistogram([]int{1}, 1)
	assert.Equal(t, ErrBins, errors.Cause(err))

	_, err = buildHistogram([]int{30, 31}, defaultBins)
	assert.Equal(t, ErrEmptyHistogram, errors.Cause(err))
}
