package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtremaDetectorNegative(t *testing.T) {

	d := extremaDetector{polarity: Negative}
	window := []float64{0, -0.5, 0, 0.2, 0.1, 0.3, -0.2, -0.1}

	// 0.1 is a local minimum but sits above the threshold.
	assert.Equal(t, []int{1, 6}, d.Detect(window, 0))
	assert.Equal(t, []int{1}, d.Detect(window, -0.3))
}

func TestExtremaDetectorPositive(t *testing.T) {

	d := extremaDetector{polarity: Positive}
	window := []float64{0, 0.5, 0, 1, 1, 0}

	assert.Equal(t, []int{1, 3}, d.Detect(window, 0))
}

func TestExtremaDetectorEdges(t *testing.T) {

	d := extremaDetector{polarity: Negative}

	assert.Empty(t, d.Detect(make([]float64, 100), 0))
	assert.Empty(t, d.Detect([]float64{-1, 0}, 0))
	assert.Empty(t, d.Detect(nil, 0))
	// Samples at the window borders are never peaks.
	assert.Empty(t, d.Detect([]float64{-1, 0, -1}, 0))
}

func TestExtremaDetectorPlateaus(t *testing.T) {

	d := extremaDetector{polarity: Negative}

	// A repeated sample on the falling edge is still one pulse.
	assert.Equal(t, []int{3}, d.Detect([]float64{0, -0.01, -0.01, -0.02, 0}, 0))

	// Flat bottoms report their middle.
	assert.Equal(t, []int{2}, d.Detect([]float64{0, -1, -1, -1, 0}, 0))
	assert.Equal(t, []int{1}, d.Detect([]float64{0, -1, -1, 0}, 0))

	// A plateau running into the window edge never falls back.
	assert.Empty(t, d.Detect([]float64{0, -1, -1}, 0))
	assert.Empty(t, d.Detect([]float64{0, -1, -2, -2}, 0))
}

func TestExtremaDetectorQuantizedPulse(t *testing.T) {

	// 16-bit style steps: the pulse rises in one sample and decays in
	// repeated levels.
	window := []float64{0, 0, -8, -8, -6, -6, -6, -3, -3, 0, 0, -5, -2, 0}
	d := extremaDetector{polarity: Negative}

	assert.Equal(t, []int{2, 11}, d.Detect(window, 0))

	counter := newWindowCounter(d, -1)
	counts, err := counter.Count(window, len(window))
	require.NoError(t, err)
	assert.Equal(t, []int{2}, counts)
}

func TestParsePolarity(t *testing.T) {

	for in, want := range map[string]Polarity{
		"negative": Negative,
		"NEG":      Negative,
		"-":        Negative,
		"positive": Positive,
		"Pos":      Positive,
		"+":        Positive,
	} {
		got, err := parsePolarity(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := parsePolarity("sideways")
	assert.Error(t, err)

	assert.Equal(t, "negative", Negative.String())
	assert.Equal(t, "positive", Positive.String())
}
