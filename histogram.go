package main

import (
	"math"
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const defaultBins = 25

var (
	ErrBins           = errors.New("histogram needs at least 2 bin edges")
	ErrNoWindows      = errors.New("no full windows to histogram")
	ErrEmptyHistogram = errors.New("every count falls outside the histogram bins")
)

// Histogram is a density over integer bins. X holds the left edge of each
// bin, Excluded the number of counts that fell outside [0, bins-1].
type Histogram struct {
	X, Y     []float64
	Excluded int
}

// buildHistogram bins counts on the integer edges 0..bins-1. The last bucket
// is closed on the right so a count of bins-1 still lands in it. Counts
// outside the edges are dropped, not clamped.
func buildHistogram(
	counts []int,
	bins int,
) (
	Histogram, error,
) {

	if bins < 2 {
		return Histogram{}, errors.Wrapf(ErrBins, "got %d", bins)
	}
	if len(counts) == 0 {
		return Histogram{}, ErrNoWindows
	}

	upper := float64(bins - 1)

	x := make([]float64, 0, len(counts))
	excluded := 0
	for _, c := range counts {
		v := float64(c)
		if v < 0 || v > upper {
			excluded++
			continue
		}
		x = append(x, v)
	}

	if len(x) == 0 {
		return Histogram{}, errors.Wrapf(ErrEmptyHistogram, "%d counts, bins [0, %d]", len(counts), bins-1)
	}

	sort.Float64s(x)

	dividers := floats.Span(make([]float64, bins), 0, upper)
	dividers[bins-1] = math.Nextafter(upper, math.Inf(1))

	hist := stat.Histogram(nil, dividers, x, nil)

	// Unit-width bins, so density is the plain fraction.
	floats.Scale(1/float64(len(x)), hist)

	return Histogram{
		X:        dividers[:bins-1],
		Y:        hist,
		Excluded: excluded,
	}, nil
}
