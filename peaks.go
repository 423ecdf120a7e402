package main

import (
	"strings"

	"github.com/pkg/errors"
)

// PeakDetector finds the indices of pulses in a window of samples.
type PeakDetector interface {
	Detect(window []float64, threshold float64) []int
}

// Polarity is the sign of the detector pulses.
type Polarity int

const (
	Negative Polarity = iota
	Positive
)

func parsePolarity(
	s string,
) (
	Polarity, error,
) {

	switch strings.ToLower(s) {
	case "negative", "neg", "-":
		return Negative, nil
	case "positive", "pos", "+":
		return Positive, nil
	}

	return Negative, errors.Errorf("unknown polarity %q (negative or positive)", s)
}

func (p Polarity) String() string {
	if p == Positive {
		return "positive"
	}
	return "negative"
}

// extremaDetector reports strict local extrema in its polarity that reach the
// threshold. For negative pulses that is every local minimum <= threshold.
// A run of equal samples is one peak, reported at its middle (left of centre
// for even runs), and only if the signal falls back after the run.
type extremaDetector struct {
	polarity Polarity
}

func (d extremaDetector) Detect(window []float64, threshold float64) []int {

	sign := 1.
	if d.polarity == Negative {
		sign = -1.
	}

	last := len(window) - 1

	var peaks []int
	for i := 1; i < last; i++ {
		v := sign * window[i]
		if v <= sign*window[i-1] {
			continue
		}

		ahead := i + 1
		for ahead < last && window[ahead] == window[i] {
			ahead++
		}
		if v <= sign*window[ahead] {
			// Step on a monotone edge.
			continue
		}

		if v >= sign*threshold {
			peaks = append(peaks, (i+ahead-1)/2)
		}
		i = ahead
	}

	return peaks
}
