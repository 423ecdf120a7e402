package main

import (
	"github.com/pkg/errors"
)

const (
	defaultWindowSize     = 2500
	defaultCountThreshold = 0.0
	// Peaks are always detected against zero; counting uses its own threshold.
	defaultDetectThreshold = 0.0
)

var ErrWindowSize = errors.New("window size must be positive")

// WindowCounter slices a trace into contiguous windows and counts, per
// window, the detected peaks whose amplitude lies strictly below
// CountThreshold. DetectThreshold is only handed to the detector.
type WindowCounter struct {
	Detector        PeakDetector
	DetectThreshold float64
	CountThreshold  float64
}

func newWindowCounter(
	detector PeakDetector,
	countThreshold float64,
) (
	WindowCounter,
) {

	return WindowCounter{
		Detector:        detector,
		DetectThreshold: defaultDetectThreshold,
		CountThreshold:  countThreshold,
	}
}

// Count returns one count per full window; trailing samples that do not fill
// a window are dropped.
func (wc WindowCounter) Count(y []float64, size int) ([]int, error) {

	if size <= 0 {
		return nil, errors.Wrapf(ErrWindowSize, "got %d", size)
	}

	nWindows := len(y) / size
	counts := make([]int, nWindows)

	for i := 0; i < nWindows; i++ {
		window := y[i*size : (i+1)*size]
		for _, p := range wc.Detector.Detect(window, wc.DetectThreshold) {
			if window[p] < wc.CountThreshold {
				counts[i]++
			}
		}
	}

	return counts, nil
}

// Heights returns the amplitude of every peak detected in the full windows.
func (wc WindowCounter) Heights(y []float64, size int) ([]float64, error) {

	if size <= 0 {
		return nil, errors.Wrapf(ErrWindowSize, "got %d", size)
	}

	var heights []float64
	for i := 0; i < len(y)/size; i++ {
		window := y[i*size : (i+1)*size]
		for _, p := range wc.Detector.Detect(window, wc.DetectThreshold) {
			heights = append(heights, window[p])
		}
	}

	return heights, nil
}
