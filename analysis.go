package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Options selects the histogram resolution and the models to fit.
// PeakHeights collects every detected peak amplitude at the first window
// size, which costs a second detection pass.
type Options struct {
	Bins        int
	FitPoisson  bool
	FitBose     bool
	PeakHeights bool
}

func defaultOptions() Options {
	return Options{Bins: defaultBins}
}

// Curve is a fitted model evaluated at k = 0..bins-1.
type Curve struct {
	Name string
	X, Y []float64
}

// Panel is the analysis of one window size.
type Panel struct {
	WindowSize int
	Duration   float64 // μs
	Label      string
	Counts     []int
	Summary    CountSummary
	Hist       Histogram
	Fits       []FitResult
	Curves     []Curve
}

// Figure is everything needed to draw one measurement, independent of the
// drawing backend.
type Figure struct {
	Name      string
	Title     string
	Threshold float64
	Panels    []Panel
	Heights   []float64
}

// windowDuration is the time spanned by one window in μs, assuming uniform
// spacing taken from the first two samples.
func windowDuration(
	x []float64,
	size int,
) (
	float64,
) {
	// Loaded traces have increasing time, so x[0]-x[1] is negative.
	return math.Abs(x[0]-x[1]) * float64(size) * 1e6
}

// analyzeWindow counts, histograms and fits one window size.
func analyzeWindow(
	s Series,
	size int,
	counter WindowCounter,
	opts Options,
) (
	Panel, error,
) {

	counts, err := counter.Count(s.Y, size)
	if err != nil {
		return Panel{}, err
	}

	hist, err := buildHistogram(counts, opts.Bins)
	if err != nil {
		return Panel{}, errors.Wrapf(err, "%s window %d (%d samples)", s.Name, size, len(s.Y))
	}
	if hist.Excluded > 0 {
		log.WithFields(log.Fields{
			"measurement": s.Name,
			"window":      size,
			"excluded":    hist.Excluded,
			"bins":        opts.Bins,
		}).Warn("Counts outside histogram range dropped")
	}

	summary, err := summarizeCounts(counts)
	if err != nil {
		return Panel{}, errors.Wrapf(err, "%s window %d", s.Name, size)
	}

	duration := windowDuration(s.X, size)

	panel := Panel{
		WindowSize: size,
		Duration:   duration,
		Label:      fmt.Sprintf("tc=%.2f μs", duration),
		Counts:     counts,
		Summary:    summary,
		Hist:       hist,
	}

	var models []Model
	if opts.FitPoisson {
		models = append(models, poissonModel)
	}
	if opts.FitBose {
		models = append(models, boseModel)
	}

	k := make([]float64, opts.Bins)
	for i := range k {
		k[i] = float64(i)
	}

	for _, m := range models {
		res, err := fit(m, hist.X, hist.Y)
		if err != nil {
			return Panel{}, errors.Wrapf(err, "%s window %d", s.Name, size)
		}
		if res.Lambda <= 0 || res.A < 0 {
			log.WithFields(log.Fields{
				"measurement": s.Name,
				"window":      size,
				"model":       m.Name,
			}).Warnf("Implausible fit: %s", res)
		}

		curve := Curve{Name: res.String(), X: k, Y: make([]float64, len(k))}
		for i := range k {
			curve.Y[i] = m.Func(k[i], res.Lambda, res.A)
		}

		panel.Fits = append(panel.Fits, res)
		panel.Curves = append(panel.Curves, curve)
	}

	return panel, nil
}

// analyzeMeasurement loads a measurement and analyzes it at every window
// size. The first error aborts the whole measurement.
func analyzeMeasurement(
	loader AxisLoader,
	name string,
	sizes []int,
	counter WindowCounter,
	opts Options,
) (
	Figure, error,
) {

	s, err := loader.Load(name)
	if err != nil {
		return Figure{}, err
	}

	log.WithFields(log.Fields{
		"measurement": name,
		"samples":     len(s.Y),
	}).Info("Loaded measurement")

	fig := Figure{
		Name:      name,
		Title:     strings.ToUpper(name),
		Threshold: counter.CountThreshold,
	}

	for _, size := range sizes {
		panel, err := analyzeWindow(s, size, counter, opts)
		if err != nil {
			return Figure{}, err
		}

		log.WithFields(log.Fields{
			"measurement": name,
			"window":      size,
			"windows":     panel.Summary.Windows,
			"mean":        fmt.Sprintf("%.3f", panel.Summary.Mean),
			"variance":    fmt.Sprintf("%.3f", panel.Summary.Variance),
			"fano":        fmt.Sprintf("%.3f", panel.Summary.Fano),
		}).Info(panel.Label)

		for _, res := range panel.Fits {
			log.WithFields(log.Fields{
				"measurement": name,
				"window":      size,
				"points":      res.Points,
			}).Info(res.String())
		}

		fig.Panels = append(fig.Panels, panel)
	}

	if opts.PeakHeights && len(sizes) > 0 {
		fig.Heights, err = counter.Heights(s.Y, sizes[0])
		if err != nil {
			return Figure{}, err
		}
	}

	return fig, nil
}
