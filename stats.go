package main

import (
	"github.com/montanaflynn/stats"
)

// CountSummary describes the counts of one window size. Fano is
// variance/mean: 1 for Poisson light, 1+λ for Bose-Einstein light.
type CountSummary struct {
	Windows  int
	Mean     float64
	Variance float64
	Max      float64
	Fano     float64
}

func summarizeCounts(
	counts []int,
) (
	CountSummary, error,
) {

	data := stats.LoadRawData(counts)

	mean, err := stats.Mean(data)
	if err != nil {
		return CountSummary{}, err
	}
	variance, err := stats.PopulationVariance(data)
	if err != nil {
		return CountSummary{}, err
	}
	max, err := stats.Max(data)
	if err != nil {
		return CountSummary{}, err
	}

	summary := CountSummary{
		Windows:  len(counts),
		Mean:     mean,
		Variance: variance,
		Max:      max,
	}
	if mean > 0 {
		summary.Fano = variance / mean
	}

	return summary, nil
}
