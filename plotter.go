package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const heightBins = 50

// summaryRenderer saves the counts box plot and the peak-height histogram.
type summaryRenderer struct {
	logpath string
	formats []string
	slide   bool
}

func (r summaryRenderer) Render(fig Figure) error {

	box, err := countsBoxPlot(fig, r.slide)
	if err != nil {
		return err
	}
	if err := savePlot(box, fig.Title+" counts", r.logpath, r.formats); err != nil {
		return err
	}

	if len(fig.Heights) == 0 {
		log.WithField("measurement", fig.Name).Warn("No peaks detected, skipping peak height histogram")
		return nil
	}

	hist, err := heightsHistPlot(fig, r.slide)
	if err != nil {
		return err
	}
	return savePlot(hist, fig.Title+" peak heights", r.logpath, r.formats)
}

// heightsHistPlot histograms every detected peak amplitude and marks the
// counting threshold.
func heightsHistPlot(
	fig Figure,
	slide bool,
) (
	*plot.Plot, error,
) {

	p := prepPlot(fig.Title+" peak heights", "Amplitude", "Peaks", slide)

	h, err := plotter.NewHist(plotter.Values(fig.Heights), heightBins)
	if err != nil {
		return nil, err
	}
	h.FillColor = palette(0, false)
	h.LineStyle.Width = vg.Points(0.5)
	p.Add(h)

	top := 0.
	for _, b := range h.Bins {
		if b.Weight > top {
			top = b.Weight
		}
	}

	l, err := plotter.NewLine(plotter.XYs{{X: fig.Threshold, Y: 0}, {X: fig.Threshold, Y: top}})
	if err != nil {
		return nil, err
	}
	l.LineStyle.Color = palette(1, true)
	l.LineStyle.Width = vg.Points(1.5)
	l.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	p.Add(l)
	p.Legend.Add(fmt.Sprintf("threshold %g", fig.Threshold), l)

	return p, nil
}
