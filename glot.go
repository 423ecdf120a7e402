//go:build gnuplot

package main

import (
	"fmt"

	"github.com/Arafatk/glot"
	"github.com/pkg/errors"
)

// glotRenderer opens one persistent gnuplot window per panel. Windows stay
// open after the program exits. glot panics at init without a gnuplot binary,
// so it is only built with -tags gnuplot.
type glotRenderer struct{}

func newGlotRenderer() (Renderer, error) {
	return glotRenderer{}, nil
}

func (glotRenderer) Render(fig Figure) error {

	dimensions := 2
	persist := true
	debug := false

	for i, panel := range fig.Panels {
		plot, err := glot.NewPlot(dimensions, persist, debug)
		if err != nil {
			return errors.Wrap(err, "start gnuplot")
		}

		if err := plot.AddPointGroup(panel.Label, "points", [][]float64{panel.Hist.X, panel.Hist.Y}); err != nil {
			return err
		}
		for _, c := range panel.Curves {
			if err := plot.AddPointGroup(c.Name, "lines", [][]float64{c.X, c.Y}); err != nil {
				return err
			}
		}

		title := fmt.Sprintf("%s (%d/%d)", fig.Title, i+1, len(fig.Panels))
		if err := plot.SetTitle(title); err != nil {
			return err
		}
		if err := plot.SetXLabel("Counts per window"); err != nil {
			return err
		}
		if err := plot.SetYLabel("Density"); err != nil {
			return err
		}
	}

	return nil
}
