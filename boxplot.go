package main

import (
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// countsBoxPlot puts the count distribution of every window size side by side.
func countsBoxPlot(
	fig Figure,
	slide bool,
) (
	*plot.Plot, error,
) {

	p := prepPlot(fig.Title+" counts per window", "Window size (samples)", "Counts", slide)
	p.Legend.Top = false

	var names []string
	for i, panel := range fig.Panels {
		values := make(plotter.Values, len(panel.Counts))
		for j, c := range panel.Counts {
			values[j] = float64(c)
		}

		box, err := plotter.NewBoxPlot(vg.Points(30), float64(i), values)
		if err != nil {
			return nil, err
		}
		box.FillColor = palette(i, false)
		p.Add(box)

		names = append(names, strconv.Itoa(panel.WindowSize))
	}
	p.NominalX(names...)

	return p, nil
}
