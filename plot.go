package main

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	panelWidth  = 10 * vg.Inch
	panelHeight = 4 * vg.Inch
)

// plotRenderer saves each figure as stacked subplots, one file per format.
type plotRenderer struct {
	logpath string
	formats []string
	slide   bool
}

func (r plotRenderer) Render(fig Figure) error {

	if len(fig.Panels) == 0 {
		return errors.Errorf("%s: nothing to plot", fig.Name)
	}

	var plots []*plot.Plot
	for i, panel := range fig.Panels {
		title := ""
		if i == 0 {
			title = fig.Title
		}
		p, err := panelPlot(panel, title, r.slide)
		if err != nil {
			return err
		}
		plots = append(plots, p)
	}

	for _, format := range r.formats {

		path := filepath.Join(r.logpath, fig.Title+"."+format)
		if err := saveStacked(plots, panelWidth, panelHeight*vg.Length(len(plots)), path); err != nil {
			return err
		}

		log.WithField("path", path).Info("Saved figure")
	}

	return nil
}

// panelPlot draws the histogram points and fitted curves of one window size.
func panelPlot(
	panel Panel,
	title string,
	slide bool,
) (
	*plot.Plot, error,
) {

	p := prepPlot(title, "Counts per window", "Density", slide)

	pts, err := plotter.NewScatter(buildData([][]float64{panel.Hist.X, panel.Hist.Y}))
	if err != nil {
		return nil, err
	}
	pts.GlyphStyle.Shape = draw.CircleGlyph{}
	pts.GlyphStyle.Color = palette(0, true)
	pts.GlyphStyle.Radius = vg.Points(3)
	p.Add(pts)
	p.Legend.Add(panel.Label, pts)

	for i, c := range panel.Curves {
		l, err := plotter.NewLine(buildData([][]float64{c.X, c.Y}))
		if err != nil {
			return nil, err
		}
		l.LineStyle.Color = palette(i+1, false)
		l.LineStyle.Width = vg.Points(1.5)
		p.Add(l)
		p.Legend.Add(c.Name, l)
	}

	return p, nil
}

func buildData(
	data [][]float64,
) (
	plotter.XYs,
) {

	xy := make(plotter.XYs, len(data[0]))

	for i := range xy {
		xy[i].X = data[0][i]
		xy[i].Y = data[1][i]
	}

	return xy
}

func prepPlot(
	title, xlabel, ylabel string,
	slide bool,
) (
	*plot.Plot,
) {

	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Typeface = "Liberation"
	p.Title.TextStyle.Font.Variant = "Sans"

	p.X.Label.Text = xlabel
	p.X.Label.TextStyle.Font.Variant = "Sans"
	p.X.LineStyle.Width = vg.Points(1)
	p.X.Tick.LineStyle.Width = vg.Points(1)
	p.X.Tick.Label.Font.Variant = "Sans"

	p.Y.Label.Text = ylabel
	p.Y.Label.TextStyle.Font.Variant = "Sans"
	p.Y.LineStyle.Width = vg.Points(1)
	p.Y.Tick.LineStyle.Width = vg.Points(1)
	p.Y.Tick.Label.Font.Variant = "Sans"

	p.Legend.TextStyle.Font.Variant = "Sans"
	p.Legend.Top = true
	p.Legend.XOffs = vg.Points(-10)
	p.Legend.Padding = vg.Points(4)
	p.Legend.ThumbnailWidth = vg.Points(25)

	if slide {
		p.Title.TextStyle.Font.Size = 28
		p.Title.Padding = font.Length(14)

		p.X.Label.TextStyle.Font.Size = 20
		p.X.Tick.Label.Font.Size = 18
		p.Y.Label.TextStyle.Font.Size = 20
		p.Y.Tick.Label.Font.Size = 18

		p.Legend.TextStyle.Font.Size = 18
	} else {
		p.Title.TextStyle.Font.Size = 18
		p.Title.Padding = font.Length(8)

		p.X.Label.TextStyle.Font.Size = 12
		p.X.Tick.Label.Font.Size = 10
		p.Y.Label.TextStyle.Font.Size = 12
		p.Y.Tick.Label.Font.Size = 10

		p.Legend.TextStyle.Font.Size = 10
	}

	return p
}

func palette(
	brush int,
	dark bool,
) (
	color.RGBA,
) {

	if dark {
		darkColor := []color.RGBA{
			{R: 27, G: 170, B: 139, A: 255},
			{R: 201, G: 104, B: 146, A: 255},
			{R: 99, G: 124, B: 198, A: 255},
			{R: 194, G: 140, B: 86, A: 255},
			{R: 7, G: 150, B: 189, A: 255},
			{R: 140, G: 46, B: 49, A: 255},
			{R: 46, G: 140, B: 60, A: 255},
			{R: 22, G: 44, B: 91, A: 255},
		}

		return darkColor[brush%len(darkColor)]
	}

	col := []color.RGBA{
		{R: 31, G: 211, B: 172, A: 255},
		{R: 255, G: 122, B: 180, A: 255},
		{R: 122, G: 156, B: 255, A: 255},
		{R: 255, G: 182, B: 110, A: 255},
		{R: 11, G: 191, B: 222, A: 255},
		{R: 188, G: 117, B: 255, A: 255},
		{R: 234, G: 156, B: 172, A: 255},
		{R: 46, G: 140, B: 60, A: 255},
	}

	return col[brush%len(col)]
}

// saveStacked aligns plots in a single column and writes them to path in the
// format named by its extension.
func saveStacked(
	plots []*plot.Plot,
	w, h vg.Length,
	path string,
) (
	error,
) {

	format := strings.TrimPrefix(filepath.Ext(path), ".")

	c, err := draw.NewFormattedCanvas(w, h, format)
	if err != nil {
		return err
	}

	grid := make([][]*plot.Plot, len(plots))
	for i, p := range plots {
		grid[i] = []*plot.Plot{p}
	}

	tiles := draw.Tiles{
		Rows:      len(plots),
		Cols:      1,
		PadX:      vg.Millimeter,
		PadY:      4 * vg.Millimeter,
		PadTop:    2 * vg.Millimeter,
		PadBottom: 2 * vg.Millimeter,
		PadLeft:   2 * vg.Millimeter,
		PadRight:  2 * vg.Millimeter,
	}

	canvases := plot.Align(grid, tiles, draw.New(c))
	for i, p := range plots {
		p.Draw(canvases[i][0])
	}

	if err := ensureDir(filepath.Dir(path)); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := c.WriteTo(f); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}

	return f.Close()
}

// savePlot writes a single plot in every format.
func savePlot(
	p *plot.Plot,
	name, logpath string,
	formats []string,
) (
	error,
) {

	if err := ensureDir(logpath); err != nil {
		return err
	}

	for _, format := range formats {
		path := filepath.Join(logpath, name+"."+format)
		if err := p.Save(panelWidth, 1.5*panelHeight, path); err != nil {
			return errors.Wrapf(err, "save %s", path)
		}
		log.WithField("path", path).Info("Saved figure")
	}

	return nil
}

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "create %s", dir)
	}
	return nil
}
