package main

import (
	"image/gif"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingRenderer struct{}

func (failingRenderer) Render(Figure) error {
	return errors.New("no canvas")
}

type countingRenderer struct {
	calls *int
}

func (r countingRenderer) Render(Figure) error {
	*r.calls++
	return nil
}

func testFigure(t *testing.T) Figure {
	t.Helper()

	conf := defaultSimConfig()
	conf.Slot = 500
	conf.Samples = 500 * 200

	s, err := simulateTrace(conf)
	require.NoError(t, err)

	loader := mapLoader{"poisson": s}
	counter := newWindowCounter(extremaDetector{polarity: Negative}, -0.001)
	opts := Options{Bins: defaultBins, FitPoisson: true, PeakHeights: true}

	fig, err := analyzeMeasurement(loader, "poisson", []int{500, 1000}, counter, opts)
	require.NoError(t, err)

	return fig
}

func assertNonEmptyFile(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err, path)
	assert.NotZero(t, info.Size(), path)
}

func TestPlotRenderer(t *testing.T) {

	dir := filepath.Join(t.TempDir(), "run")
	fig := testFigure(t)

	r := plotRenderer{logpath: dir, formats: []string{"png", "svg"}}
	require.NoError(t, r.Render(fig))

	assertNonEmptyFile(t, filepath.Join(dir, "POISSON.png"))
	assertNonEmptyFile(t, filepath.Join(dir, "POISSON.svg"))
}

func TestPlotRendererNoPanels(t *testing.T) {
	r := plotRenderer{logpath: t.TempDir(), formats: []string{"png"}}
	assert.Error(t, r.Render(Figure{Name: "empty", Title: "EMPTY"}))
}

func TestSummaryRenderer(t *testing.T) {

	dir := t.TempDir()
	fig := testFigure(t)
	require.NotEmpty(t, fig.Heights)

	r := summaryRenderer{logpath: dir, formats: []string{"png"}, slide: true}
	require.NoError(t, r.Render(fig))

	assertNonEmptyFile(t, filepath.Join(dir, "POISSON counts.png"))
	assertNonEmptyFile(t, filepath.Join(dir, "POISSON peak heights.png"))
}

func TestSummaryRendererWithoutPeaks(t *testing.T) {

	dir := t.TempDir()
	fig := testFigure(t)
	fig.Heights = nil

	r := summaryRenderer{logpath: dir, formats: []string{"png"}}
	require.NoError(t, r.Render(fig))

	assertNonEmptyFile(t, filepath.Join(dir, "POISSON counts.png"))
	_, err := os.Stat(filepath.Join(dir, "POISSON peak heights.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestGIFRenderer(t *testing.T) {

	dir := t.TempDir()
	fig := testFigure(t)

	require.NoError(t, gifRenderer{logpath: dir}.Render(fig))

	f, err := os.Open(filepath.Join(dir, "POISSON.gif"))
	require.NoError(t, err)
	defer f.Close()

	anim, err := gif.DecodeAll(f)
	require.NoError(t, err)
	assert.Len(t, anim.Image, len(fig.Panels))
	assert.Equal(t, []int{gifDelay, gifDelay}, anim.Delay)
}

func TestMultiRenderer(t *testing.T) {

	calls := 0
	ok := multiRenderer{countingRenderer{&calls}, countingRenderer{&calls}}
	require.NoError(t, ok.Render(Figure{Name: "poisson"}))
	assert.Equal(t, 2, calls)

	calls = 0
	bad := multiRenderer{failingRenderer{}, countingRenderer{&calls}}
	err := bad.Render(Figure{Name: "poisson"})
	require.Error(t, err)
	assert.Equal(t, "render poisson: no canvas", err.Error())
	assert.Zero(t, calls)
}

func TestNewRenderer(t *testing.T) {

	conf := defaultConfig()
	r, err := newRenderer(conf, "out")
	require.NoError(t, err)
	require.IsType(t, multiRenderer{}, r)
	assert.Len(t, r, 1)

	conf.Summary = true
	conf.GIF = true
	r, err = newRenderer(conf, "out")
	require.NoError(t, err)
	assert.Len(t, r, 3)

	conf.Formats = nil
	r, err = newRenderer(conf, "out")
	require.NoError(t, err)
	assert.Len(t, r, 2)
}
