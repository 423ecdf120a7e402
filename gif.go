package main

import (
	"image"
	"image/color"
	colorpalette "image/color/palette"
	"image/draw"
	"image/gif"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	vgdraw "gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const gifDelay = 100 // 1/100 s per window size

type frameResult struct {
	Index   int
	Palette *image.Paletted
}

// gifRenderer sweeps through the window sizes of a figure, one frame each.
type gifRenderer struct {
	logpath string
	slide   bool
}

func (r gifRenderer) Render(fig Figure) error {

	if len(fig.Panels) == 0 {
		return errors.Errorf("%s: nothing to animate", fig.Name)
	}

	var images []image.Image
	for _, panel := range fig.Panels {
		p, err := panelPlot(panel, fig.Title, r.slide)
		if err != nil {
			return err
		}

		c := vgimg.New(panelWidth, panelHeight)
		p.Draw(vgdraw.New(c))
		images = append(images, c.Image())
	}

	// Use the last frame to generate the palette
	pal := generatePalette(images[len(images)-1])

	// Channel to receive frame results
	resultCh := make(chan frameResult, len(images))
	var wg sync.WaitGroup

	for index, img := range images {
		wg.Add(1)
		go convertToPaletted(index, img, pal, resultCh, &wg)
	}

	wg.Wait()
	close(resultCh)

	var frameResults []frameResult
	for result := range resultCh {
		frameResults = append(frameResults, result)
	}

	sort.Slice(frameResults, func(i, j int) bool {
		return frameResults[i].Index < frameResults[j].Index
	})

	anim := &gif.GIF{}
	for _, result := range frameResults {
		anim.Image = append(anim.Image, result.Palette)
		anim.Delay = append(anim.Delay, gifDelay)
	}

	if err := ensureDir(r.logpath); err != nil {
		return err
	}

	path := filepath.Join(r.logpath, fig.Title+".gif")
	outFile, err := os.Create(path)
	if err != nil {
		return err
	}
	defer outFile.Close()

	if err := gif.EncodeAll(outFile, anim); err != nil {
		return errors.Wrapf(err, "encode %s", path)
	}

	log.WithField("path", path).Info("Saved animation")

	return outFile.Close()
}

func convertToPaletted(index int, img image.Image, pal []color.Color, resultCh chan<- frameResult, wg *sync.WaitGroup) {
	defer wg.Done()
	palettedImage := image.NewPaletted(img.Bounds(), pal)
	draw.Draw(palettedImage, img.Bounds(), img, image.Point{}, draw.Over)
	resultCh <- frameResult{
		Index:   index,
		Palette: palettedImage,
	}
}

func generatePalette(img image.Image) []color.Color {
	paletted := image.NewPaletted(img.Bounds(), colorpalette.Plan9)
	draw.Draw(paletted, img.Bounds(), img, image.Point{}, draw.Over)
	return paletted.Palette
}
