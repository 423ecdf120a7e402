//go:build !gnuplot

package main

import (
	"github.com/pkg/errors"
)

var ErrNoGnuplot = errors.New("interactive plots need a build with -tags gnuplot")

func newGlotRenderer() (Renderer, error) {
	return nil, ErrNoGnuplot
}
