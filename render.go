package main

import (
	"github.com/pkg/errors"
)

// Renderer draws a figure. Renderers get the figure explicitly and keep no
// shared "current figure" between calls.
type Renderer interface {
	Render(fig Figure) error
}

type multiRenderer []Renderer

func (m multiRenderer) Render(fig Figure) error {
	for _, r := range m {
		if err := r.Render(fig); err != nil {
			return errors.Wrapf(err, "render %s", fig.Name)
		}
	}
	return nil
}
