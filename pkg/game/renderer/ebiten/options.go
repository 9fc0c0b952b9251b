// Package ebiten provides an Ebiten-based 2D graphical renderer for the generator.
// The window is only available when built with the 'ebiten' tag.
package ebiten

import (
	"errors"

	"wavecollapse/pkg/game/tiled"
)

// ErrUnavailable is returned by Run in builds without the 'ebiten' tag
var ErrUnavailable = errors.New("graphical renderer requires building with the 'ebiten' tag")

// Options configures the window
type Options struct {
	Title       string
	CellSize    int            // pixels per cell edge
	TPS         int            // generator iterations per second
	Tileset     *tiled.Tileset // draws tiles from its image when set
	ShowEntropy bool           // print domain sizes over pending cells
}

const statusHeight = 32

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = "Wave Function Collapse"
	}
	if o.CellSize <= 0 {
		o.CellSize = 16
	}
	if o.TPS <= 0 {
		o.TPS = 60
	}
	return o
}

// screenSize returns the logical screen size for a grid
func (o Options) screenSize(width, height int) (int, int) {
	return width * o.CellSize, height*o.CellSize + statusHeight
}
